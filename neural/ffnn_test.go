package neural

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

var defaultParams = Params{ActivationResponse: 1, Bias: -1}

func newTestNetwork(t *testing.T, topo Topology) *Network {
	t.Helper()
	nn, err := New(topo, defaultParams, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("New(%+v): %v", topo, err)
	}
	return nn
}

func TestNewLayerShapes(t *testing.T) {
	tests := []struct {
		name   string
		topo   Topology
		shapes [][2]int // inputs per neuron, neurons
	}{
		{"no hidden", Topology{Inputs: 4, Outputs: 2}, [][2]int{{4, 2}}},
		{"one hidden", Topology{Inputs: 4, HiddenLayers: 1, NeuronsPerHidden: 6, Outputs: 2}, [][2]int{{4, 6}, {6, 2}}},
		{"three hidden", Topology{Inputs: 6, HiddenLayers: 3, NeuronsPerHidden: 5, Outputs: 2}, [][2]int{{6, 5}, {5, 5}, {5, 5}, {5, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nn := newTestNetwork(t, tt.topo)
			layers := nn.Layers()
			if len(layers) != len(tt.shapes) {
				t.Fatalf("got %d layers, want %d", len(layers), len(tt.shapes))
			}
			for i, l := range layers {
				if len(l.Neurons) != tt.shapes[i][1] {
					t.Errorf("layer %d: %d neurons, want %d", i, len(l.Neurons), tt.shapes[i][1])
				}
				for _, n := range l.Neurons {
					if len(n.Weights) != tt.shapes[i][0]+1 {
						t.Errorf("layer %d: neuron has %d weights, want %d", i, len(n.Weights), tt.shapes[i][0]+1)
					}
				}
			}
		})
	}
}

func TestWeightCount(t *testing.T) {
	for _, topo := range []Topology{
		{Inputs: 4, Outputs: 2},
		{Inputs: 4, HiddenLayers: 1, NeuronsPerHidden: 6, Outputs: 2},
		{Inputs: 6, HiddenLayers: 2, NeuronsPerHidden: 10, Outputs: 2},
		{Inputs: 1, HiddenLayers: 4, NeuronsPerHidden: 1, Outputs: 1},
	} {
		nn := newTestNetwork(t, topo)

		sum := 0
		for _, l := range nn.Layers() {
			for _, n := range l.Neurons {
				sum += len(n.Weights)
			}
		}
		if nn.WeightCount() != sum {
			t.Errorf("%+v: WeightCount() = %d, neuron sum = %d", topo, nn.WeightCount(), sum)
		}
		if topo.WeightCount() != sum {
			t.Errorf("%+v: Topology.WeightCount() = %d, neuron sum = %d", topo, topo.WeightCount(), sum)
		}
	}

	// 4 inputs, 1 hidden of 6, 2 outputs: 6*(4+1) + 2*(6+1)
	if got := (Topology{Inputs: 4, HiddenLayers: 1, NeuronsPerHidden: 6, Outputs: 2}).WeightCount(); got != 44 {
		t.Errorf("WeightCount = %d, want 44", got)
	}
}

func TestInitialWeightsInRange(t *testing.T) {
	nn := newTestNetwork(t, Topology{Inputs: 6, HiddenLayers: 1, NeuronsPerHidden: 10, Outputs: 2})
	for _, w := range nn.Weights() {
		if w <= -1 || w >= 1 {
			t.Errorf("initial weight %v outside (-1, 1)", w)
		}
	}
}

func TestSetWeightsRoundTrip(t *testing.T) {
	nn := newTestNetwork(t, Topology{Inputs: 4, HiddenLayers: 2, NeuronsPerHidden: 3, Outputs: 2})

	flat := make([]float64, nn.WeightCount())
	for i := range flat {
		flat[i] = float64(i) * 0.25
	}
	if err := nn.SetWeights(flat); err != nil {
		t.Fatalf("SetWeights: %v", err)
	}

	got := nn.Weights()
	for i := range flat {
		if got[i] != flat[i] {
			t.Fatalf("weight %d: got %v, want %v", i, got[i], flat[i])
		}
	}

	// Order is layer-major, neuron-major: first neuron of first layer holds 0..4
	first := nn.Layers()[0].Neurons[0].Weights
	for i, w := range first {
		if w != float64(i)*0.25 {
			t.Errorf("first neuron weight %d = %v, want %v", i, w, float64(i)*0.25)
		}
	}

	// The caller's slice is copied, not aliased
	flat[0] = 999
	if nn.Weights()[0] == 999 {
		t.Error("SetWeights aliased the caller's slice")
	}
}

func TestSetWeightsArityMismatch(t *testing.T) {
	nn := newTestNetwork(t, Topology{Inputs: 4, Outputs: 2})
	before := nn.Weights()

	err := nn.SetWeights(make([]float64, nn.WeightCount()+1))
	if !errors.Is(err, ErrArity) {
		t.Fatalf("SetWeights error = %v, want ErrArity", err)
	}
	var ae *ArityError
	if !errors.As(err, &ae) || ae.Want != 10 || ae.Got != 11 {
		t.Errorf("ArityError = %+v, want Want=10 Got=11", ae)
	}

	after := nn.Weights()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("failed SetWeights modified the network")
		}
	}
}

func TestForwardBiasOnly(t *testing.T) {
	// With all-zero weights the only active term is bias*0, so every output is sigmoid(0).
	nn := newTestNetwork(t, Topology{Inputs: 6, HiddenLayers: 1, NeuronsPerHidden: 4, Outputs: 2})
	if err := nn.SetWeights(make([]float64, nn.WeightCount())); err != nil {
		t.Fatal(err)
	}

	out, err := nn.Forward([]float64{1, -2, 3, 0.5, 100, -7})
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d outputs, want 2", len(out))
	}
	for i, v := range out {
		if v != 0.5 {
			t.Errorf("output %d = %v, want 0.5", i, v)
		}
	}
}

func TestForwardBiasWiring(t *testing.T) {
	// Single layer, bias weight 1, all input weights 0: output = sigmoid(bias/response).
	topo := Topology{Inputs: 2, Outputs: 1}
	nn, err := New(topo, Params{ActivationResponse: 2, Bias: -1}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if err := nn.SetWeights([]float64{0, 0, 1}); err != nil {
		t.Fatal(err)
	}
	out, err := nn.Forward([]float64{5, 5})
	if err != nil {
		t.Fatal(err)
	}
	if want := Sigmoid(-0.5); math.Abs(out[0]-want) > 1e-12 {
		t.Errorf("output = %v, want %v", out[0], want)
	}
}

func TestForwardWeightedSum(t *testing.T) {
	topo := Topology{Inputs: 2, Outputs: 1}
	nn, err := New(topo, Params{ActivationResponse: 1, Bias: 1}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if err := nn.SetWeights([]float64{0.5, -0.25, 0.1}); err != nil {
		t.Fatal(err)
	}
	out, err := nn.Forward([]float64{2, 4})
	if err != nil {
		t.Fatal(err)
	}
	// 0.5*2 - 0.25*4 + 0.1*1 = 0.1
	if want := Sigmoid(0.1); math.Abs(out[0]-want) > 1e-12 {
		t.Errorf("output = %v, want %v", out[0], want)
	}
}

func TestForwardArityMismatch(t *testing.T) {
	nn := newTestNetwork(t, Topology{Inputs: 4, Outputs: 2})
	out, err := nn.Forward([]float64{1, 2, 3})
	if !errors.Is(err, ErrArity) {
		t.Errorf("Forward error = %v, want ErrArity", err)
	}
	if out != nil {
		t.Errorf("Forward returned %v on mismatch, want nil", out)
	}
}

func TestForwardDeterministic(t *testing.T) {
	nn := newTestNetwork(t, Topology{Inputs: 4, HiddenLayers: 1, NeuronsPerHidden: 6, Outputs: 2})
	inputs := []float64{0.1, -0.4, 0.7, 0.2}

	a, _ := nn.Forward(inputs)
	b, _ := nn.Forward(inputs)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("Forward is not deterministic")
		}
	}
	if inputs[0] != 0.1 || inputs[3] != 0.2 {
		t.Error("Forward modified its input slice")
	}
}

func TestForwardOutputRange(t *testing.T) {
	nn := newTestNetwork(t, Topology{Inputs: 4, HiddenLayers: 2, NeuronsPerHidden: 8, Outputs: 3})
	out, err := nn.Forward([]float64{10, -10, 3, 0})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v <= 0 || v >= 1 {
			t.Errorf("output %d = %v outside (0, 1)", i, v)
		}
	}
}

func TestNewInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bad := []Topology{
		{Inputs: 0, Outputs: 2},
		{Inputs: 4, Outputs: 0},
		{Inputs: 4, HiddenLayers: -1, Outputs: 2},
		{Inputs: 4, HiddenLayers: 1, NeuronsPerHidden: 0, Outputs: 2},
	}
	for _, topo := range bad {
		if _, err := New(topo, defaultParams, rng); !errors.Is(err, ErrTopology) {
			t.Errorf("New(%+v) error = %v, want ErrTopology", topo, err)
		}
	}
	if _, err := New(Topology{Inputs: 1, Outputs: 1}, Params{}, rng); !errors.Is(err, ErrTopology) {
		t.Errorf("zero activation response accepted: %v", err)
	}
}

func BenchmarkForward(b *testing.B) {
	nn, _ := New(Topology{Inputs: 6, HiddenLayers: 1, NeuronsPerHidden: 10, Outputs: 2}, defaultParams, rand.New(rand.NewSource(42)))
	inputs := []float64{0.5, 0.5, -0.5, 0.5, 0, 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nn.Forward(inputs)
	}
}

func TestTraceMatchesForward(t *testing.T) {
	nn := newTestNetwork(t, Topology{Inputs: 4, HiddenLayers: 2, NeuronsPerHidden: 3, Outputs: 2})
	in := []float64{0.5, -0.2, 1, 0}

	trace, err := nn.Trace(in)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	wantSizes := []int{4, 3, 3, 2}
	if len(trace) != len(wantSizes) {
		t.Fatalf("got %d layers of activations, want %d", len(trace), len(wantSizes))
	}
	for i, a := range trace {
		if len(a) != wantSizes[i] {
			t.Errorf("trace[%d] has %d values, want %d", i, len(a), wantSizes[i])
		}
	}

	out, err := nn.Forward(in)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	for i := range out {
		if out[i] != trace[len(trace)-1][i] {
			t.Errorf("output %d: Forward %v, Trace %v", i, out[i], trace[len(trace)-1][i])
		}
	}
}

func TestTraceArityMismatch(t *testing.T) {
	nn := newTestNetwork(t, Topology{Inputs: 4, Outputs: 2})
	if _, err := nn.Trace([]float64{1}); !errors.Is(err, ErrArity) {
		t.Fatalf("Trace err = %v, want ErrArity", err)
	}
}
