package inspector

import (
	"math"
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sweepers/agent"
	"github.com/pthm-cable/sweepers/arena"
	"github.com/pthm-cable/sweepers/neural"
	"github.com/pthm-cable/sweepers/vecmath"
)

func TestPick(t *testing.T) {
	positions := []vecmath.Vec2{{X: 100, Y: 100}, {X: 105, Y: 100}, {X: 398, Y: 200}}
	tests := []struct {
		name string
		p    vecmath.Vec2
		want int
	}{
		{"exact hit", vecmath.Vec2{X: 100, Y: 100}, 0},
		{"nearest of two", vecmath.Vec2{X: 104, Y: 100}, 1},
		{"across the seam", vecmath.Vec2{X: 2, Y: 200}, 2},
		{"miss", vecmath.Vec2{X: 250, Y: 250}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pick(positions, tt.p, 10, 400, 400); got != tt.want {
				t.Errorf("Pick(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestFittest(t *testing.T) {
	if got := Fittest(nil); got != -1 {
		t.Errorf("Fittest(nil) = %d, want -1", got)
	}

	rng := rand.New(rand.NewSource(42))
	params := agent.Params{
		MaxTurnRate:    0.3,
		MaxSpeed:       2,
		Scale:          5,
		RewardRadius:   2,
		HazardRadius:   2,
		CollisionSlack: 5,
		Outputs:        2,
	}
	topo := neural.Topology{Inputs: 4, Outputs: 2}
	var sweepers []*agent.Agent
	for range 3 {
		nn, err := neural.New(topo, neural.Params{ActivationResponse: 1, Bias: -1}, rng)
		if err != nil {
			t.Fatalf("neural.New: %v", err)
		}
		if err := nn.SetWeights(make([]float64, nn.WeightCount())); err != nil {
			t.Fatalf("SetWeights: %v", err)
		}
		sweepers = append(sweepers, agent.New(nn, params, 400, 400, rng))
	}
	if got := Fittest(sweepers); got != 0 {
		t.Errorf("Fittest with equal fitness = %d, want 0", got)
	}

	ar := arena.New(400, 400, 1, 0, rng)
	ar.SetReward(0, vecmath.Vec2{X: 100, Y: 100})
	sweepers[2].SetPose(vecmath.Vec2{X: 100, Y: 100}, 0)
	if _, err := sweepers[2].Update(ar); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if sweepers[2].Fitness() != 1 {
		t.Fatalf("fitness = %v, want 1", sweepers[2].Fitness())
	}
	if got := Fittest(sweepers); got != 2 {
		t.Errorf("Fittest = %d, want 2", got)
	}
}

func TestSelection(t *testing.T) {
	ins := New(0, 0)
	if _, ok := ins.Selected(); ok {
		t.Fatal("new inspector has a selection")
	}
	ins.Select(3)
	if i, ok := ins.Selected(); !ok || i != 3 {
		t.Errorf("Selected() = %d, %v, want 3, true", i, ok)
	}
	ins.Deselect()
	if _, ok := ins.Selected(); ok {
		t.Error("selection survived Deselect")
	}
}

func TestLayerSizes(t *testing.T) {
	got := LayerSizes(neural.Topology{Inputs: 6, HiddenLayers: 2, NeuronsPerHidden: 5, Outputs: 2})
	want := []int{6, 5, 5, 2}
	if len(got) != len(want) {
		t.Fatalf("LayerSizes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LayerSizes = %v, want %v", got, want)
			break
		}
	}
}

func TestLayout(t *testing.T) {
	nodes := Layout(0, 0, 200, 100, []int{4, 2})
	if len(nodes) != 2 || len(nodes[0]) != 4 || len(nodes[1]) != 2 {
		t.Fatalf("unexpected layout shape: %v", nodes)
	}
	// 80 usable pixels over 4 rows: spacing 20, columns centred in 100px halves
	want := [][]vecmath.Vec2{
		{{X: 50, Y: 20}, {X: 50, Y: 40}, {X: 50, Y: 60}, {X: 50, Y: 80}},
		{{X: 150, Y: 40}, {X: 150, Y: 60}},
	}
	for c := range want {
		for i := range want[c] {
			if nodes[c][i].Dist(want[c][i]) > 1e-9 {
				t.Errorf("node[%d][%d] = %v, want %v", c, i, nodes[c][i], want[c][i])
			}
		}
	}
	if Layout(0, 0, 100, 100, nil) != nil {
		t.Error("empty layout should be nil")
	}
}

func TestInputLabels(t *testing.T) {
	if n := len(InputLabels(4)); n != 4 {
		t.Errorf("InputLabels(4) has %d labels", n)
	}
	if n := len(InputLabels(6)); n != 6 {
		t.Errorf("InputLabels(6) has %d labels", n)
	}
	if InputLabels(5) != nil {
		t.Error("InputLabels(5) should be nil")
	}
}

func TestActivationColor(t *testing.T) {
	tests := []struct {
		name string
		a    float64
		want rl.Color
	}{
		{"no data", math.NaN(), ColorNodeInactive},
		{"zero", 0, rl.Color{R: 60, G: 60, B: 60, A: 255}},
		{"full positive", 1, rl.Color{R: 255, G: 30, B: 30, A: 255}},
		{"saturates", 3, rl.Color{R: 255, G: 30, B: 30, A: 255}},
		{"full negative", -1, rl.Color{R: 30, G: 30, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActivationColor(tt.a); got != tt.want {
				t.Errorf("ActivationColor(%v) = %+v, want %+v", tt.a, got, tt.want)
			}
		})
	}
}
