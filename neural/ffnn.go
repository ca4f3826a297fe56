// Package neural provides the fixed-topology feedforward network that steers
// each sweeper.
package neural

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// ErrArity is returned when a weight or input vector does not match the topology.
var ErrArity = errors.New("neural: arity mismatch")

// ErrTopology is returned for topologies that cannot build a network.
var ErrTopology = errors.New("neural: invalid topology")

// ArityError describes a length mismatch against the network's topology.
type ArityError struct {
	Op   string // "forward" or "set weights"
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("neural: %s: want %d values, got %d", e.Op, e.Want, e.Got)
}

func (e *ArityError) Unwrap() error { return ErrArity }

// Topology fixes the shape of a network.
type Topology struct {
	Inputs           int
	HiddenLayers     int
	NeuronsPerHidden int
	Outputs          int
}

// Validate reports topologies that cannot build a network.
func (t Topology) Validate() error {
	switch {
	case t.Inputs <= 0:
		return fmt.Errorf("%w: inputs must be positive, got %d", ErrTopology, t.Inputs)
	case t.Outputs <= 0:
		return fmt.Errorf("%w: outputs must be positive, got %d", ErrTopology, t.Outputs)
	case t.HiddenLayers < 0:
		return fmt.Errorf("%w: hidden layers must not be negative, got %d", ErrTopology, t.HiddenLayers)
	case t.HiddenLayers > 0 && t.NeuronsPerHidden <= 0:
		return fmt.Errorf("%w: neurons per hidden layer must be positive, got %d", ErrTopology, t.NeuronsPerHidden)
	}
	return nil
}

// layerShapes returns (inputs per neuron, neuron count) for each layer in order.
func (t Topology) layerShapes() [][2]int {
	if t.HiddenLayers == 0 {
		return [][2]int{{t.Inputs, t.Outputs}}
	}
	shapes := make([][2]int, 0, t.HiddenLayers+1)
	shapes = append(shapes, [2]int{t.Inputs, t.NeuronsPerHidden})
	for i := 1; i < t.HiddenLayers; i++ {
		shapes = append(shapes, [2]int{t.NeuronsPerHidden, t.NeuronsPerHidden})
	}
	shapes = append(shapes, [2]int{t.NeuronsPerHidden, t.Outputs})
	return shapes
}

// WeightCount returns the number of weights a network of this topology holds,
// bias weights included.
func (t Topology) WeightCount() int {
	n := 0
	for _, s := range t.layerShapes() {
		n += (s[0] + 1) * s[1]
	}
	return n
}

// Params are the activation constants shared by every neuron.
type Params struct {
	ActivationResponse float64 // divides the weighted sum before the sigmoid
	Bias               float64 // constant input multiplied by each neuron's last weight
}

// Neuron holds one weight per input plus a trailing bias weight.
type Neuron struct {
	Weights []float64
}

// Layer is an ordered set of neurons sharing the same inputs.
type Layer struct {
	Neurons []Neuron
}

// Network is a feedforward network with fixed topology.
type Network struct {
	topo   Topology
	params Params
	layers []Layer
}

// New builds a network with every weight drawn from U(0,1)-U(0,1).
func New(topo Topology, params Params, rng *rand.Rand) (*Network, error) {
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	if params.ActivationResponse == 0 {
		return nil, fmt.Errorf("%w: activation response must be non-zero", ErrTopology)
	}

	nn := &Network{topo: topo, params: params}
	for _, s := range topo.layerShapes() {
		layer := Layer{Neurons: make([]Neuron, s[1])}
		for i := range layer.Neurons {
			w := make([]float64, s[0]+1)
			for j := range w {
				w[j] = rng.Float64() - rng.Float64()
			}
			layer.Neurons[i].Weights = w
		}
		nn.layers = append(nn.layers, layer)
	}
	return nn, nil
}

// Topology returns the network's shape.
func (nn *Network) Topology() Topology { return nn.topo }

// Layers exposes the layers for inspection. Callers must not modify them.
func (nn *Network) Layers() []Layer { return nn.layers }

// WeightCount returns the total number of weights, bias weights included.
func (nn *Network) WeightCount() int {
	n := 0
	for _, l := range nn.layers {
		for _, neuron := range l.Neurons {
			n += len(neuron.Weights)
		}
	}
	return n
}

// Weights returns a flat copy of every weight in layer, neuron, weight order.
func (nn *Network) Weights() []float64 {
	out := make([]float64, 0, nn.WeightCount())
	for _, l := range nn.layers {
		for _, neuron := range l.Neurons {
			out = append(out, neuron.Weights...)
		}
	}
	return out
}

// SetWeights replaces every weight from a flat vector in layer, neuron, weight order.
// The vector is copied.
func (nn *Network) SetWeights(flat []float64) error {
	if want := nn.WeightCount(); len(flat) != want {
		return &ArityError{Op: "set weights", Want: want, Got: len(flat)}
	}
	i := 0
	for _, l := range nn.layers {
		for _, neuron := range l.Neurons {
			i += copy(neuron.Weights, flat[i:])
		}
	}
	return nil
}

// Forward runs inputs through every layer and returns the output layer's activations.
// Each layer hands a freshly allocated slice to the next.
func (nn *Network) Forward(inputs []float64) ([]float64, error) {
	trace, err := nn.Trace(inputs)
	if err != nil {
		return nil, err
	}
	return trace[len(trace)-1], nil
}

// Trace runs inputs through the network and returns the activations of every
// layer, starting with the inputs themselves.
func (nn *Network) Trace(inputs []float64) ([][]float64, error) {
	if len(inputs) != nn.topo.Inputs {
		return nil, &ArityError{Op: "forward", Want: nn.topo.Inputs, Got: len(inputs)}
	}

	trace := make([][]float64, 0, len(nn.layers)+1)
	trace = append(trace, inputs)
	current := inputs
	for _, l := range nn.layers {
		next := make([]float64, len(l.Neurons))
		for i, neuron := range l.Neurons {
			n := len(neuron.Weights)
			net := floats.Dot(neuron.Weights[:n-1], current) + neuron.Weights[n-1]*nn.params.Bias
			next[i] = Sigmoid(net / nn.params.ActivationResponse)
		}
		trace = append(trace, next)
		current = next
	}
	return trace, nil
}

// Sigmoid is the logistic function 1/(1+e^-z).
func Sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
