package inspector

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sweepers/neural"
	"github.com/pthm-cable/sweepers/vecmath"
)

// Network colors for activation visualization.
var (
	ColorNodeInactive = rl.Color{R: 60, G: 60, B: 60, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 120, G: 120, B: 120, A: 255}
)

// Edges with smaller absolute weight are not drawn.
const minEdgeWeight = 0.1

// InputLabels names the sensor inputs for a network of n inputs.
func InputLabels(n int) []string {
	switch n {
	case 4:
		return []string{"Reward X", "Reward Y", "Head X", "Head Y"}
	case 6:
		return []string{"Reward X", "Reward Y", "Hazard X", "Hazard Y", "Head X", "Head Y"}
	}
	return nil
}

// OutputLabels names the network outputs that drive the tracks.
var OutputLabels = []string{"Left", "Right"}

// LayerSizes returns the node count of every column: inputs, each hidden layer, outputs.
func LayerSizes(topo neural.Topology) []int {
	sizes := []int{topo.Inputs}
	for range topo.HiddenLayers {
		sizes = append(sizes, topo.NeuronsPerHidden)
	}
	return append(sizes, topo.Outputs)
}

// Layout places the nodes of each column evenly inside the rectangle,
// columns left to right and nodes top to bottom, each column centred vertically.
func Layout(x, y, width, height float64, sizes []int) [][]vecmath.Vec2 {
	cols := len(sizes)
	if cols == 0 {
		return nil
	}
	colWidth := width / float64(cols)
	usable := height - 20

	maxNodes := 0
	for _, n := range sizes {
		maxNodes = max(maxNodes, n)
	}
	spacing := usable / float64(max(maxNodes, 1))

	nodes := make([][]vecmath.Vec2, cols)
	for c, n := range sizes {
		cx := x + colWidth*float64(c) + colWidth/2
		top := y + 10 + (usable-float64(n)*spacing)/2 + spacing/2
		nodes[c] = make([]vecmath.Vec2, n)
		for i := range n {
			nodes[c][i] = vecmath.Vec2{X: cx, Y: top + float64(i)*spacing}
		}
	}
	return nodes
}

// DrawNetworkDiagram renders the network with edge weights and, when trace is
// non-nil, node activations as returned by Network.Trace.
func DrawNetworkDiagram(x, y, width, height int32, nn *neural.Network, trace [][]float64) {
	if nn == nil {
		rl.DrawText("No network data", x+10, y+10, 14, ColorLabelDim)
		return
	}

	topo := nn.Topology()
	// leave room for labels on both sides
	const labelRoom = 56
	nodes := Layout(float64(x+labelRoom), float64(y), float64(width-2*labelRoom), float64(height), LayerSizes(topo))
	nodeRadius := float32(5)

	for l, layer := range nn.Layers() {
		for j, neuron := range layer.Neurons {
			for i, w := range neuron.Weights[:len(neuron.Weights)-1] {
				if math.Abs(w) < minEdgeWeight {
					continue
				}
				drawEdge(nodes[l][i], nodes[l+1][j], w)
			}
		}
	}

	for c, col := range nodes {
		for i, p := range col {
			activation := math.NaN()
			if c < len(trace) && i < len(trace[c]) {
				activation = trace[c][i]
			}
			drawNode(p, nodeRadius, activation)
		}
	}

	if labels := InputLabels(topo.Inputs); labels != nil {
		for i, p := range nodes[0] {
			w := rl.MeasureText(labels[i], 10)
			rl.DrawText(labels[i], int32(p.X)-int32(nodeRadius)-w-4, int32(p.Y)-5, 10, ColorLabelDim)
		}
	}
	last := nodes[len(nodes)-1]
	for i, p := range last {
		if i < len(OutputLabels) {
			rl.DrawText(OutputLabels[i], int32(p.X)+int32(nodeRadius)+6, int32(p.Y)-5, 10, ColorLabelDim)
		}
	}
}

func drawNode(p vecmath.Vec2, radius float32, activation float64) {
	pos := rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
	rl.DrawCircleV(pos, radius, ActivationColor(activation))
	rl.DrawCircleLinesV(pos, radius, rl.Color{R: 100, G: 100, B: 100, A: 255})
}

func drawEdge(from, to vecmath.Vec2, weight float64) {
	w := math.Abs(weight)
	thickness := float32(vecmath.Clamp(w*1.5, 0.5, 3))

	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	color.A = uint8(vecmath.Clamp(40+w*40, 40, 150))

	rl.DrawLineEx(
		rl.Vector2{X: float32(from.X), Y: float32(from.Y)},
		rl.Vector2{X: float32(to.X), Y: float32(to.Y)},
		thickness, color,
	)
}

// ActivationColor maps an activation to a node color: blue for negative,
// gray at zero, red for positive, saturating at magnitude 1. NaN means no data.
func ActivationColor(activation float64) rl.Color {
	if math.IsNaN(activation) {
		return ColorNodeInactive
	}
	t := float32(vecmath.Clamp(math.Abs(activation), 0, 1))
	if activation >= 0 {
		return rl.Color{R: uint8(60 + t*195), G: uint8(60 - t*30), B: uint8(60 - t*30), A: 255}
	}
	return rl.Color{R: uint8(60 - t*30), G: uint8(60 - t*30), B: uint8(60 + t*195), A: 255}
}
