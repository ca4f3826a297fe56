// Package inspector shows the state and network of a single selected sweeper.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sweepers/agent"
	"github.com/pthm-cable/sweepers/camera"
	"github.com/pthm-cable/sweepers/vecmath"
)

// Panel dimensions
const (
	PanelWidth    = 320
	PanelPadding  = 10
	HeaderHeight  = 30
	NetworkHeight = 200
)

// Extra pick tolerance around a sweeper's scale, in world units.
const pickSlack = 5

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorHighlight   = rl.Yellow
)

// Inspector tracks the selected sweeper by population index.
// The index survives epochs, so the panel follows whichever genome is loaded into that slot.
type Inspector struct {
	selected    int
	hasSelected bool
	panelX      int32
	panelY      int32
}

// New creates an inspector whose panel sits at the top-left corner (x, y).
func New(x, y int32) *Inspector {
	return &Inspector{panelX: x, panelY: y}
}

// Select marks sweeper i as selected.
func (ins *Inspector) Select(i int) {
	ins.selected = i
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected sweeper index.
func (ins *Inspector) Selected() (int, bool) {
	return ins.selected, ins.hasSelected
}

// Pick returns the index of the sweeper nearest p within radius, measuring
// across the wrapped edges of a width by height arena, or -1 if none is close enough.
func Pick(positions []vecmath.Vec2, p vecmath.Vec2, radius, width, height float64) int {
	best := -1
	bestDist := radius
	for i, pos := range positions {
		d := vecmath.Vec2{
			X: vecmath.WrappedDelta(pos.X, p.X, width),
			Y: vecmath.WrappedDelta(pos.Y, p.Y, height),
		}.Len()
		if d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Fittest returns the index of the sweeper with the highest fitness, the
// lowest index on ties, or -1 for an empty slice.
func Fittest(sweepers []*agent.Agent) int {
	best := -1
	for i, s := range sweepers {
		if best < 0 || s.Fitness() > sweepers[best].Fitness() {
			best = i
		}
	}
	return best
}

// HandleInput processes selection: left click picks a sweeper under the
// cursor, B picks the current fittest, Backspace deselects.
func (ins *Inspector) HandleInput(cam *camera.Camera, sweepers []*agent.Agent, scale float64) {
	if rl.IsKeyPressed(rl.KeyBackspace) {
		ins.Deselect()
		return
	}
	if rl.IsKeyPressed(rl.KeyB) {
		if i := Fittest(sweepers); i >= 0 {
			ins.Select(i)
		}
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	mx, my := int32(mouse.X), int32(mouse.Y)

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if mx >= closeX && mx <= closeX+20 && my >= closeY && my <= closeY+20 {
			ins.Deselect()
			return
		}
		// Clicks inside the panel don't select through it
		if mx >= ins.panelX && mx <= ins.panelX+PanelWidth &&
			my >= ins.panelY && my <= ins.panelY+panelHeight() {
			return
		}
	}

	world := cam.ScreenToWorld(vecmath.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)})
	positions := make([]vecmath.Vec2, len(sweepers))
	for i, s := range sweepers {
		positions[i] = s.Position()
	}
	if i := Pick(positions, world, scale+pickSlack, cam.WorldW, cam.WorldH); i >= 0 {
		ins.Select(i)
	}
}

// Draw renders the panel for the selected sweeper, if any.
func (ins *Inspector) Draw(sweepers []*agent.Agent) {
	if !ins.hasSelected {
		return
	}
	if ins.selected < 0 || ins.selected >= len(sweepers) {
		ins.Deselect()
		return
	}
	s := sweepers[ins.selected]

	height := panelHeight()
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	rl.DrawText(fmt.Sprintf("Sweeper %d", ins.selected), x, y, 14, ColorHeaderText)
	y += 22
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	pos := s.Position()
	y += DrawLabel(x, y, "Position", fmt.Sprintf("(%.0f, %.0f)", pos.X, pos.Y))
	y += DrawLabel(x, y, "Fitness", fmt.Sprintf("%.0f", s.Fitness()))
	y += DrawAngle(x, y, "Heading", s.Heading())
	left, right := s.Tracks()
	y += DrawBar(x, y, "Left", left, 1)
	y += DrawBar(x, y, "Right", right, 1)

	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	ins.drawSectionHeader(x, y, "NEURAL NETWORK")
	y += 20

	var trace [][]float64
	if in := s.Inputs(); in != nil {
		trace, _ = s.Brain().Trace(in)
	}
	DrawNetworkDiagram(x, y, PanelWidth-2*PanelPadding, NetworkHeight, s.Brain(), trace)
}

// DrawSelectionHighlight circles the selected sweeper in the arena view.
func (ins *Inspector) DrawSelectionHighlight(cam *camera.Camera, sweepers []*agent.Agent, scale float64) {
	if !ins.hasSelected || ins.selected < 0 || ins.selected >= len(sweepers) {
		return
	}
	p := cam.WorldToScreen(sweepers[ins.selected].Position())
	rl.DrawCircleLines(int32(p.X), int32(p.Y), float32(1.8*scale*cam.Zoom), ColorHighlight)
}

func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

func panelHeight() int32 {
	height := HeaderHeight + PanelPadding // header
	height += 22                          // title line
	height += 8                           // separator
	height += 20 * 2                      // position, fitness
	height += 44                          // heading
	height += 18 * 2                      // tracks
	height += 12                          // separator
	height += 20                          // network header
	height += NetworkHeight
	height += PanelPadding
	return int32(height)
}
