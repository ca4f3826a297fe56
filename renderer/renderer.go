// Package renderer draws controller snapshots with raylib.
package renderer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sweepers/camera"
	"github.com/pthm-cable/sweepers/game"
	"github.com/pthm-cable/sweepers/inspector"
	"github.com/pthm-cable/sweepers/telemetry"
	"github.com/pthm-cable/sweepers/vecmath"
)

// Colors
var (
	BackgroundColor = rl.Color{R: 20, G: 24, B: 28, A: 255}
	SweeperColor    = rl.White
	EliteColor      = rl.Red
	RewardColor     = rl.Green
	HazardColor     = rl.Gray
	BestLineColor   = rl.Red
	AvgLineColor    = rl.SkyBlue
)

// Speed slider bounds, in ticks per frame.
const (
	MinSpeed = 1
	MaxSpeed = 50
)

// FastStepsPerFrame is the tick budget per frame while drawing is off.
const FastStepsPerFrame = 1000

const panelWidth = 170

// Pan speed in screen pixels per frame.
const panStep = 8

// Renderer owns the window-side state: camera, inspector, pause and speed.
type Renderer struct {
	width, height int32
	cam           *camera.Camera
	ins           *inspector.Inspector
	paused        bool
	speed         float32
}

// New creates a renderer for a window of the given size showing an arena of
// arenaWidth by arenaHeight.
func New(width, height int32, arenaWidth, arenaHeight float64) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
		cam:    camera.New(float64(width), float64(height), arenaWidth, arenaHeight),
		ins:    inspector.New(10, 90),
		speed:  MinSpeed,
	}
}

// StepsPerFrame returns how many controller steps to run this frame.
func (r *Renderer) StepsPerFrame(fastRender bool) int {
	switch {
	case r.paused:
		return 0
	case fastRender:
		return FastStepsPerFrame
	}
	return int(r.speed)
}

// HandleInput applies keyboard and mouse controls: F toggles fast render,
// P or space pauses, arrows or right-drag pan, the wheel zooms, R resets the view.
// Left click or B selects a sweeper for inspection while the arena is shown.
func (r *Renderer) HandleInput(c *game.Controller) {
	if !c.FastRender() {
		r.ins.HandleInput(r.cam, c.Sweepers(), c.Config().Sweeper.Scale)
	}

	if rl.IsKeyPressed(rl.KeyF) {
		c.ToggleFastRender()
	}
	if rl.IsKeyPressed(rl.KeyP) || rl.IsKeyPressed(rl.KeySpace) {
		r.paused = !r.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		r.cam.Reset()
	}

	var dx, dy float64
	if rl.IsKeyDown(rl.KeyLeft) {
		dx -= panStep
	}
	if rl.IsKeyDown(rl.KeyRight) {
		dx += panStep
	}
	if rl.IsKeyDown(rl.KeyUp) {
		dy -= panStep
	}
	if rl.IsKeyDown(rl.KeyDown) {
		dy += panStep
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		dx -= float64(d.X)
		dy -= float64(d.Y)
	}
	if dx != 0 || dy != 0 {
		r.cam.Pan(dx, dy)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		r.cam.ZoomBy(1 + 0.1*float64(wheel))
	}
}

// Draw renders one frame. Call between rl.BeginDrawing and rl.EndDrawing.
func (r *Renderer) Draw(c *game.Controller, snap game.Snapshot) {
	rl.ClearBackground(BackgroundColor)

	if snap.FastRender {
		r.drawFitnessGraph(snap.History)
	} else {
		for _, p := range snap.Rewards {
			r.drawPolygon(p, RewardColor)
		}
		for _, p := range snap.Hazards {
			r.drawPolygon(p, HazardColor)
		}
		for _, s := range snap.Sweepers {
			col := SweeperColor
			if s.Elite {
				col = EliteColor
			}
			r.drawPolygon(s.Polygon, col)
		}
		r.ins.DrawSelectionHighlight(r.cam, c.Sweepers(), c.Config().Sweeper.Scale)
	}

	r.drawHUD(snap)
	if !snap.FastRender {
		r.ins.Draw(c.Sweepers())
	}
	r.drawControls(c, snap)
}

// drawPolygon draws the edges of p, repeated across the wrap seams when the
// outline sits near the edge of the view.
func (r *Renderer) drawPolygon(p vecmath.Polygon, col rl.Color) {
	screen, anchor := r.cam.PolygonToScreen(p.Points)
	if screen == nil {
		return
	}
	radius := 0.0
	for _, s := range screen {
		radius = max(radius, s.Dist(anchor))
	}
	world := r.cam.ScreenToWorld(anchor)
	ghosts := r.cam.GhostOffsets(world, radius/r.cam.Zoom)
	if len(ghosts) == 0 && !r.cam.IsVisible(world, radius/r.cam.Zoom) {
		return
	}

	offsets := append([]vecmath.Vec2{{}}, ghosts...)
	for _, off := range offsets {
		for _, e := range p.Edges {
			rl.DrawLineV(toVector2(screen[e[0]].Add(off)), toVector2(screen[e[1]].Add(off)), col)
		}
	}
}

func toVector2(v vecmath.Vec2) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

func (r *Renderer) drawHUD(snap game.Snapshot) {
	rl.DrawText(fmt.Sprintf("Generation: %d", snap.Generation), 10, 10, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Tick: %d", snap.Tick), 10, 30, 14, rl.Gray)
	if snap.Generation > 0 {
		rl.DrawText(fmt.Sprintf("Best: %.0f  Average: %.2f", snap.Stats.Best, snap.Stats.Average), 10, 48, 14, rl.Gray)
	}

	if status := statusText(snap, r.paused); status != "" {
		rl.DrawText(status, 10, 66, 16, rl.Yellow)
	}

	rl.DrawText("[F] fast render  [P] pause  [arrows] pan  [wheel] zoom  [R] reset view  [click/B] inspect", 10, r.height-22, 14, rl.Gray)
}

// statusText returns the HUD status line; a halted run outranks pause.
func statusText(snap game.Snapshot, paused bool) string {
	switch {
	case snap.Halted:
		return "HALTED"
	case paused:
		return "PAUSED"
	case snap.FastRender:
		return "FAST RENDER"
	}
	return ""
}

// drawControls draws the raygui side panel and applies its actions.
func (r *Renderer) drawControls(c *game.Controller, snap game.Snapshot) {
	x := float32(r.width - panelWidth)
	y := float32(10)

	pauseText := "Pause"
	if r.paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 150, Height: 26}, pauseText) {
		r.paused = !r.paused
	}
	y += 34

	fastText := "Fast render"
	if snap.FastRender {
		fastText = "Show arena"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 150, Height: 26}, fastText) {
		c.ToggleFastRender()
	}
	y += 40

	rl.DrawText("Ticks per frame", int32(x), int32(y), 12, rl.Gray)
	y += 16
	r.speed = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: 110, Height: 16},
		"", fmt.Sprintf("%d", int(r.speed)),
		r.speed, MinSpeed, MaxSpeed,
	)
}

// drawFitnessGraph plots best and average fitness per generation.
func (r *Renderer) drawFitnessGraph(points []telemetry.Point) {
	left := float32(40)
	bottom := float32(r.height - 50)
	w := float32(r.width-panelWidth) - left - 20
	h := bottom - 100

	rl.DrawLineV(rl.Vector2{X: left, Y: bottom}, rl.Vector2{X: left + w, Y: bottom}, rl.Gray)
	rl.DrawLineV(rl.Vector2{X: left, Y: bottom}, rl.Vector2{X: left, Y: bottom - h}, rl.Gray)

	if len(points) < 2 {
		rl.DrawText("Waiting for generations...", int32(left)+10, int32(bottom-h/2), 16, rl.Gray)
		return
	}

	maxBest := 1.0
	for _, p := range points {
		maxBest = max(maxBest, p.Best)
	}
	step := w / float32(len(points)-1)
	at := func(i int, v float64) rl.Vector2 {
		return rl.Vector2{X: left + float32(i)*step, Y: bottom - float32(v/maxBest)*h}
	}
	for i := 1; i < len(points); i++ {
		rl.DrawLineV(at(i-1, points[i-1].Best), at(i, points[i].Best), BestLineColor)
		rl.DrawLineV(at(i-1, points[i-1].Average), at(i, points[i].Average), AvgLineColor)
	}

	rl.DrawText(fmt.Sprintf("%.0f", maxBest), 4, int32(bottom-h), 12, rl.Gray)
	rl.DrawText("Best", int32(left)+10, int32(bottom-h)-20, 14, BestLineColor)
	rl.DrawText("Average", int32(left)+60, int32(bottom-h)-20, 14, AvgLineColor)
}
