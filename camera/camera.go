// Package camera maps the toroidal arena onto the window, with pan and zoom.
package camera

import (
	"math"

	"github.com/pthm-cable/sweepers/vecmath"
)

// Camera controls the viewport into the arena.
// Positions are wrapped so the arena tiles seamlessly in every direction.
type Camera struct {
	// Center is the camera center in world coordinates
	Center vecmath.Vec2

	// Zoom in pixels per world unit
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// World dimensions (for toroidal wrapping)
	WorldW, WorldH float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera centered on the arena, zoomed so the whole arena fits.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
	}
	c.fit()
	c.Reset()
	return c
}

// fit sets the zoom limits: fully zoomed out shows the whole arena.
func (c *Camera) fit() {
	c.MinZoom = min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
	c.MaxZoom = 8 * c.MinZoom
}

// WorldToScreen converts a world position to screen coordinates, taking the
// shortest way round the torus from the camera center.
func (c *Camera) WorldToScreen(p vecmath.Vec2) vecmath.Vec2 {
	dx := vecmath.WrappedDelta(p.X, c.Center.X, c.WorldW)
	dy := vecmath.WrappedDelta(p.Y, c.Center.Y, c.WorldH)
	return vecmath.Vec2{X: c.ViewportW/2 + dx*c.Zoom, Y: c.ViewportH/2 + dy*c.Zoom}
}

// ScreenToWorld converts screen coordinates to a wrapped world position.
func (c *Camera) ScreenToWorld(s vecmath.Vec2) vecmath.Vec2 {
	dx := (s.X - c.ViewportW/2) / c.Zoom
	dy := (s.Y - c.ViewportH/2) / c.Zoom
	return vecmath.Vec2{
		X: vecmath.Wrap(c.Center.X+dx, c.WorldW),
		Y: vecmath.Wrap(c.Center.Y+dy, c.WorldH),
	}
}

// PolygonToScreen maps polygon points to the screen as one rigid piece: the
// centroid is wrapped, the other points keep their offset from it. This keeps
// outlines that straddle an arena edge from being torn across the screen.
func (c *Camera) PolygonToScreen(points []vecmath.Vec2) (screen []vecmath.Vec2, anchor vecmath.Vec2) {
	if len(points) == 0 {
		return nil, vecmath.Vec2{}
	}
	var centroid vecmath.Vec2
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Scale(1 / float64(len(points)))

	anchor = c.WorldToScreen(centroid)
	screen = make([]vecmath.Vec2, len(points))
	for i, p := range points {
		screen[i] = anchor.Add(p.Sub(centroid).Scale(c.Zoom))
	}
	return screen, anchor
}

// IsVisible returns true if a circle at p with the given world radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p vecmath.Vec2, radius float64) bool {
	dx := vecmath.WrappedDelta(p.X, c.Center.X, c.WorldW)
	dy := vecmath.WrappedDelta(p.Y, c.Center.Y, c.WorldH)

	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(dx) <= halfW && math.Abs(dy) <= halfH
}

// GhostOffsets returns the screen offsets at which an object near the edge of
// the view must be drawn again so it shows on both sides of the wrap.
// Returns up to 3 offsets (corners need both axes and the diagonal).
func (c *Camera) GhostOffsets(p vecmath.Vec2, radius float64) []vecmath.Vec2 {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	dx := vecmath.WrappedDelta(p.X, c.Center.X, c.WorldW)
	dy := vecmath.WrappedDelta(p.Y, c.Center.Y, c.WorldH)

	var gx, gy float64
	switch {
	case dx > halfW-radius:
		gx = -c.WorldW * c.Zoom
	case dx < -halfW+radius:
		gx = c.WorldW * c.Zoom
	}
	switch {
	case dy > halfH-radius:
		gy = -c.WorldH * c.Zoom
	case dy < -halfH+radius:
		gy = c.WorldH * c.Zoom
	}

	var ghosts []vecmath.Vec2
	if gx != 0 {
		ghosts = append(ghosts, vecmath.Vec2{X: gx})
	}
	if gy != 0 {
		ghosts = append(ghosts, vecmath.Vec2{Y: gy})
	}
	if gx != 0 && gy != 0 {
		ghosts = append(ghosts, vecmath.Vec2{X: gx, Y: gy})
	}
	return ghosts
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels, wrapping around
// the arena edges.
func (c *Camera) Pan(dx, dy float64) {
	c.Center.X = vecmath.Wrap(c.Center.X+dx/c.Zoom, c.WorldW)
	c.Center.Y = vecmath.Wrap(c.Center.Y+dy/c.Zoom, c.WorldH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = vecmath.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera on the arena and zooms out fully.
func (c *Camera) Reset() {
	c.Center = vecmath.Vec2{X: c.WorldW / 2, Y: c.WorldH / 2}
	c.Zoom = c.MinZoom
}
