// Package vecmath provides the 2D vector and affine transform arithmetic used to
// place sweeper and mine geometry in world space.
package vecmath

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Normalize returns v scaled to unit length.
// The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// HeadingFromAngle returns the unit facing vector for a rotation in radians.
// Rotation 0 faces +Y.
func HeadingFromAngle(rot float64) Vec2 {
	return Vec2{-math.Sin(rot), math.Cos(rot)}
}

// Wrap maps x into [0, bound) toroidally.
// Any displacement wraps, not only a single overshoot.
func Wrap(x, bound float64) float64 {
	x = math.Mod(x, bound)
	if x < 0 {
		x += bound
	}
	// x+bound can round up to bound for tiny negative x
	if x >= bound {
		x = 0
	}
	return x
}

// WrappedDelta returns the shortest signed displacement from 'from' to 'to'
// on a ring of the given size.
func WrappedDelta(to, from, size float64) float64 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
