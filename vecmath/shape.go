package vecmath

import "fmt"

// Shape is a local-space outline: vertices plus the index pairs to connect.
type Shape struct {
	Points []Vec2
	Edges  [][2]int
}

// Polygon is a Shape placed in world space.
type Polygon struct {
	Points []Vec2
	Edges  [][2]int
}

// Validate reports edges that reference missing vertices.
func (s Shape) Validate() error {
	for _, e := range s.Edges {
		for _, idx := range e {
			if idx < 0 || idx >= len(s.Points) {
				return fmt.Errorf("edge %v references point %d of %d", e, idx, len(s.Points))
			}
		}
	}
	return nil
}

// Transform returns the shape placed by a.
func (s Shape) Transform(a *Affine) Polygon {
	return Polygon{
		Points: a.Apply(s.Points),
		Edges:  s.Edges,
	}
}

// Segments calls fn for every edge of the polygon.
func (p Polygon) Segments(fn func(from, to Vec2)) {
	for _, e := range p.Edges {
		fn(p.Points[e[0]], p.Points[e[1]])
	}
}

// SweeperShape is the sweeper outline: two tracks, a rear bar and a nose pointing +Y.
var SweeperShape = Shape{
	Points: []Vec2{
		{-1, -1}, {-1, 1}, {-0.5, 1}, {-0.5, -1}, // left track
		{0.5, -1}, {1, -1}, {1, 1}, {0.5, 1}, // right track
		{-0.5, -0.5}, {0.5, -0.5}, // rear
		{-0.5, 0.5}, {-0.25, 0.5}, {-0.25, 1.75}, {0.25, 1.75}, {0.25, 0.5}, {0.5, 0.5}, // front
	},
	Edges: [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{8, 9},
		{10, 11}, {11, 12}, {12, 13}, {13, 14}, {14, 15}, {15, 10},
	},
}

// MineShape is a unit square, used for mines and hazards.
var MineShape = Shape{
	Points: []Vec2{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}},
	Edges:  [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
}
