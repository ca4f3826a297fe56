package vecmath

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Affine is a 3x3 transform in row-vector convention: p' = [x y 1] * M.
// Operations compose in call order, so NewAffine().Scale(...).Rotate(...).Translate(...)
// scales first and translates last.
type Affine struct {
	m *mat.Dense
}

// NewAffine returns the identity transform.
func NewAffine() *Affine {
	return &Affine{m: identity()}
}

func identity() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

func (a *Affine) compose(next *mat.Dense) *Affine {
	var out mat.Dense
	out.Mul(a.m, next)
	a.m = &out
	return a
}

// Scale appends a non-uniform scale.
func (a *Affine) Scale(sx, sy float64) *Affine {
	return a.compose(mat.NewDense(3, 3, []float64{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}))
}

// Rotate appends a counter-clockwise rotation by rad.
func (a *Affine) Rotate(rad float64) *Affine {
	s, c := math.Sincos(rad)
	return a.compose(mat.NewDense(3, 3, []float64{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}))
}

// Translate appends a translation.
func (a *Affine) Translate(x, y float64) *Affine {
	return a.compose(mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		x, y, 1,
	}))
}

// At returns the matrix element at row i, column j.
func (a *Affine) At(i, j int) float64 {
	return a.m.At(i, j)
}

// Apply transforms points into a new slice. The input is left untouched.
func (a *Affine) Apply(points []Vec2) []Vec2 {
	if len(points) == 0 {
		return nil
	}
	data := make([]float64, 0, len(points)*3)
	for _, p := range points {
		data = append(data, p.X, p.Y, 1)
	}
	in := mat.NewDense(len(points), 3, data)

	var out mat.Dense
	out.Mul(in, a.m)

	res := make([]Vec2, len(points))
	for i := range res {
		res[i] = Vec2{X: out.At(i, 0), Y: out.At(i, 1)}
	}
	return res
}

// ApplyPoint transforms a single point.
func (a *Affine) ApplyPoint(p Vec2) Vec2 {
	return Vec2{
		X: a.m.At(0, 0)*p.X + a.m.At(1, 0)*p.Y + a.m.At(2, 0),
		Y: a.m.At(0, 1)*p.X + a.m.At(1, 1)*p.Y + a.m.At(2, 1),
	}
}
