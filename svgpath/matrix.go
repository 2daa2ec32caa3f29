package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D represents the affine transform
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the transform leaving points unchanged.
var Identity = Matrix2D{A: 1, D: 1}

// Mult returns m * n : n is applied first.
func (m Matrix2D) Mult(n Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate returns m followed, in local coordinates, by a translation.
func (m Matrix2D) Translate(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, D: 1, E: x, F: y})
}

// Scale returns m followed, in local coordinates, by a scaling.
func (m Matrix2D) Scale(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{A: x, D: y})
}

// Rotate returns m followed, in local coordinates, by a rotation
// of theta radians.
func (m Matrix2D) Rotate(theta float64) Matrix2D {
	s, c := math.Sin(theta), math.Cos(theta)
	return m.Mult(Matrix2D{A: c, B: s, C: -s, D: c})
}

// SkewX returns m followed by a skew along the x axis.
func (m Matrix2D) SkewX(theta float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, C: math.Tan(theta), D: 1})
}

// SkewY returns m followed by a skew along the y axis.
func (m Matrix2D) SkewY(theta float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, B: math.Tan(theta), D: 1})
}

// Transform applies m to the point (x, y).
func (m Matrix2D) Transform(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// TransformFixed applies m to a fixed point.
func (m Matrix2D) TransformFixed(p fixed.Point26_6) fixed.Point26_6 {
	x, y := m.Transform(float64(p.X)/64, float64(p.Y)/64)
	return ToFixedP(x, y)
}

// ScaleFactor returns the mean linear scaling of m,
// used to scale lengths such as line widths and font sizes.
func (m Matrix2D) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}
