// Implements an abstract representation of
// svg paths, which can then be consumed
// by painting drivers
package svgpath

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Adder is implemented by types accumulating path commands,
// such as the drawers of a painting backend.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

// Operation groups the different SVG commands
type Operation interface {
	// addTo sends the operation to q, after applying the transform m
	addTo(q Adder, m Matrix2D)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (op MoveTo) addTo(q Adder, m Matrix2D) {
	q.Stop(false) // implicit close if currently in path.
	q.Start(m.TransformFixed(fixed.Point26_6(op)))
}

func (op LineTo) addTo(q Adder, m Matrix2D) {
	q.Line(m.TransformFixed(fixed.Point26_6(op)))
}

func (op QuadTo) addTo(q Adder, m Matrix2D) {
	q.QuadBezier(m.TransformFixed(op[0]), m.TransformFixed(op[1]))
}

func (op CubicTo) addTo(q Adder, m Matrix2D) {
	q.CubeBezier(m.TransformFixed(op[0]), m.TransformFixed(op[1]), m.TransformFixed(op[2]))
}

func (Close) addTo(q Adder, _ Matrix2D) { q.Stop(true) }

// Path describes a sequence of basic SVG operations, which should not be nil
// Higher-level shapes may be reduced to a path.
type Path []Operation

func fixedToF(x fixed.Int26_6) float32 { return float32(x) / 64 }

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", fixedToF(op.X), fixedToF(op.Y))
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", fixedToF(op.X), fixedToF(op.Y))
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", fixedToF(op[0].X), fixedToF(op[0].Y),
				fixedToF(op[1].X), fixedToF(op[1].Y))
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", fixedToF(op[0].X), fixedToF(op[0].Y),
				fixedToF(op[1].X), fixedToF(op[1].Y), fixedToF(op[2].X), fixedToF(op[2].Y))
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// AddTo sends the path to q, applying the transform m to every point.
func (p Path) AddTo(q Adder, m Matrix2D) {
	for _, op := range p {
		op.addTo(q, m)
	}
	q.Stop(false)
}

// Bounds returns the extent of the control points of the path,
// which contains the path itself.
func (p Path) Bounds() fixed.Rectangle26_6 {
	var (
		r     fixed.Rectangle26_6
		empty = true
	)
	add := func(pt fixed.Point26_6) {
		if empty {
			r = fixed.Rectangle26_6{Min: pt, Max: pt}
			empty = false
			return
		}
		r = r.Union(fixed.Rectangle26_6{Min: pt, Max: pt})
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			add(fixed.Point26_6(op))
		case LineTo:
			add(fixed.Point26_6(op))
		case QuadTo:
			add(op[0])
			add(op[1])
		case CubicTo:
			add(op[0])
			add(op[1])
			add(op[2])
		}
	}
	return r
}
