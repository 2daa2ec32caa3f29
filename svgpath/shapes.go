package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// when approximating an ellipse.
const maxDx float64 = math.Pi / 8

// ToFixedP converts two floats to a fixed point.
func ToFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(math.Round(x * 64))
	p.Y = fixed.Int26_6(math.Round(y * 64))
	return
}

// AddRect adds a closed axis aligned rectangle.
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	p.Start(ToFixedP(minX, minY))
	p.Line(ToFixedP(maxX, minY))
	p.Line(ToFixedP(maxX, maxY))
	p.Line(ToFixedP(minX, maxY))
	p.Stop(true)
}

// AddLine adds an open segment from (x1, y1) to (x2, y2).
func (p *Path) AddLine(x1, y1, x2, y2 float64) {
	p.Start(ToFixedP(x1, y1))
	p.Line(ToFixedP(x2, y2))
}

// AddEllipse adds a closed axis aligned ellipse centered on (cx, cy),
// approximated by cubic bezier curves.
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	p.Start(ToFixedP(cx+rx, cy))
	p.addEllipseArc(cx, cy, rx, ry, 0, 2*math.Pi)
	p.Stop(true)
}

// addEllipseArc adds the arc of the ellipse between the parameters
// etaStart and etaEnd, starting from the current point.
func (p *Path) addEllipseArc(cx, cy, a, b, etaStart, etaEnd float64) {
	deltaEta := etaEnd - etaStart
	// Round up to determine number of cubic splines to approximate bezier curve
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs) // span of each segment
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := ellipsePointAt(a, b, etaStart, cx, cy)
	ldx, ldy := ellipsePrime(a, b, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		px, py := ellipsePointAt(a, b, eta, cx, cy)
		dx, dy := ellipsePrime(a, b, eta)
		p.CubeBezier(ToFixedP(lx+alpha*ldx, ly+alpha*ldy),
			ToFixedP(px-alpha*dx, py-alpha*dy), ToFixedP(px, py))
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// ellipsePrime gives tangent vectors for parameterized ellipse; a, b, radii, eta parameter
func ellipsePrime(a, b, eta float64) (px, py float64) {
	return -a * math.Sin(eta), b * math.Cos(eta)
}

// ellipsePointAt gives points for parameterized ellipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, eta, cx, cy float64) (px, py float64) {
	return cx + a*math.Cos(eta), cy + b*math.Sin(eta)
}
