package svgdraw

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/benoitkugler/salesplot/internal/logging"
	"github.com/benoitkugler/salesplot/svgdoc"
	"github.com/benoitkugler/salesplot/svgpath"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported SVG features
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for each unsupported SVG feature
	WarnErrorMode
	// StrictErrorMode returns an error when an unsupported SVG feature is met
	StrictErrorMode
)

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// SvgPath binds a style to a path
type SvgPath struct {
	Path  svgpath.Path
	Style PathStyle
}

// TextRun is a single line of text, with its resolved style.
type TextRun struct {
	X, Y    float64 // anchor point, on the baseline
	Text    string
	Size    float64 // font size
	Family  string
	Anchor  TextAnchor
	Color   color.Color
	Opacity float64

	transform svgpath.Matrix2D
}

// item is either a path or a text run, kept in document order.
type item interface {
	drawTransformed(d Driver, opacity float64, t svgpath.Matrix2D)
}

// Drawing is the paintable representation of a surface.
// See the `Draw` method to use it.
type Drawing struct {
	ViewBox   Bounds
	Titles    []string // Title elements collect here
	Transform svgpath.Matrix2D

	items []item
}

// Width returns the width of the view box.
func (dr *Drawing) Width() float64 { return dr.ViewBox.W }

// Height returns the height of the view box.
func (dr *Drawing) Height() float64 { return dr.ViewBox.H }

// Paths returns the compiled paths, in document order.
func (dr *Drawing) Paths() []SvgPath {
	var out []SvgPath
	for _, it := range dr.items {
		if p, ok := it.(*SvgPath); ok {
			out = append(out, *p)
		}
	}
	return out
}

// Texts returns the compiled text runs, in document order.
func (dr *Drawing) Texts() []TextRun {
	var out []TextRun
	for _, it := range dr.items {
		if r, ok := it.(TextRun); ok {
			out = append(out, r)
		}
	}
	return out
}

// SetTarget sets the Transform matrix to draw within the bounds of the rectangle arguments
func (dr *Drawing) SetTarget(x, y, w, h float64) {
	scaleW := w / dr.ViewBox.W
	scaleH := h / dr.ViewBox.H
	dr.Transform = svgpath.Identity.Translate(x, y).Scale(scaleW, scaleH).Translate(-dr.ViewBox.X, -dr.ViewBox.Y)
}

// cursor is used while compiling a surface
type cursor struct {
	drawing    *Drawing
	styleStack []PathStyle
	path       svgpath.Path
	errorMode  ErrorMode
}

type svgFunc func(c *cursor, e *svgdoc.Element) error

var drawFuncs = map[string]svgFunc{
	"svg":      svgF,
	"g":        gF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
	"text":     textF,
	"title":    titleF,
	"desc":     gF,
}

// Compile walks the surface and returns its paintable form.
// errMode determines if the drawing ignores, errors out, or logs a warning
// if it does not handle an element found in the surface.
func Compile(s *svgdoc.Surface, errMode ErrorMode) (*Drawing, error) {
	if s == nil {
		return nil, errors.New("svgdraw: nil surface")
	}
	dr := &Drawing{Transform: svgpath.Identity}
	c := &cursor{drawing: dr, styleStack: []PathStyle{DefaultStyle}, errorMode: errMode}
	if err := c.compile(s.Root()); err != nil {
		return nil, err
	}
	if dr.ViewBox.W == 0 || dr.ViewBox.H == 0 {
		w, h := s.Size()
		dr.ViewBox.W, dr.ViewBox.H = w, h
	}
	return dr, nil
}

func (c *cursor) compile(e *svgdoc.Element) error {
	df, ok := drawFuncs[e.Name]
	if !ok {
		errStr := "cannot process svg element " + e.Name
		switch c.errorMode {
		case StrictErrorMode:
			return errors.New("svgdraw: " + errStr)
		case WarnErrorMode:
			logging.Logger().Warn(errStr)
		}
		return nil
	}
	if err := c.pushStyle(e.Attrs); err != nil {
		return fmt.Errorf("svgdraw: <%s>: %w", e.Name, err)
	}
	defer c.popStyle()

	if err := df(c, e); err != nil {
		return fmt.Errorf("svgdraw: <%s>: %w", e.Name, err)
	}
	if len(c.path) > 0 {
		// the cursor parsed a path from the element
		pathCopy := append(svgpath.Path{}, c.path...)
		c.drawing.items = append(c.drawing.items, &SvgPath{Path: pathCopy, Style: c.style()})
		c.path = c.path[:0]
	}
	for _, child := range e.Children {
		if err := c.compile(child); err != nil {
			return err
		}
	}
	return nil
}

// floats reads the named attributes of e, missing ones
// defaulting to zero.
func floats(e *svgdoc.Element, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, ok := e.Lookup(name)
		if !ok {
			continue
		}
		f, err := svgdoc.ParseLength(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		out[i] = f
	}
	return out, nil
}

func svgF(c *cursor, e *svgdoc.Element) error {
	vb := &c.drawing.ViewBox
	if v, ok := e.Lookup("viewBox"); ok {
		points, err := parseNumbers(v)
		if err != nil {
			return err
		}
		if len(points) != 4 {
			return errParamMismatch
		}
		vb.X, vb.Y, vb.W, vb.H = points[0], points[1], points[2], points[3]
		return nil
	}
	wh, err := floats(e, "width", "height")
	if err != nil {
		return err
	}
	vb.W, vb.H = wh[0], wh[1]
	return nil
}

func gF(*cursor, *svgdoc.Element) error { return nil } // g does nothing but push the style

func titleF(c *cursor, e *svgdoc.Element) error {
	c.drawing.Titles = append(c.drawing.Titles, e.Text)
	return nil
}

func rectF(c *cursor, e *svgdoc.Element) error {
	v, err := floats(e, "x", "y", "width", "height")
	if err != nil {
		return err
	}
	x, y, w, h := v[0], v[1], v[2], v[3]
	if w == 0 || h == 0 {
		return nil
	}
	c.path.AddRect(x, y, x+w, y+h)
	return nil
}

func circleF(c *cursor, e *svgdoc.Element) error {
	v, err := floats(e, "cx", "cy", "r", "rx", "ry")
	if err != nil {
		return err
	}
	rx, ry := v[3], v[4]
	if e.Name == "circle" {
		rx, ry = v[2], v[2]
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	c.path.AddEllipse(v[0], v[1], rx, ry)
	return nil
}

func lineF(c *cursor, e *svgdoc.Element) error {
	v, err := floats(e, "x1", "y1", "x2", "y2")
	if err != nil {
		return err
	}
	c.path.AddLine(v[0], v[1], v[2], v[3])
	return nil
}

func polylineF(c *cursor, e *svgdoc.Element) error {
	points, err := parseNumbers(e.Get("points"))
	if err != nil {
		return err
	}
	if len(points)%2 != 0 {
		return errors.New("polygon has odd number of points")
	}
	if len(points) >= 4 {
		c.path.Start(svgpath.ToFixedP(points[0], points[1]))
		for i := 2; i < len(points)-1; i += 2 {
			c.path.Line(svgpath.ToFixedP(points[i], points[i+1]))
		}
	}
	return nil
}

func polygonF(c *cursor, e *svgdoc.Element) error {
	err := polylineF(c, e)
	if len(c.path) > 0 {
		c.path.Stop(true)
	}
	return err
}

func pathF(c *cursor, e *svgdoc.Element) error {
	p, err := svgpath.ParseData(e.Get("d"))
	if err != nil {
		return err
	}
	c.path = append(c.path, p...)
	return nil
}

// parseOffset reads a text offset, "em" units being
// relative to the font size.
func parseOffset(v string, fontSize float64) (float64, error) {
	if v == "" {
		return 0, nil
	}
	if strings.HasSuffix(v, "em") {
		f, err := parseNumbers(strings.TrimSuffix(v, "em"))
		if err != nil || len(f) != 1 {
			return 0, fmt.Errorf("invalid offset %q", v)
		}
		return f[0] * fontSize, nil
	}
	return svgdoc.ParseLength(v)
}

func textF(c *cursor, e *svgdoc.Element) error {
	st := c.style()
	fill := st.fillColor()
	if fill == nil || strings.TrimSpace(e.Text) == "" {
		return nil
	}
	pos, err := floats(e, "x", "y")
	if err != nil {
		return err
	}
	dx, err := parseOffset(e.Get("dx"), st.FontSize)
	if err != nil {
		return err
	}
	dy, err := parseOffset(e.Get("dy"), st.FontSize)
	if err != nil {
		return err
	}
	c.drawing.items = append(c.drawing.items, TextRun{
		X:         pos[0] + dx,
		Y:         pos[1] + dy,
		Text:      e.Text,
		Size:      st.FontSize,
		Family:    st.FontFamily,
		Anchor:    st.Anchor,
		Color:     fill,
		Opacity:   st.FillOpacity,
		transform: st.transform,
	})
	return nil
}
