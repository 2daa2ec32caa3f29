package svgdraw

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/salesplot/svgdoc"
	"github.com/benoitkugler/salesplot/svgpath"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/fixed"
)

var errParamMismatch = errors.New("svgdraw: parameter mismatch")

// paint is the value of a fill or stroke property
type paint uint8

const (
	paintNone paint = iota
	paintColor
	paintCurrent // currentColor, resolved when drawing
)

// TextAnchor is the horizontal alignment of a text run
// relative to its position.
type TextAnchor uint8

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// PathStyle holds the state of the SVG style
type PathStyle struct {
	FillOpacity, LineOpacity float64
	LineWidth                float64
	UseNonZeroWinding        bool

	Join JoinOptions
	Dash DashOptions

	fill, stroke            paint
	FillerColor, LinerColor color.NRGBA
	CurrentColor            color.NRGBA // value of the color property

	FontSize   float64
	FontFamily string
	Anchor     TextAnchor

	transform svgpath.Matrix2D // current transform
}

// DefaultStyle sets the default PathStyle to fill black, winding rule,
// full opacity, no stroke, ButtCap line end and Bevel line connect.
var DefaultStyle = PathStyle{
	FillOpacity:       1.0,
	LineOpacity:       1.0,
	LineWidth:         1.0,
	UseNonZeroWinding: true,
	Join: JoinOptions{
		MiterLimit:   fixed.Int26_6(4 * 64),
		LineJoin:     Bevel,
		TrailLineCap: ButtCap,
	},
	fill:         paintColor,
	FillerColor:  color.NRGBA{A: 0xff},
	CurrentColor: color.NRGBA{A: 0xff},
	FontSize:     16,
	FontFamily:   "sans-serif",
	transform:    svgpath.Identity,
}

func (s PathStyle) resolve(p paint, c color.NRGBA) color.Color {
	switch p {
	case paintColor:
		return c
	case paintCurrent:
		return s.CurrentColor
	default:
		return nil
	}
}

// fillColor returns the fill color, or nil to disable filling.
func (s PathStyle) fillColor() color.Color { return s.resolve(s.fill, s.FillerColor) }

// strokeColor returns the stroke color, or nil to disable stroking.
func (s PathStyle) strokeColor() color.Color { return s.resolve(s.stroke, s.LinerColor) }

// parsePaint reads a fill or stroke value.
func parsePaint(v string) (paint, color.NRGBA, error) {
	switch v {
	case "none":
		return paintNone, color.NRGBA{}, nil
	case "currentColor":
		return paintCurrent, color.NRGBA{}, nil
	}
	c, err := ParseColor(v)
	return paintColor, c, err
}

// ParseColor parses an SVG color : a keyword, #rgb, #rrggbb or rgb(r, g, b).
func ParseColor(v string) (color.NRGBA, error) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.NRGBA{}, fmt.Errorf("svgdraw: invalid color %q", v)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("svgdraw: invalid color %q", v)
		}
		return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		parts := strings.Split(v[4:len(v)-1], ",")
		if len(parts) != 3 {
			return color.NRGBA{}, fmt.Errorf("svgdraw: invalid color %q", v)
		}
		var rgb [3]uint8
		for i, p := range parts {
			p = strings.TrimSpace(p)
			var f float64
			var err error
			if strings.HasSuffix(p, "%") {
				f, err = strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
				f = f * 255 / 100
			} else {
				f, err = strconv.ParseFloat(p, 64)
			}
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("svgdraw: invalid color %q", v)
			}
			rgb[i] = uint8(math.Max(0, math.Min(255, math.Round(f))))
		}
		return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(v)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("svgdraw: unknown color %q", v)
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\n' || r == '\t'
		})
}

func parseNumbers(s string) ([]float64, error) {
	fields := splitOnCommaOrSpace(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readTransformAttr(m1 svgpath.Matrix2D, k string, points []float64) (svgpath.Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln != 1 {
			return m1, errParamMismatch
		}
		m1 = m1.SkewX(points[0] * math.Pi / 180)
	case "skewy":
		if ln != 1 {
			return m1, errParamMismatch
		}
		m1 = m1.SkewY(points[0] * math.Pi / 180)
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln != 6 {
			return m1, errParamMismatch
		}
		m1 = m1.Mult(svgpath.Matrix2D{
			A: points[0],
			B: points[1],
			C: points[2],
			D: points[3],
			E: points[4],
			F: points[5]})
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// parseTransform applies the transform list v to m1.
func parseTransform(m1 svgpath.Matrix2D, v string) (svgpath.Matrix2D, error) {
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		points, err := parseNumbers(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = readTransformAttr(m1, strings.ToLower(strings.Trim(strings.TrimSpace(d[0]), ",")), points)
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

// parseFontSize reads a font size, relative sizes using the
// inherited one.
func parseFontSize(v string, inherited float64) (float64, error) {
	if strings.HasSuffix(v, "em") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "em"), 64)
		return f * inherited, err
	}
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		return f / 100 * inherited, err
	}
	return svgdoc.ParseLength(v)
}

func (c *cursor) readStyleAttr(curStyle *PathStyle, k, v string) error {
	switch k {
	case "fill":
		p, col, err := parsePaint(v)
		if err != nil {
			return err
		}
		curStyle.fill, curStyle.FillerColor = p, col
	case "stroke":
		p, col, err := parsePaint(v)
		if err != nil {
			return err
		}
		curStyle.stroke, curStyle.LinerColor = p, col
	case "color":
		col, err := ParseColor(v)
		if err != nil {
			return err
		}
		curStyle.CurrentColor = col
	case "fill-rule":
		curStyle.UseNonZeroWinding = v != "evenodd"
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.Join.TrailLineCap = ButtCap
		case "round":
			curStyle.Join.TrailLineCap = RoundCap
		case "square":
			curStyle.Join.TrailLineCap = SquareCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.Join.LineJoin = Miter
		case "miter-clip":
			curStyle.Join.LineJoin = MiterClip
		case "arc-clip":
			curStyle.Join.LineJoin = ArcClip
		case "round":
			curStyle.Join.LineJoin = Round
		case "arc":
			curStyle.Join.LineJoin = Arc
		case "bevel":
			curStyle.Join.LineJoin = Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		curStyle.Join.MiterLimit = fixed.Int26_6(mLimit * 64)
	case "stroke-width":
		width, err := svgdoc.ParseLength(v)
		if err != nil {
			return err
		}
		curStyle.LineWidth = width
	case "stroke-dashoffset":
		dashOffset, err := svgdoc.ParseLength(v)
		if err != nil {
			return err
		}
		curStyle.Dash.DashOffset = dashOffset
	case "stroke-dasharray":
		if v == "none" {
			curStyle.Dash.Dash = nil
			break
		}
		dList, err := parseNumbers(v)
		if err != nil {
			return err
		}
		curStyle.Dash.Dash = dList
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.FillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.LineOpacity *= op
		}
	case "transform":
		m, err := parseTransform(curStyle.transform, v)
		if err != nil {
			return err
		}
		curStyle.transform = m
	case "font-size":
		size, err := parseFontSize(v, curStyle.FontSize)
		if err != nil {
			return err
		}
		curStyle.FontSize = size
	case "font-family":
		curStyle.FontFamily = v
	case "text-anchor":
		switch v {
		case "middle":
			curStyle.Anchor = AnchorMiddle
		case "end":
			curStyle.Anchor = AnchorEnd
		default:
			curStyle.Anchor = AnchorStart
		}
	}
	return nil
}

// pushStyle parses the style of the element, and push it on the style stack.
// Note that this parses both the contents of a style attribute plus
// direct presentation attributes.
func (c *cursor) pushStyle(attrs []svgdoc.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name+":"+attr.Value)
		}
	}
	// Make a copy of the top style
	curStyle := c.styleStack[len(c.styleStack)-1]
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) == 2 {
			k := strings.ToLower(strings.TrimSpace(kv[0]))
			v := strings.TrimSpace(kv[1])
			if err := c.readStyleAttr(&curStyle, k, v); err != nil {
				return err
			}
		}
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return nil
}

func (c *cursor) popStyle() {
	c.styleStack = c.styleStack[:len(c.styleStack)-1]
}

func (c *cursor) style() PathStyle {
	return c.styleStack[len(c.styleStack)-1]
}
