// Package svgdraw turns a chart surface into paint operations.
// A surface is first compiled into styled paths and text runs,
// which are then replayed on a Driver: the rasterizer of svgraster
// or the PDF writer of svgpdf.
package svgdraw

import (
	"image/color"

	"github.com/benoitkugler/salesplot/svgpath"
	"golang.org/x/image/math/fixed"
)

// Drawer paints one path. Points are received in device
// space: transforms have been applied.
type Drawer interface {
	svgpath.Adder

	// Clear resets the accumulated path.
	Clear()

	SetColor(color color.Color, opacity float64)

	// Draw paints the accumulated path.
	Draw()
}

type Filler interface {
	Drawer

	SetWinding(useNonZeroWinding bool) // false for evenodd
}

type Stroker interface {
	Drawer

	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers is called before each path. A nil drawer
	// is expected for the operations not requested.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)

	// DrawText paints a text run, whose position and size are
	// already expressed in device space.
	DrawText(run TextRun)
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
const (
	Arc JoinMode = iota
	Round
	Bevel
	Miter
	MiterClip
	ArcClip
)

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	NilCap CapMode = iota // default value
	ButtCap
	SquareCap
	RoundCap
	CubicCap
	QuadraticCap
)

// GapMode defines how to bridge gaps when the miter limit is exceeded,
// and is not part of the SVG2.0 standard.
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
	CubicGap
	QuadraticGap
)

type JoinOptions struct {
	MiterLimit   fixed.Int26_6 // the miter cutoff value for miter, arc, miterclip and arcClip joinModes
	LineJoin     JoinMode      // JoinMode for curve segments
	TrailLineCap CapMode       // capping functions for leading and trailing line ends. If one is nil, the other function is used at both ends.

	LeadLineCap CapMode
	LineGap     GapMode // determines how a gap on the convex side of two lines joining is filled
}

type StrokeOptions struct {
	LineWidth fixed.Int26_6 // width of the line
	Join      JoinOptions
	Dash      DashOptions
}

// Draw the compiled drawing into the driver `d`.
func (dr *Drawing) Draw(d Driver, opacity float64) {
	for _, it := range dr.items {
		it.drawTransformed(d, opacity, dr.Transform)
	}
}

// drawTransformed draws the compiled SvgPath into the driver while applying transform t.
func (svgp *SvgPath) drawTransformed(d Driver, opacity float64, t svgpath.Matrix2D) {
	m := t.Mult(svgp.Style.transform)
	fill, stroke := svgp.Style.fillColor(), svgp.Style.strokeColor()

	filler, stroker := d.SetupDrawers(fill != nil, stroke != nil)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(svgp.Style.UseNonZeroWinding)
		svgp.Path.AddTo(filler, m)
		filler.SetColor(fill, svgp.Style.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()

		join := svgp.Style.Join
		if join.LineGap == NilGap {
			join.LineGap = FlatGap
		}
		if join.TrailLineCap == NilCap {
			join.TrailLineCap = ButtCap
		}
		if join.LeadLineCap == NilCap {
			join.LeadLineCap = join.TrailLineCap
		}
		scale := m.ScaleFactor()
		dash := svgp.Style.Dash
		if len(dash.Dash) != 0 {
			scaled := make([]float64, len(dash.Dash))
			for i, v := range dash.Dash {
				scaled[i] = v * scale
			}
			dash = DashOptions{Dash: scaled, DashOffset: dash.DashOffset * scale}
		}
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth: fixed.Int26_6(svgp.Style.LineWidth * scale * 64),
			Join:      join,
			Dash:      dash,
		})
		svgp.Path.AddTo(stroker, m)
		stroker.SetColor(stroke, svgp.Style.LineOpacity*opacity)
		stroker.Draw()
	}
}

func (run TextRun) drawTransformed(d Driver, opacity float64, t svgpath.Matrix2D) {
	m := t.Mult(run.transform)
	run.X, run.Y = m.Transform(run.X, run.Y)
	run.Size *= m.ScaleFactor()
	run.Opacity *= opacity
	d.DrawText(run)
}
