// Implements a PDF backend to render SVG surfaces,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"errors"
	"image/color"
	"io"

	"github.com/benoitkugler/salesplot/svgdoc"
	"github.com/benoitkugler/salesplot/svgdraw"
	"github.com/benoitkugler/salesplot/svgpath"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgdraw.Driver  = Renderer{}
	_ svgdraw.Filler  = (*filler)(nil)
	_ svgdraw.Stroker = (*stroker)(nil)
)

// ErrEmptyCanvas is returned when the surface has no size.
var ErrEmptyCanvas = errors.New("svgpdf: empty canvas")

type Renderer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// pather records the current path, which is only
// written once its color is known, since PDF forbids
// color operators inside a path object.
type pather struct {
	svgpath.Path
	pdf   *gofpdf.Fpdf
	color color.Color
	alpha float64
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
	options svgdraw.StrokeOptions
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// Render compiles the surface and writes it as a one page
// document, sized to the canvas (one SVG pixel is one point).
func Render(s *svgdoc.Surface, w io.Writer) error {
	drawing, err := svgdraw.Compile(s, svgdraw.WarnErrorMode)
	if err != nil {
		return err
	}
	width, height := drawing.Width(), drawing.Height()
	if width <= 0 || height <= 0 {
		return ErrEmptyCanvas
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	for _, title := range drawing.Titles {
		pdf.SetTitle(title, true)
	}
	pdf.AddPage()

	drawing.SetTarget(0, 0, width, height)
	drawing.Draw(NewRenderer(pdf), 1.0)
	return pdf.Output(w)
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f svgdraw.Filler, s svgdraw.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// pdfAdder writes path commands to the document.
type pdfAdder struct{ pdf *gofpdf.Fpdf }

func (p pdfAdder) Start(a fixed.Point26_6) { p.pdf.MoveTo(fixedTof(a)) }

func (p pdfAdder) Line(b fixed.Point26_6) { p.pdf.LineTo(fixedTof(b)) }

func (p pdfAdder) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pdfAdder) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pdfAdder) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

func (p *pather) SetColor(c color.Color, opacity float64) {
	p.color, p.alpha = c, opacity
}

// rgb returns the 8 bits components of c and the
// opacity combining its alpha with opacity.
func rgb(c color.Color, opacity float64) (r, g, b int, alpha float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B), opacity * float64(n.A) / 255.
}

// writePath emits the recorded path, ready to be painted.
func (p *pather) writePath() {
	p.Path.AddTo(pdfAdder{p.pdf}, svgpath.Identity)
}

func (f *filler) Draw() {
	if f.color == nil || len(f.Path) == 0 {
		return
	}
	r, g, b, alpha := rgb(f.color, f.alpha)
	f.pdf.SetFillColor(r, g, b)
	f.pdf.SetAlpha(alpha, "Normal")
	f.writePath()
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s *stroker) SetStrokeOptions(options svgdraw.StrokeOptions) {
	s.options = options
}

func capStyle(c svgdraw.CapMode) string {
	switch c {
	case svgdraw.RoundCap, svgdraw.CubicCap, svgdraw.QuadraticCap:
		return "round"
	case svgdraw.SquareCap:
		return "square"
	default:
		return "butt"
	}
}

func joinStyle(j svgdraw.JoinMode) string {
	switch j {
	case svgdraw.Round, svgdraw.Arc, svgdraw.ArcClip:
		return "round"
	case svgdraw.Bevel:
		return "bevel"
	default:
		return "miter"
	}
}

func (s *stroker) Draw() {
	if s.color == nil || len(s.Path) == 0 {
		return
	}
	r, g, b, alpha := rgb(s.color, s.alpha)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetAlpha(alpha, "Normal")
	s.pdf.SetLineWidth(float64(s.options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capStyle(s.options.Join.TrailLineCap))
	s.pdf.SetLineJoinStyle(joinStyle(s.options.Join.LineJoin))
	dash := s.options.Dash.Dash
	if dash == nil {
		dash = []float64{}
	}
	s.pdf.SetDashPattern(dash, s.options.Dash.DashOffset)
	s.writePath()
	s.pdf.DrawPath("D")
}

// fontFamily maps generic families to the PDF core fonts.
func fontFamily(family string) string {
	switch family {
	case "monospace":
		return "Courier"
	case "serif":
		return "Times"
	default:
		return "Helvetica"
	}
}

// DrawText writes the run with a core font.
func (r Renderer) DrawText(run svgdraw.TextRun) {
	if run.Color == nil || run.Size <= 0 {
		return
	}
	cr, cg, cb, alpha := rgb(run.Color, run.Opacity)
	r.pdf.SetFont(fontFamily(run.Family), "", run.Size)
	r.pdf.SetTextColor(cr, cg, cb)
	r.pdf.SetAlpha(alpha, "Normal")
	text := r.tr(run.Text)
	x := run.X
	switch run.Anchor {
	case svgdraw.AnchorMiddle:
		x -= r.pdf.GetStringWidth(text) / 2
	case svgdraw.AnchorEnd:
		x -= r.pdf.GetStringWidth(text)
	}
	r.pdf.Text(x, run.Y, text)
}
