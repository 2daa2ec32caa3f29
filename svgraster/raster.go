// Implements a raster backend to render SVG surfaces,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/salesplot/internal/logging"
	"github.com/benoitkugler/salesplot/svgdoc"
	"github.com/benoitkugler/salesplot/svgdraw"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// ErrEmptyCanvas is returned when the surface has no size.
var ErrEmptyCanvas = errors.New("svgraster: empty canvas")

// Renderer paints into an RGBA image.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	img   *image.RGBA
	fonts *faceCache
}

// NewRenderer returns a renderer drawing into img.
func NewRenderer(img *image.RGBA) *Renderer {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &Renderer{
		dasher: rasterx.NewDasher(w, h, scanner),
		filler: rasterx.NewFiller(w, h, scanner),
		img:    img,
		fonts:  newFaceCache(),
	}
}

// Rasterize compiles the surface and paints it on a white
// background, at its natural size.
func Rasterize(s *svgdoc.Surface) (*image.RGBA, error) {
	drawing, err := svgdraw.Compile(s, svgdraw.WarnErrorMode)
	if err != nil {
		return nil, err
	}
	w, h := int(math.Ceil(drawing.Width())), int(math.Ceil(drawing.Height()))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyCanvas
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawing.SetTarget(0, 0, float64(w), float64(h))
	drawing.Draw(NewRenderer(img), 1.0)
	return img, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f svgdraw.Filler, s svgdraw.Stroker) {
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

func setColor(c color.Color, opacity float64, scanner rasterx.Scanner) {
	scanner.SetColor(rasterx.ApplyOpacity(c, opacity))
}

type filler struct{ *rasterx.Filler }

func (f filler) SetColor(c color.Color, opacity float64) { setColor(c, opacity, f.Scanner) }

type stroker struct{ *rasterx.Dasher }

func (s stroker) SetColor(c color.Color, opacity float64) { setColor(c, opacity, s.Scanner) }

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgdraw.Round:     rasterx.Round,
		svgdraw.Bevel:     rasterx.Bevel,
		svgdraw.Miter:     rasterx.Miter,
		svgdraw.MiterClip: rasterx.MiterClip,
		svgdraw.Arc:       rasterx.Arc,
		svgdraw.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgdraw.ButtCap:      rasterx.ButtCap,
		svgdraw.SquareCap:    rasterx.SquareCap,
		svgdraw.RoundCap:     rasterx.RoundCap,
		svgdraw.CubicCap:     rasterx.CubicCap,
		svgdraw.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgdraw.FlatGap:      rasterx.FlatGap,
		svgdraw.RoundGap:     rasterx.RoundGap,
		svgdraw.CubicGap:     rasterx.CubicGap,
		svgdraw.QuadraticGap: rasterx.QuadraticGap,
	}
)

func (s stroker) SetStrokeOptions(options svgdraw.StrokeOptions) {
	s.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capToFunc[options.Join.LeadLineCap],
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}

// DrawText paints the run with the Go fonts.
func (rd *Renderer) DrawText(run svgdraw.TextRun) {
	if run.Color == nil || run.Size <= 0 {
		return
	}
	face, err := rd.fonts.face(run.Family, run.Size)
	if err != nil {
		logging.Logger().Warn("svgraster: text skipped", "text", run.Text, "size", run.Size, "error", err)
		return
	}
	dr := font.Drawer{
		Dst:  rd.img,
		Src:  image.NewUniform(rasterx.ApplyOpacity(run.Color, run.Opacity)),
		Face: face,
	}
	x := run.X
	switch run.Anchor {
	case svgdraw.AnchorMiddle:
		x -= float64(dr.MeasureString(run.Text)) / 64 / 2
	case svgdraw.AnchorEnd:
		x -= float64(dr.MeasureString(run.Text)) / 64
	}
	dr.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(run.Y * 64)}
	dr.DrawString(run.Text)
}
