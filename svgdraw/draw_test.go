package svgdraw

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/salesplot/svgdoc"
	"github.com/benoitkugler/salesplot/svgpath"
	"golang.org/x/image/math/fixed"
)

// recorder counts the drawing operations
type recorder struct {
	starts, draws int
	colors        []color.Color
	widths        []fixed.Int26_6
	winding       bool
}

func (r *recorder) Start(fixed.Point26_6)              { r.starts++ }
func (r *recorder) Line(fixed.Point26_6)               {}
func (r *recorder) QuadBezier(_, _ fixed.Point26_6)    {}
func (r *recorder) CubeBezier(_, _, _ fixed.Point26_6) {}
func (r *recorder) Stop(bool)                          {}
func (r *recorder) Clear()                             {}
func (r *recorder) SetColor(c color.Color, _ float64)  { r.colors = append(r.colors, c) }
func (r *recorder) Draw()                              { r.draws++ }
func (r *recorder) SetWinding(b bool)                  { r.winding = b }
func (r *recorder) SetStrokeOptions(o StrokeOptions)   { r.widths = append(r.widths, o.LineWidth) }

type recordDriver struct {
	fill, stroke recorder
	texts        []TextRun
}

func (d *recordDriver) SetupDrawers(willFill, willStroke bool) (Filler, Stroker) {
	var (
		f Filler
		s Stroker
	)
	if willFill {
		f = &d.fill
	}
	if willStroke {
		s = &d.stroke
	}
	return f, s
}

func (d *recordDriver) DrawText(run TextRun) { d.texts = append(d.texts, run) }

func decode(t *testing.T, s string) *svgdoc.Surface {
	t.Helper()
	surface, err := svgdoc.Decode(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	return surface
}

const sample = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100">
<title>sample</title>
<g transform="translate(10,20)" fill="none" font-size="10" text-anchor="end">
  <path d="M0,0H50V20" stroke="currentColor"/>
  <circle cx="5" cy="5" r="5" fill="red"/>
  <rect x="0" y="0" width="10" height="0" fill="blue"/>
  <line x2="6" stroke="#00f" stroke-width="2"/>
  <text fill="currentColor" x="-9" dy="0.32em">100</text>
</g>
</svg>`

func TestCompile(t *testing.T) {
	dr, err := Compile(decode(t, sample), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if dr.Width() != 200 || dr.Height() != 100 {
		t.Fatalf("unexpected size %v", dr.ViewBox)
	}
	if len(dr.Titles) != 1 || dr.Titles[0] != "sample" {
		t.Fatalf("unexpected titles %v", dr.Titles)
	}
	paths := dr.Paths()
	if len(paths) != 3 { // the empty rect is skipped
		t.Fatalf("expected 3 paths, got %d", len(paths))
	}
	if paths[0].Style.fillColor() != nil {
		t.Error("fill none should disable filling")
	}
	if got := paths[1].Style.fillColor(); got != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Errorf("unexpected circle fill %v", got)
	}
	if paths[2].Style.LineWidth != 2 {
		t.Errorf("unexpected line width %v", paths[2].Style.LineWidth)
	}

	texts := dr.Texts()
	if len(texts) != 1 {
		t.Fatalf("expected one text run, got %d", len(texts))
	}
	run := texts[0]
	if run.Text != "100" || run.Size != 10 || run.Anchor != AnchorEnd {
		t.Errorf("unexpected text run %+v", run)
	}
	if run.X != -9 || math.Abs(run.Y-3.2) > 1e-9 {
		t.Errorf("unexpected text position %v,%v", run.X, run.Y)
	}
}

func TestDraw(t *testing.T) {
	dr, err := Compile(decode(t, sample), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	var d recordDriver
	dr.Draw(&d, 1)
	if d.fill.draws != 1 || d.stroke.draws != 2 {
		t.Fatalf("unexpected draw count: fill %d, stroke %d", d.fill.draws, d.stroke.draws)
	}
	if d.stroke.widths[1] != fixed.I(2) {
		t.Errorf("unexpected stroke width %v", d.stroke.widths[1])
	}
	if len(d.texts) != 1 {
		t.Fatalf("expected one text, got %d", len(d.texts))
	}
	if x, y := d.texts[0].X, d.texts[0].Y; x != 1 || math.Abs(y-23.2) > 1e-9 {
		t.Errorf("text not translated: %v,%v", x, y)
	}

	dr.SetTarget(0, 0, 400, 200)
	d = recordDriver{}
	dr.Draw(&d, 1)
	if d.stroke.widths[1] != fixed.I(4) {
		t.Errorf("stroke width should scale, got %v", d.stroke.widths[1])
	}
	if d.texts[0].Size != 20 {
		t.Errorf("font size should scale, got %v", d.texts[0].Size)
	}
}

func TestErrorMode(t *testing.T) {
	const s = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><foo/><rect width="1" height="1"/></svg>`
	if _, err := Compile(decode(t, s), StrictErrorMode); err == nil {
		t.Error("expected error for unknown element")
	}
	dr, err := Compile(decode(t, s), IgnoreErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if len(dr.Paths()) != 1 {
		t.Errorf("expected one path, got %d", len(dr.Paths()))
	}

	const bad = `<svg xmlns="http://www.w3.org/2000/svg"><rect width="x" height="1"/></svg>`
	if _, err := Compile(decode(t, bad), IgnoreErrorMode); err == nil {
		t.Error("expected error for invalid attribute")
	}
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in  string
		out color.NRGBA
	}{
		{"red", color.NRGBA{R: 255, A: 255}},
		{"Orange", color.NRGBA{R: 255, G: 165, A: 255}},
		{"#00f", color.NRGBA{B: 255, A: 255}},
		{"#102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}},
		{"rgb(1, 2, 3)", color.NRGBA{R: 1, G: 2, B: 3, A: 255}},
		{"rgb(100%, 0%, 0%)", color.NRGBA{R: 255, A: 255}},
	} {
		got, err := ParseColor(test.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.out {
			t.Errorf("%s: expected %v, got %v", test.in, test.out, got)
		}
	}
	for _, bad := range []string{"#12", "rgb(1,2)", "notacolor", "#zzzzzz"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseTransform(t *testing.T) {
	m, err := parseTransform(svgpath.Identity, "translate(10,20) scale(2)")
	if err != nil {
		t.Fatal(err)
	}
	if x, y := m.Transform(1, 1); x != 12 || y != 22 {
		t.Errorf("unexpected transform result %v,%v", x, y)
	}
	if _, err := parseTransform(svgpath.Identity, "translate(1,2,3)"); err == nil {
		t.Error("expected error")
	}
	if _, err := parseTransform(svgpath.Identity, "shear(1)"); err == nil {
		t.Error("expected error")
	}
}
