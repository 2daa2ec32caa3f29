package chart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/benoitkugler/salesplot/sales"
	"github.com/benoitkugler/salesplot/svgdoc"
)

func demo() []sales.Record {
	records, _ := sales.Demo().Records(context.Background())
	return records
}

func TestLayoutDemo(t *testing.T) {
	l, err := ComputeLayout(demo(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if l.InnerWidth != 440 || l.InnerHeight != 350 || l.OriginX != 40 || l.OriginY != 20 {
		t.Fatalf("unexpected inner area %+v", l)
	}
	if l.Y.Domain != [2]float64{0, 100000} {
		t.Errorf("unexpected y domain %v", l.Y.Domain)
	}
	expected := []struct {
		x, y float64
		fill string
	}{
		{0, 0, "red"},
		{88, 70, "blue"},
		{176, 140, "green"},
		{264, 210, "yellow"},
		{352, 280, "orange"},
	}
	if len(l.Marks) != len(expected) {
		t.Fatalf("expected %d marks, got %d", len(expected), len(l.Marks))
	}
	for i, exp := range expected {
		m := l.Marks[i]
		if m.X != exp.x || m.Y != exp.y || m.Fill != exp.fill || m.Radius != 5 {
			t.Errorf("mark %d (%s): got %+v", i, m.Record.Category, m)
		}
	}
	if l.LegendX != 340 || l.LegendY != 250 {
		t.Errorf("unexpected legend origin %v,%v", l.LegendX, l.LegendY)
	}
	if len(l.XTicks) != 5 || l.XTicks[0].Pos != 43.5 || l.XTicks[4].Label != "Germany" {
		t.Errorf("unexpected x ticks %v", l.XTicks)
	}
	if len(l.YTicks) != 11 {
		t.Fatalf("expected 11 y ticks, got %v", l.YTicks)
	}
	if first, last := l.YTicks[0], l.YTicks[10]; first.Label != "0" || first.Pos != 350 || last.Label != "100,000" || last.Pos != 0 {
		t.Errorf("unexpected y ticks %v", l.YTicks)
	}
}

func TestScaleBounds(t *testing.T) {
	records := []sales.Record{
		{Category: "a", Value: 0, Group: "x"},
		{Category: "b", Value: 7.5, Group: "x"},
		{Category: "c", Value: 3, Group: "x"},
	}
	l, err := ComputeLayout(records, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if l.Marks[0].Y != l.InnerHeight {
		t.Errorf("zero should map to the bottom, got %v", l.Marks[0].Y)
	}
	if l.Marks[1].Y != 0 {
		t.Errorf("maximum should map to the top, got %v", l.Marks[1].Y)
	}
}

func TestBandPartition(t *testing.T) {
	for n := 1; n <= 7; n++ {
		var records []sales.Record
		for i := 0; i < n; i++ {
			records = append(records, sales.Record{Category: fmt.Sprint("c", i), Value: float64(i + 1)})
		}
		l, err := ComputeLayout(records, DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		if total := l.X.Bandwidth() * float64(n); math.Abs(total-l.InnerWidth) > 1e-9 {
			t.Errorf("n=%d: bands sum to %v", n, total)
		}
		for i, m := range l.Marks {
			start := l.X.At(i)
			if m.X < start || m.X >= start+l.X.Bandwidth() {
				t.Errorf("n=%d: mark %d at %v outside its band", n, i, m.X)
			}
		}
	}
}

func TestDuplicateCategories(t *testing.T) {
	records := []sales.Record{
		{Category: "a", Value: 1, Group: "x"},
		{Category: "b", Value: 2, Group: "x"},
		{Category: "a", Value: 3, Group: "x"},
	}
	l, err := ComputeLayout(records, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(l.X.Domain) != 3 {
		t.Fatalf("duplicates should keep their band, got %v", l.X.Domain)
	}
	if l.Marks[0].X != 0 || l.Marks[2].X != 0 {
		t.Errorf("marks of a repeated category should overlap, got %v and %v", l.Marks[0].X, l.Marks[2].X)
	}
	if l.Marks[1].X != l.X.At(1) {
		t.Errorf("unexpected mark position %v", l.Marks[1].X)
	}
	if len(l.XTicks) != 3 {
		t.Errorf("expected one tick per band, got %d", len(l.XTicks))
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	for group, exp := range map[string]string{
		"Product A": "red",
		"Product B": "blue",
		"Product C": "green",
		"Product D": "yellow",
		"Product E": "orange",
		"":          "orange",
		"product a": "orange",
	} {
		if got := p.ColorFor(group); got != exp {
			t.Errorf("%q: expected %s, got %s", group, exp, got)
		}
	}
	if got := (Palette{}).ColorFor("Product B"); got != "blue" {
		t.Errorf("empty palette should use the built-in table, got %s", got)
	}
	custom := Palette{Colors: map[string]string{"Product A": "purple"}, Default: "gray"}
	if custom.ColorFor("Product A") != "purple" || custom.ColorFor("Product B") != "gray" {
		t.Error("unexpected custom palette lookup")
	}
}

func TestLegendCardinality(t *testing.T) {
	var records []sales.Record
	for i, g := range []string{"A", "B", "A", "C", "A"} {
		records = append(records, sales.Record{Category: fmt.Sprint(i), Value: 1, Group: g})
	}
	l, err := ComputeLayout(records, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Legend) != 5 {
		t.Fatalf("expected 5 legend rows, got %d", len(l.Legend))
	}
	countA := 0
	for i, row := range l.Legend {
		if row.Label == "A" {
			countA++
		}
		if row.Y != float64(i)*20 {
			t.Errorf("row %d at %v", i, row.Y)
		}
	}
	if countA != 3 {
		t.Errorf("expected 3 rows for A, got %d", countA)
	}

	cfg := DefaultConfig()
	cfg.Legend.Dedupe = true
	l, err = ComputeLayout(records, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Legend) != 3 || l.Legend[2].Label != "C" || l.Legend[2].Y != 40 {
		t.Errorf("unexpected deduplicated legend %v", l.Legend)
	}
}

func TestShortLabels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShortLabels = true
	l, err := ComputeLayout(demo(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if l.XTicks[1].Label != "CA" || l.XTicks[4].Label != "DE" {
		t.Errorf("unexpected labels %v", l.XTicks)
	}
}

func TestInvalidRecords(t *testing.T) {
	s := svgdoc.NewSurface()
	if _, err := Draw(s, nil, DefaultConfig()); !errors.Is(err, sales.ErrNoRecords) {
		t.Errorf("expected ErrNoRecords, got %v", err)
	}
	bad := []sales.Record{{Category: "a", Value: math.NaN()}}
	if _, err := Draw(s, bad, DefaultConfig()); !errors.Is(err, sales.ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
	if s.Len() != 0 || s.Root().Get("width") != "" {
		t.Error("surface should be untouched")
	}
}

func TestDrawNilSurface(t *testing.T) {
	if _, err := Draw(nil, demo(), DefaultConfig()); err != nil {
		t.Errorf("nil surface should be skipped, got %v", err)
	}
}

func TestDrawMarkup(t *testing.T) {
	s := svgdoc.NewSurface()
	if _, err := Draw(s, demo(), DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	root := s.Root()
	if root.Get("width") != "500" || root.Get("height") != "400" {
		t.Errorf("unexpected size %s x %s", root.Get("width"), root.Get("height"))
	}
	if s.Len() != 1 {
		t.Fatalf("expected one top group, got %d", s.Len())
	}
	g := root.Children[0]
	if g.Get("transform") != "translate(40,20)" {
		t.Errorf("unexpected transform %s", g.Get("transform"))
	}
	var order []string
	for _, c := range g.Children {
		order = append(order, c.Get("class"))
	}
	if fmt.Sprint(order) != "[legend mark mark mark mark mark x-axis y-axis]" {
		t.Errorf("unexpected order %v", order)
	}

	legend := g.Children[0]
	if legend.Get("transform") != "translate(340,250)" || len(legend.Children) != 5 {
		t.Errorf("unexpected legend %+v", legend)
	}
	row := legend.Children[1]
	if row.Get("transform") != "translate(0,20)" {
		t.Errorf("unexpected row transform %s", row.Get("transform"))
	}
	circle, text := row.Children[0], row.Children[1]
	if circle.Get("r") != "5" || circle.Get("fill") != "blue" {
		t.Errorf("unexpected swatch %v", circle.Attrs)
	}
	if text.Get("x") != "10" || text.Get("y") != "5" || text.Text != "Product B" {
		t.Errorf("unexpected label %v %s", text.Attrs, text.Text)
	}

	germany := g.FindClass("mark")[4]
	if germany.Get("cx") != "352" || germany.Get("cy") != "280" || germany.Get("fill") != "orange" {
		t.Errorf("unexpected mark %v", germany.Attrs)
	}

	xAxis := g.FindClass("x-axis")[0]
	if xAxis.Get("transform") != "translate(0,350)" || xAxis.Get("text-anchor") != "middle" {
		t.Errorf("unexpected x axis %v", xAxis.Attrs)
	}
	if d := xAxis.FindClass("domain")[0].Get("d"); d != "M0.5,6V0.5H440.5V6" {
		t.Errorf("unexpected x domain %s", d)
	}
	xTicks := xAxis.FindClass("tick")
	if len(xTicks) != 5 || xTicks[0].Get("transform") != "translate(44,0)" {
		t.Errorf("unexpected x ticks")
	}
	if label := xTicks[1].FindAll("text")[0]; label.Text != "Canada" || label.Get("y") != "9" || label.Get("dy") != "0.71em" {
		t.Errorf("unexpected x tick label %v %s", label.Attrs, label.Text)
	}

	yAxis := g.FindClass("y-axis")[0]
	if d := yAxis.FindClass("domain")[0].Get("d"); d != "M-6,350.5H0.5V0.5H-6" {
		t.Errorf("unexpected y domain %s", d)
	}
	yTicks := yAxis.FindClass("tick")
	if len(yTicks) != 11 || yTicks[10].Get("transform") != "translate(0,0.5)" {
		t.Errorf("unexpected y ticks")
	}
	if label := yTicks[10].FindAll("text")[0]; label.Text != "100,000" || label.Get("x") != "-9" {
		t.Errorf("unexpected y tick label %v %s", label.Attrs, label.Text)
	}
}

func TestDeterminism(t *testing.T) {
	var outputs [][]byte
	for i := 0; i < 3; i++ {
		s, err := Render(context.Background(), nil, DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, s.Bytes())
	}
	for _, o := range outputs[1:] {
		if !bytes.Equal(o, outputs[0]) {
			t.Fatal("rendering is not deterministic")
		}
	}
}

type failingSource struct{}

func (failingSource) Records(context.Context) ([]sales.Record, error) {
	return nil, errors.New("unreachable")
}

func TestMountLifecycle(t *testing.T) {
	p := New(sales.Demo(), DefaultConfig())
	if err := p.Mount(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if p.Mounted() {
		t.Fatal("nil surface should not mount")
	}

	s := svgdoc.NewSurface()
	if err := p.Mount(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	before := s.Bytes()
	if err := p.Mount(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, s.Bytes()) {
		t.Error("second mount should not draw again")
	}
	if l, ok := p.Layout(); !ok || len(l.Marks) != 5 {
		t.Errorf("unexpected layout %v %v", l, ok)
	}

	p.Unmount()
	if s.Len() != 0 || p.Mounted() {
		t.Error("unmount should clear the surface")
	}
	if err := p.Mount(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, s.Bytes()) {
		t.Error("remount should produce the same drawing")
	}

	failing := New(failingSource{}, DefaultConfig())
	if err := failing.Mount(context.Background(), svgdoc.NewSurface()); err == nil || failing.Mounted() {
		t.Error("expected source error")
	}
}

func TestUnmountKeepsForeignContent(t *testing.T) {
	s := svgdoc.NewSurface()
	root := s.Root()
	root.Set("id", "dashboard").Set("width", "800")
	root.Append("desc").SetText("sales")

	p := New(nil, DefaultConfig())
	if err := p.Mount(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 || root.Get("width") != "500" || root.Get("height") != "400" {
		t.Fatalf("unexpected mounted surface %v", root.Attrs)
	}

	p.Unmount()
	if s.Len() != 1 || root.Children[0].Name != "desc" {
		t.Errorf("only the chart group should be removed, got %d children", s.Len())
	}
	if root.Get("id") != "dashboard" || root.Get("width") != "800" {
		t.Errorf("unexpected attributes after unmount %v", root.Attrs)
	}
	if _, ok := root.Lookup("height"); ok {
		t.Error("height was not set before the mount")
	}
}

func TestConcurrentMount(t *testing.T) {
	p := New(nil, DefaultConfig())
	s := svgdoc.NewSurface()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Mount(context.Background(), s); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if s.Len() != 1 {
		t.Errorf("expected a single drawing, got %d groups", s.Len())
	}
}
