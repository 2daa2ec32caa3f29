package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/benoitkugler/salesplot/chart"
)

func TestParse(t *testing.T) {
	const doc = `
width: 600
margin:
  left: 60
legend:
  dedupe: true
palette:
  colors:
    Product E: "#800080"
y_ticks: 5
short_labels: true
`
	cfg, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 600 || cfg.Height != 400 {
		t.Errorf("unexpected size %v x %v", cfg.Width, cfg.Height)
	}
	if cfg.Margin != (chart.Margin{Top: 20, Right: 20, Bottom: 30, Left: 60}) {
		t.Errorf("unexpected margin %+v", cfg.Margin)
	}
	if !cfg.Legend.Dedupe || cfg.Legend.RowHeight != 20 {
		t.Errorf("unexpected legend %+v", cfg.Legend)
	}
	if cfg.Palette.ColorFor("Product E") != "#800080" || cfg.Palette.ColorFor("Product A") != "red" {
		t.Errorf("palette not merged: %v", cfg.Palette)
	}
	if cfg.YTicks != 5 || !cfg.ShortLabels {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, chart.DefaultConfig()) {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	for _, doc := range []string{
		"width: 50",
		"radius: -1",
		"y_ticks: -2",
		"palette:\n  default: notacolor",
		"palette:\n  colors:\n    Product A: '#12'",
	} {
		if _, err := Parse(strings.NewReader(doc)); !errors.Is(err, ErrInvalid) {
			t.Errorf("%q: expected ErrInvalid, got %v", doc, err)
		}
	}
	for _, doc := range []string{"width: [", "unknown_key: 1"} {
		if _, err := Parse(strings.NewReader(doc)); err == nil {
			t.Errorf("%q: expected error", doc)
		}
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg.Width != 500 {
		t.Fatalf("unexpected default load: %v %v", cfg, err)
	}
	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := os.WriteFile(path, []byte("height: 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Height != 300 {
		t.Errorf("unexpected height %v", cfg.Height)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
