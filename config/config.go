// Package config loads chart settings from YAML files.
// Keys missing from the file keep their default value.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/salesplot/chart"
	"github.com/benoitkugler/salesplot/svgdraw"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for settings which can't produce a chart.
var ErrInvalid = errors.New("config: invalid setting")

// Load reads the file at path. An empty path returns the defaults.
func Load(path string) (chart.Config, error) {
	if path == "" {
		return chart.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return chart.Config{}, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return chart.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over chart.DefaultConfig and validates it.
// Palette entries are merged with the built-in ones.
func Parse(r io.Reader) (chart.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return chart.Config{}, err
	}
	cfg := chart.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return chart.Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return chart.Config{}, err
	}
	return cfg, nil
}

// Validate checks that the inner area is not empty and that
// every color of the palette is understood by the renderers.
func Validate(cfg chart.Config) error {
	if cfg.InnerWidth() <= 0 || cfg.InnerHeight() <= 0 {
		return fmt.Errorf("%w: margins leave no room in a %vx%v canvas", ErrInvalid, cfg.Width, cfg.Height)
	}
	if cfg.Radius < 0 {
		return fmt.Errorf("%w: negative radius %v", ErrInvalid, cfg.Radius)
	}
	if cfg.YTicks < 0 {
		return fmt.Errorf("%w: negative tick count %d", ErrInvalid, cfg.YTicks)
	}
	if cfg.Legend.RowHeight < 0 {
		return fmt.Errorf("%w: negative legend row height %v", ErrInvalid, cfg.Legend.RowHeight)
	}
	for group, c := range cfg.Palette.Colors {
		if _, err := svgdraw.ParseColor(c); err != nil {
			return fmt.Errorf("%w: color of %q: %v", ErrInvalid, group, err)
		}
	}
	if cfg.Palette.Default != "" {
		if _, err := svgdraw.ParseColor(cfg.Palette.Default); err != nil {
			return fmt.Errorf("%w: default color: %v", ErrInvalid, err)
		}
	}
	return nil
}
