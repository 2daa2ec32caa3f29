package chart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/benoitkugler/salesplot/internal/logging"
	"github.com/benoitkugler/salesplot/sales"
	"github.com/benoitkugler/salesplot/svgdoc"
)

// SetLogger sets the logger used by the chart packages.
// Passing nil restores the default silent logger.
func SetLogger(l *slog.Logger) { logging.SetLogger(l) }

// ScatterPlot draws the records of a source on a surface,
// exactly once per mount. It is safe for concurrent use.
type ScatterPlot struct {
	source sales.Source
	cfg    Config

	mu      sync.Mutex
	surface *svgdoc.Surface // nil when not mounted
	group   *svgdoc.Element // appended by the mount
	size    []sizeAttr      // root size before the mount
	layout  Layout
}

// sizeAttr saves a root attribute overwritten by a mount.
type sizeAttr struct {
	name, value string
	set         bool
}

// New returns an unmounted plot. A nil source uses the demo records.
func New(source sales.Source, cfg Config) *ScatterPlot {
	if source == nil {
		source = sales.Demo()
	}
	return &ScatterPlot{source: source, cfg: cfg}
}

// Mount pulls the records from the source and draws them on s.
// A nil surface is skipped, and mounting again before Unmount does nothing.
// On error, s is left untouched and the plot stays unmounted.
func (p *ScatterPlot) Mount(ctx context.Context, s *svgdoc.Surface) error {
	if s == nil {
		logging.Logger().Debug("chart: mount without surface, skipped")
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.surface != nil {
		return nil
	}
	records, err := p.source.Records(ctx)
	if err != nil {
		return fmt.Errorf("chart: reading records: %w", err)
	}
	root := s.Root()
	var size []sizeAttr
	for _, name := range [...]string{"width", "height"} {
		v, ok := root.Lookup(name)
		size = append(size, sizeAttr{name: name, value: v, set: ok})
	}
	layout, group, err := draw(s, records, p.cfg)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	p.surface, p.group, p.size, p.layout = s, group, size, layout
	return nil
}

// Unmount removes the chart appended by Mount and restores the size
// of the surface, so that a later mount starts from scratch.
// Content added to the surface by others is kept.
func (p *ScatterPlot) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.surface == nil {
		return
	}
	root := p.surface.Root()
	root.RemoveChild(p.group)
	for _, a := range p.size {
		if a.set {
			root.Set(a.name, a.value)
		} else {
			root.Remove(a.name)
		}
	}
	p.surface, p.group, p.size, p.layout = nil, nil, nil, Layout{}
}

// Mounted reports whether the plot is drawn on a surface.
func (p *ScatterPlot) Mounted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.surface != nil
}

// Layout returns the layout of the current mount.
func (p *ScatterPlot) Layout() (Layout, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.layout, p.surface != nil
}

// Render mounts a plot of source on a fresh surface and returns it.
func Render(ctx context.Context, source sales.Source, cfg Config) (*svgdoc.Surface, error) {
	s := svgdoc.NewSurface()
	if err := New(source, cfg).Mount(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
