package chart

import (
	"math"

	"github.com/benoitkugler/salesplot/sales"
	"github.com/benoitkugler/salesplot/scale"
)

// Mark is a circle placed for one record, in inner coordinates.
type Mark struct {
	X, Y   float64
	Radius float64
	Fill   string
	Record sales.Record
}

// LegendRow is a swatch and its label, relative to the legend origin.
type LegendRow struct {
	Y     float64
	Fill  string
	Label string
}

// Tick is an axis graduation. Pos is the coordinate along the axis,
// before the half pixel offset of the markup.
type Tick struct {
	Pos   float64
	Label string
}

// Layout is the geometry of a chart, computed from the records alone.
type Layout struct {
	Width, Height float64
	// Origin of the inner area
	OriginX, OriginY        float64
	InnerWidth, InnerHeight float64
	X                       scale.Band
	Y                       scale.Linear
	Marks                   []Mark
	LegendX, LegendY        float64
	Legend                  []LegendRow
	XTicks, YTicks          []Tick
}

// ComputeLayout validates records and places every element of the chart.
// It has no side effect.
func ComputeLayout(records []sales.Record, cfg Config) (Layout, error) {
	if err := sales.Validate(records); err != nil {
		return Layout{}, err
	}
	innerW, innerH := cfg.InnerWidth(), cfg.InnerHeight()
	l := Layout{
		Width:       cfg.Width,
		Height:      cfg.Height,
		OriginX:     cfg.Margin.Left,
		OriginY:     cfg.Margin.Top,
		InnerWidth:  innerW,
		InnerHeight: innerH,
		X:           scale.Band{Domain: sales.Categories(records), Range: [2]float64{0, innerW}},
		Y:           scale.Linear{Domain: [2]float64{0, sales.Max(records)}, Range: [2]float64{innerH, 0}},
		LegendX:     innerW - cfg.Legend.OffsetX,
		LegendY:     innerH - cfg.Legend.OffsetY,
	}

	l.Marks = make([]Mark, len(records))
	for i, r := range records {
		// a repeated category shares the band of its first occurrence
		x, _ := l.X.Position(r.Category)
		l.Marks[i] = Mark{
			X:      x,
			Y:      l.Y.Scale(r.Value),
			Radius: cfg.Radius,
			Fill:   cfg.Palette.ColorFor(r.Group),
			Record: r,
		}
	}

	seen := make(map[string]bool)
	for _, r := range records {
		if cfg.Legend.Dedupe {
			if seen[r.Group] {
				continue
			}
			seen[r.Group] = true
		}
		l.Legend = append(l.Legend, LegendRow{
			Y:     float64(len(l.Legend)) * cfg.Legend.RowHeight,
			Fill:  cfg.Palette.ColorFor(r.Group),
			Label: r.Group,
		})
	}

	// ticks are centered on the band, minus the half pixel offset
	center := math.Max(0, l.X.Bandwidth()-1) / 2
	for i, c := range l.X.Domain {
		label := c
		if cfg.ShortLabels {
			label = sales.ShortCategory(c)
		}
		l.XTicks = append(l.XTicks, Tick{Pos: l.X.At(i) + center, Label: label})
	}
	format := l.Y.TickFormat(cfg.YTicks)
	for _, v := range l.Y.Ticks(cfg.YTicks) {
		l.YTicks = append(l.YTicks, Tick{Pos: l.Y.Scale(v), Label: format(v)})
	}
	return l, nil
}
