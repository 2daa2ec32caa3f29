package chart

import (
	"github.com/benoitkugler/salesplot/internal/logging"
	"github.com/benoitkugler/salesplot/sales"
	"github.com/benoitkugler/salesplot/svgdoc"
)

// d3 axis constants
const (
	tickSize    = 6
	tickPadding = 3
	tickSpacing = tickSize + tickPadding
	halfPixel   = 0.5
)

// Draw computes the layout of records and appends the chart to s:
// the legend, one circle per record and the two axes.
// A nil surface is skipped without error. Invalid records return an error
// and leave s untouched.
func Draw(s *svgdoc.Surface, records []sales.Record, cfg Config) (Layout, error) {
	if s == nil {
		logging.Logger().Debug("chart: no surface, draw skipped")
		return Layout{}, nil
	}
	l, _, err := draw(s, records, cfg)
	return l, err
}

func draw(s *svgdoc.Surface, records []sales.Record, cfg Config) (Layout, *svgdoc.Element, error) {
	l, err := ComputeLayout(records, cfg)
	if err != nil {
		return Layout{}, nil, err
	}
	g := l.appendTo(s.Root(), cfg)
	logging.Logger().Debug("chart: drawn", "marks", len(l.Marks), "legend_rows", len(l.Legend))
	return l, g, nil
}

// appendTo sets the size of root and appends the chart group, which is returned.
func (l Layout) appendTo(root *svgdoc.Element, cfg Config) *svgdoc.Element {
	root.SetFloat("width", l.Width).SetFloat("height", l.Height)
	g := root.Append("g").Set("transform", svgdoc.Translate(l.OriginX, l.OriginY))

	legend := g.Append("g").Set("class", "legend").Set("transform", svgdoc.Translate(l.LegendX, l.LegendY))
	for _, row := range l.Legend {
		item := legend.Append("g").Set("transform", svgdoc.Translate(0, row.Y))
		item.Append("circle").SetFloat("r", cfg.Radius).Set("fill", row.Fill)
		item.Append("text").SetFloat("x", cfg.Legend.LabelX).SetFloat("y", cfg.Legend.LabelY).SetText(row.Label)
	}

	for _, m := range l.Marks {
		g.Append("circle").Set("class", "mark").
			SetFloat("cx", m.X).SetFloat("cy", m.Y).SetFloat("r", m.Radius).Set("fill", m.Fill)
	}

	xAxis := g.Append("g").Set("class", "x-axis").Set("transform", svgdoc.Translate(0, l.InnerHeight))
	axisBottom(xAxis, l.X.Range, l.XTicks)

	yAxis := g.Append("g").Set("class", "y-axis")
	axisLeft(yAxis, l.Y.Range, l.YTicks)
	return g
}

// axisAttrs sets the presentation attributes d3 puts on an axis group.
func axisAttrs(g *svgdoc.Element, anchor string) {
	g.Set("fill", "none").Set("font-size", "10").Set("font-family", "sans-serif").Set("text-anchor", anchor)
}

func axisBottom(g *svgdoc.Element, rng [2]float64, ticks []Tick) {
	axisAttrs(g, "middle")
	r0, r1 := svgdoc.FormatFloat(rng[0]+halfPixel), svgdoc.FormatFloat(rng[1]+halfPixel)
	g.Append("path").Set("class", "domain").Set("stroke", "currentColor").
		Set("d", "M"+r0+","+svgdoc.FormatFloat(tickSize)+"V"+svgdoc.FormatFloat(halfPixel)+"H"+r1+"V"+svgdoc.FormatFloat(tickSize))
	for _, t := range ticks {
		tick := g.Append("g").Set("class", "tick").Set("opacity", "1").
			Set("transform", svgdoc.Translate(t.Pos+halfPixel, 0))
		tick.Append("line").Set("stroke", "currentColor").SetFloat("y2", tickSize)
		tick.Append("text").Set("fill", "currentColor").SetFloat("y", tickSpacing).Set("dy", "0.71em").SetText(t.Label)
	}
}

func axisLeft(g *svgdoc.Element, rng [2]float64, ticks []Tick) {
	axisAttrs(g, "end")
	r0, r1 := svgdoc.FormatFloat(rng[0]+halfPixel), svgdoc.FormatFloat(rng[1]+halfPixel)
	g.Append("path").Set("class", "domain").Set("stroke", "currentColor").
		Set("d", "M"+svgdoc.FormatFloat(-tickSize)+","+r0+"H"+svgdoc.FormatFloat(halfPixel)+"V"+r1+"H"+svgdoc.FormatFloat(-tickSize))
	for _, t := range ticks {
		tick := g.Append("g").Set("class", "tick").Set("opacity", "1").
			Set("transform", svgdoc.Translate(0, t.Pos+halfPixel))
		tick.Append("line").Set("stroke", "currentColor").SetFloat("x2", -tickSize)
		tick.Append("text").Set("fill", "currentColor").SetFloat("x", -tickSpacing).Set("dy", "0.32em").SetText(t.Label)
	}
}
