package chart

// Margin is the space reserved around the inner drawing area.
type Margin struct {
	Top    float64 `yaml:"top" json:"top"`
	Right  float64 `yaml:"right" json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Left   float64 `yaml:"left" json:"left"`
}

// LegendConfig positions the legend rows.
type LegendConfig struct {
	// OffsetX and OffsetY are measured leftwards and upwards from
	// the bottom right corner of the inner area.
	OffsetX   float64 `yaml:"offset_x"`
	OffsetY   float64 `yaml:"offset_y"`
	RowHeight float64 `yaml:"row_height"`
	LabelX    float64 `yaml:"label_x"`
	LabelY    float64 `yaml:"label_y"`
	// Dedupe keeps only the first row of each group.
	// By default there is one row per record.
	Dedupe bool `yaml:"dedupe"`
}

// Config holds the geometry and styling of a chart.
type Config struct {
	Width   float64      `yaml:"width"`
	Height  float64      `yaml:"height"`
	Margin  Margin       `yaml:"margin"`
	Radius  float64      `yaml:"radius"`
	Legend  LegendConfig `yaml:"legend"`
	Palette Palette      `yaml:"palette"`
	YTicks  int          `yaml:"y_ticks"`

	// ShortLabels writes the bottom axis labels as ISO 3166
	// alpha-2 codes when the category is a known country.
	ShortLabels bool `yaml:"short_labels"`
}

// DefaultConfig returns the 500x400 layout.
func DefaultConfig() Config {
	return Config{
		Width:  500,
		Height: 400,
		Margin: Margin{Top: 20, Right: 20, Bottom: 30, Left: 40},
		Radius: 5,
		Legend: LegendConfig{
			OffsetX:   100,
			OffsetY:   100,
			RowHeight: 20,
			LabelX:    10,
			LabelY:    5,
		},
		Palette: DefaultPalette(),
		YTicks:  10,
	}
}

// InnerWidth returns the width of the area inside the margins.
func (c Config) InnerWidth() float64 { return c.Width - c.Margin.Left - c.Margin.Right }

// InnerHeight returns the height of the area inside the margins.
func (c Config) InnerHeight() float64 { return c.Height - c.Margin.Top - c.Margin.Bottom }
