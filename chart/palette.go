package chart

// DefaultColor is used for groups without an entry.
const DefaultColor = "orange"

var builtinColors = map[string]string{
	"Product A": "red",
	"Product B": "blue",
	"Product C": "green",
	"Product D": "yellow",
}

// Palette maps a group to an SVG color.
type Palette struct {
	Colors  map[string]string `yaml:"colors"`
	Default string            `yaml:"default"`
}

// DefaultPalette returns a copy of the built-in table.
func DefaultPalette() Palette {
	colors := make(map[string]string, len(builtinColors))
	for k, v := range builtinColors {
		colors[k] = v
	}
	return Palette{Colors: colors, Default: DefaultColor}
}

// ColorFor returns the color of group. The mapping is total:
// unknown groups get the default color.
func (p Palette) ColorFor(group string) string {
	colors := p.Colors
	if len(colors) == 0 {
		colors = builtinColors
	}
	if c, ok := colors[group]; ok && c != "" {
		return c
	}
	if p.Default != "" {
		return p.Default
	}
	return DefaultColor
}
