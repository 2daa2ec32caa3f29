// Package scale maps data values to positions along an axis.
package scale

// Band maps an ordered list of categories to equal-width intervals
// of Range. There is no padding between bands.
// Duplicated entries of Domain get their own band.
type Band struct {
	Domain []string
	Range  [2]float64
}

// Step returns the distance between the starts of adjacent bands.
func (b Band) Step() float64 {
	n := len(b.Domain)
	if n == 0 {
		n = 1
	}
	return (b.Range[1] - b.Range[0]) / float64(n)
}

// Bandwidth returns the width of each band.
func (b Band) Bandwidth() float64 { return b.Step() }

// At returns the start of the i-th band.
func (b Band) At(i int) float64 {
	return b.Range[0] + b.Step()*float64(i)
}

// Index returns the position of the first band for category,
// or -1 if it is not in the domain.
func (b Band) Index(category string) int {
	for i, c := range b.Domain {
		if c == category {
			return i
		}
	}
	return -1
}

// Position returns the start of the band of category.
func (b Band) Position(category string) (float64, bool) {
	i := b.Index(category)
	if i < 0 {
		return 0, false
	}
	return b.At(i), true
}
