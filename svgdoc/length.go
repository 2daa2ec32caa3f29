package svgdoc

import (
	"strconv"
	"strings"
)

// ParseLength parses a length attribute, accepting an optional "px" unit.
func ParseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	return strconv.ParseFloat(s, 64)
}
