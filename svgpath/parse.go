package svgpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errParamMismatch = errors.New("svgpath: parameter mismatch")

// number of arguments of each supported command
var commandArgs = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'Z': 0,
}

// pathCursor holds the state needed to compile path data
type pathCursor struct {
	path                Path
	placeX, placeY      float64 // current point
	startX, startY      float64 // start of the current sub-path
	ctrlX, ctrlY        float64 // last control point, for S and T
	points              []float64
	prevCubic, prevQuad bool
}

// ParseData compiles SVG path data (the d attribute) into a Path.
// The commands M, L, H, V, C, S, Q, T and Z, absolute and relative,
// are supported. Elliptical arcs are not.
func ParseData(d string) (Path, error) {
	var c pathCursor
	err := c.compile(d)
	return c.path, err
}

func (c *pathCursor) compile(d string) error {
	d = strings.TrimSpace(d)
	i := 0
	for i < len(d) {
		cmd := d[i]
		if isSeparator(cmd) {
			i++
			continue
		}
		if !isCommand(cmd) {
			return fmt.Errorf("svgpath: unexpected character %q in path data", cmd)
		}
		j := i + 1
		for j < len(d) && !isCommand(d[j]) {
			j++
		}
		if err := c.readNumbers(d[i+1 : j]); err != nil {
			return err
		}
		if err := c.addSeg(cmd); err != nil {
			return err
		}
		i = j
	}
	return nil
}

func isSeparator(b byte) bool {
	return b == ' ' || b == ',' || b == '\n' || b == '\t' || b == '\r'
}

func isCommand(b byte) bool {
	// e and E are exponents, not commands
	if b == 'e' || b == 'E' {
		return false
	}
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// readNumbers splits s into floats, handling the compact forms
// "1-2" and "0.5.5".
func (c *pathCursor) readNumbers(s string) error {
	c.points = c.points[:0]
	start := -1
	seenDot, seenExp := false, false
	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		f, err := strconv.ParseFloat(s[start:end], 64)
		if err != nil {
			return err
		}
		c.points = append(c.points, f)
		start, seenDot, seenExp = -1, false, false
		return nil
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case isSeparator(b):
			if err := flush(i); err != nil {
				return err
			}
		case b == '-' || b == '+':
			if start >= 0 && !(s[i-1] == 'e' || s[i-1] == 'E') {
				if err := flush(i); err != nil {
					return err
				}
			}
			if start < 0 {
				start = i
			}
		case b == '.':
			if seenDot || seenExp {
				if err := flush(i); err != nil {
					return err
				}
			}
			if start < 0 {
				start = i
			}
			seenDot = true
		case b == 'e' || b == 'E':
			seenExp = true
		default:
			if start < 0 {
				start = i
			}
		}
	}
	return flush(len(s))
}

func (c *pathCursor) moveTo(x, y float64) {
	c.path.Start(ToFixedP(x, y))
	c.placeX, c.placeY = x, y
	c.startX, c.startY = x, y
}

func (c *pathCursor) lineTo(x, y float64) {
	c.path.Line(ToFixedP(x, y))
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) addSeg(cmd byte) error {
	upper := cmd &^ 0x20 // ASCII upper case
	rel := cmd != upper
	n, ok := commandArgs[upper]
	if !ok {
		return fmt.Errorf("svgpath: unsupported path command %q", cmd)
	}
	if n == 0 {
		if len(c.points) != 0 {
			return errParamMismatch
		}
		c.path.Stop(true)
		c.placeX, c.placeY = c.startX, c.startY
		c.prevCubic, c.prevQuad = false, false
		return nil
	}
	if len(c.points) == 0 || len(c.points)%n != 0 {
		return errParamMismatch
	}
	for k := 0; k < len(c.points); k += n {
		pts := c.points[k : k+n]
		var ox, oy float64
		if rel {
			ox, oy = c.placeX, c.placeY
		}
		cubic, quad := false, false
		switch upper {
		case 'M':
			if k == 0 {
				c.moveTo(pts[0]+ox, pts[1]+oy)
			} else { // implicit line to
				c.lineTo(pts[0]+ox, pts[1]+oy)
			}
		case 'L':
			c.lineTo(pts[0]+ox, pts[1]+oy)
		case 'H':
			c.lineTo(pts[0]+ox, c.placeY)
		case 'V':
			c.lineTo(c.placeX, pts[0]+oy)
		case 'C':
			c.cubic(pts[0]+ox, pts[1]+oy, pts[2]+ox, pts[3]+oy, pts[4]+ox, pts[5]+oy)
			cubic = true
		case 'S':
			x1, y1 := c.placeX, c.placeY
			if c.prevCubic {
				x1, y1 = 2*c.placeX-c.ctrlX, 2*c.placeY-c.ctrlY
			}
			c.cubic(x1, y1, pts[0]+ox, pts[1]+oy, pts[2]+ox, pts[3]+oy)
			cubic = true
		case 'Q':
			c.quad(pts[0]+ox, pts[1]+oy, pts[2]+ox, pts[3]+oy)
			quad = true
		case 'T':
			x1, y1 := c.placeX, c.placeY
			if c.prevQuad {
				x1, y1 = 2*c.placeX-c.ctrlX, 2*c.placeY-c.ctrlY
			}
			c.quad(x1, y1, pts[0]+ox, pts[1]+oy)
			quad = true
		}
		c.prevCubic, c.prevQuad = cubic, quad
	}
	return nil
}

func (c *pathCursor) cubic(x1, y1, x2, y2, x, y float64) {
	c.path.CubeBezier(ToFixedP(x1, y1), ToFixedP(x2, y2), ToFixedP(x, y))
	c.ctrlX, c.ctrlY = x2, y2
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) quad(x1, y1, x, y float64) {
	c.path.QuadBezier(ToFixedP(x1, y1), ToFixedP(x, y))
	c.ctrlX, c.ctrlY = x1, y1
	c.placeX, c.placeY = x, y
}
