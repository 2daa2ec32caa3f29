package scale

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Linear maps the interval Domain onto Range.
// Range may be inverted, as for a vertical axis growing upward.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// Scale returns the position of v. A degenerate domain maps
// every value to the middle of the range.
func (l Linear) Scale(v float64) float64 {
	d0, d1 := l.Domain[0], l.Domain[1]
	r0, r1 := l.Range[0], l.Range[1]
	if d0 == d1 {
		return (r0 + r1) / 2
	}
	return r0 + (v-d0)/(d1-d0)*(r1-r0)
}

// Invert returns the value whose position is y.
func (l Linear) Invert(y float64) float64 {
	d0, d1 := l.Domain[0], l.Domain[1]
	r0, r1 := l.Range[0], l.Range[1]
	if r0 == r1 {
		return (d0 + d1) / 2
	}
	return d0 + (y-r0)/(r1-r0)*(d1-d0)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec returns the integer bounds i1, i2 and the increment of
// about count round ticks in [start, stop]. A negative inc is the inverse
// of the step, used for steps below 1 to avoid rounding errors.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1, i2 = math.Round(start*inc), math.Round(stop*inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1, i2 = math.Round(start/inc), math.Round(stop/inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// tickStep returns the distance between ticks, always positive.
func tickStep(start, stop, count float64) float64 {
	if stop < start {
		start, stop = stop, start
	}
	_, _, inc := tickSpec(start, stop, count)
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}

// Ticks returns about count round values spanning the domain, in the
// domain order.
func (l Linear) Ticks(count int) []float64 {
	start, stop := l.Domain[0], l.Domain[1]
	if count <= 0 {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if !(i2 >= i1) {
		return nil
	}
	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := range ticks {
		if inc < 0 {
			ticks[i] = (i1 + float64(i)) / -inc
		} else {
			ticks[i] = (i1 + float64(i)) * inc
		}
	}
	if reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// exponent returns the decimal exponent of x, read from its
// scientific notation: 0.001 is 1e-03.
func exponent(x float64) int {
	s := strconv.FormatFloat(math.Abs(x), 'e', -1, 64)
	e, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	return e
}

// TickFormat returns a formatter for the values of Ticks(count):
// thousands are grouped, and the number of decimals is the one
// needed by the tick step.
func (l Linear) TickFormat(count int) func(float64) string {
	precision := 0
	if count > 0 && l.Domain[0] != l.Domain[1] {
		step := tickStep(l.Domain[0], l.Domain[1], float64(count))
		if e := exponent(step); e < 0 {
			precision = -e
		}
	}
	p := message.NewPrinter(language.English)
	format := fmt.Sprintf("%%.%df", precision)
	return func(v float64) string {
		return p.Sprintf(format, v)
	}
}
