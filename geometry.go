package chart

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Arc is an annular sector centered on the origin. Angles are in radians,
// measured clockwise from 12 o'clock, matching the pie layout.
type Arc struct {
	Inner, Outer float64
	Start, End   float64
}

// Span returns the angular extent of the arc.
func (a Arc) Span() float64 {
	return a.End - a.Start
}

// Centroid returns the midpoint of the arc's radial and angular extent.
func (a Arc) Centroid() (x, y float64) {
	r := (a.Inner + a.Outer) / 2
	t := (a.Start+a.End)/2 - math.Pi/2
	return math.Cos(t) * r, math.Sin(t) * r
}

// Contains reports whether (x, y) lies inside the sector. Radii may be given
// in either order.
func (a Arc) Contains(x, y float64) bool {
	inner, outer := a.Inner, a.Outer
	if inner > outer {
		inner, outer = outer, inner
	}
	r := math.Hypot(x, y)
	if r < inner || r > outer {
		return false
	}
	start, end := a.Start, a.End
	if start > end {
		start, end = end, start
	}
	if end-start >= 2*math.Pi {
		return true
	}
	if end == start {
		return false
	}
	theta := math.Atan2(x, -y) // 0 at 12 o'clock, clockwise positive
	theta = normalizeAngle(theta - start)
	return theta <= end-start
}

// arcPoint returns the point at radius r and pie angle theta.
func arcPoint(r, theta float64) (float64, float64) {
	return r * math.Sin(theta), -r * math.Cos(theta)
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// PieSlice is the angular allocation of one pie value.
type PieSlice struct {
	Index      int
	Value      float64 // true value, used for labels
	Weight     float64 // value the sweep was computed from
	Start, End float64
}

// Pie lays values out clockwise from 12 o'clock over the full circle, in
// input order. weight maps a value to its sweep weight; nil uses the value.
// Non-positive weights get a zero sweep. When no weight is positive every
// slice is empty.
func Pie(values []float64, weight func(float64) float64) []PieSlice {
	slices := make([]PieSlice, len(values))
	sum := 0.0
	for i, v := range values {
		w := v
		if weight != nil {
			w = weight(v)
		}
		slices[i] = PieSlice{Index: i, Value: v, Weight: w}
		if w > 0 {
			sum += w
		}
	}
	k := 0.0
	if sum > 0 {
		k = 2 * math.Pi / sum
	}
	a := 0.0
	for i := range slices {
		span := 0.0
		if slices[i].Weight > 0 {
			span = slices[i].Weight * k
		}
		slices[i].Start = a
		a += span
		slices[i].End = a
	}
	return slices
}

// minSliceWeight floors any non-zero value below 1% of total to exactly 1%
// of total so tiny slices stay visible.
func minSliceWeight(total float64) func(float64) float64 {
	return func(v float64) float64 {
		if v != 0 && v/total < 0.01 {
			return total / 100
		}
		return v
	}
}

// toFixed1 formats v with one decimal. Rounding works on the exact binary
// value of v, so 0.15 (stored just below 0.15) gives "0.1"; only an exact
// tie such as 1.25 rounds away from zero.
func toFixed1(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	tenths, tie := exactTenths(math.Abs(v))
	if !tie {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	tenths.Add(tenths, big.NewInt(1))
	q, r := new(big.Int).QuoRem(tenths, big.NewInt(10), new(big.Int))
	s := q.String() + "." + r.String()
	if math.Signbit(v) {
		s = "-" + s
	}
	return s
}

// exactTenths returns floor(v*10) and whether v*10 lies exactly halfway
// between two integers. v must be finite and non-negative.
func exactTenths(v float64) (*big.Int, bool) {
	// 64 bits hold any float64 mantissa times 10 without rounding.
	x := new(big.Float).SetPrec(64).SetFloat64(v)
	x.Mul(x, big.NewFloat(10))
	n, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(64).Sub(x, new(big.Float).SetInt(n))
	return n, frac.Cmp(big.NewFloat(0.5)) == 0
}

// formatValue renders a number the shortest way that round-trips.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// percentLabel is the "12.5%" text for value out of total.
func percentLabel(value, total float64) string {
	return toFixed1(value*100/total) + "%"
}

// digitCount is the character length of the value's printed form.
func digitCount(v float64) int {
	return len(formatValue(v))
}

// countRectWidth sizes the pill drawn behind a column's count label.
func countRectWidth(v float64) float64 {
	return float64(digitCount(v)*6 + 20)
}

const (
	tooltipOffsetX = 20
	tooltipOffsetY = 25
)

// tooltipAnchor places the tooltip relative to a chart-local pointer position.
func tooltipAnchor(px, py float64) (float64, float64) {
	return px + tooltipOffsetX, py + tooltipOffsetY
}

// legendOffsets returns the x offset of each series' legend entry. widths
// holds the measured text width of each series label; every entry after the
// first is shifted by the previous entry's text width plus gap.
func legendOffsets(widths []float64, gap float64) []float64 {
	offsets := make([]float64, len(widths))
	for i := 1; i < len(widths); i++ {
		offsets[i] = offsets[i-1] + widths[i-1] + gap
	}
	return offsets
}

// legendTotalWidth is the horizontal footprint of a legend row with
// len(widths) series.
func legendTotalWidth(widths []float64, swatch, gapText, gapLegend float64) float64 {
	n := float64(len(widths))
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range widths {
		sum += w
	}
	return sum + swatch*n + gapText*n + gapLegend*(n-1)
}

// stripePolygons returns the 45° hatch stripes (running from upper right to
// lower left) of a w×h rectangle at the origin, each clipped to the
// rectangle. period is the perpendicular distance between stripe starts and
// thickness the perpendicular width of each stripe.
func stripePolygons(w, h, period, thickness float64) [][]Vec2 {
	if w <= 0 || h <= 0 || period <= 0 || thickness <= 0 {
		return nil
	}
	rect := []Vec2{{0, 0}, {w, 0}, {w, h}, {0, h}}
	step := period * math.Sqrt2
	band := thickness * math.Sqrt2
	var out [][]Vec2
	// Bands c <= x + y <= c + band across the rectangle's diagonal extent.
	for c := 0.0; c < w+h; c += step {
		lo, hi := c, c+band
		poly := clipHalfPlane(rect, func(p Vec2) float64 { return p.X + p.Y - lo })
		poly = clipHalfPlane(poly, func(p Vec2) float64 { return hi - p.X - p.Y })
		if len(poly) >= 3 {
			out = append(out, poly)
		}
	}
	return out
}

// clipHalfPlane keeps the part of a convex polygon where side(p) >= 0.
func clipHalfPlane(poly []Vec2, side func(Vec2) float64) []Vec2 {
	if len(poly) == 0 {
		return nil
	}
	var out []Vec2
	prev := poly[len(poly)-1]
	prevSide := side(prev)
	for _, cur := range poly {
		curSide := side(cur)
		if (curSide >= 0) != (prevSide >= 0) {
			t := prevSide / (prevSide - curSide)
			out = append(out, Vec2{X: prev.X + (cur.X-prev.X)*t, Y: prev.Y + (cur.Y-prev.Y)*t})
		}
		if curSide >= 0 {
			out = append(out, cur)
		}
		prev, prevSide = cur, curSide
	}
	return out
}

// String describes the arc for debug output.
func (a Arc) String() string {
	return fmt.Sprintf("arc(r=%.1f..%.1f, θ=%.3f..%.3f)", a.Inner, a.Outer, a.Start, a.End)
}
