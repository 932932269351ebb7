package chart

import (
	"math"
	"testing"
)

func TestArcContains(t *testing.T) {
	a := Arc{Inner: 50, Outer: 100, Start: 0, End: math.Pi / 2}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"upper right quadrant", 50, -50, true},
		{"straight up", 0, -75, true},
		{"straight right", 75, 0, true},
		{"inside hole", 10, -10, false},
		{"beyond outer", 80, -80, false},
		{"lower right quadrant", 50, 50, false},
		{"upper left quadrant", -50, -50, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestArcContainsSwappedRadiiAndFullCircle(t *testing.T) {
	a := Arc{Inner: 100, Outer: 50, Start: 0, End: 2 * math.Pi}
	if !a.Contains(-60, 30) {
		t.Error("full circle with swapped radii should contain a point in the ring")
	}
	if (Arc{Inner: 0, Outer: 10, Start: 1, End: 1}).Contains(1, 1) {
		t.Error("zero-span arc contains nothing")
	}
}

func TestArcContainsWrapsPastTwelve(t *testing.T) {
	// A slice ending at 2π contains points just left of 12 o'clock.
	a := Arc{Inner: 0, Outer: 100, Start: 3 * math.Pi / 2, End: 2 * math.Pi}
	if !a.Contains(-10, -50) {
		t.Error("upper left quadrant should be inside")
	}
	if a.Contains(10, -50) {
		t.Error("upper right quadrant should be outside")
	}
}

func TestArcCentroid(t *testing.T) {
	x, y := Arc{Inner: 40, Outer: 60, Start: 0, End: math.Pi}.Centroid()
	if math.Abs(x-50) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("Centroid = (%v, %v), want (50, 0)", x, y)
	}
}

func TestArcPoint(t *testing.T) {
	tests := []struct {
		theta, x, y float64
	}{
		{0, 0, -10},
		{math.Pi / 2, 10, 0},
		{math.Pi, 0, 10},
	}
	for _, tt := range tests {
		x, y := arcPoint(10, tt.theta)
		if math.Abs(x-tt.x) > 1e-9 || math.Abs(y-tt.y) > 1e-9 {
			t.Errorf("arcPoint(10, %v) = (%v, %v), want (%v, %v)", tt.theta, x, y, tt.x, tt.y)
		}
	}
}

func TestPieSpansSumToFullCircle(t *testing.T) {
	slices := Pie([]float64{3, 1, 0, 4}, nil)
	if slices[0].Start != 0 {
		t.Errorf("first slice starts at %v, want 0", slices[0].Start)
	}
	total := 0.0
	for i, s := range slices {
		total += s.End - s.Start
		if i > 0 && s.Start != slices[i-1].End {
			t.Errorf("slice %d not contiguous", i)
		}
		if s.Index != i {
			t.Errorf("slice %d has Index %d; input order must be kept", i, s.Index)
		}
	}
	if math.Abs(total-2*math.Pi) > 1e-9 {
		t.Errorf("spans sum to %v, want 2π", total)
	}
	if slices[2].End != slices[2].Start {
		t.Error("zero value should get a zero span")
	}
}

func TestPieAllZero(t *testing.T) {
	for _, s := range Pie([]float64{0, 0}, nil) {
		if s.Start != 0 || s.End != 0 {
			t.Errorf("slice = %+v, want empty", s)
		}
	}
}

func TestMinSliceWeight(t *testing.T) {
	w := minSliceWeight(100)
	tests := []struct {
		v, want float64
	}{
		{0, 0},
		{0.2, 1},
		{0.99, 1},
		{1, 1},
		{50, 50},
	}
	for _, tt := range tests {
		if got := w(tt.v); got != tt.want {
			t.Errorf("weight(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestPieWithFloorKeepsTrueValue(t *testing.T) {
	slices := Pie([]float64{1, 99}, minSliceWeight(100))
	deg := 180 / math.Pi
	if got := (slices[0].End - slices[0].Start) * deg; math.Abs(got-3.6) > 1e-9 {
		t.Errorf("span = %v°, want 3.6°", got)
	}
	if got := (slices[1].End - slices[1].Start) * deg; math.Abs(got-356.4) > 1e-9 {
		t.Errorf("span = %v°, want 356.4°", got)
	}
	if percentLabel(slices[0].Value, 100) != "1.0%" || percentLabel(slices[1].Value, 100) != "99.0%" {
		t.Error("labels should use the true values")
	}
}

func TestNumberFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"toFixed1 pads", toFixed1(33), "33.0"},
		{"toFixed1 thirds", toFixed1(100.0 / 3), "33.3"},
		{"integer value", formatValue(42), "42"},
		{"fractional value", formatValue(2.5), "2.5"},
		{"negative value", formatValue(-3), "-3"},
		{"percent", percentLabel(1, 8), "12.5%"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestToFixed1RoundsExactValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.15, "0.1"}, // stored as 0.1499999...
		{1.15, "1.1"},
		{1.45, "1.4"},
		{0.25, "0.3"}, // exact tie
		{1.25, "1.3"},
		{12.25, "12.3"},
		{-1.25, "-1.3"},
		{0.05, "0.1"}, // stored as 0.05000000000000000277
		{99.95, "100.0"},
		{0, "0.0"},
	}
	for _, tt := range tests {
		if got := toFixed1(tt.in); got != tt.want {
			t.Errorf("toFixed1(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercentLabelSmallShares(t *testing.T) {
	tests := []struct {
		value, total float64
		want         string
	}{
		{3, 2000, "0.1%"},
		{7, 2000, "0.3%"},
		{23, 2000, "1.1%"},
		{29, 2000, "1.4%"},
		{5, 2000, "0.3%"},
	}
	for _, tt := range tests {
		if got := percentLabel(tt.value, tt.total); got != tt.want {
			t.Errorf("percentLabel(%v, %v) = %q, want %q", tt.value, tt.total, got, tt.want)
		}
	}
}

func TestCountRectWidth(t *testing.T) {
	tests := []struct {
		v    float64
		want float64
	}{
		{0, 26},
		{10, 32},
		{100, 38},
		{2.5, 38},
	}
	for _, tt := range tests {
		if got := countRectWidth(tt.v); got != tt.want {
			t.Errorf("countRectWidth(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestTooltipAnchor(t *testing.T) {
	x, y := tooltipAnchor(100, 50)
	if x != 120 || y != 75 {
		t.Errorf("anchor = (%v, %v), want (120, 75)", x, y)
	}
}

func TestLegendOffsets(t *testing.T) {
	got := legendOffsets([]float64{30, 50, 10}, 46)
	want := []float64{0, 76, 172}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("offset[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if w := legendTotalWidth([]float64{30, 50, 10}, 20, 6, 20); w != 90+60+18+40 {
		t.Errorf("total width = %v, want %v", w, 90+60+18+40)
	}
	if w := legendTotalWidth(nil, 20, 6, 20); w != 0 {
		t.Errorf("empty legend width = %v", w)
	}
}

func TestStripePolygonsStayInside(t *testing.T) {
	const w, h = 40, 25
	polys := stripePolygons(w, h, 12, 6)
	if len(polys) == 0 {
		t.Fatal("expected stripes")
	}
	area := 0.0
	for _, p := range polys {
		if len(p) < 3 {
			t.Fatalf("degenerate stripe %v", p)
		}
		for _, v := range p {
			if v.X < -1e-9 || v.X > w+1e-9 || v.Y < -1e-9 || v.Y > h+1e-9 {
				t.Errorf("vertex %v outside %vx%v", v, w, h)
			}
		}
		area += polygonArea(p)
	}
	// Half of every period is stripe; edge effects stay within a stripe's
	// worth of area.
	if frac := area / (w * h); frac < 0.35 || frac > 0.65 {
		t.Errorf("coverage = %v, want about 0.5", frac)
	}
}

func TestStripePolygonsDegenerate(t *testing.T) {
	tests := []struct {
		name             string
		w, h, period, sw float64
	}{
		{"zero width", 0, 10, 12, 6},
		{"zero height", 10, 0, 12, 6},
		{"zero period", 10, 10, 0, 6},
		{"zero stripe", 10, 10, 12, 0},
	}
	for _, tt := range tests {
		if got := stripePolygons(tt.w, tt.h, tt.period, tt.sw); got != nil {
			t.Errorf("%s: got %d stripes", tt.name, len(got))
		}
	}
}

func TestClipHalfPlane(t *testing.T) {
	square := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	left := clipHalfPlane(square, func(p Vec2) float64 { return 5 - p.X })
	if a := polygonArea(left); math.Abs(a-50) > 1e-9 {
		t.Errorf("clipped area = %v, want 50", a)
	}
	if got := clipHalfPlane(square, func(p Vec2) float64 { return -1 }); len(got) != 0 {
		t.Errorf("fully clipped polygon = %v", got)
	}
}

// polygonArea is the unsigned shoelace area.
func polygonArea(p []Vec2) float64 {
	a := 0.0
	for i := range p {
		j := (i + 1) % len(p)
		a += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return math.Abs(a) / 2
}
