package chart

import (
	"log/slog"
	"math"
	"strings"
	"testing"
)

func newColumnScene(t *testing.T, cfg *ColumnConfig) (*Scene, *GroupedColumnChart) {
	t.Helper()
	s := NewScene()
	c := NewGroupedColumnChart(WithFont(testFont))
	c.Init(s.Root(), fixedContainer(1000, 1000))
	c.OnConfigChanged(cfg)
	settle(s.Root())
	return s, c
}

func barNode(t *testing.T, c *GroupedColumnChart, key string) *Node {
	t.Helper()
	n := c.bars.node(key)
	if n == nil {
		t.Fatalf("no bar %q", key)
	}
	return n
}

func TestColumnLayoutHeightsAddUp(t *testing.T) {
	tests := []struct {
		name   string
		legend *bool
	}{
		{"with legend", nil},
		{"without legend", Bool(false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := columnTestConfig()
			cfg.DrawLegend = tt.legend
			_, c := newColumnScene(t, cfg)
			l := c.Layout()
			if got := l.ColumnAreaHeight + l.LabelHeight + l.LegendHeight; math.Abs(got-300) > 1e-9 {
				t.Errorf("sum = %v, want 300", got)
			}
		})
	}
}

func TestColumnMeasuredLayout(t *testing.T) {
	_, c := newColumnScene(t, columnTestConfig())
	l := c.Layout()

	// Swatch 0..20, legend text baseline at 20-12*0.3 with an 8px ascent and
	// a 12px line: 8.4..20.4. Plus the 20px gap.
	if math.Abs(l.LegendHeight-40.4) > 1e-9 {
		t.Errorf("LegendHeight = %v, want 40.4", l.LegendHeight)
	}
	// Domain line at 0, labels from labelTopPadding down one line.
	if math.Abs(l.LabelHeight-32) > 1e-9 {
		t.Errorf("LabelHeight = %v, want 32", l.LabelHeight)
	}
	if math.Abs(c.axis.Y-l.ColumnAreaHeight) > 1e-9 {
		t.Errorf("axis Y = %v, want %v", c.axis.Y, l.ColumnAreaHeight)
	}
}

func TestColumnNoLegendMeasuresZero(t *testing.T) {
	cfg := columnTestConfig()
	cfg.DrawLegend = Bool(false)
	_, c := newColumnScene(t, cfg)
	if c.Layout().LegendHeight != 0 {
		t.Errorf("LegendHeight = %v, want 0", c.Layout().LegendHeight)
	}
	if c.legendEntries.len() != 0 {
		t.Errorf("legend entries = %d, want 0", c.legendEntries.len())
	}
}

func TestColumnBarHeightsProportional(t *testing.T) {
	_, c := newColumnScene(t, columnTestConfig())
	l := c.Layout()
	a := barNode(t, c, "s0/g0")
	b := barNode(t, c, "s0/g1")

	if math.Abs(b.Height-2*a.Height) > 1e-3 {
		t.Errorf("heights %v and %v, want 1:2", a.Height, b.Height)
	}
	// The tallest bar leaves room for its count pill.
	want := l.ColumnAreaHeight - DefaultGapBetweenColumnAndCount - DefaultCountRectHeight
	if math.Abs(b.Height-want) > 1e-3 {
		t.Errorf("max bar height = %v, want %v", b.Height, want)
	}
	// Bars stand on the baseline.
	for _, n := range []*Node{a, b} {
		if math.Abs(n.Y+n.Height-l.ColumnAreaHeight) > 1e-3 {
			t.Errorf("bar bottom = %v, want %v", n.Y+n.Height, l.ColumnAreaHeight)
		}
	}
}

func TestColumnBarsEnterFromBaseline(t *testing.T) {
	s := NewScene()
	c := NewGroupedColumnChart(WithFont(testFont))
	c.Init(s.Root(), fixedContainer(1000, 1000))
	c.OnConfigChanged(columnTestConfig())

	n := barNode(t, c, "s0/g1")
	if n.Height != 0 {
		t.Errorf("entering height = %v, want 0", n.Height)
	}
	if math.Abs(n.Y-c.Layout().ColumnAreaHeight) > 1e-9 {
		t.Errorf("entering Y = %v, want baseline", n.Y)
	}
	if !n.Animating() {
		t.Error("entering bar should animate")
	}
	updateTweens(s.Root(), 0.25)
	if n.Height <= 0 {
		t.Error("bar should grow")
	}
}

func TestColumnBarXFromScales(t *testing.T) {
	_, c := newColumnScene(t, columnTestConfig())
	x := NewBandScale([]string{"A", "B"}, 0, 400, 0.5, 0.3)
	xIn := NewBandScale([]string{"0"}, 0, x.Bandwidth(), 0.2, 0)

	n := barNode(t, c, "s0/g1")
	gx, _ := x.Position("B")
	if want := gx + xIn.At(0); math.Abs(n.X-want) > 1e-3 {
		t.Errorf("X = %v, want %v", n.X, want)
	}
	if math.Abs(n.Width-xIn.Bandwidth()) > 1e-3 {
		t.Errorf("Width = %v, want %v", n.Width, xIn.Bandwidth())
	}
}

func TestColumnCountLabels(t *testing.T) {
	cfg := columnTestConfig()
	cfg.Series = append(cfg.Series, Series{
		Legend: "S2", Color: "#00ff00", Striped: true,
		Data: []SeriesPoint{{Value: 5}, {Value: 100}},
	})
	_, c := newColumnScene(t, cfg)

	tests := []struct {
		key   string
		text  string
		width float64
	}{
		{"s0/g0", "10", 32},
		{"s0/g1", "20", 32},
		{"s1/g1", "100", 38},
		{"s1/g1/striped", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			txt := c.countTexts.node(tt.key)
			rect := c.countRects.node(tt.key)
			if txt == nil || rect == nil {
				t.Fatal("missing count nodes")
			}
			if txt.Text != tt.text {
				t.Errorf("text = %q, want %q", txt.Text, tt.text)
			}
			if math.Abs(rect.Width-tt.width) > 1e-3 {
				t.Errorf("pill width = %v, want %v", rect.Width, tt.width)
			}
		})
	}
}

func TestColumnStripedOverlay(t *testing.T) {
	cfg := columnTestConfig()
	cfg.Series[0].Striped = true
	_, c := newColumnScene(t, cfg)

	base := barNode(t, c, "s0/g0")
	over := barNode(t, c, "s0/g0/striped")
	if over.Pattern != PatternStripes || base.Pattern != PatternSolid {
		t.Error("overlay should be striped over a solid base")
	}
	if over.X != base.X || over.Height != base.Height {
		t.Error("overlay should cover its base bar")
	}
	if over.Alpha != columnBarStripeAlpha {
		t.Errorf("overlay alpha = %v, want %v", over.Alpha, columnBarStripeAlpha)
	}
	// Two legend entries for the one striped series, sharing an offset.
	if c.legendEntries.len() != 2 {
		t.Fatalf("legend entries = %d, want 2", c.legendEntries.len())
	}
	a := c.legendEntries.node("legend/s0")
	b := c.legendEntries.node("legend/s0/striped")
	if a.X != b.X {
		t.Error("striped swatch should overlay its series entry")
	}
	if b.ChildAt(1).Text != "" {
		t.Error("striped legend entry should carry no text")
	}
}

func TestColumnLegendOffsets(t *testing.T) {
	cfg := columnTestConfig()
	cfg.Series = append(cfg.Series, Series{Legend: "Second", Color: "#00ff00", Data: []SeriesPoint{{Value: 1}, {Value: 2}}})
	_, c := newColumnScene(t, cfg)

	first := c.legendEntries.node("legend/s0")
	second := c.legendEntries.node("legend/s1")
	// "S1" is 12px wide; entry pitch adds swatch, text gap and legend gap.
	if want := 12.0 + 20 + 6 + 20; math.Abs(second.X-first.X-want) > 1e-9 {
		t.Errorf("second entry offset = %v, want %v", second.X-first.X, want)
	}
	// The row is centered: 12+36 text, 2 swatches, 2 text gaps, 1 legend gap.
	all := 48.0 + 40 + 12 + 20
	if math.Abs(c.legend.X-(400-all)/2) > 1e-3 {
		t.Errorf("legend X = %v, want %v", c.legend.X, (400-all)/2)
	}
	if math.Abs(c.legend.Y-(300-DefaultLegendHeight)) > 1e-3 {
		t.Errorf("legend Y = %v, want %v", c.legend.Y, 300-DefaultLegendHeight)
	}
}

func TestColumnUpdateKeepsNodes(t *testing.T) {
	s, c := newColumnScene(t, columnTestConfig())
	before := barNode(t, c, "s0/g0")

	cfg := columnTestConfig()
	cfg.Series[0].Data[0].Value = 40
	c.OnConfigChanged(cfg)

	after := barNode(t, c, "s0/g0")
	if after != before {
		t.Error("re-render should update the existing bar")
	}
	if !after.Animating() {
		t.Error("update should tween")
	}
	settle(s.Root())
	if b := barNode(t, c, "s0/g1"); math.Abs(after.Height-2*b.Height) > 1e-3 {
		t.Errorf("heights %v and %v, want 2:1", after.Height, b.Height)
	}
}

func TestColumnRemovedLabelExits(t *testing.T) {
	_, c := newColumnScene(t, columnTestConfig())
	gone := barNode(t, c, "s0/g1")

	cfg := columnTestConfig()
	cfg.Labels = cfg.Labels[:1]
	c.OnConfigChanged(cfg)

	if !gone.IsDisposed() {
		t.Error("bar for the removed label should be disposed")
	}
	if c.bars.len() != 1 || c.ticks.len() != 1 || c.countTexts.len() != 1 {
		t.Errorf("layers = %d/%d/%d, want 1 each", c.bars.len(), c.ticks.len(), c.countTexts.len())
	}
}

func TestColumnNaturalIDKeys(t *testing.T) {
	cfg := columnTestConfig()
	cfg.Series[0].Data[0].ID = "x"
	_, c := newColumnScene(t, cfg)
	if c.bars.node("id:x") == nil {
		t.Error("bar should be keyed by its id")
	}
}

func TestColumnNilSeriesIsNoop(t *testing.T) {
	s := NewScene()
	c := NewGroupedColumnChart(WithFont(testFont))
	c.Init(s.Root(), fixedContainer(1000, 1000))
	c.OnConfigChanged(&ColumnConfig{Labels: []string{"A"}})
	if c.bars.len() != 0 {
		t.Error("nothing should render without series")
	}
}

// Bar (A, S1) spans x ≈ 66.7..142.9 and y ≈ 131.3..227.6.
const barAX, barAY = 100, 200

func TestColumnTooltip(t *testing.T) {
	s, c := newColumnScene(t, columnTestConfig())

	s.InjectHover(barAX, barAY)
	s.step(0)
	got, ok := c.TooltipText()
	if !ok {
		t.Fatal("tooltip should show while hovering")
	}
	if got != "33.3%" {
		t.Errorf("tooltip = %q, want 33.3%%", got)
	}
	if c.tooltip.X != barAX+tooltipOffsetX || c.tooltip.Y != barAY+tooltipOffsetY {
		t.Errorf("tooltip at (%v, %v)", c.tooltip.X, c.tooltip.Y)
	}
	if s.Cursor() != CursorPointer {
		t.Error("bars request the pointer cursor")
	}

	s.InjectHover(5, 5)
	s.step(0)
	if _, ok := c.TooltipText(); ok {
		t.Error("tooltip should hide on leave")
	}
}

func TestColumnTooltipSuppressedAfterClick(t *testing.T) {
	s, c := newColumnScene(t, columnTestConfig())
	var events []BarClickEvent
	c.OnBarClick(func(e BarClickEvent) { events = append(events, e) })

	s.InjectHover(barAX, barAY)
	s.InjectClick(barAX, barAY)
	for i := 0; i < 3; i++ {
		s.step(0)
	}
	if len(events) != 1 {
		t.Fatalf("clicks = %d, want 1", len(events))
	}
	if events[0].Data.Key != "s0/g0" || events[0].Data.Value != 10 {
		t.Errorf("clicked %+v", events[0].Data)
	}
	if _, ok := c.TooltipText(); ok {
		t.Error("click should hide the tooltip")
	}

	// Moving within the clicked bar keeps it hidden.
	s.InjectHover(barAX+1, barAY)
	s.step(0)
	if _, ok := c.TooltipText(); ok {
		t.Error("tooltip should stay hidden on a clicked bar")
	}

	// Leaving clears the flag.
	s.InjectHover(5, 5)
	s.step(0)
	s.InjectHover(barAX, barAY)
	s.step(0)
	if _, ok := c.TooltipText(); !ok {
		t.Error("tooltip should return after leaving and re-entering")
	}
}

func TestColumnShowPercentageOff(t *testing.T) {
	cfg := columnTestConfig()
	cfg.ShowPercentage = Bool(false)
	s, c := newColumnScene(t, cfg)
	clicks := 0
	c.OnBarClick(func(BarClickEvent) { clicks++ })

	s.InjectHover(barAX, barAY)
	s.step(0)
	if _, ok := c.TooltipText(); ok {
		t.Error("tooltip disabled by showPercentage")
	}
	s.InjectClick(barAX, barAY)
	s.step(0)
	s.step(0)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1 regardless of showPercentage", clicks)
	}
}

func TestColumnTooltipLabel(t *testing.T) {
	c := NewGroupedColumnChart(WithFont(testFont))
	c.data = columnDataset{totals: []float64{30, 0}}
	tests := []struct {
		rec  VisualRecord
		want string
	}{
		{VisualRecord{Series: 0, Value: 10}, "33.3%"},
		{VisualRecord{Series: 0, Value: 30}, "100.0%"},
		{VisualRecord{Series: 1, Value: 0}, "0.0%"},
	}
	for _, tt := range tests {
		if got := c.tooltipLabel(tt.rec); got != tt.want {
			t.Errorf("tooltipLabel(%v) = %q, want %q", tt.rec.Value, got, tt.want)
		}
	}
}

func TestColumnTotalsRecomputed(t *testing.T) {
	_, c := newColumnScene(t, columnTestConfig())
	c.OnConfigChanged(columnTestConfig())
	c.OnConfigChanged(columnTestConfig())
	if c.data.totals[0] != 30 {
		t.Errorf("total = %v, want 30 after re-renders", c.data.totals[0])
	}
}

func TestColumnLegendTurnedOnSnapsToBottom(t *testing.T) {
	cfg := columnTestConfig()
	cfg.DrawLegend = Bool(false)
	s, c := newColumnScene(t, cfg)
	if c.legendEntries.len() != 0 {
		t.Fatal("legend should start empty")
	}

	c.OnConfigChanged(columnTestConfig())
	wantY := 300.0 - DefaultLegendHeight
	if c.legend.X != 0 || c.legend.Y != wantY {
		t.Errorf("legend at (%v, %v), want snapped to (0, %v)", c.legend.X, c.legend.Y, wantY)
	}
	settle(s.Root())
	if c.legend.Y != wantY {
		t.Errorf("legend Y = %v, want %v", c.legend.Y, wantY)
	}
	if c.legend.X <= 0 {
		t.Errorf("legend X = %v, want centered", c.legend.X)
	}
}

// stripedColumnConfig has two labels, two series and one striped series.
func stripedColumnConfig() *ColumnConfig {
	return &ColumnConfig{
		Width:  400,
		Height: 300,
		Labels: []string{"A", "B"},
		Series: []Series{
			{Legend: "S1", Color: "#ff0000", Data: []SeriesPoint{{Value: 10}, {Value: 20}}},
			{Legend: "S2", Color: "#0000ff", Striped: true, Data: []SeriesPoint{{Value: 5, ID: "x"}, {Value: 15, ID: "y"}}},
		},
	}
}

func TestColumnIdenticalRenderIsStable(t *testing.T) {
	s, c := newColumnScene(t, stripedColumnConfig())
	layers := []*layer{c.bars, c.ticks, c.legendEntries, c.countRects, c.countTexts}

	before := make([]map[string]*Node, len(layers))
	type box struct{ x, y, w, h float64 }
	geom := map[string]box{}
	for i, l := range layers {
		before[i] = make(map[string]*Node, l.len())
		for k, n := range l.nodes {
			before[i][k] = n
		}
	}
	for k, n := range c.bars.nodes {
		geom[k] = box{n.X, n.Y, n.Width, n.Height}
	}
	layout := c.Layout()

	buf := captureLogs(t, slog.LevelDebug)
	c.OnConfigChanged(stripedColumnConfig())
	settle(s.Root())

	if out := buf.String(); !strings.Contains(out, "enter=0") || !strings.Contains(out, "exit=0") {
		t.Errorf("second render log = %q, want enter=0 and exit=0", out)
	}
	for i, l := range layers {
		if l.len() != len(before[i]) {
			t.Errorf("layer %s: %d nodes, want %d", l.name, l.len(), len(before[i]))
		}
		for k, n := range before[i] {
			if l.node(k) != n || n.IsDisposed() {
				t.Errorf("layer %s: node %q was replaced", l.name, k)
			}
		}
	}
	if c.Layout() != layout {
		t.Errorf("layout = %+v, want %+v", c.Layout(), layout)
	}
	for k, n := range c.bars.nodes {
		g := geom[k]
		if math.Abs(n.X-g.x) > 1e-9 || math.Abs(n.Y-g.y) > 1e-9 ||
			math.Abs(n.Width-g.w) > 1e-9 || math.Abs(n.Height-g.h) > 1e-9 {
			t.Errorf("bar %q moved to (%v, %v, %v, %v), want %+v", k, n.X, n.Y, n.Width, n.Height, g)
		}
	}
}
