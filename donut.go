package chart

import (
	"log/slog"
	"math"
)

// Donut layout constants, in chart pixels.
const (
	donutPieOffsetX   = -60
	donutTotalX       = 140
	donutSliceStroke  = 3
	donutLegendRow    = 40
	donutLegendTextX  = 70
	donutLegendTextY  = 10
	donutBadgeWidth   = 65
	donutBadgeHeight  = 20
	donutBadgeRadius  = 12
	donutBadgeY       = -5
	donutBadgeTextX   = 10
	donutTextColorHex = "#53565a"
	donutSelectedHex  = "#000000"
)

// SectionClickEvent is emitted when a donut slice is clicked while every item
// is active.
type SectionClickEvent struct {
	Data  DataPoint
	Index int
	Event ClickContext
}

// donutSlice is the data bound to a slice node.
type donutSlice struct {
	Record VisualRecord
	Point  DataPoint
	Slice  PieSlice
}

// DonutChart renders DataPoints as an animated donut with a total readout and
// a percentage legend.
type DonutChart struct {
	chartBase

	cfg  *DonutConfig
	opts donutOptions

	radius   float64
	inner    float64
	outer    float64
	emphasis float64

	pie        *Node
	total      *Node
	totalTitle *Node
	totalValue *Node
	readout    *Node
	legend     *Node

	slices   *layer
	labels   *layer
	badges   *layer
	percents *layer

	clicks handlerList[SectionClickEvent]
}

// NewDonutChart creates a donut chart. Call Init to attach it to a scene.
func NewDonutChart(opts ...Option) *DonutChart {
	c := &DonutChart{chartBase: newChartBase("donut", opts)}
	c.render = c.draw
	return c
}

// Init attaches the chart beneath parent and draws any configuration already
// received.
func (c *DonutChart) Init(parent *Node, container Container) {
	if c.disposed || c.root != nil {
		return
	}
	c.chartBase.Init(parent, container)

	c.pie = NewContainer("donut-chart-group")
	c.pie.X = donutPieOffsetX
	c.root.AddChild(c.pie)
	c.slices = newLayer("slices", c.pie)

	c.total = NewContainer("donut-total-group")
	c.root.AddChild(c.total)
	c.totalTitle = c.newText("total-title")
	c.totalValue = c.newText("total-value")
	c.readout = c.newText("current-percentage")
	c.total.AddChild(c.totalTitle)
	c.total.AddChild(c.totalValue)
	c.total.AddChild(c.readout)

	c.legend = NewContainer("donut-legend-group")
	c.root.AddChild(c.legend)
	c.badges = newLayer("percentage-backgrounds", c.legend)
	c.percents = newLayer("percentage-texts", c.legend)
	c.labels = newLayer("label-texts", c.legend)

	if c.cfg != nil {
		c.draw()
	}
}

func (c *DonutChart) newText(name string) *Node {
	n := NewText(name, "", c.font)
	n.Fill = mustColor(donutTextColorHex)
	return n
}

// OnConfigChanged replaces the configuration and re-renders.
func (c *DonutChart) OnConfigChanged(cfg *DonutConfig) {
	if c.disposed {
		return
	}
	c.cfg = cfg
	c.rerender()
}

// OnSectionClick registers fn for slice clicks.
func (c *DonutChart) OnSectionClick(fn func(SectionClickEvent)) CallbackHandle {
	return c.clicks.add(fn)
}

// Dispose releases the chart. Later calls on it are no-ops.
func (c *DonutChart) Dispose() {
	c.clicks.clear()
	c.dispose()
}

// Size returns the canvas size of the last render.
func (c *DonutChart) Size() (width, height float64) {
	return c.opts.canvasWidth, c.opts.canvasHeight
}

func (c *DonutChart) draw() {
	opts, ok := normalizeDonut(c.cfg, c.containerWidth())
	if !ok {
		Logger().Debug("chart: no data, skipping render", slog.String("chart", c.name))
		return
	}
	c.opts = opts
	c.radius = math.Min(opts.width, opts.height) / 1.2
	c.inner = c.radius - c.radius*0.5
	c.outer = c.radius - c.radius/1.45
	c.emphasis = c.radius - c.radius*0.45

	c.legend.SetPosition(opts.legendX, opts.legendY)

	stats := renderStats{chart: c.name}
	c.drawSlices(&stats)
	c.drawTotal()
	c.drawLegend(&stats)
	stats.log(slog.Bool("mobile", opts.mobile), slog.Float64("radius", c.radius))
}

func (c *DonutChart) drawSlices(stats *renderStats) {
	o := c.opts
	values := make([]float64, len(o.data))
	nonEmpty := 0
	for i, d := range o.data {
		values[i] = d.Value
		if d.Value > 0 {
			nonEmpty++
		}
	}
	slices := Pie(values, minSliceWeight(o.dataTotal))
	records := donutRecords(o.data)

	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = r.Key
	}
	res := c.slices.join(keys, func(int) *Node {
		n := NewArc("donut-slice", Arc{Inner: c.inner, Outer: c.outer}, ColorBlack)
		n.Interactable = true
		n.OnPointerEnter = c.sliceEnter
		n.OnPointerLeave = c.sliceLeave
		n.OnClick = c.sliceClick
		return n
	})
	stats.add(res)
	// An exiting slice may be the hovered one; it gets no leave event.
	if len(res.Exit) > 0 {
		c.readout.Text = ""
	}

	stroke := float64(donutSliceStroke)
	if nonEmpty == 1 {
		stroke = 0
	}
	for i, n := range res.Nodes {
		s := slices[i]
		n.UserData = &donutSlice{Record: records[i], Point: o.data[i], Slice: s}
		n.Fill = mustColor(records[i].Color)
		n.Stroke = ColorWhite
		n.StrokeWidth = stroke
		n.Cursor = CursorDefault
		if o.dataTotal != 0 && s.Weight != 0 {
			n.Cursor = CursorPointer
		}
		n.SetPosition(o.width/3, o.height/2)

		target := Arc{Inner: c.inner, Outer: c.outer, Start: s.Start, End: s.End}
		if res.entered(i) {
			n.Arc = Arc{Inner: c.inner, Outer: c.outer}
			donutInitialDraw.arc(n, target)
		} else {
			donutUpdate.arc(n, target)
		}
	}
}

func (c *DonutChart) sliceEnter(ctx PointerContext) {
	d, ok := ctx.UserData.(*donutSlice)
	if !ok || !c.opts.allItemsActive {
		return
	}
	donutHover.arc(ctx.Node, Arc{Inner: c.emphasis, Outer: c.outer, Start: d.Slice.Start, End: d.Slice.End})
	c.readout.Text = c.percentage(d.Point.Value)
}

func (c *DonutChart) sliceLeave(ctx PointerContext) {
	d, ok := ctx.UserData.(*donutSlice)
	if !ok {
		return
	}
	donutLeave.arc(ctx.Node, Arc{Inner: c.inner, Outer: c.outer, Start: d.Slice.Start, End: d.Slice.End})
	c.readout.Text = ""
}

func (c *DonutChart) sliceClick(ctx ClickContext) {
	d, ok := ctx.UserData.(*donutSlice)
	if !ok || !c.opts.allItemsActive {
		return
	}
	c.clicks.emit(SectionClickEvent{Data: d.Point, Index: d.Record.Group, Event: ctx})
}

// percentage is the legend and readout text for value.
func (c *DonutChart) percentage(value float64) string {
	if c.opts.dataTotal <= 0 {
		return "0%"
	}
	return percentLabel(value, c.opts.dataTotal)
}

// totalText is the central readout: the data total, or "selected / total"
// while a single item is selected.
func (c *DonutChart) totalText() string {
	o := c.opts
	if o.allItemsActive || o.dataTotal == 0 || o.selected < 0 {
		return formatValue(o.dataTotal)
	}
	return formatValue(o.data[o.selected].Value) + " / " + formatValue(o.dataTotal)
}

func (c *DonutChart) drawTotal() {
	c.total.SetPosition(donutTotalX, c.opts.height/2-c.radius/8)
	c.totalTitle.Y = c.radius / 12
	c.totalTitle.Text = c.opts.totalTitle
	c.totalValue.Y = c.radius / 5
	c.totalValue.Text = c.totalText()
	c.readout.Y = c.radius / 3.5
	markSubtreeDirty(c.total)
}

func (c *DonutChart) drawLegend(stats *renderStats) {
	o := c.opts
	keys := make([]string, len(o.data))
	for i := range o.data {
		keys[i] = recordKey("", 0, i, false)
	}

	badges := c.badges.join(keys, func(int) *Node {
		n := NewRect("label-percentage-background", donutBadgeWidth, donutBadgeHeight, ColorBlack)
		n.CornerRadius = donutBadgeRadius
		return n
	})
	percents := c.percents.join(keys, func(int) *Node {
		n := NewText("label-percentage-text", "", c.font)
		n.Fill = ColorWhite
		return n
	})
	labels := c.labels.join(keys, func(int) *Node {
		return NewText("label-text", "", c.font)
	})
	stats.add(badges)
	stats.add(percents)
	stats.add(labels)

	textColor := mustColor(donutTextColorHex)
	selectedColor := mustColor(donutSelectedHex)
	for i, d := range o.data {
		row := float64(i * donutLegendRow)

		b := badges.Nodes[i]
		b.Fill = mustColor(d.Color)
		b.SetPosition(0, row+donutBadgeY)

		p := percents.Nodes[i]
		p.Text = c.percentage(d.Value)
		p.SetPosition(donutBadgeTextX, row+donutLegendTextY)

		l := labels.Nodes[i]
		value := d.Value
		if o.dataTotal == 0 {
			value = 0
		}
		l.Text = d.Label + " (" + formatValue(value) + ")"
		l.Fill = textColor
		if i == o.selected {
			l.Fill = selectedColor
		}
		l.SetPosition(donutLegendTextX, row+donutLegendTextY)
	}
}
