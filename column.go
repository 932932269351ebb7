package chart

import "log/slog"

// Grouped column constants, in chart pixels.
const (
	columnPaddingInner      = 0.5
	columnPaddingOuter      = 0.3
	columnSeriesPadding     = 0.2
	columnCountRectRadius   = 10
	columnBarStripePeriod   = 12
	columnBarStripeWidth    = 6
	columnBarStripeAlpha    = 0.2
	columnLegendStripeGap   = 9
	columnLegendStripeWidth = 4
	columnLegendStripeAlpha = 0.3
	columnTooltipPadX       = 8
	columnTooltipPadY       = 4
	columnTooltipRadius     = 4
	columnTooltipZ          = 10
	columnAxisColorHex      = "#bbbcbc"
	columnTextColorHex      = "#53565a"
)

// BarClickEvent is emitted when a bar is clicked.
type BarClickEvent struct {
	Data  VisualRecord
	Event ClickContext
}

// ColumnLayout holds the measured extents of the last column render.
type ColumnLayout struct {
	// LegendHeight is the legend's measured height plus the gap above it, or
	// 0 without a legend.
	LegendHeight float64
	// LabelHeight is the axis label padding plus the tallest label.
	LabelHeight float64
	// ColumnAreaHeight is what remains for bars and count labels.
	ColumnAreaHeight float64
}

// columnBar is the data bound to a bar node. clicked suppresses the tooltip
// until the pointer leaves the bar.
type columnBar struct {
	Record  VisualRecord
	clicked bool
}

// GroupedColumnChart renders one bar per series within each label group,
// with count labels, a category axis, a legend and a percentage tooltip.
type GroupedColumnChart struct {
	chartBase

	cfg    *ColumnConfig
	opts   columnOptions
	data   columnDataset
	layout ColumnLayout
	drawn  bool

	x   *BandScale
	xIn *BandScale
	y   LinearScale

	columns     *Node
	axis        *Node
	axisLine    *Node
	legend      *Node
	tooltip     *Node
	tooltipBg   *Node
	tooltipText *Node

	bars          *layer
	ticks         *layer
	legendEntries *layer
	countRects    *layer
	countTexts    *layer

	clicks handlerList[BarClickEvent]
}

// NewGroupedColumnChart creates a grouped column chart. Call Init to attach
// it to a scene.
func NewGroupedColumnChart(opts ...Option) *GroupedColumnChart {
	c := &GroupedColumnChart{chartBase: newChartBase("grouped-column", opts)}
	c.render = c.draw
	return c
}

// Init attaches the chart beneath parent and draws any configuration already
// received.
func (c *GroupedColumnChart) Init(parent *Node, container Container) {
	if c.disposed || c.root != nil {
		return
	}
	c.chartBase.Init(parent, container)

	c.columns = NewContainer("columns-group")
	c.root.AddChild(c.columns)
	c.bars = newLayer("columns", c.columns)

	c.axis = NewContainer("axis-group")
	c.root.AddChild(c.axis)
	c.axisLine = NewRect("axis-domain", 0, 1, mustColor(columnAxisColorHex))
	c.axis.AddChild(c.axisLine)
	c.ticks = newLayer("ticks", c.axis)

	c.legend = NewContainer("legend-group")
	c.root.AddChild(c.legend)
	c.legendEntries = newLayer("legend-entries", c.legend)

	c.countRects = newLayer("count-rects", c.root)
	c.countTexts = newLayer("count-texts", c.root)

	c.tooltip = NewContainer("tooltip")
	c.tooltip.Visible = false
	c.tooltip.SetZIndex(columnTooltipZ)
	c.tooltipBg = NewRect("tooltip-background", 0, 0, ColorWhite)
	c.tooltipBg.CornerRadius = columnTooltipRadius
	c.tooltipText = NewText("tooltip-text", "", c.font)
	c.tooltipText.Fill = mustColor(columnTextColorHex)
	c.tooltip.AddChild(c.tooltipBg)
	c.tooltip.AddChild(c.tooltipText)
	c.root.AddChild(c.tooltip)

	if c.cfg != nil {
		c.draw()
	}
}

// OnConfigChanged replaces the configuration and re-renders.
func (c *GroupedColumnChart) OnConfigChanged(cfg *ColumnConfig) {
	if c.disposed {
		return
	}
	c.cfg = cfg
	c.rerender()
}

// OnBarClick registers fn for bar clicks.
func (c *GroupedColumnChart) OnBarClick(fn func(BarClickEvent)) CallbackHandle {
	return c.clicks.add(fn)
}

// Dispose releases the chart. Later calls on it are no-ops.
func (c *GroupedColumnChart) Dispose() {
	c.clicks.clear()
	c.dispose()
}

// Size returns the effective size of the last render.
func (c *GroupedColumnChart) Size() (width, height float64) {
	return c.opts.width, c.opts.height
}

// Layout returns the measured extents of the last render.
func (c *GroupedColumnChart) Layout() ColumnLayout {
	return c.layout
}

// TooltipText returns the tooltip's text while it is shown.
func (c *GroupedColumnChart) TooltipText() (string, bool) {
	if c.tooltip == nil || !c.tooltip.Visible {
		return "", false
	}
	return c.tooltipText.Text, true
}

func (c *GroupedColumnChart) draw() {
	opts, ok := normalizeColumn(c.cfg, c.containerWidth())
	if !ok {
		Logger().Debug("chart: no data, skipping render", slog.String("chart", c.name))
		return
	}
	c.opts = opts
	c.data = buildColumnDataset(opts)

	keys := make([]string, len(opts.series))
	for i := range keys {
		keys[i] = seriesKey(i)
	}
	c.x = NewBandScale(opts.labels, 0, opts.width, columnPaddingInner, columnPaddingOuter)
	c.xIn = NewBandScale(keys, 0, c.x.Bandwidth(), columnSeriesPadding, 0)

	stats := renderStats{chart: c.name}

	// Phase 1: lay out the legend and axis labels and measure them.
	legendHeight := c.drawLegend(&stats)
	labelHeight := c.drawAxis(&stats)

	// Phase 2: the column area is what the measured extents leave over.
	c.layout = columnLayout(opts.height, labelHeight, legendHeight)
	c.y = LinearScale{
		D0: 0, D1: c.data.maxValue,
		R0: c.layout.ColumnAreaHeight, R1: opts.gapBetweenColumnAndCount + opts.countRectHeight,
	}
	c.placeAxis()

	records := c.data.records()
	c.drawCounts(records, &stats)
	c.drawBars(records, &stats)
	c.drawn = true

	stats.log(slog.Bool("mobile", opts.mobile),
		slog.Float64("columnArea", c.layout.ColumnAreaHeight),
		slog.Float64("maxValue", c.data.maxValue))
}

// columnLayout splits the chart height between the legend, the axis labels
// and the columns.
func columnLayout(height, labelHeight, legendHeight float64) ColumnLayout {
	return ColumnLayout{
		LegendHeight:     legendHeight,
		LabelHeight:      labelHeight,
		ColumnAreaHeight: height - labelHeight - legendHeight,
	}
}

// barX is the left edge of record r's bar in chart coordinates.
func (c *GroupedColumnChart) barX(r VisualRecord) float64 {
	gx := 0.0
	if r.Group < len(c.opts.labels) {
		gx, _ = c.x.Position(c.opts.labels[r.Group])
	}
	return gx + c.xIn.At(r.Series)
}

// drawLegend lays out one entry per legend record along the bottom edge and
// returns the legend's measured height plus its gap, or 0 without entries.
func (c *GroupedColumnChart) drawLegend(stats *renderStats) float64 {
	o := c.opts
	entries := c.data.legend
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.key()
	}
	wasEmpty := c.legendEntries.len() == 0
	res := c.legendEntries.join(keys, func(int) *Node {
		n := NewContainer("legend-entry")
		n.AddChild(NewRect("legend-swatch", 0, 0, ColorBlack))
		n.AddChild(NewText("legend-text", "", c.font))
		return n
	})
	stats.add(res)
	if len(entries) == 0 {
		return 0
	}

	widths := make([]float64, len(o.series))
	for _, e := range entries {
		if !e.Striped {
			widths[e.Series], _ = c.font.MeasureString(e.Label)
		}
	}
	offsets := legendOffsets(widths, o.legendWidth+o.gapBetweenTextAndRectLegend+o.gapBetweenLegend)

	textColor := mustColor(columnTextColorHex)
	for i, n := range res.Nodes {
		e := entries[i]
		swatch, label := n.ChildAt(0), n.ChildAt(1)
		swatch.Width, swatch.Height = o.legendWidth, o.legendHeight
		label.X = o.legendWidth + o.gapBetweenTextAndRectLegend
		label.Fill = textColor
		if e.Striped {
			paintStripes(swatch, columnLegendStripeGap, columnLegendStripeWidth, columnLegendStripeAlpha)
			label.Text = ""
			label.Y = o.legendHeight
		} else {
			paintSolid(swatch, mustColor(e.Color))
			label.Text = e.Label
			_, th := c.font.MeasureString(e.Label)
			label.Y = o.legendHeight - th*0.3
		}
		n.SetPosition(offsets[e.Series], 0)
		markSubtreeDirty(n)
	}

	all := legendTotalWidth(widths, o.legendWidth, o.gapBetweenTextAndRectLegend, o.gapBetweenLegend)
	x, y := (o.width-all)/2, o.height-o.legendHeight
	if wasEmpty {
		c.legend.SetPosition(0, y)
	}
	columnRelayout.position(c.legend, x, y)

	b, ok := subtreeBounds(c.legend)
	if !ok {
		return 0
	}
	return b.Height + o.gapBetweenLegendAndColumns
}

// drawAxis lays out the category labels under the domain line and returns
// the axis' measured height.
func (c *GroupedColumnChart) drawAxis(stats *renderStats) float64 {
	o := c.opts
	keys := make([]string, len(o.labels))
	for i, l := range o.labels {
		keys[i] = "tick/" + l
	}
	res := c.ticks.join(keys, func(int) *Node {
		n := NewText("tick-label", "", c.font)
		n.Align = TextAlignCenter
		return n
	})
	stats.add(res)

	c.axisLine.Width = o.width
	c.axisLine.Fill = mustColor(columnAxisColorHex)
	textColor := mustColor(columnTextColorHex)
	bw := c.x.Bandwidth()
	for i, n := range res.Nodes {
		label := o.labels[i]
		gx, _ := c.x.Position(label)
		n.Text = label
		n.Fill = textColor
		n.SetPosition(gx+bw/2, o.labelTopPadding+c.font.Ascent())
	}

	b, ok := subtreeBounds(c.axis)
	if !ok {
		return 0
	}
	return b.Height
}

// placeAxis moves the axis under the column area.
func (c *GroupedColumnChart) placeAxis() {
	y := c.layout.ColumnAreaHeight
	if !c.drawn {
		c.axis.SetPosition(0, y)
		return
	}
	columnRelayout.position(c.axis, 0, y)
}

// drawCounts places a value pill above every bar. Striped overlays get an
// empty pill so that the base bar's label shows through.
func (c *GroupedColumnChart) drawCounts(records []VisualRecord, stats *renderStats) {
	o := c.opts
	keys := recordKeys(records)
	rects := c.countRects.join(keys, func(int) *Node {
		n := NewRect("count-rect", 0, o.countRectHeight, ColorWhite)
		n.CornerRadius = columnCountRectRadius
		return n
	})
	texts := c.countTexts.join(keys, func(int) *Node {
		n := NewText("count-text", "", c.font)
		n.Align = TextAlignCenter
		return n
	})
	stats.add(rects)
	stats.add(texts)

	fill := mustColor(o.colorCountRect)
	textColor := mustColor(columnTextColorHex)
	bw := c.xIn.Bandwidth()
	for i, r := range records {
		cx := c.barX(r) + bw/2
		yv := c.y.Map(r.Value)

		w := countRectWidth(r.Value)
		drawnW := w
		if r.Striped {
			drawnW = 0
		}
		rx, ry := cx-w/2, yv-o.gapBetweenColumnAndCount-o.countRectHeight*0.75

		rect := rects.Nodes[i]
		rect.Fill = fill
		if rects.entered(i) {
			rect.SetPosition(rx, ry)
			rect.Width, rect.Height = drawnW, o.countRectHeight
		} else {
			columnRelayout.rect(rect, rx, ry, drawnW, o.countRectHeight)
		}

		txt := texts.Nodes[i]
		txt.Fill = textColor
		txt.Text = ""
		if !r.Striped {
			txt.Text = formatValue(r.Value)
		}
		if texts.entered(i) {
			txt.SetPosition(cx, yv-o.gapBetweenColumnAndCount)
		} else {
			columnRelayout.position(txt, cx, yv-o.gapBetweenColumnAndCount)
		}
	}
}

// drawBars joins one bar per record. New bars grow from the baseline.
func (c *GroupedColumnChart) drawBars(records []VisualRecord, stats *renderStats) {
	res := c.bars.join(recordKeys(records), func(int) *Node {
		n := NewRect("column", 0, 0, ColorBlack)
		n.Interactable = true
		n.Cursor = CursorPointer
		n.OnPointerMove = c.barMove
		n.OnPointerLeave = c.barLeave
		n.OnClick = c.barClick
		return n
	})
	stats.add(res)

	base := c.layout.ColumnAreaHeight
	bw := c.xIn.Bandwidth()
	for i, r := range records {
		n := res.Nodes[i]
		if bar, ok := n.UserData.(*columnBar); ok {
			bar.Record = r
		} else {
			n.UserData = &columnBar{Record: r}
		}
		if r.Striped {
			paintStripes(n, columnBarStripePeriod, columnBarStripeWidth, columnBarStripeAlpha)
		} else {
			paintSolid(n, mustColor(r.Color))
		}

		x, y := c.barX(r), c.y.Map(r.Value)
		if res.entered(i) {
			n.SetPosition(x, base)
			n.Width, n.Height = bw, 0
		}
		columnRelayout.rect(n, x, y, bw, base-y)
	}
}

func recordKeys(records []VisualRecord) []string {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = r.Key
	}
	return keys
}

// paintSolid fills n with c.
func paintSolid(n *Node, c Color) {
	n.Pattern = PatternSolid
	n.Fill = c
	n.SetAlpha(1)
}

// paintStripes turns n into a translucent white hatch.
func paintStripes(n *Node, period, width, alpha float64) {
	n.Pattern = PatternStripes
	n.Fill = ColorWhite
	n.StripePeriod = period
	n.StripeWidth = width
	n.SetAlpha(alpha)
}

func (c *GroupedColumnChart) barMove(ctx PointerContext) {
	bar, ok := ctx.UserData.(*columnBar)
	if !ok || !c.opts.showPercentage || bar.clicked {
		return
	}
	x, y := tooltipAnchor(c.root.WorldToLocal(ctx.GlobalX, ctx.GlobalY))
	c.showTooltip(x, y, c.tooltipLabel(bar.Record))
}

func (c *GroupedColumnChart) barLeave(ctx PointerContext) {
	if bar, ok := ctx.UserData.(*columnBar); ok {
		bar.clicked = false
	}
	c.hideTooltip()
}

func (c *GroupedColumnChart) barClick(ctx ClickContext) {
	bar, ok := ctx.UserData.(*columnBar)
	if !ok {
		return
	}
	bar.clicked = true
	c.hideTooltip()
	c.clicks.emit(BarClickEvent{Data: bar.Record, Event: ctx})
}

// tooltipLabel is the share of r's value in its series total.
func (c *GroupedColumnChart) tooltipLabel(r VisualRecord) string {
	total := 0.0
	if r.Series < len(c.data.totals) {
		total = c.data.totals[r.Series]
	}
	if total == 0 {
		return toFixed1(0) + "%"
	}
	return percentLabel(r.Value, total)
}

func (c *GroupedColumnChart) showTooltip(x, y float64, label string) {
	w, h := c.font.MeasureString(label)
	c.tooltipBg.Fill = mustColor(c.opts.colorCountRect)
	c.tooltipBg.Width = w + 2*columnTooltipPadX
	c.tooltipBg.Height = h + 2*columnTooltipPadY
	c.tooltipText.Text = label
	c.tooltipText.SetPosition(columnTooltipPadX, columnTooltipPadY+c.font.Ascent())
	c.tooltip.SetPosition(x, y)
	c.tooltip.Visible = true
}

func (c *GroupedColumnChart) hideTooltip() {
	c.tooltip.Visible = false
}
