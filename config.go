package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Bool returns a pointer to v, for optional config fields.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v, for optional config fields.
func Float(v float64) *float64 { return &v }

// --- Donut ---

// DataPoint is one donut slice.
type DataPoint struct {
	Value  float64 `json:"value"`
	Color  string  `json:"color"`
	Label  string  `json:"label"`
	Active bool    `json:"active,omitempty"`
}

// DonutConfig is the declarative input of a DonutChart. Zero dimensions and
// nil pointer fields take the documented defaults. A nil Data renders nothing.
type DonutConfig struct {
	Width          float64     `json:"width,omitempty"`
	Height         float64     `json:"height,omitempty"`
	TotalTitle     string      `json:"totalTitle,omitempty"`
	AllItemsActive *bool       `json:"allItemsActive,omitempty"`
	DataTotal      *float64    `json:"dataTotal,omitempty"`
	Data           []DataPoint `json:"data"`
}

// Donut defaults.
const (
	DefaultDonutWidth      = 600
	DefaultDonutHeight     = 300
	DefaultDonutTotalTitle = "Total:"
	DefaultDonutDataTotal  = 100

	donutMobileHeightCorrection = 200
	donutMobileWidthCorrection  = 180
)

// donutOptions is a DonutConfig with every default applied and the
// container-dependent quantities derived.
type donutOptions struct {
	width, height  float64
	totalTitle     string
	allItemsActive bool
	dataTotal      float64
	data           []DataPoint

	mobile       bool
	canvasWidth  float64
	canvasHeight float64
	legendX      float64
	legendY      float64

	// selected is the single explicitly selected point, or -1. Only set when
	// not every item is active.
	selected int
}

// normalizeDonut merges cfg over the defaults. ok is false when there is
// nothing to render.
func normalizeDonut(cfg *DonutConfig, containerWidth float64) (o donutOptions, ok bool) {
	if cfg == nil || cfg.Data == nil {
		return o, false
	}
	o = donutOptions{
		width:          orDefault(cfg.Width, DefaultDonutWidth),
		height:         orDefault(cfg.Height, DefaultDonutHeight),
		totalTitle:     cfg.TotalTitle,
		allItemsActive: true,
		dataTotal:      DefaultDonutDataTotal,
		data:           cfg.Data,
		selected:       -1,
	}
	if o.totalTitle == "" {
		o.totalTitle = DefaultDonutTotalTitle
	}
	if cfg.AllItemsActive != nil {
		o.allItemsActive = *cfg.AllItemsActive
	}
	if cfg.DataTotal != nil {
		o.dataTotal = *cfg.DataTotal
	}

	o.mobile = containerWidth < o.width
	o.canvasWidth, o.canvasHeight = o.width, o.height
	if o.mobile {
		o.canvasHeight += donutMobileHeightCorrection
		o.canvasWidth -= donutMobileWidthCorrection
		o.legendX, o.legendY = 70, o.height
	} else {
		o.legendX, o.legendY = o.width/2, o.height/5
	}

	if !o.allItemsActive {
		for i, d := range o.data {
			if d.Active {
				o.selected = i
				break
			}
		}
	}
	return o, true
}

// ParseDonutConfig decodes a JSON donut configuration.
func ParseDonutConfig(data []byte) (*DonutConfig, error) {
	var cfg DonutConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("chart: parse donut config: %w", err)
	}
	return &cfg, nil
}

// --- Grouped column ---

// RecordID is a data point identity. JSON accepts both strings and numbers.
type RecordID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *RecordID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("chart: id must be a string or number: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

// SeriesPoint is one value of a series at a label position.
type SeriesPoint struct {
	Value float64  `json:"value"`
	Color string   `json:"color"`
	ID    RecordID `json:"id,omitempty"`
}

// Series is one bar per label, drawn in series order within each group.
// A striped series additionally draws a hatched overlay on each of its bars.
type Series struct {
	Legend  string        `json:"legend"`
	Color   string        `json:"color"`
	Striped bool          `json:"striped,omitempty"`
	Data    []SeriesPoint `json:"data"`
}

// ColumnConfig is the declarative input of a GroupedColumnChart. Zero
// dimensions and nil pointer fields take the documented defaults. Every
// series is expected to carry one point per label; this is not checked.
type ColumnConfig struct {
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`

	DrawLegend     *bool `json:"drawLegend,omitempty"`
	ShowPercentage *bool `json:"showPercentage,omitempty"`

	BarWidth                    float64 `json:"barWidth,omitempty"`
	GapBetweenBars              float64 `json:"gapBetweenBars,omitempty"`
	GapBetweenGroups            float64 `json:"gapBetweenGroups,omitempty"`
	GapBetweenLegendAndColumns  float64 `json:"gapBetweenLegendAndColumns,omitempty"`
	LabelTopPadding             float64 `json:"labelTopPadding,omitempty"`
	LegendHeight                float64 `json:"legendHeight,omitempty"`
	LegendWidth                 float64 `json:"legendWidth,omitempty"`
	CountRectHeight             float64 `json:"countRectHeight,omitempty"`
	GapBetweenLegend            float64 `json:"gapBetweenLegend,omitempty"`
	GapBetweenTextAndRectLegend float64 `json:"gapBetweenTextAndRectLegend,omitempty"`
	GapBetweenColumnAndCount    float64 `json:"gapBetweenColumnAndCount,omitempty"`
	ColorCountRect              string  `json:"colorCountRect,omitempty"`
}

// Grouped column defaults.
const (
	DefaultColumnWidth                 = 800
	DefaultColumnHeight                = 400
	DefaultBarWidth                    = 60
	DefaultGapBetweenBars              = 20
	DefaultGapBetweenGroups            = 56
	DefaultGapBetweenLegendAndColumns  = 20
	DefaultLabelTopPadding             = 20
	DefaultLegendHeight                = 20
	DefaultLegendWidth                 = 20
	DefaultCountRectHeight             = 20
	DefaultGapBetweenLegend            = 20
	DefaultGapBetweenTextAndRectLegend = 6
	DefaultGapBetweenColumnAndCount    = 15
	DefaultColorCountRect              = "#f2f2f2"
)

// columnOptions is a ColumnConfig with every default applied.
type columnOptions struct {
	width, height  float64
	labels         []string
	series         []Series
	drawLegend     bool
	showPercentage bool

	barWidth                    float64
	gapBetweenBars              float64
	gapBetweenGroups            float64
	gapBetweenLegendAndColumns  float64
	labelTopPadding             float64
	legendHeight                float64
	legendWidth                 float64
	countRectHeight             float64
	gapBetweenLegend            float64
	gapBetweenTextAndRectLegend float64
	gapBetweenColumnAndCount    float64
	colorCountRect              string

	// mobile is set when the container forced the width below the
	// configured one.
	mobile bool
}

// normalizeColumn merges cfg over the defaults and clamps the width to the
// container. ok is false when there is nothing to render.
func normalizeColumn(cfg *ColumnConfig, containerWidth float64) (o columnOptions, ok bool) {
	if cfg == nil || cfg.Series == nil {
		return o, false
	}
	o = columnOptions{
		width:                       orDefault(cfg.Width, DefaultColumnWidth),
		height:                      orDefault(cfg.Height, DefaultColumnHeight),
		labels:                      cfg.Labels,
		series:                      cfg.Series,
		drawLegend:                  true,
		showPercentage:              true,
		barWidth:                    orDefault(cfg.BarWidth, DefaultBarWidth),
		gapBetweenBars:              orDefault(cfg.GapBetweenBars, DefaultGapBetweenBars),
		gapBetweenGroups:            orDefault(cfg.GapBetweenGroups, DefaultGapBetweenGroups),
		gapBetweenLegendAndColumns:  orDefault(cfg.GapBetweenLegendAndColumns, DefaultGapBetweenLegendAndColumns),
		labelTopPadding:             orDefault(cfg.LabelTopPadding, DefaultLabelTopPadding),
		legendHeight:                orDefault(cfg.LegendHeight, DefaultLegendHeight),
		legendWidth:                 orDefault(cfg.LegendWidth, DefaultLegendWidth),
		countRectHeight:             orDefault(cfg.CountRectHeight, DefaultCountRectHeight),
		gapBetweenLegend:            orDefault(cfg.GapBetweenLegend, DefaultGapBetweenLegend),
		gapBetweenTextAndRectLegend: orDefault(cfg.GapBetweenTextAndRectLegend, DefaultGapBetweenTextAndRectLegend),
		gapBetweenColumnAndCount:    orDefault(cfg.GapBetweenColumnAndCount, DefaultGapBetweenColumnAndCount),
		colorCountRect:              cfg.ColorCountRect,
	}
	if o.colorCountRect == "" {
		o.colorCountRect = DefaultColorCountRect
	}
	if cfg.DrawLegend != nil {
		o.drawLegend = *cfg.DrawLegend
	}
	if cfg.ShowPercentage != nil {
		o.showPercentage = *cfg.ShowPercentage
	}
	if containerWidth < o.width {
		o.width = math.Max(0, containerWidth)
		o.mobile = true
	}
	if !o.drawLegend {
		o.legendHeight = 0
	}
	return o, true
}

// ParseColumnConfig decodes a JSON grouped column configuration.
func ParseColumnConfig(data []byte) (*ColumnConfig, error) {
	var cfg ColumnConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("chart: parse column config: %w", err)
	}
	return &cfg, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// seriesKey is the band scale domain value for series index i.
func seriesKey(i int) string {
	return strconv.Itoa(i)
}
