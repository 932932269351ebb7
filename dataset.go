package chart

import "fmt"

// VisualRecord is one rendered data primitive: a donut slice or a column
// bar (plus its count label).
type VisualRecord struct {
	Key     string
	Series  int
	Group   int
	Value   float64
	Color   string
	Striped bool
	ID      RecordID
}

// recordKey derives a record's identity. A natural id wins; otherwise the
// key is synthesized from its position so that unchanged data keeps its key
// across renders.
func recordKey(id RecordID, series, group int, striped bool) string {
	var k string
	if id != "" {
		k = "id:" + string(id)
	} else {
		k = fmt.Sprintf("s%d/g%d", series, group)
	}
	if striped {
		k += "/striped"
	}
	return k
}

// LegendEntry is one legend swatch. Striped entries draw only a hatched
// swatch on top of their series' entry.
type LegendEntry struct {
	Color   string
	Label   string
	Striped bool
	Series  int
}

func (e LegendEntry) key() string {
	k := fmt.Sprintf("legend/s%d", e.Series)
	if e.Striped {
		k += "/striped"
	}
	return k
}

// columnDataset is the flattened input of one column render.
type columnDataset struct {
	groups   [][]VisualRecord // per label index, series order, striped after base
	totals   []float64        // per series sum over all groups
	maxValue float64
	legend   []LegendEntry
}

// records returns every record in group order.
func (d columnDataset) records() []VisualRecord {
	var all []VisualRecord
	for _, g := range d.groups {
		all = append(all, g...)
	}
	return all
}

// buildColumnDataset flattens series × labels. Series shorter than the label
// list simply contribute no record at the missing positions. Points without
// a color take their series color.
func buildColumnDataset(o columnOptions) columnDataset {
	d := columnDataset{
		groups: make([][]VisualRecord, len(o.labels)),
		totals: make([]float64, len(o.series)),
	}
	for g := range o.labels {
		for s, ser := range o.series {
			if g >= len(ser.Data) {
				continue
			}
			p := ser.Data[g]
			if p.Value > d.maxValue {
				d.maxValue = p.Value
			}
			d.totals[s] += p.Value
			color := p.Color
			if color == "" {
				color = ser.Color
			}
			base := VisualRecord{
				Key:    recordKey(p.ID, s, g, false),
				Series: s,
				Group:  g,
				Value:  p.Value,
				Color:  color,
				ID:     p.ID,
			}
			d.groups[g] = append(d.groups[g], base)
			if ser.Striped {
				overlay := base
				overlay.Striped = true
				overlay.Key = recordKey(p.ID, s, g, true)
				d.groups[g] = append(d.groups[g], overlay)
			}
		}
	}
	if o.drawLegend {
		for s, ser := range o.series {
			d.legend = append(d.legend, LegendEntry{Color: ser.Color, Label: ser.Legend, Series: s})
			if ser.Striped {
				d.legend = append(d.legend, LegendEntry{Color: ser.Color, Label: ser.Legend, Series: s, Striped: true})
			}
		}
	}
	return d
}

// donutRecords turns donut data into records keyed by position.
func donutRecords(data []DataPoint) []VisualRecord {
	recs := make([]VisualRecord, len(data))
	for i, p := range data {
		recs[i] = VisualRecord{
			Key:   recordKey("", 0, i, false),
			Group: i,
			Value: p.Value,
			Color: p.Color,
		}
	}
	return recs
}
