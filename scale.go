package chart

import "math"

// BandScale maps a discrete domain onto evenly spaced bands of a continuous
// range, with inner padding between bands and outer padding at both ends.
// Paddings are fractions of the step.
type BandScale struct {
	index     map[string]int
	n         int
	start     float64
	step      float64
	bandwidth float64
}

// NewBandScale builds a band scale over domain within [r0, r1]. Bands are
// centered in any leftover space (align 0.5). Repeated domain values share
// the band of their first occurrence.
func NewBandScale(domain []string, r0, r1, paddingInner, paddingOuter float64) *BandScale {
	s := &BandScale{index: make(map[string]int, len(domain))}
	for _, d := range domain {
		if _, dup := s.index[d]; !dup {
			s.index[d] = s.n
			s.n++
		}
	}
	n := float64(s.n)
	s.step = (r1 - r0) / math.Max(1, n-paddingInner+paddingOuter*2)
	s.start = r0 + (r1-r0-s.step*(n-paddingInner))*0.5
	s.bandwidth = s.step * (1 - paddingInner)
	return s
}

// Position returns the start of the band for d and whether d is in the domain.
func (s *BandScale) Position(d string) (float64, bool) {
	i, ok := s.index[d]
	if !ok {
		return 0, false
	}
	return s.At(i), true
}

// At returns the start of the i-th band.
func (s *BandScale) At(i int) float64 {
	return s.start + s.step*float64(i)
}

// Bandwidth returns the width of each band.
func (s *BandScale) Bandwidth() float64 {
	return s.bandwidth
}

// Step returns the distance between the starts of adjacent bands.
func (s *BandScale) Step() float64 {
	return s.step
}

// Len returns the number of bands.
func (s *BandScale) Len() int {
	return s.n
}

// LinearScale maps [d0, d1] linearly onto [r0, r1]. The range may be
// inverted.
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
}

// Map returns the range value for v. A degenerate domain maps everything to
// the middle of the range.
func (s LinearScale) Map(v float64) float64 {
	d := s.D1 - s.D0
	if d == 0 {
		return s.R0 + (s.R1-s.R0)*0.5
	}
	t := (v - s.D0) / d
	return s.R0 + (s.R1-s.R0)*t
}

// Invert returns the domain value for a range value r.
func (s LinearScale) Invert(r float64) float64 {
	d := s.R1 - s.R0
	if d == 0 {
		return s.D0 + (s.D1-s.D0)*0.5
	}
	t := (r - s.R0) / d
	return s.D0 + (s.D1-s.D0)*t
}
