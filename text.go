package chart

import (
	"bytes"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement. Legend and axis layout depend
// on measured extents, so every layout pass goes through a Font.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
	Ascent() float64
}

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
	ascent float64
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("chart: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
		ascent: m.HAscent,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Ascent returns the distance from the top of the line box to the baseline.
func (f *TTFFont) Ascent() float64 {
	return f.ascent
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// DefaultFontSize matches the 12px body text the charts are designed around.
const DefaultFontSize = 12

var (
	defaultFontOnce sync.Once
	defaultFont     *TTFFont
	defaultFontErr  error
)

// DefaultFont returns Go Regular at DefaultFontSize, parsed on first use.
func DefaultFont() (*TTFFont, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = LoadTTFFont(goregular.TTF, DefaultFontSize)
	})
	return defaultFont, defaultFontErr
}

// textBounds returns the local bounding box of a text node, with the baseline
// at Y = 0.
func textBounds(n *Node) Rect {
	if n.Font == nil || n.Text == "" {
		return Rect{}
	}
	w, h := n.Font.MeasureString(n.Text)
	x := 0.0
	switch n.Align {
	case TextAlignCenter:
		x = -w / 2
	case TextAlignRight:
		x = -w
	}
	return Rect{X: x, Y: -n.Font.Ascent(), Width: w, Height: h}
}

// FixedFont is a font stand-in with a constant advance per rune. It measures
// but does not draw; useful for layout without a font file.
type FixedFont struct {
	Advance float64
	Size    float64
}

// MeasureString returns the width and height of s.
func (f FixedFont) MeasureString(s string) (width, height float64) {
	return float64(utf8.RuneCountInString(s)) * f.Advance, f.LineHeight()
}

// LineHeight returns 1.2 × Size.
func (f FixedFont) LineHeight() float64 { return f.Size * 1.2 }

// Ascent returns 0.8 × Size.
func (f FixedFont) Ascent() float64 { return f.Size * 0.8 }
