package chart

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// toRGBA converts the color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseColor parses a CSS color string: "#rgb", "#rrggbb" or a named color
// such as "white" or "steelblue". The empty string parses as opaque black.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ColorBlack, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return ColorBlack, err
		}
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
	}
	if rgba, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{
			R: float64(rgba.R) / 255,
			G: float64(rgba.G) / 255,
			B: float64(rgba.B) / 255,
			A: float64(rgba.A) / 255,
		}, nil
	}
	return ColorBlack, fmt.Errorf("chart: unknown color %q", s)
}

// mustColor parses s and logs a warning instead of failing. Config colors are
// never validated up front, so a bad value renders black.
func mustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		Logger().Warn("chart: unparseable color, using black", "color", s, "err", err)
	}
	return c
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeArc                       // annular sector (donut slice)
	NodeTypeRect                      // optionally rounded rectangle
	NodeTypeText                      // single line of text
)

// Pattern selects a fill pattern for rect nodes.
type Pattern uint8

const (
	PatternSolid   Pattern = iota // plain fill
	PatternStripes                // 45° hatching in the fill color, clear between stripes
)

// CursorShape is the mouse cursor requested while hovering a node.
type CursorShape uint8

const (
	CursorDefault CursorShape = iota
	CursorPointer
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// TextAlign controls horizontal anchoring of a text node relative to its X.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // X is the left edge (default)
	TextAlignCenter                  // X is the horizontal center
	TextAlignRight                   // X is the right edge
)
