package chart

import (
	"log/slog"
	"math"
	"time"
)

// Container is the host region a chart renders into. Only its width drives
// layout; the height is reported for completeness.
type Container interface {
	Size() (width, height float64)
}

// SizeFunc adapts a function to Container.
type SizeFunc func() (width, height float64)

// Size calls f.
func (f SizeFunc) Size() (float64, float64) { return f() }

// Option configures a chart at construction.
type Option func(*chartBase)

// WithFont sets the font used for legends, labels and readouts.
func WithFont(f Font) Option {
	return func(c *chartBase) { c.font = f }
}

// WithClock sets the time source used to timestamp resize notifications.
func WithClock(now func() time.Time) Option {
	return func(c *chartBase) { c.clock = now }
}

// WithResizeDelay overrides DefaultResizeDelay.
func WithResizeDelay(d time.Duration) Option {
	return func(c *chartBase) { c.resize.Delay = d }
}

// chartBase is the lifecycle shared by both chart kinds: attachment to a
// parent node, container tracking, debounced resize and disposal.
type chartBase struct {
	name      string
	font      Font
	clock     func() time.Time
	resize    Debouncer
	parent    *Node
	root      *Node
	container Container

	// Last size reported through OnResize; overrides the container.
	viewW, viewH float64
	resized      bool

	render   func()
	disposed bool
}

func newChartBase(name string, opts []Option) chartBase {
	c := chartBase{
		name:   name,
		clock:  time.Now,
		resize: Debouncer{Delay: DefaultResizeDelay},
	}
	for _, o := range opts {
		o(&c)
	}
	if c.font == nil {
		f, err := DefaultFont()
		if err != nil {
			Logger().Warn("chart: default font unavailable, text will not draw",
				slog.String("chart", name), slog.Any("error", err))
			c.font = FixedFont{Advance: 7, Size: DefaultFontSize}
		} else {
			c.font = f
		}
	}
	return c
}

// Init attaches the chart beneath parent and records its container. Nothing
// is drawn until a configuration arrives.
func (c *chartBase) Init(parent *Node, container Container) {
	if c.disposed {
		return
	}
	c.parent = parent
	c.container = container
	c.root = NewContainer(c.name)
	c.root.Interactable = true
	parent.AddChild(c.root)
}

// Root returns the chart's root node, or nil before Init.
func (c *chartBase) Root() *Node {
	return c.root
}

// containerWidth is the width layout clamps against. Without any size
// information the chart is never considered narrow.
func (c *chartBase) containerWidth() float64 {
	if c.resized {
		return c.viewW
	}
	if c.container != nil {
		w, _ := c.container.Size()
		return w
	}
	return math.Inf(1)
}

// OnResize records the new viewport size and schedules a re-render once
// resize notifications have been quiet for the resize delay.
func (c *chartBase) OnResize(width, height float64) {
	if c.disposed {
		return
	}
	c.viewW, c.viewH = width, height
	c.resized = true
	c.resize.Trigger(c.clock())
}

// Tick fires a pending debounced re-render when its delay has elapsed at now.
// Hosts call it once per frame.
func (c *chartBase) Tick(now time.Time) {
	if c.disposed || !c.resize.Poll(now) {
		return
	}
	Logger().Debug("chart: resize settled", slog.String("chart", c.name),
		slog.Float64("width", c.viewW), slog.Float64("height", c.viewH))
	c.rerender()
}

func (c *chartBase) rerender() {
	if c.disposed || c.root == nil || c.render == nil {
		return
	}
	c.render()
}

// dispose cancels the pending resize and tears down the chart's subtree.
// In-flight tweens stop with their nodes.
func (c *chartBase) dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.resize.Stop()
	if c.root != nil {
		c.root.Dispose()
	}
}
