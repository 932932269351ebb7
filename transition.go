package chart

import (
	"time"

	"github.com/tanema/gween/ease"
)

// transition is a duration and easing pair applied to chart primitives.
type transition struct {
	duration time.Duration
	ease     ease.TweenFunc
}

var (
	donutInitialDraw = transition{1000 * time.Millisecond, ease.InOutCubic}
	donutUpdate      = transition{500 * time.Millisecond, ease.InOutCubic}
	donutHover       = transition{300 * time.Millisecond, ease.InOutCubic}
	donutLeave       = transition{300 * time.Millisecond, ease.OutBack}
	columnRelayout   = transition{500 * time.Millisecond, ease.Linear}
)

// arc tweens n.Arc from its current value to the target.
func (t transition) arc(n *Node, to Arc) {
	n.Animate(TweenArc(n, to, seconds(t.duration), t.ease))
}

// rect tweens n's position and size from their current values.
func (t transition) rect(n *Node, x, y, w, h float64) {
	n.Animate(TweenRect(n, x, y, w, h, seconds(t.duration), t.ease))
}

// position tweens n's position from its current value.
func (t transition) position(n *Node, x, y float64) {
	n.Animate(TweenPosition(n, x, y, seconds(t.duration), t.ease))
}
