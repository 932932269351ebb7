package chart

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenArc, TweenRect,
// TweenPosition, TweenAlpha). Each constructor reads the node's current field
// values as the starting point, so restarting a tween mid-flight continues
// from wherever the previous one left the node. If the target node is
// disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenArc creates a TweenGroup that animates all four arc parameters of
// node.Arc towards to.
func TweenArc(node *Node, to Arc, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Arc.Start, to.Start, duration, fn)
	g.add(&node.Arc.End, to.End, duration, fn)
	g.add(&node.Arc.Inner, to.Inner, duration, fn)
	g.add(&node.Arc.Outer, to.Outer, duration, fn)
	return g
}

// TweenRect creates a TweenGroup that animates a rect node's position and size.
func TweenRect(node *Node, toX, toY, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	g.add(&node.Width, toW, duration, fn)
	g.add(&node.Height, toH, duration, fn)
	return g
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Alpha, to, duration, fn)
	return g
}

// Animate makes g the node's active tween, replacing any tween already
// running on it. The scene advances it on every Update.
func (n *Node) Animate(g *TweenGroup) {
	n.tween = g
}

// Animating reports whether the node has an unfinished tween.
func (n *Node) Animating() bool {
	return n.tween != nil && !n.tween.Done
}

// StopAnimation drops the node's active tween, leaving fields where they are.
func (n *Node) StopAnimation() {
	n.tween = nil
}

// updateTweens advances every active tween in the subtree by dt seconds and
// clears finished ones.
func updateTweens(n *Node, dt float32) {
	if n.tween != nil {
		n.tween.Update(dt)
		if n.tween.Done {
			n.tween = nil
		}
	}
	for _, child := range n.children {
		updateTweens(child, dt)
	}
}

// seconds converts a duration to gween's float32 seconds.
func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}
