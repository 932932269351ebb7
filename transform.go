package chart

import "math"

// Chart primitives are positioned by translation only, so a node's world
// transform reduces to an accumulated offset plus an alpha product.

// updateWorldTransform recomputes a node's world offset and alpha.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentX, parentY, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldX = parentX + n.X
		n.worldY = parentY + n.Y
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldX, n.worldY, n.worldAlpha, recompute)
	}
}

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldPosition returns the node's origin in world space as of the last
// transform refresh.
func (n *Node) WorldPosition() (float64, float64) {
	return n.worldX, n.worldY
}

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return wx - n.worldX, wy - n.worldY
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return lx + n.worldX, ly + n.worldY
}

// subtreeBounds returns the bounding box of n's visible descendants in n's
// local coordinate space, from their current local positions. ok is false
// when nothing in the subtree has extent.
func subtreeBounds(n *Node) (r Rect, ok bool) {
	var walk func(m *Node, ox, oy float64)
	walk = func(m *Node, ox, oy float64) {
		if !m.Visible {
			return
		}
		if b, has := nodeBounds(m); has {
			b.X += ox
			b.Y += oy
			if !ok {
				r, ok = b, true
			} else {
				r = unionRect(r, b)
			}
		}
		for _, c := range m.children {
			walk(c, ox+c.X, oy+c.Y)
		}
	}
	for _, c := range n.children {
		walk(c, c.X, c.Y)
	}
	return r, ok
}

// nodeBounds returns a primitive's own local bounding box.
func nodeBounds(n *Node) (Rect, bool) {
	switch n.Type {
	case NodeTypeRect:
		if n.Width <= 0 && n.Height <= 0 {
			return Rect{}, false
		}
		return Rect{Width: n.Width, Height: n.Height}, true
	case NodeTypeArc:
		r := math.Max(n.Arc.Inner, n.Arc.Outer)
		if r <= 0 {
			return Rect{}, false
		}
		return Rect{X: -r, Y: -r, Width: 2 * r, Height: 2 * r}, true
	case NodeTypeText:
		if n.Font == nil || n.Text == "" {
			return Rect{}, false
		}
		return textBounds(n), true
	}
	return Rect{}, false
}

func unionRect(a, b Rect) Rect {
	x0 := math.Min(a.X, b.X)
	y0 := math.Min(a.Y, b.Y)
	x1 := math.Max(a.X+a.Width, b.X+b.Width)
	y1 := math.Max(a.Y+a.Height, b.Y+b.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
