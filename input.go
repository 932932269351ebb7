package chart

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 1 // pointer 0 = mouse

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node       // last node the pointer was hovering over (for enter/leave)
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type handlerRegistry struct {
	pointerDown  handlerList[PointerContext]
	pointerUp    handlerList[PointerContext]
	pointerMove  handlerList[PointerContext]
	pointerEnter handlerList[PointerContext]
	pointerLeave handlerList[PointerContext]
	click        handlerList[ClickContext]
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.handlers.pointerDown.add(fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.handlers.pointerUp.add(fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.handlers.pointerMove.add(fn)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired when the pointer moves over a new node (or from nil to a node).
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.handlers.pointerEnter.add(fn)
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
// Fired when the pointer leaves a node (moves to a different node or to empty space).
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.handlers.pointerLeave.add(fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	return s.handlers.click.add(fn)
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's own geometry. Containers and
// text with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	switch n.Type {
	case NodeTypeArc:
		return n.Arc.Contains(lx, ly)
	case NodeTypeRect:
		if n.Width <= 0 || n.Height <= 0 {
			return false
		}
		return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
	}
	return false
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Skips Visible=false or
// Interactable=false nodes; their children are still visited when visible.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}

	if n.Interactable && (n.HitShape != nil || n.Type == NodeTypeArc || n.Type == NodeTypeRect) {
		buf = append(buf, n)
	}

	if len(n.children) == 0 {
		return buf
	}

	children := n.children
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update() to handle mouse input. Injected
// events take precedence over the real mouse for the frame they are replayed.
// Scenes not driven by Run only see injected input.
func (s *Scene) processInput() {
	updateWorldTransform(s.root, 0, 0, 1, false)
	if s.processInjectedInput() {
		return
	}
	if s.liveInput {
		s.processMousePointer()
	}
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	// Detect which button is pressed. If pointer is already down, use the
	// stored button to avoid changing mid-interaction.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button)
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]

	target := s.hitTest(wx, wy)

	// A hovered node may have been disposed by a re-render since last frame.
	if ps.hoverNode != nil && ps.hoverNode.IsDisposed() {
		ps.hoverNode = nil
	}

	// Fire hover enter/leave when the hovered node changes.
	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointerLeave(ps.hoverNode, pointerID, wx, wy, button)
		}
		if target != nil {
			s.firePointerEnter(target, pointerID, wx, wy, button)
		}
		ps.hoverNode = target
	}
	s.cursor = CursorDefault
	if target != nil {
		s.cursor = target.Cursor
	}

	if pressed && !ps.down {
		// Just pressed: capture button for the duration of this interaction.
		ps.down = true
		ps.button = button
		ps.lastX = wx
		ps.lastY = wy
		ps.hitNode = target

		s.firePointerDown(target, pointerID, wx, wy, ps.button)
	} else if !pressed && ps.down {
		// Just released: use button from press start.
		if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, pointerID, wx, wy, ps.button)
		}

		s.firePointerUp(target, pointerID, wx, wy, ps.button)

		ps.down = false
		ps.hitNode = nil
	} else if wx != ps.lastX || wy != ps.lastY {
		// Moved, pressed or not.
		s.firePointerMove(target, pointerID, wx, wy, button)
		ps.lastX = wx
		ps.lastY = wy
	}
}

// --- Event dispatch ---

func pointerContext(node *Node, pointerID int, wx, wy float64, button MouseButton) PointerContext {
	ctx := PointerContext{
		Node: node, GlobalX: wx, GlobalY: wy,
		Button: button, PointerID: pointerID,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.UserData = node.UserData
	}
	return ctx
}

func (s *Scene) firePointerDown(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := pointerContext(node, pointerID, wx, wy, button)
	// Scene-level handlers first.
	s.handlers.pointerDown.emit(ctx)
	// Per-node callback.
	if node != nil && node.OnPointerDown != nil {
		node.OnPointerDown(ctx)
	}
}

func (s *Scene) firePointerUp(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := pointerContext(node, pointerID, wx, wy, button)
	s.handlers.pointerUp.emit(ctx)
	if node != nil && node.OnPointerUp != nil {
		node.OnPointerUp(ctx)
	}
}

func (s *Scene) firePointerMove(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := pointerContext(node, pointerID, wx, wy, button)
	s.handlers.pointerMove.emit(ctx)
	if node != nil && node.OnPointerMove != nil {
		node.OnPointerMove(ctx)
	}
}

func (s *Scene) firePointerEnter(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := pointerContext(node, pointerID, wx, wy, button)
	s.handlers.pointerEnter.emit(ctx)
	if node.OnPointerEnter != nil {
		node.OnPointerEnter(ctx)
	}
}

func (s *Scene) firePointerLeave(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := pointerContext(node, pointerID, wx, wy, button)
	s.handlers.pointerLeave.emit(ctx)
	if node.OnPointerLeave != nil {
		node.OnPointerLeave(ctx)
	}
}

func (s *Scene) fireClick(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	p := pointerContext(node, pointerID, wx, wy, button)
	ctx := ClickContext(p)
	s.handlers.click.emit(ctx)
	if node.OnClick != nil {
		node.OnClick(ctx)
	}
}
