package chart

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandMesh CommandType = iota // DrawTriangles over the white pixel
	CommandText                    // text/v2 Draw
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Type      CommandType
	source    *Node
	treeOrder int // assigned during traversal, painter order

	// Mesh-only fields, already in world space.
	meshVerts []ebiten.Vertex
	meshInds  []uint16

	// Text-only fields. (X, Y) is the world-space baseline anchor.
	Text  string
	Font  Font
	Align TextAlign
	X, Y  float64
	Color Color
}

// traverse walks the node tree depth-first and emits render commands for
// visible primitives. World transforms must be current.
func (s *Scene) traverse(n *Node, treeOrder *int) {
	if !n.Visible {
		return
	}

	switch n.Type {
	case NodeTypeArc:
		fill := n.Fill.WithAlpha(n.Fill.A * n.worldAlpha)
		s.emitMesh(n, treeOrder, func(b *meshBuilder) {
			b.appendArcFill(n.Arc, n.worldX, n.worldY, fill)
		})
		if n.StrokeWidth > 0 {
			stroke := n.Stroke.WithAlpha(n.Stroke.A * n.worldAlpha)
			s.emitMesh(n, treeOrder, func(b *meshBuilder) {
				b.appendArcStroke(n.Arc, n.StrokeWidth, n.worldX, n.worldY, stroke)
			})
		}
	case NodeTypeRect:
		fill := n.Fill.WithAlpha(n.Fill.A * n.worldAlpha)
		s.emitMesh(n, treeOrder, func(b *meshBuilder) {
			if n.Pattern == PatternStripes {
				b.appendStripes(n.Width, n.Height, n.StripePeriod, n.StripeWidth, n.worldX, n.worldY, fill)
				return
			}
			b.appendRectFill(n.Width, n.Height, n.CornerRadius, n.worldX, n.worldY, fill)
		})
	case NodeTypeText:
		if n.Font != nil && n.Text != "" {
			*treeOrder++
			s.commands = append(s.commands, RenderCommand{
				Type:      CommandText,
				source:    n,
				treeOrder: *treeOrder,
				Text:      n.Text,
				Font:      n.Font,
				Align:     n.Align,
				X:         n.worldX,
				Y:         n.worldY,
				Color:     n.Fill.WithAlpha(n.Fill.A * n.worldAlpha),
			})
		}
		// NodeTypeContainer doesn't emit commands
	}

	// Traverse children (ZIndex sorted if needed)
	if len(n.children) == 0 {
		return
	}
	children := n.children
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(child, treeOrder)
	}
}

// emitMesh tessellates into the scene's shared vertex buffers and appends a
// command referencing the new range. Empty geometry emits nothing.
func (s *Scene) emitMesh(n *Node, treeOrder *int, build func(*meshBuilder)) {
	v0, i0 := len(s.mesh.verts), len(s.mesh.inds)
	s.mesh.start = v0
	build(&s.mesh)
	if len(s.mesh.inds) == i0 {
		s.mesh.verts = s.mesh.verts[:v0]
		return
	}
	*treeOrder++
	s.commands = append(s.commands, RenderCommand{
		Type:      CommandMesh,
		source:    n,
		treeOrder: *treeOrder,
		meshVerts: s.mesh.verts[v0:len(s.mesh.verts):len(s.mesh.verts)],
		meshInds:  s.mesh.inds[i0:len(s.mesh.inds):len(s.mesh.inds)],
	})
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Uses insertion sort: zero allocations, stable, and optimal for the typical
// case of few children that are nearly sorted (O(n) when already sorted).
func (s *Scene) rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	// Stable insertion sort by ZIndex.
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// submit draws the command list in order onto target.
func (s *Scene) submit(target *ebiten.Image) {
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandMesh:
			s.submitMesh(target, cmd)
		case CommandText:
			submitText(target, cmd)
		}
	}
}

// submitMesh draws a mesh command using DrawTriangles.
func (s *Scene) submitMesh(target *ebiten.Image, cmd *RenderCommand) {
	if len(cmd.meshVerts) == 0 || len(cmd.meshInds) == 0 {
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.AntiAlias = true
	target.DrawTriangles(cmd.meshVerts, cmd.meshInds, ensureWhitePixel(), &triOp)
}

// submitText draws a text command. Only TTF fonts can draw; other Font
// implementations are measurement-only.
func submitText(target *ebiten.Image, cmd *RenderCommand) {
	f, ok := cmd.Font.(*TTFFont)
	if !ok {
		return
	}
	op := &text.DrawOptions{}
	switch cmd.Align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	// text/v2 positions by the line's top; the node's Y is the baseline.
	op.GeoM.Translate(cmd.X, cmd.Y-f.Ascent())
	op.ColorScale.ScaleWithColor(cmd.Color.toRGBA())
	text.Draw(target, cmd.Text, f.Face(), op)
}
