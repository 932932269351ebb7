package chart

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Chart shapes are tessellated on the CPU and drawn as untextured triangles
// over a shared white pixel; color lives in the vertices.

// arcSegmentAngle is the maximum angular step when flattening a curve.
const arcSegmentAngle = math.Pi / 90

// --- White pixel singleton (no sync.Once; the scene is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// meshBuilder accumulates untextured triangles in world space.
// Indices are relative to start, so one builder can back many commands.
type meshBuilder struct {
	verts []ebiten.Vertex
	inds  []uint16
	start int
}

// next is the index the next appended vertex will get.
func (b *meshBuilder) next() uint16 {
	return uint16(len(b.verts) - b.start)
}

// vertex appends one vertex with premultiplied color c and returns its index.
func (b *meshBuilder) vertex(x, y float64, c Color) uint16 {
	a := float32(c.A)
	b.verts = append(b.verts, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R) * a,
		ColorG: float32(c.G) * a,
		ColorB: float32(c.B) * a,
		ColorA: a,
	})
	return b.next() - 1
}

// fan appends a fan-triangulated convex polygon offset by (ox, oy).
func (b *meshBuilder) fan(points []Vec2, ox, oy float64, c Color) {
	n := len(points)
	if n < 3 {
		return
	}
	base := b.next()
	for _, p := range points {
		b.vertex(p.X+ox, p.Y+oy, c)
	}
	// Vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		b.inds = append(b.inds, base, base+uint16(i+1), base+uint16(i+2))
	}
}

// strip appends the quad strip between two polylines of equal length.
func (b *meshBuilder) strip(outer, inner []Vec2, ox, oy float64, c Color) {
	n := len(outer)
	if n < 2 || len(inner) != n {
		return
	}
	base := b.next()
	for i := 0; i < n; i++ {
		b.vertex(outer[i].X+ox, outer[i].Y+oy, c)
		b.vertex(inner[i].X+ox, inner[i].Y+oy, c)
	}
	for i := 0; i < n-1; i++ {
		v := base + uint16(i*2)
		b.inds = append(b.inds, v, v+1, v+2, v+1, v+3, v+2)
	}
}

// polyline appends a stroke of the given width along points. Segments are
// drawn as independent quads.
func (b *meshBuilder) polyline(points []Vec2, closed bool, width, ox, oy float64, c Color) {
	n := len(points)
	if n < 2 || width <= 0 {
		return
	}
	hw := width / 2
	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		p0, p1 := points[i], points[(i+1)%n]
		px, py := perpendicular(p0, p1)
		px, py = px*hw, py*hw
		base := b.next()
		b.vertex(p0.X+px+ox, p0.Y+py+oy, c)
		b.vertex(p0.X-px+ox, p0.Y-py+oy, c)
		b.vertex(p1.X+px+ox, p1.Y+py+oy, c)
		b.vertex(p1.X-px+ox, p1.Y-py+oy, c)
		b.inds = append(b.inds, base, base+1, base+2, base+1, base+3, base+2)
	}
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// arcPolyline flattens the circle of radius r between pie angles start and
// end, inclusive of both endpoints.
func arcPolyline(r, start, end float64) []Vec2 {
	segs := int(math.Ceil(math.Abs(end-start) / arcSegmentAngle))
	if segs < 1 {
		segs = 1
	}
	pts := make([]Vec2, segs+1)
	for i := 0; i <= segs; i++ {
		t := start + (end-start)*float64(i)/float64(segs)
		x, y := arcPoint(r, t)
		pts[i] = Vec2{X: x, Y: y}
	}
	return pts
}

// appendArcFill tessellates an annular sector centered at (ox, oy).
func (b *meshBuilder) appendArcFill(a Arc, ox, oy float64, c Color) {
	inner, outer := a.Inner, a.Outer
	if inner > outer {
		inner, outer = outer, inner
	}
	if outer <= 0 || a.Span() == 0 {
		return
	}
	outerPts := arcPolyline(outer, a.Start, a.End)
	if inner <= 0 {
		b.fan(append([]Vec2{{}}, outerPts...), ox, oy, c)
		return
	}
	b.strip(outerPts, arcPolyline(inner, a.Start, a.End), ox, oy, c)
}

// appendArcStroke outlines an annular sector centered at (ox, oy).
func (b *meshBuilder) appendArcStroke(a Arc, width, ox, oy float64, c Color) {
	inner, outer := a.Inner, a.Outer
	if inner > outer {
		inner, outer = outer, inner
	}
	if outer <= 0 || a.Span() == 0 {
		return
	}
	outline := arcPolyline(outer, a.Start, a.End)
	if inner <= 0 {
		outline = append(outline, Vec2{})
	} else {
		back := arcPolyline(inner, a.End, a.Start)
		outline = append(outline, back...)
	}
	b.polyline(outline, true, width, ox, oy, c)
}

// roundedRectPoints returns the outline of a w×h rectangle at the origin with
// corners rounded by radius r (clamped to half the shorter side).
func roundedRectPoints(w, h, r float64) []Vec2 {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return []Vec2{{0, 0}, {w, 0}, {w, h}, {0, h}}
	}
	var pts []Vec2
	corner := func(cx, cy, from float64) {
		for _, p := range arcPolyline(r, from, from+math.Pi/2) {
			pts = append(pts, Vec2{X: cx + p.X, Y: cy + p.Y})
		}
	}
	// Pie angles run clockwise from 12 o'clock.
	corner(w-r, r, 0)
	corner(w-r, h-r, math.Pi/2)
	corner(r, h-r, math.Pi)
	corner(r, r, 3*math.Pi/2)
	return pts
}

// appendRectFill tessellates a (rounded) rectangle with its top-left at (ox, oy).
func (b *meshBuilder) appendRectFill(w, h, radius, ox, oy float64, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	b.fan(roundedRectPoints(w, h, radius), ox, oy, c)
}

// appendStripes tessellates 45° hatch stripes clipped to a w×h rectangle.
func (b *meshBuilder) appendStripes(w, h, period, thickness, ox, oy float64, c Color) {
	for _, poly := range stripePolygons(w, h, period, thickness) {
		b.fan(poly, ox, oy, c)
	}
}
