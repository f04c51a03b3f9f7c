package clip

import (
	"math"

	"tacgraph/internal/graphic"
)

// DefaultRectInset is how far beyond the viewport the rectangle clipper keeps
// geometry. Points just outside are still needed for labels and for segment
// continuity at the viewport edge.
const DefaultRectInset = 50.0

// Rect is an axis-aligned rectangle in pixel space, Y growing downward.
type Rect struct {
	X, Y float64 // top-left corner
	W, H float64
}

// NewRect creates a Rect from position and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the right edge x-coordinate.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge y-coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Expand grows r by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Contains reports whether p lies in r, edges included.
func (r Rect) Contains(p graphic.TaggedPoint) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Corners returns the corners clockwise from the top-left.
func (r Rect) Corners() [4]graphic.TaggedPoint {
	return [4]graphic.TaggedPoint{
		graphic.Pt(r.X, r.Y),
		graphic.Pt(r.Right(), r.Y),
		graphic.Pt(r.Right(), r.Bottom()),
		graphic.Pt(r.X, r.Bottom()),
	}
}

// Center returns the midpoint of r.
func (r Rect) Center() graphic.TaggedPoint {
	return graphic.Pt(r.X+r.W/2, r.Y+r.H/2)
}

// verticalEdge keeps points left of x (right side) or right of x (left side).
type verticalEdge struct {
	x     float64
	right bool
}

func (e verticalEdge) inside(p graphic.TaggedPoint) bool {
	if e.right {
		return p.X <= e.x
	}
	return p.X >= e.x
}

// intersect solves the segment's line equation at x. A crossing segment
// never has zero width.
func (e verticalEdge) intersect(prev, cur graphic.TaggedPoint) graphic.TaggedPoint {
	m := (cur.Y - prev.Y) / (cur.X - prev.X)
	return synthesized(e.x, prev.Y+(e.x-prev.X)*m)
}

// horizontalEdge keeps points below y (top side) or above y (bottom side).
type horizontalEdge struct {
	y   float64
	top bool
}

func (e horizontalEdge) inside(p graphic.TaggedPoint) bool {
	if e.top {
		return p.Y >= e.y
	}
	return p.Y <= e.y
}

// intersect solves the segment's line equation at y. Segments less than a
// unit wide are treated as vertical.
func (e horizontalEdge) intersect(prev, cur graphic.TaggedPoint) graphic.TaggedPoint {
	dx := cur.X - prev.X
	if math.Abs(dx) < 1 {
		return synthesized(prev.X, e.y)
	}
	m := (cur.Y - prev.Y) / dx
	return synthesized(prev.X+(e.y-prev.Y)/m, e.y)
}

type rectBoundary struct {
	r Rect
}

// edges returns right, top, left, bottom. Each pass consumes the previous
// pass's output, so the order is fixed.
func (b rectBoundary) edges() []edge {
	return []edge{
		verticalEdge{x: b.r.Right(), right: true},
		horizontalEdge{y: b.r.Y, top: true},
		verticalEdge{x: b.r.X},
		horizontalEdge{y: b.r.Bottom()},
	}
}

func (b rectBoundary) contains(p graphic.TaggedPoint) bool { return b.r.Contains(p) }

// anchor picks the corner nearest p and pulls it toward the center.
func (b rectBoundary) anchor(p graphic.TaggedPoint) graphic.TaggedPoint {
	corners := b.r.Corners()
	best := corners[0]
	for _, c := range corners[1:] {
		if c.Distance(p) < best.Distance(p) {
			best = c
		}
	}
	return nudgeToward(best, b.r.Center(), SyntheticNudge)
}

// RectClipper clips buffers against an axis-aligned viewport. The zero value
// clips at the exact rectangle; NewRectClipper keeps DefaultRectInset extra.
type RectClipper struct {
	Inset float64
}

// NewRectClipper returns a clipper using DefaultRectInset.
func NewRectClipper() *RectClipper {
	return &RectClipper{Inset: DefaultRectInset}
}

func (c *RectClipper) boundary(r Rect) (rectBoundary, error) {
	if r.W <= 0 || r.H <= 0 {
		return rectBoundary{}, ErrDegenerateRect
	}
	return rectBoundary{r: r.Expand(c.Inset)}, nil
}

// Clip clips buf against r grown by the inset. buf.Points is replaced and
// buf.Clipped updated; the new path is returned. Closed buffers come back
// closed. A result too small to draw leaves buf with no points. On error buf
// is unchanged.
func (c *RectClipper) Clip(buf *graphic.Buffer, r Rect) ([]graphic.TaggedPoint, error) {
	b, err := c.boundary(r)
	if err != nil {
		return nil, err
	}
	return clipBuffer(buf, b)
}

// ExtractFillShape clips a closed copy of buf for line kinds that draw a
// fill beneath their outline. buf itself is not modified. It returns nil,
// nil when the kind has no fill or the fill lies outside r.
func (c *RectClipper) ExtractFillShape(buf *graphic.Buffer, r Rect, style graphic.Style) (*graphic.ShapeDescriptor, error) {
	b, err := c.boundary(r)
	if err != nil {
		return nil, err
	}
	return extractFill(buf, b, style)
}
