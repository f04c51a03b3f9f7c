package clip

import (
	"math"

	"github.com/golang/geo/r2"

	"tacgraph/internal/graphic"
)

// DefaultPolygonMargin is how far the polygon clipper pushes the viewport
// outward before clipping, so points on the nominal boundary survive.
const DefaultPolygonMargin = 20.0

// onLine is the perpendicular distance below which a point counts as lying
// on an edge line.
const onLine = 1e-7

func vec(p graphic.TaggedPoint) r2.Point { return r2.Point{X: p.X, Y: p.Y} }

// nudge shifts b a unit further from a in x when the two are less than a
// unit apart horizontally, so the line through them has a finite slope.
func nudge(a, b r2.Point) r2.Point {
	if math.Abs(b.X-a.X) >= 1 {
		return b
	}
	if b.X >= a.X {
		b.X++
	} else {
		b.X--
	}
	return b
}

// halfPlane is one polygon edge in slope-intercept form together with the
// perpendicular offset of an interior reference point from that line.
type halfPlane struct {
	m, c float64
	ref  r2.Point
}

func newHalfPlane(a, b, ref r2.Point) halfPlane {
	b = nudge(a, b)
	m := (b.Y - a.Y) / (b.X - a.X)
	h := halfPlane{m: m, c: a.Y - m*a.X}
	h.ref = ref.Sub(h.foot(ref))
	return h
}

// foot drops a perpendicular from p onto the edge line.
func (h halfPlane) foot(p r2.Point) r2.Point {
	x := (p.X + h.m*(p.Y-h.c)) / (1 + h.m*h.m)
	return r2.Point{X: x, Y: h.m*x + h.c}
}

// inside reports whether p's perpendicular offset from the edge line points
// the same way as the reference point's. Points on the line are inside.
func (h halfPlane) inside(tp graphic.TaggedPoint) bool {
	p := vec(tp)
	off := p.Sub(h.foot(p))
	if off.Norm() <= onLine {
		return true
	}
	return off.Dot(h.ref) > 0
}

// intersect finds where prev->cur meets the edge line.
func (h halfPlane) intersect(prev, cur graphic.TaggedPoint) graphic.TaggedPoint {
	a, d := vec(prev), vec(cur).Sub(vec(prev))
	den := d.Y - h.m*d.X
	if den == 0 {
		return synthesized(cur.X, cur.Y)
	}
	t := (h.m*a.X + h.c - a.Y) / den
	t = math.Max(0, math.Min(1, t))
	p := a.Add(d.Mul(t))
	return synthesized(p.X, p.Y)
}

type polygonBoundary struct {
	verts    []r2.Point
	centroid r2.Point
	planes   []halfPlane
}

// cleanRing drops a repeated closing vertex, duplicates and collinear
// vertices.
func cleanRing(pts []graphic.TaggedPoint) []r2.Point {
	var ring []r2.Point
	for _, p := range pts {
		v := vec(p)
		if n := len(ring); n > 0 && ring[n-1] == v {
			continue
		}
		ring = append(ring, v)
	}
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}
	for changed := true; changed && len(ring) >= 3; {
		changed = false
		n := len(ring)
		for i := 0; i < n; i++ {
			prev, cur, next := ring[(i+n-1)%n], ring[i], ring[(i+1)%n]
			if math.Abs(cur.Sub(prev).Cross(next.Sub(cur))) <= 1e-9*cur.Sub(prev).Norm()*next.Sub(cur).Norm() {
				ring = append(ring[:i:i], ring[i+1:]...)
				changed = true
				break
			}
		}
	}
	return ring
}

func signedArea(ring []r2.Point) float64 {
	var a float64
	for i, p := range ring {
		a += p.Cross(ring[(i+1)%len(ring)])
	}
	return a / 2
}

// offsetRing moves every edge of a convex ring outward by d and joins the
// shifted edges at their intersections.
func offsetRing(ring []r2.Point, d float64) []r2.Point {
	if d == 0 {
		return ring
	}
	n := len(ring)
	sign := 1.0
	if signedArea(ring) < 0 {
		sign = -1
	}
	type line struct{ p, dir r2.Point }
	lines := make([]line, n)
	for i := range ring {
		dir := ring[(i+1)%n].Sub(ring[i]).Normalize()
		normal := r2.Point{X: dir.Y, Y: -dir.X}.Mul(sign)
		lines[i] = line{p: ring[i].Add(normal.Mul(d)), dir: dir}
	}
	out := make([]r2.Point, n)
	for i := range ring {
		l1, l2 := lines[(i+n-1)%n], lines[i]
		t := l2.p.Sub(l1.p).Cross(l2.dir) / l1.dir.Cross(l2.dir)
		out[i] = l1.p.Add(l1.dir.Mul(t))
	}
	return out
}

func newPolygonBoundary(pts []graphic.TaggedPoint, margin float64) (*polygonBoundary, error) {
	ring := cleanRing(pts)
	if len(ring) < 3 || math.Abs(signedArea(ring)) < 1e-9 {
		return nil, ErrDegenerateBoundary
	}
	ring = offsetRing(ring, margin)

	b := &polygonBoundary{verts: ring}
	n := len(ring)
	for _, v := range ring {
		b.centroid = b.centroid.Add(v)
	}
	b.centroid = b.centroid.Mul(1 / float64(n))
	b.planes = make([]halfPlane, n)
	for k := range ring {
		b.planes[k] = newHalfPlane(ring[k], ring[(k+1)%n], ring[(k+2)%n])
	}
	return b, nil
}

func (b *polygonBoundary) edges() []edge {
	out := make([]edge, len(b.planes))
	for i, h := range b.planes {
		out[i] = h
	}
	return out
}

func (b *polygonBoundary) contains(p graphic.TaggedPoint) bool {
	for _, h := range b.planes {
		if !h.inside(p) {
			return false
		}
	}
	return true
}

// anchor picks the boundary vertex nearest p and pulls it toward the vertex
// centroid.
func (b *polygonBoundary) anchor(p graphic.TaggedPoint) graphic.TaggedPoint {
	v := vec(p)
	best := b.verts[0]
	for _, w := range b.verts[1:] {
		if w.Sub(v).Norm() < best.Sub(v).Norm() {
			best = w
		}
	}
	return nudgeToward(synthesized(best.X, best.Y), synthesized(b.centroid.X, b.centroid.Y), SyntheticNudge)
}

// PolygonClipper clips buffers against a convex viewport polygon, such as a
// rotated map view. The zero value clips at the exact polygon;
// NewPolygonClipper keeps DefaultPolygonMargin extra.
type PolygonClipper struct {
	Margin float64
}

// NewPolygonClipper returns a clipper using DefaultPolygonMargin.
func NewPolygonClipper() *PolygonClipper {
	return &PolygonClipper{Margin: DefaultPolygonMargin}
}

// Clip clips buf against the convex polygon boundary, which is closed
// implicitly. Sides are processed in order, each consuming the previous
// side's output. buf is updated as by RectClipper.Clip.
func (c *PolygonClipper) Clip(buf *graphic.Buffer, polygon []graphic.TaggedPoint) ([]graphic.TaggedPoint, error) {
	b, err := newPolygonBoundary(polygon, c.Margin)
	if err != nil {
		return nil, err
	}
	return clipBuffer(buf, b)
}

// ExtractFillShape is the polygon counterpart of RectClipper.ExtractFillShape.
func (c *PolygonClipper) ExtractFillShape(buf *graphic.Buffer, polygon []graphic.TaggedPoint, style graphic.Style) (*graphic.ShapeDescriptor, error) {
	b, err := newPolygonBoundary(polygon, c.Margin)
	if err != nil {
		return nil, err
	}
	return extractFill(buf, b, style)
}
