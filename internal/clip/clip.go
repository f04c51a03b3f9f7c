// Package clip clips graphic buffers in pixel space against the map
// viewport, either an axis-aligned rectangle or a convex polygon.
//
// Both clippers run the same edge-by-edge pass: every consecutive pair of
// points (wrapping from last to first) is classified against one boundary
// edge at a time, and points on the edge count as inside. The pass only
// handles regions whose first and last points are inside, so open lines get
// synthetic endpoints near the boundary before clipping; these are stripped
// again afterwards.
package clip

import (
	"errors"

	"tacgraph/internal/graphic"
)

var (
	ErrNilBuffer          = errors.New("clip: nil buffer")
	ErrTooFewPoints       = errors.New("clip: too few points")
	ErrDegenerateRect     = errors.New("clip: rectangle has no area")
	ErrDegenerateBoundary = errors.New("clip: boundary polygon is degenerate")
)

// SyntheticNudge is how far a synthetic endpoint is pulled from the boundary
// toward the interior so it lies strictly inside.
const SyntheticNudge = 10.0

// synthCode records which synthetic endpoints were added to an open line.
type synthCode int

const (
	synthNone  synthCode = 0
	synthFront synthCode = 1
	synthEnd   synthCode = 2
	synthBoth  synthCode = synthFront | synthEnd
)

// edge is one boundary side of the clip region.
type edge interface {
	inside(p graphic.TaggedPoint) bool
	intersect(prev, cur graphic.TaggedPoint) graphic.TaggedPoint
}

// boundary is a complete clip region.
type boundary interface {
	edges() []edge
	contains(p graphic.TaggedPoint) bool
	// anchor returns a synthetic point inside the region near p.
	anchor(p graphic.TaggedPoint) graphic.TaggedPoint
}

func synthesized(x, y float64) graphic.TaggedPoint {
	return graphic.TaggedPoint{X: x, Y: y, Segment: graphic.LineTo, Provenance: graphic.ClipSynthesized}
}

// nudgeToward moves p by d toward target, stopping at target.
func nudgeToward(p, target graphic.TaggedPoint, d float64) graphic.TaggedPoint {
	dist := p.Distance(target)
	if dist <= d {
		return synthesized(target.X, target.Y)
	}
	q := p.Lerp(target, d/dist)
	return synthesized(q.X, q.Y)
}

// dropRepeats removes consecutive points at the same location, keeping the
// first. For rings the last point is also compared with the first.
func dropRepeats(pts []graphic.TaggedPoint, ring bool) []graphic.TaggedPoint {
	out := pts[:0]
	for _, p := range pts {
		if n := len(out); n > 0 && out[n-1].SameLocation(p) {
			continue
		}
		out = append(out, p)
	}
	if n := len(out); ring && n > 1 && out[0].SameLocation(out[n-1]) {
		out = out[:n-1]
	}
	return out
}

// clipAgainst runs one pass of pts against e. Coincident points are kept so
// that synthetic endpoints stay two positions from either end.
func clipAgainst(pts []graphic.TaggedPoint, e edge) (out []graphic.TaggedPoint, clipped bool) {
	n := len(pts)
	out = make([]graphic.TaggedPoint, 0, n+4)
	for j := 0; j < n; j++ {
		cur := pts[j]
		prev := pts[(j+n-1)%n]
		curIn, prevIn := e.inside(cur), e.inside(prev)
		switch {
		case prevIn && curIn:
			out = append(out, cur)
		case prevIn && !curIn:
			out = append(out, e.intersect(prev, cur))
			clipped = true
		case !prevIn && !curIn:
			clipped = true
		default:
			out = append(out, e.intersect(prev, cur))
			out = append(out, cur)
			clipped = true
		}
	}
	return out, clipped
}

// addSynthetic gives an open line endpoints inside b.
func addSynthetic(pts []graphic.TaggedPoint, b boundary) ([]graphic.TaggedPoint, synthCode) {
	code := synthNone
	first, last := pts[0], pts[len(pts)-1]
	out := make([]graphic.TaggedPoint, 0, len(pts)+2)
	if !b.contains(first) {
		out = append(out, b.anchor(first))
		code |= synthFront
	}
	out = append(out, pts...)
	if !b.contains(last) {
		out = append(out, b.anchor(last))
		code |= synthEnd
	}
	return out, code
}

// stripSynthetic removes each synthetic endpoint together with the
// intersection computed on its connecting segment.
func stripSynthetic(pts []graphic.TaggedPoint, code synthCode) []graphic.TaggedPoint {
	if code&synthFront != 0 {
		if len(pts) <= 2 {
			return nil
		}
		pts = pts[2:]
	}
	if code&synthEnd != 0 {
		if len(pts) <= 2 {
			return nil
		}
		pts = pts[:len(pts)-2]
	}
	return pts
}

// reaches reports whether any part of the line pts lies in b. A single
// segment is clipped as a two-point ring; it survives every pass only if it
// meets the region.
func reaches(pts []graphic.TaggedPoint, b boundary) bool {
	for i, p := range pts {
		if b.contains(p) {
			return true
		}
		if i == 0 {
			continue
		}
		seg := []graphic.TaggedPoint{pts[i-1], p}
		for _, e := range b.edges() {
			if seg, _ = clipAgainst(seg, e); len(seg) == 0 {
				break
			}
		}
		if len(seg) > 0 {
			return true
		}
	}
	return false
}

// clipBuffer clips buf against b in place. On error buf is unchanged.
// Repeated points are only collapsed when an edge changed the path, so a
// buffer lying wholly inside b comes back point for point.
func clipBuffer(buf *graphic.Buffer, b boundary) ([]graphic.TaggedPoint, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	pts := append([]graphic.TaggedPoint(nil), buf.Points...)
	if buf.Closed {
		if n := len(pts); n > 1 && pts[0].SameLocation(pts[n-1]) {
			pts = pts[:n-1]
		}
		if len(pts) < 3 {
			return nil, ErrTooFewPoints
		}
	} else if len(pts) < 2 {
		return nil, ErrTooFewPoints
	}

	line := pts
	code := synthNone
	if !buf.Closed {
		pts, code = addSynthetic(pts, b)
	}

	clipped := false
	for _, e := range b.edges() {
		var c bool
		pts, c = clipAgainst(pts, e)
		clipped = clipped || c
		if len(pts) == 0 {
			break
		}
	}

	minLen := 2
	if buf.Closed {
		minLen = 3
	} else {
		pts = stripSynthetic(pts, code)
		// The anchors can drag a line that never enters b along the
		// boundary between them.
		if code != synthNone && !reaches(line, b) {
			pts = nil
		}
	}
	distinct := dropRepeats(append([]graphic.TaggedPoint(nil), pts...), buf.Closed)
	if clipped {
		pts = distinct
	}
	switch {
	case len(distinct) < minLen:
		pts = nil
	case buf.Closed:
		pts = append(pts, pts[0])
	}

	buf.Points = pts
	buf.Clipped = clipped
	return pts, nil
}

// extractFill clips a closed copy of buf for kinds drawn with a separate
// fill. It returns nil when the kind has no fill or nothing survives.
func extractFill(buf *graphic.Buffer, b boundary, style graphic.Style) (*graphic.ShapeDescriptor, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	if !buf.Kind.NeedsFill() {
		return nil, nil
	}
	c := buf.Clone()
	c.CloseRing()
	pts, err := clipBuffer(c, b)
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, nil
	}
	s := graphic.NewShape(graphic.Fill, pts[:len(pts)-1], true, style)
	return &s, nil
}
