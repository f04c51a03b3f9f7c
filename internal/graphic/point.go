// Package graphic holds the data types shared by the geodesic and clipping
// code: tagged points, graphic buffers and the shapes produced from them.
package graphic

import "math"

// PathSegmentKind says how a point joins the path it belongs to.
type PathSegmentKind int

const (
	MoveTo PathSegmentKind = iota
	LineTo
	QuadTo
	CubicTo
	Close
)

// ClipProvenance records where a point came from. Spike filtering uses it to
// decide which of two nearly coincident points may be dropped.
type ClipProvenance int

const (
	Original        ClipProvenance = 0
	ClipSynthesized ClipProvenance = -1
	Segmented       ClipProvenance = -2
)

func (p ClipProvenance) String() string {
	switch p {
	case Original:
		return "original"
	case ClipSynthesized:
		return "clip"
	case Segmented:
		return "segment"
	}
	return "unknown"
}

// TaggedPoint is a coordinate in either geographic (X=lon, Y=lat in degrees)
// or pixel space. Callers track which space a slice is in.
type TaggedPoint struct {
	X, Y       float64
	Segment    PathSegmentKind
	Provenance ClipProvenance
}

// Pt returns an original line-to point at x, y.
func Pt(x, y float64) TaggedPoint {
	return TaggedPoint{X: x, Y: y, Segment: LineTo}
}

// At returns a copy of p moved to x, y with the same tags.
func (p TaggedPoint) At(x, y float64) TaggedPoint {
	p.X, p.Y = x, y
	return p
}

// SameLocation reports whether p and q have identical coordinates.
func (p TaggedPoint) SameLocation(q TaggedPoint) bool {
	return p.X == q.X && p.Y == q.Y
}

// Distance returns the planar distance between p and q.
func (p TaggedPoint) Distance(q TaggedPoint) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Lerp interpolates between p and q. The result keeps p's tags.
func (p TaggedPoint) Lerp(q TaggedPoint, t float64) TaggedPoint {
	return p.At(p.X+(q.X-p.X)*t, p.Y+(q.Y-p.Y)*t)
}
