package graphic

import "math"

// Converter maps points between geographic and pixel space. It is supplied by
// the host; tags are expected to pass through unchanged.
type Converter interface {
	GeoToPixel(p TaggedPoint) TaggedPoint
	PixelToGeo(p TaggedPoint) TaggedPoint
}

// ToPixel converts every point of pts with c.
func ToPixel(c Converter, pts []TaggedPoint) []TaggedPoint {
	out := make([]TaggedPoint, len(pts))
	for i, p := range pts {
		out[i] = c.GeoToPixel(p)
	}
	return out
}

// ToGeo converts every point of pts with c.
func ToGeo(c Converter, pts []TaggedPoint) []TaggedPoint {
	out := make([]TaggedPoint, len(pts))
	for i, p := range pts {
		out[i] = c.PixelToGeo(p)
	}
	return out
}

// Segment subdivides pts so that no segment is longer than maxLen. Inserted
// points are tagged Segmented. A non-positive maxLen returns a copy of pts.
func Segment(pts []TaggedPoint, maxLen float64) []TaggedPoint {
	if maxLen <= 0 || len(pts) < 2 {
		return append([]TaggedPoint(nil), pts...)
	}
	out := make([]TaggedPoint, 0, len(pts))
	for i, p := range pts {
		if i > 0 {
			prev := pts[i-1]
			n := int(math.Ceil(prev.Distance(p) / maxLen))
			for j := 1; j < n; j++ {
				q := prev.Lerp(p, float64(j)/float64(n))
				q.Segment = LineTo
				q.Provenance = Segmented
				out = append(out, q)
			}
		}
		out = append(out, p)
	}
	return out
}

// dropRank orders points by how readily they may be removed.
func dropRank(p TaggedPoint) int {
	switch p.Provenance {
	case Segmented:
		return 2
	case ClipSynthesized:
		return 1
	}
	return 0
}

// FilterSpikes removes one of two consecutive points that lie closer than
// minDist, preferring segmentation points over clip points. Two original
// points are always kept, as are the first and last point of pts.
func FilterSpikes(pts []TaggedPoint, minDist float64) []TaggedPoint {
	if minDist <= 0 || len(pts) < 3 {
		return append([]TaggedPoint(nil), pts...)
	}
	out := make([]TaggedPoint, 0, len(pts))
	out = append(out, pts[0])
	last := len(pts) - 1
	for i := 1; i <= last; i++ {
		p := pts[i]
		k := len(out) - 1
		q := out[k]
		if q.Distance(p) >= minDist {
			out = append(out, p)
			continue
		}
		pr, qr := dropRank(p), dropRank(q)
		canDropQ := k > 0 && qr > 0
		switch {
		case i == last:
			if canDropQ {
				out[k] = p
			} else {
				out = append(out, p)
			}
		case pr > 0 && pr >= qr:
			// drop p
		case canDropQ:
			out[k] = p
		case pr > 0:
			// q is protected
		default:
			out = append(out, p)
		}
	}
	return out
}
