package geodesic

import (
	"math"

	"tacgraph/internal/graphic"
)

// GeoRect is an antimeridian-aware bounding rectangle. The degree bounds may
// exceed 180 in longitude after normalization; Width and Height are geodesic
// lengths in meters of the top and west edges.
type GeoRect struct {
	MinX, MinY, MaxX, MaxY float64
	Width, Height          float64
}

// UpperLeft returns the north-west corner.
func (r GeoRect) UpperLeft() graphic.TaggedPoint {
	return graphic.Pt(r.MinX, r.MaxY)
}

func lonSpan(pts []graphic.TaggedPoint) (minX, maxX float64) {
	minX, maxX = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	return minX, maxX
}

// Normalize makes a point set that straddles the antimeridian contiguous by
// shifting negative longitudes east by 360 degrees. Sets spanning 180
// degrees or less are returned as is, sharing pts' backing array; a shifted
// set is a new slice.
func Normalize(pts []graphic.TaggedPoint) []graphic.TaggedPoint {
	if len(pts) == 0 {
		return pts
	}
	minX, maxX := lonSpan(pts)
	if maxX-minX <= 180 {
		return pts
	}
	out := make([]graphic.TaggedPoint, len(pts))
	for i, p := range pts {
		if p.X < 0 {
			p.X += 360
		}
		out[i] = p
	}
	return out
}

// BoundingRectangle returns the bounds of pts after Normalize.
func BoundingRectangle(pts []graphic.TaggedPoint) (GeoRect, error) {
	if len(pts) == 0 {
		return GeoRect{}, ErrEmpty
	}
	norm := Normalize(pts)
	r := GeoRect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range norm {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	ul := r.UpperLeft()
	r.Width, _, _ = InverseDistance(ul, graphic.Pt(r.MaxX, r.MaxY))
	r.Height, _, _ = InverseDistance(ul, graphic.Pt(r.MinX, r.MinY))
	return r, nil
}

// Centroid approximates the center of pts by walking half the bounding width
// east and half its height south from the upper-left corner. It is only
// meaningful for compact, regularly shaped areas.
func Centroid(pts []graphic.TaggedPoint) (graphic.TaggedPoint, error) {
	r, err := BoundingRectangle(pts)
	if err != nil {
		return graphic.TaggedPoint{}, err
	}
	p := DirectCoordinate(r.UpperLeft(), r.Width/2, 90)
	return DirectCoordinate(p, r.Height/2, 180), nil
}
