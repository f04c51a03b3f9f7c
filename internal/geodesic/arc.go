package geodesic

import (
	"math"

	"tacgraph/internal/graphic"
)

const (
	// arcSteps is the number of intervals along an arc; arcs carry arcSteps+1 points.
	arcSteps = 100

	// circleTolerance is the largest sweep, in degrees, still drawn as a full
	// circle. Range fans with coincident sector edges must not collapse into
	// a zero-width wedge.
	circleTolerance = 1.0

	ellipseSteps = 36
)

// sweep returns the clockwise angle from a1 to a2 in [0, 360) and whether it
// is close enough to 0 or 360 to be treated as a full circle.
func sweep(a1, a2 float64) (float64, bool) {
	s := math.Mod(a2-a1, 360)
	if s < 0 {
		s += 360
	}
	if s <= circleTolerance || s >= 360-circleTolerance {
		return 360, true
	}
	return s, false
}

func arcPoints(center graphic.TaggedPoint, radius, start, span float64) []graphic.TaggedPoint {
	pts := make([]graphic.TaggedPoint, 0, arcSteps+2)
	step := span / arcSteps
	for i := 0; i <= arcSteps; i++ {
		p := DirectCoordinate(center, radius, start+float64(i)*step)
		p.Segment = graphic.LineTo
		pts = append(pts, p)
	}
	return pts
}

// Arc draws the arc centered on pts[0] whose radius is the distance to
// pts[1], sweeping clockwise from the bearing of pts[1] to the bearing of
// pts[2]. When the two bearings are within a degree the arc becomes a full
// circle of 101 points whose ends meet; otherwise the 101 arc points are
// followed by the center so the wedge can be closed.
func Arc(pts []graphic.TaggedPoint) ([]graphic.TaggedPoint, error) {
	if len(pts) < 3 {
		return nil, ErrTooFewPoints
	}
	center := pts[0]
	radius, a1, _ := InverseDistance(center, pts[1])
	_, a2, _ := InverseDistance(center, pts[2])

	span, circle := sweep(a1, a2)
	arc := arcPoints(center, radius, a1, span)
	if !circle {
		arc = append(arc, center)
	}
	return arc, nil
}

// SectorArc builds a closed annular sector: the inner arc at the distance of
// pts[1] runs forward, the outer arc at the distance of pts[2] runs back, and
// the first inner point closes the ring. isCircle reports that the bearings
// coincided and both arcs span 360 degrees.
func SectorArc(pts []graphic.TaggedPoint) (sector []graphic.TaggedPoint, isCircle bool, err error) {
	if len(pts) < 3 {
		return nil, false, ErrTooFewPoints
	}
	center := pts[0]
	inner, a1, _ := InverseDistance(center, pts[1])
	outer, a2, _ := InverseDistance(center, pts[2])

	span, circle := sweep(a1, a2)
	in := arcPoints(center, inner, a1, span)
	out := arcPoints(center, outer, a1, span)

	sector = make([]graphic.TaggedPoint, 0, 2*len(in)+1)
	sector = append(sector, in...)
	for i := len(out) - 1; i >= 0; i-- {
		sector = append(sector, out[i])
	}
	sector = append(sector, in[0])
	return sector, circle, nil
}

// Ellipse returns a closed 37 point ellipse around center. The major axis
// runs east-west and the minor axis north-south before the whole figure is
// turned clockwise by rotation degrees.
func Ellipse(center graphic.TaggedPoint, major, minor, rotation float64) []graphic.TaggedPoint {
	pts := make([]graphic.TaggedPoint, 0, ellipseSteps+1)
	for i := 0; i < ellipseSteps; i++ {
		t := rad(float64(i) * 360 / ellipseSteps)
		east := DirectCoordinate(center, major*math.Cos(t), 90)
		north := DirectCoordinate(center, minor*math.Sin(t), 0)
		p := center.At(east.X, north.Y)
		if rotation != 0 {
			d, az, _ := InverseDistance(center, p)
			p = DirectCoordinate(center, d, az+rotation)
		}
		p.Segment = graphic.LineTo
		pts = append(pts, p)
	}
	return append(pts, pts[0])
}
