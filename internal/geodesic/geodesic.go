// Package geodesic solves the direct and inverse geodesic problems on a
// sphere with the WGS84 equatorial radius, and builds arcs, sectors and
// ellipses from them. Longitude is X and latitude is Y, both in degrees.
//
// The spherical model trades accuracy for speed; error grows with distance.
package geodesic

import (
	"errors"
	"math"

	"github.com/golang/geo/s1"

	"tacgraph/internal/graphic"
)

// EarthRadius is the WGS84 semi-major axis in meters.
const EarthRadius = 6378137.0

var (
	ErrTooFewPoints = errors.New("geodesic: too few points")
	ErrEmpty        = errors.New("geodesic: empty point set")
)

func rad(deg float64) float64 { return (s1.Angle(deg) * s1.Degree).Radians() }

func deg(r float64) float64 { return s1.Angle(r).Degrees() }

// wrapLon maps a longitude into [-180, 180].
func wrapLon(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// Azimuth returns the initial bearing from p1 to p2 in degrees from true
// north, in [-180, 180]. Coincident points yield 0.
func Azimuth(p1, p2 graphic.TaggedPoint) float64 {
	lat1, lat2 := rad(p1.Y), rad(p2.Y)
	dLon := rad(p2.X - p1.X)
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return deg(math.Atan2(y, x))
}

// InverseDistance returns the great-circle distance in meters between p1 and
// p2 together with the forward bearing at p1 and the reverse bearing at p2.
func InverseDistance(p1, p2 graphic.TaggedPoint) (meters, az12, az21 float64) {
	lat1, lat2 := rad(p1.Y), rad(p2.Y)
	dLat := lat2 - lat1
	dLon := rad(p2.X - p1.X)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadius * c, Azimuth(p1, p2), Azimuth(p2, p1)
}

// DirectCoordinate returns the point reached by travelling meters from start
// along azimuth (degrees). The result keeps start's tags.
func DirectCoordinate(start graphic.TaggedPoint, meters, azimuth float64) graphic.TaggedPoint {
	lat1, lon1 := rad(start.Y), rad(start.X)
	theta := rad(azimuth)
	delta := meters / EarthRadius
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lon2 := lon1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)
	return start.At(wrapLon(deg(lon2)), deg(lat2))
}
