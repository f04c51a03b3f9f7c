package geodesic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacgraph/internal/graphic"
)

func TestAzimuthCardinal(t *testing.T) {
	o := graphic.Pt(0, 0)
	tests := []struct {
		name string
		to   graphic.TaggedPoint
		want float64
	}{
		{"north", graphic.Pt(0, 1), 0},
		{"east", graphic.Pt(1, 0), 90},
		{"south", graphic.Pt(0, -1), 180},
		{"west", graphic.Pt(-1, 0), -90},
		{"coincident", graphic.Pt(0, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Azimuth(o, tt.to), 1e-9)
		})
	}
}

func TestInverseDistanceKnown(t *testing.T) {
	// one degree of arc along the equator
	d, az12, az21 := InverseDistance(graphic.Pt(0, 0), graphic.Pt(1, 0))
	assert.InDelta(t, EarthRadius*math.Pi/180, d, 1e-6)
	assert.InDelta(t, 90, az12, 1e-9)
	assert.InDelta(t, -90, az21, 1e-9)

	d, _, _ = InverseDistance(graphic.Pt(12, 34), graphic.Pt(12, 34))
	assert.Zero(t, d)
}

func TestForwardInverseRoundTrip(t *testing.T) {
	starts := []graphic.TaggedPoint{
		graphic.Pt(0, 0), graphic.Pt(-77.03, 38.9), graphic.Pt(179.5, -84),
		graphic.Pt(-179.9, 84.9), graphic.Pt(13.4, 52.5), graphic.Pt(151.2, -33.9),
	}
	dists := []float64{1, 10, 1500, 250000, 1000000, 5000000}
	for _, s := range starts {
		for _, d := range dists {
			for a := 0.0; a < 360; a += 22.5 {
				p := DirectCoordinate(s, d, a)
				got, _, _ := InverseDistance(s, p)
				require.InEpsilonf(t, d, got, 1e-3, "start=%v d=%v az=%v", s, d, a)
			}
		}
	}
}

func TestDirectKeepsTags(t *testing.T) {
	s := graphic.Pt(10, 10)
	s.Provenance = graphic.Segmented
	p := DirectCoordinate(s, 1000, 45)
	assert.Equal(t, graphic.Segmented, p.Provenance)
}

func TestDirectWrapsLongitude(t *testing.T) {
	p := DirectCoordinate(graphic.Pt(179.9, 0), 50000, 90)
	assert.LessOrEqual(t, p.X, 180.0)
	assert.Less(t, p.X, 0.0)
}

func TestBearingReciprocity(t *testing.T) {
	pairs := [][2]graphic.TaggedPoint{
		{graphic.Pt(0, 0), graphic.Pt(10, 10)},
		{graphic.Pt(-122.4, 37.8), graphic.Pt(139.7, 35.7)},
		{graphic.Pt(2.35, 48.85), graphic.Pt(-0.12, 51.5)},
		{graphic.Pt(170, -20), graphic.Pt(-170, 20)},
	}
	for _, p := range pairs {
		_, _, az21 := InverseDistance(p[0], p[1])
		_, az12, _ := InverseDistance(p[1], p[0])
		assert.InDelta(t, az21, az12, 1e-6)
	}
}

func TestArcCircle(t *testing.T) {
	tests := []struct {
		name string
		pts  []graphic.TaggedPoint
	}{
		{"coincident radius points", []graphic.TaggedPoint{graphic.Pt(0, 0), graphic.Pt(0, 1000), graphic.Pt(0, 1000)}},
		{"half degree apart", []graphic.TaggedPoint{graphic.Pt(0, 0), graphic.Pt(0, 0.01), graphic.Pt(0.0000872, 0.01)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arc, err := Arc(tt.pts)
			require.NoError(t, err)
			require.Len(t, arc, 101)
			d, _, _ := InverseDistance(arc[0], arc[100])
			assert.Less(t, d, 1.0)
		})
	}
}

func TestArcSector(t *testing.T) {
	center := graphic.Pt(10, 50)
	r1 := DirectCoordinate(center, 5000, 0)
	r2 := DirectCoordinate(center, 8000, 90)
	arc, err := Arc([]graphic.TaggedPoint{center, r1, r2})
	require.NoError(t, err)
	require.Len(t, arc, 102)
	assert.Equal(t, center, arc[101])
	for _, p := range arc[:101] {
		d, _, _ := InverseDistance(center, p)
		assert.InDelta(t, 5000, d, 0.01)
	}
	assert.InDelta(t, 0, Azimuth(center, arc[0]), 1e-6)
	assert.InDelta(t, 90, Azimuth(center, arc[100]), 1e-6)
	assert.InDelta(t, 45, Azimuth(center, arc[50]), 1e-6)
}

func TestArcSweepsClockwiseAcrossNorth(t *testing.T) {
	center := graphic.Pt(0, 0)
	arc, err := Arc([]graphic.TaggedPoint{
		center,
		DirectCoordinate(center, 1000, 350),
		DirectCoordinate(center, 1000, 10),
	})
	require.NoError(t, err)
	assert.InDelta(t, 0, Azimuth(center, arc[50]), 1e-6)
}

func TestArcTooFewPoints(t *testing.T) {
	arc, err := Arc([]graphic.TaggedPoint{graphic.Pt(0, 0), graphic.Pt(1, 1)})
	assert.ErrorIs(t, err, ErrTooFewPoints)
	assert.Nil(t, arc)

	_, _, err = SectorArc(nil)
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestSectorArc(t *testing.T) {
	center := graphic.Pt(0, 0)
	inner := DirectCoordinate(center, 1000, 30)
	outer := DirectCoordinate(center, 3000, 120)

	sector, circle, err := SectorArc([]graphic.TaggedPoint{center, inner, outer})
	require.NoError(t, err)
	assert.False(t, circle)
	require.Len(t, sector, 203)
	assert.Equal(t, sector[0], sector[202])

	d, _, _ := InverseDistance(center, sector[100])
	assert.InDelta(t, 1000, d, 0.01)
	d, _, _ = InverseDistance(center, sector[101])
	assert.InDelta(t, 3000, d, 0.01)
	assert.InDelta(t, 120, Azimuth(center, sector[101]), 1e-6)
	assert.InDelta(t, 30, Azimuth(center, sector[201]), 1e-6)

	_, circle, err = SectorArc([]graphic.TaggedPoint{center, inner, DirectCoordinate(center, 3000, 30.5)})
	require.NoError(t, err)
	assert.True(t, circle)
}

func TestNormalize(t *testing.T) {
	pts := []graphic.TaggedPoint{graphic.Pt(170, 0), graphic.Pt(-170, 0)}
	out := Normalize(pts)
	require.Len(t, out, 2)
	assert.Equal(t, 170.0, out[0].X)
	assert.Equal(t, 190.0, out[1].X)
	assert.Equal(t, -170.0, pts[1].X, "input must not be modified")

	same := []graphic.TaggedPoint{graphic.Pt(10, 0), graphic.Pt(-10, 0)}
	got := Normalize(same)
	assert.Same(t, &same[0], &got[0])
}

func TestBoundingRectangleAcrossAntimeridian(t *testing.T) {
	r, err := BoundingRectangle([]graphic.TaggedPoint{graphic.Pt(170, 0), graphic.Pt(-170, 0)})
	require.NoError(t, err)
	assert.Equal(t, 170.0, r.MinX)
	assert.Equal(t, 190.0, r.MaxX)
	assert.InDelta(t, EarthRadius*20*math.Pi/180, r.Width, 1e-3)
	assert.Zero(t, r.Height)

	_, err = BoundingRectangle(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestBoundingRectangleMetricSize(t *testing.T) {
	r, err := BoundingRectangle([]graphic.TaggedPoint{
		graphic.Pt(0, 0), graphic.Pt(1, 0), graphic.Pt(1, 1), graphic.Pt(0, 1),
	})
	require.NoError(t, err)
	assert.InDelta(t, EarthRadius*math.Pi/180, r.Height, 1e-3)
	// top edge at one degree north is slightly shorter than at the equator
	assert.Less(t, r.Width, r.Height)
	assert.InEpsilon(t, r.Height*math.Cos(math.Pi/180), r.Width, 1e-4)
}

func TestCentroid(t *testing.T) {
	c, err := Centroid([]graphic.TaggedPoint{
		graphic.Pt(10, 10), graphic.Pt(12, 10), graphic.Pt(12, 12), graphic.Pt(10, 12),
	})
	require.NoError(t, err)
	assert.InDelta(t, 11, c.X, 0.01)
	assert.InDelta(t, 11, c.Y, 0.01)

	_, err = Centroid(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestEllipse(t *testing.T) {
	center := graphic.Pt(20, 45)
	e := Ellipse(center, 4000, 2000, 0)
	require.Len(t, e, 37)
	assert.Equal(t, e[0], e[36])

	d, az, _ := InverseDistance(center, e[0])
	assert.InDelta(t, 4000, d, 1)
	assert.InDelta(t, 90, az, 0.05)
	d, az, _ = InverseDistance(center, e[9])
	assert.InDelta(t, 2000, d, 1)
	assert.InDelta(t, 0, az, 0.01)

	rot := Ellipse(center, 4000, 2000, 30)
	require.Len(t, rot, 37)
	d, az, _ = InverseDistance(center, rot[0])
	assert.InDelta(t, 4000, d, 1)
	assert.InDelta(t, 120, az, 0.05)
}
