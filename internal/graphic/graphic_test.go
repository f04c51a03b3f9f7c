package graphic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagEncoding(t *testing.T) {
	// numeric values are shared with the point-role convention
	assert.Equal(t, 0, int(MoveTo))
	assert.Equal(t, 4, int(Close))
	assert.Equal(t, 0, int(Original))
	assert.Equal(t, -1, int(ClipSynthesized))
	assert.Equal(t, -2, int(Segmented))
}

func TestParseLineKind(t *testing.T) {
	tests := []struct {
		in   string
		want LineKind
	}{
		{"phase_line", KindPhaseLine},
		{"Phase Line", KindPhaseLine},
		{"obstacle-belt", KindObstacleBelt},
		{" MINEFIELD ", KindMinefield},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, err := ParseLineKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
			assert.Equal(t, k, must(ParseLineKind(k.String())))
		})
	}

	_, err := ParseLineKind("flying_saucer")
	assert.ErrorIs(t, err, ErrUnknownLineKind)
}

func must(k LineKind, err error) LineKind {
	if err != nil {
		panic(err)
	}
	return k
}

func TestLineKindClassification(t *testing.T) {
	assert.False(t, KindPhaseLine.IsClosed())
	assert.False(t, KindPhaseLine.NeedsFill())
	assert.True(t, KindGeneralArea.IsClosed())
	assert.False(t, KindGeneralArea.NeedsFill())
	for _, k := range []LineKind{KindObstacleBelt, KindMinefield, KindFortifiedArea, KindAbatis} {
		assert.True(t, k.IsClosed(), k.String())
		assert.True(t, k.NeedsFill(), k.String())
	}
}

func TestNewBufferCopies(t *testing.T) {
	pts := []TaggedPoint{Pt(0, 0), Pt(1, 1)}
	b := NewBuffer(KindPhaseLine, pts)
	pts[0].X = 99
	assert.Equal(t, 0.0, b.Points[0].X)
	assert.False(t, b.Closed)

	c := b.Clone()
	c.Points[1].Y = 42
	assert.Equal(t, 1.0, b.Points[1].Y)
}

func TestCloseRing(t *testing.T) {
	b := NewBuffer(KindPhaseLine, []TaggedPoint{Pt(0, 0), Pt(1, 0), Pt(1, 1)})
	b.CloseRing()
	require.Len(t, b.Points, 4)
	assert.True(t, b.Closed)
	b.CloseRing()
	assert.Len(t, b.Points, 4)
}

func TestNewShape(t *testing.T) {
	path := []TaggedPoint{Pt(0, 0), Pt(10, 0), Pt(10, 10)}

	s := NewShape(Outline, path, false, "red")
	require.Len(t, s.Path, 3)
	assert.Equal(t, MoveTo, s.Path[0].Segment)
	assert.Equal(t, LineTo, s.Path[2].Segment)
	assert.Equal(t, "red", s.Style)

	f := NewShape(Fill, path, false, nil)
	require.Len(t, f.Path, 4)
	assert.Equal(t, Close, f.Path[3].Segment)
	assert.True(t, f.Path[3].SameLocation(path[0]))
}

type doubler struct{}

func (doubler) GeoToPixel(p TaggedPoint) TaggedPoint { return p.At(p.X*2, p.Y*2) }
func (doubler) PixelToGeo(p TaggedPoint) TaggedPoint { return p.At(p.X/2, p.Y/2) }

func TestConvertKeepsTags(t *testing.T) {
	in := []TaggedPoint{Pt(1, 2), {X: 3, Y: 4, Segment: LineTo, Provenance: Segmented}}
	pix := ToPixel(doubler{}, in)
	require.Len(t, pix, 2)
	assert.Equal(t, Pt(2, 4), pix[0])
	assert.Equal(t, Segmented, pix[1].Provenance)
	assert.Equal(t, LineTo, pix[1].Segment)

	assert.Equal(t, in, ToGeo(doubler{}, pix))
	assert.Equal(t, Pt(1, 2), in[0], "input is not modified")
}

func TestSegment(t *testing.T) {
	pts := []TaggedPoint{Pt(0, 0), Pt(10, 0)}
	out := Segment(pts, 3)
	require.Len(t, out, 5)
	for _, p := range out[1:4] {
		assert.Equal(t, Segmented, p.Provenance)
	}
	assert.Equal(t, Original, out[0].Provenance)
	assert.Equal(t, Original, out[4].Provenance)
	assert.InDelta(t, 2.5, out[1].X, 1e-9)

	assert.Len(t, Segment(pts, 0), 2)
}

func TestFilterSpikes(t *testing.T) {
	seg := Pt(5.2, 0)
	seg.Provenance = Segmented
	clipped := Pt(5.0, 0)
	clipped.Provenance = ClipSynthesized

	tests := []struct {
		name string
		in   []TaggedPoint
		want []float64
	}{
		{"far apart", []TaggedPoint{Pt(0, 0), Pt(5, 0), Pt(10, 0)}, []float64{0, 5, 10}},
		{"segment point dropped", []TaggedPoint{Pt(0, 0), clipped, seg, Pt(10, 0)}, []float64{0, 5, 10}},
		{"original kept over segment", []TaggedPoint{Pt(0, 0), seg, Pt(5.3, 0), Pt(10, 0)}, []float64{0, 5.3, 10}},
		{"two originals kept", []TaggedPoint{Pt(0, 0), Pt(5, 0), Pt(5.1, 0), Pt(10, 0)}, []float64{0, 5, 5.1, 10}},
		{"endpoints kept", []TaggedPoint{Pt(0, 0), seg, Pt(5.3, 0)}, []float64{0, 5.3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FilterSpikes(tt.in, 1)
			xs := make([]float64, len(out))
			for i, p := range out {
				xs[i] = p.X
			}
			assert.Equal(t, tt.want, xs)
		})
	}
}
