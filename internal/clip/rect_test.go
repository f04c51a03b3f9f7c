package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacgraph/internal/graphic"
)

func pts(xy ...float64) []graphic.TaggedPoint {
	out := make([]graphic.TaggedPoint, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, graphic.Pt(xy[i], xy[i+1]))
	}
	return out
}

func hasPoint(path []graphic.TaggedPoint, x, y float64) bool {
	for _, p := range path {
		if assertNear(p.X, x) && assertNear(p.Y, y) {
			return true
		}
	}
	return false
}

func assertNear(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

var unit = NewRect(0, 0, 100, 100)

func TestRectClipTriangle(t *testing.T) {
	buf := graphic.NewBuffer(graphic.KindGeneralArea, pts(50, 50, 150, 50, 50, 150))

	got, err := (&RectClipper{}).Clip(buf, unit)
	require.NoError(t, err)
	assert.True(t, buf.Clipped)
	assert.Equal(t, got, buf.Points)

	assert.True(t, hasPoint(got, 100, 50))
	assert.True(t, hasPoint(got, 50, 100))
	assert.False(t, hasPoint(got, 150, 50))
	assert.False(t, hasPoint(got, 50, 150))
	assert.True(t, got[0].SameLocation(got[len(got)-1]), "closed result must be re-closed")
	for _, p := range got {
		assert.True(t, unit.Contains(p), "%v outside viewport", p)
	}
}

func TestRectClipIdempotent(t *testing.T) {
	buf := graphic.NewBuffer(graphic.KindGeneralArea, pts(50, 50, 150, 50, 50, 150))
	c := &RectClipper{}
	first, err := c.Clip(buf, unit)
	require.NoError(t, err)

	again := graphic.NewBuffer(graphic.KindGeneralArea, first)
	second, err := c.Clip(again, unit)
	require.NoError(t, err)
	assert.False(t, again.Clipped)
	assert.Equal(t, first, second)
}

func TestRectClipBoundaryCountsInside(t *testing.T) {
	buf := graphic.NewBuffer(graphic.KindGeneralArea, pts(0, 0, 100, 0, 100, 100, 0, 100, 0, 0))
	got, err := (&RectClipper{}).Clip(buf, unit)
	require.NoError(t, err)
	assert.False(t, buf.Clipped)
	assert.Len(t, got, 5)
}

func TestRectClipFullyOutside(t *testing.T) {
	buf := graphic.NewBuffer(graphic.KindGeneralArea, pts(200, 200, 300, 200, 300, 300, 200, 300))
	got, err := (&RectClipper{}).Clip(buf, unit)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, buf.Points)
	assert.True(t, buf.Clipped)
}

func TestRectClipOpenLines(t *testing.T) {
	tests := []struct {
		name    string
		in      []graphic.TaggedPoint
		want    []graphic.TaggedPoint
		clipped bool
	}{
		{
			name:    "inside",
			in:      pts(10, 10, 90, 90),
			want:    pts(10, 10, 90, 90),
			clipped: false,
		},
		{
			name:    "end outside",
			in:      pts(50, 50, 150, 50),
			want:    pts(50, 50, 100, 50),
			clipped: true,
		},
		{
			name:    "both ends outside",
			in:      pts(-50, 50, 150, 50),
			want:    pts(0, 50, 100, 50),
			clipped: true,
		},
		{
			name:    "front outside",
			in:      pts(50, -50, 50, 50, 60, 60),
			want:    pts(50, 0, 50, 50, 60, 60),
			clipped: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := graphic.NewBuffer(graphic.KindPhaseLine, tt.in)
			got, err := (&RectClipper{}).Clip(buf, unit)
			require.NoError(t, err)
			assert.Equal(t, tt.clipped, buf.Clipped)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i].X, got[i].X, 1e-6)
				assert.InDelta(t, tt.want[i].Y, got[i].Y, 1e-6)
			}
			assert.False(t, got[0].SameLocation(got[len(got)-1]), "open line must stay open")
		})
	}
}

func TestRectClipStripsSyntheticEndpoints(t *testing.T) {
	buf := graphic.NewBuffer(graphic.KindPhaseLine, pts(-50, 50, 150, 50))
	got, err := (&RectClipper{}).Clip(buf, unit)
	require.NoError(t, err)
	for _, p := range got {
		assert.InDelta(t, 50, p.Y, 1e-6, "anchor point %v leaked into the result", p)
	}
	assert.Equal(t, graphic.ClipSynthesized, got[0].Provenance)
	assert.Equal(t, graphic.ClipSynthesized, got[1].Provenance)
}

func TestRectClipKeepsOriginalProvenance(t *testing.T) {
	buf := graphic.NewBuffer(graphic.KindPhaseLine, pts(50, 50, 150, 50))
	got, err := (&RectClipper{}).Clip(buf, unit)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, graphic.Original, got[0].Provenance)
	assert.Equal(t, graphic.ClipSynthesized, got[1].Provenance)
}

func TestRectClipInset(t *testing.T) {
	buf := graphic.NewBuffer(graphic.KindPhaseLine, pts(50, 50, 130, 50))
	got, err := NewRectClipper().Clip(buf, unit)
	require.NoError(t, err)
	assert.False(t, buf.Clipped)
	assert.Equal(t, pts(50, 50, 130, 50), got)

	buf = graphic.NewBuffer(graphic.KindPhaseLine, pts(50, 50, 300, 50))
	got, err = NewRectClipper().Clip(buf, unit)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 100+DefaultRectInset, got[1].X, 1e-6)
}

func TestClipKeepsUntouchedPathsVerbatim(t *testing.T) {
	square := pts(0, 0, 100, 0, 100, 100, 0, 100)
	clippers := map[string]func(*graphic.Buffer) ([]graphic.TaggedPoint, error){
		"rect":    func(b *graphic.Buffer) ([]graphic.TaggedPoint, error) { return (&RectClipper{}).Clip(b, unit) },
		"polygon": func(b *graphic.Buffer) ([]graphic.TaggedPoint, error) { return (&PolygonClipper{}).Clip(b, square) },
	}
	paths := []struct {
		name string
		kind graphic.LineKind
		in   []graphic.TaggedPoint
	}{
		{"ring", graphic.KindGeneralArea, pts(10, 10, 20, 10, 20, 10, 20, 20, 10, 10)},
		{"line", graphic.KindPhaseLine, pts(10, 10, 20, 20, 20, 20, 30, 30)},
	}
	for name, clipFn := range clippers {
		for _, p := range paths {
			t.Run(name+"/"+p.name, func(t *testing.T) {
				buf := graphic.NewBuffer(p.kind, p.in)
				got, err := clipFn(buf)
				require.NoError(t, err)
				assert.False(t, buf.Clipped)
				assert.Equal(t, p.in, got)
			})
		}
	}
}

func TestRectClipCollapsesRepeatsWhenClipped(t *testing.T) {
	buf := graphic.NewBuffer(graphic.KindGeneralArea, pts(50, 50, 150, 50, 150, 50, 50, 150))
	got, err := (&RectClipper{}).Clip(buf, unit)
	require.NoError(t, err)
	require.True(t, buf.Clipped)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i-1].SameLocation(got[i]), "repeat at %d", i)
	}
}

func TestClipLineWrappingOutside(t *testing.T) {
	// Both anchors exist but no segment meets the region; the result must not
	// run along the boundary between them.
	line := pts(-50, 20, -50, -50, 150, -50, 150, 20)

	buf := graphic.NewBuffer(graphic.KindPhaseLine, line)
	got, err := (&RectClipper{}).Clip(buf, unit)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, buf.Points)
	assert.True(t, buf.Clipped)

	buf = graphic.NewBuffer(graphic.KindPhaseLine, line)
	got, err = (&PolygonClipper{}).Clip(buf, pts(0, 0, 100, 0, 100, 100, 0, 100))
	require.NoError(t, err)
	assert.Empty(t, got)

	// the same detour with one segment crossing the region is kept
	buf = graphic.NewBuffer(graphic.KindPhaseLine, pts(-50, 20, -50, -50, 150, 50, 150, 20))
	got, err = (&RectClipper{}).Clip(buf, unit)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestHorizontalEdgeNearVertical(t *testing.T) {
	top := horizontalEdge{y: 0, top: true}

	// under a unit wide: x stays at the start of the segment
	p := top.intersect(graphic.Pt(50, 50), graphic.Pt(50.5, -50))
	assert.Equal(t, 50.0, p.X)
	assert.Equal(t, 0.0, p.Y)
	assert.Equal(t, graphic.ClipSynthesized, p.Provenance)

	// wider segments solve the line equation
	p = top.intersect(graphic.Pt(50, 50), graphic.Pt(52, -50))
	assert.InDelta(t, 51, p.X, 1e-9)

	buf := graphic.NewBuffer(graphic.KindPhaseLine, pts(50, 50, 50.5, -50))
	got, err := (&RectClipper{}).Clip(buf, unit)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, graphic.Pt(50, 50), got[0])
	assert.Equal(t, 50.0, got[1].X)
	assert.Equal(t, 0.0, got[1].Y)
}

func TestRectClipErrors(t *testing.T) {
	c := &RectClipper{}

	_, err := c.Clip(nil, unit)
	assert.ErrorIs(t, err, ErrNilBuffer)

	buf := graphic.NewBuffer(graphic.KindPhaseLine, pts(1, 1))
	_, err = c.Clip(buf, unit)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	buf = graphic.NewBuffer(graphic.KindGeneralArea, pts(1, 1, 2, 2, 1, 1))
	_, err = c.Clip(buf, unit)
	assert.ErrorIs(t, err, ErrTooFewPoints)
	assert.Len(t, buf.Points, 3, "buffer must be unchanged on error")

	buf = graphic.NewBuffer(graphic.KindPhaseLine, pts(1, 1, 2, 2))
	_, err = c.Clip(buf, NewRect(0, 0, 0, 10))
	assert.ErrorIs(t, err, ErrDegenerateRect)
}

func TestRectExtractFillShape(t *testing.T) {
	ring := pts(50, 50, 150, 50, 150, 150, 50, 150)
	c := &RectClipper{}

	buf := graphic.NewBuffer(graphic.KindMinefield, ring)
	shape, err := c.ExtractFillShape(buf, unit, "red")
	require.NoError(t, err)
	require.NotNil(t, shape)
	assert.Equal(t, graphic.Fill, shape.Kind)
	assert.Equal(t, "red", shape.Style)
	assert.Equal(t, graphic.MoveTo, shape.Path[0].Segment)
	assert.Equal(t, graphic.Close, shape.Path[len(shape.Path)-1].Segment)
	assert.True(t, hasPoint(shape.Path, 100, 100))
	assert.False(t, hasPoint(shape.Path, 150, 150))

	assert.Equal(t, ring, buf.Points, "source buffer must not be modified")
	assert.False(t, buf.Clipped)

	line := graphic.NewBuffer(graphic.KindPhaseLine, ring)
	shape, err = c.ExtractFillShape(line, unit, nil)
	require.NoError(t, err)
	assert.Nil(t, shape)

	far := graphic.NewBuffer(graphic.KindMinefield, pts(200, 200, 300, 200, 300, 300))
	shape, err = c.ExtractFillShape(far, unit, nil)
	require.NoError(t, err)
	assert.Nil(t, shape)
}
