package tui

import (
	"math"

	"tacgraph/internal/geom"
	"tacgraph/internal/graphic"
)

// minSpan keeps a flat dataset (a single marker, an east-west line) from
// collapsing the projection.
const minSpan = 1e-3

// projection maps lon/lat onto the braille micro grid of a w x h cell map:
// 2 micro pixels per cell horizontally, 4 vertically, zoomed about the
// center and panned by whole cells.
type projection struct {
	bbox       geom.BBox
	zoom       float64
	offX, offY int
	wMic, hMic int
}

func newProjection(bbox geom.BBox, zoom float64, offX, offY, w, h int) projection {
	if d := bbox.MaxX - bbox.MinX; d < minSpan {
		bbox.MinX -= (minSpan - d) / 2
		bbox.MaxX += (minSpan - d) / 2
	}
	if d := bbox.MaxY - bbox.MinY; d < minSpan {
		bbox.MinY -= (minSpan - d) / 2
		bbox.MaxY += (minSpan - d) / 2
	}
	if zoom <= 0 {
		zoom = 1
	}
	return projection{bbox: bbox, zoom: zoom, offX: offX, offY: offY, wMic: max(2, w*2), hMic: max(2, h*4)}
}

// GeoToPixel implements graphic.Converter.
func (p projection) GeoToPixel(pt graphic.TaggedPoint) graphic.TaggedPoint {
	lon := pt.X
	// the bbox was normalized across the antimeridian
	if p.bbox.MaxX > 180 && lon < p.bbox.MinX {
		lon += 360
	}
	nx := (lon - p.bbox.MinX) / (p.bbox.MaxX - p.bbox.MinX)
	ny := (pt.Y - p.bbox.MinY) / (p.bbox.MaxY - p.bbox.MinY)
	zx := 0.5 + (nx-0.5)*p.zoom
	zy := 0.5 + (ny-0.5)*p.zoom
	sx := zx*float64(p.wMic-1) + float64(p.offX*2)
	sy := (1-zy)*float64(p.hMic-1) + float64(p.offY*4)
	return pt.At(sx, sy)
}

// PixelToGeo implements graphic.Converter.
func (p projection) PixelToGeo(pt graphic.TaggedPoint) graphic.TaggedPoint {
	zx := (pt.X - float64(p.offX*2)) / float64(p.wMic-1)
	zy := 1 - (pt.Y-float64(p.offY*4))/float64(p.hMic-1)
	nx := 0.5 + (zx-0.5)/p.zoom
	ny := 0.5 + (zy-0.5)/p.zoom
	lon := p.bbox.MinX + nx*(p.bbox.MaxX-p.bbox.MinX)
	if lon > 180 {
		lon -= 360
	}
	return pt.At(lon, p.bbox.MinY+ny*(p.bbox.MaxY-p.bbox.MinY))
}

// micro rounds pt to a micro pixel.
func (p projection) micro(pt graphic.TaggedPoint) (int, int) {
	q := p.GeoToPixel(pt)
	return int(math.Round(q.X)), int(math.Round(q.Y))
}

// bounds returns the whole map area in micro pixels.
func (p projection) bounds() (w, h float64) {
	return float64(p.wMic), float64(p.hMic)
}

// viewportPolygon returns a rectangle covering most of the map, turned by
// rot degrees about the map center. It is the clip region in polygon mode.
func viewportPolygon(w, h, rot float64) []graphic.TaggedPoint {
	cx, cy := w/2, h/2
	hw, hh := w*0.4, h*0.4
	sin, cos := math.Sincos(rot * math.Pi / 180)
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	out := make([]graphic.TaggedPoint, 0, 4)
	for _, c := range corners {
		x := c[0]*cos - c[1]*sin
		y := c[0]*sin + c[1]*cos
		out = append(out, graphic.Pt(cx+x, cy+y))
	}
	return out
}
