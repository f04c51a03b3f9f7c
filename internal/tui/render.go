package tui

import (
	"math"
	"strings"

	"tacgraph/internal/assemble"
	"tacgraph/internal/clip"
	"tacgraph/internal/config"
	"tacgraph/internal/graphic"
)

func clipRect(w, h float64) clip.Rect {
	return clip.NewRect(0, 0, w, h)
}

// cellToLonLat converts a map cell coordinate back to lon/lat.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if len(m.data.Features) == 0 && len(m.data.Markers) == 0 {
		return 0, 0, false
	}
	g := m.projection(w, h).PixelToGeo(graphic.Pt(float64(cx*2), float64(cy*4)))
	return g.X, g.Y, true
}

func roundPath(path []graphic.TaggedPoint) [][2]int {
	out := make([][2]int, len(path))
	for i, p := range path {
		out[i] = [2]int{int(math.Round(p.X)), int(math.Round(p.Y))}
	}
	return out
}

func (m Model) visible(closed bool) bool {
	if closed {
		return m.showAreas
	}
	return m.showLines
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	p := m.projection(w, h)
	a := m.assembler(p)

	if m.mode == assemble.ViewportPolygon {
		br.pen = viewportPen
		ring := roundPath(a.Polygon)
		br.drawPath(append(ring, ring[0]))
	}

	for _, f := range m.data.Features {
		if !m.visible(f.Closed()) {
			continue
		}
		res := a.Assemble(f.Graphic)
		br.pen = m.cfg.Color(f.Kind)
		if s, ok := f.Style.(string); ok && s != "" {
			br.pen = s
		}
		for _, s := range res.Shapes {
			path := roundPath(s.Path)
			if s.Kind == graphic.Fill {
				if m.showFills {
					br.fillRing(path)
				}
				continue
			}
			br.drawPath(path)
		}
	}

	if m.showMarkers {
		br.pen = m.cfg.Colors[config.DefaultColorKey]
		for _, pt := range m.data.Markers {
			mx, my := p.micro(pt)
			br.setPixel(mx, my)
			br.setPixel(mx+1, my)
			br.setPixel(mx, my+1)
			br.setPixel(mx+1, my+1)
		}
	}

	if m.hovering {
		br.markCell(m.hoverMicX/2, m.hoverMicY/4)
	}
	return strings.Join(br.toLines(), "\n")
}

// nearestVertex finds the control point or marker closest to the micro
// pixel mx, my.
func (m Model) nearestVertex(p projection, mx, my int) (graphic.TaggedPoint, int, int, bool) {
	best := math.MaxInt
	var bp graphic.TaggedPoint
	bx, by := mx, my
	consider := func(pt graphic.TaggedPoint) {
		sx, sy := p.micro(pt)
		dx, dy := sx-mx, sy-my
		if d := dx*dx + dy*dy; d < best {
			best, bp, bx, by = d, pt, sx, sy
		}
	}
	for _, f := range m.data.Features {
		for _, pt := range f.Points {
			consider(pt)
		}
	}
	for _, pt := range m.data.Markers {
		consider(pt)
	}
	return bp, bx, by, best != math.MaxInt
}
