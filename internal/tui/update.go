package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"tacgraph/internal/assemble"
	"tacgraph/internal/geodesic"
	"tacgraph/internal/geom"
	"tacgraph/internal/graphic"
)

const maxZoom = 64

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.height-headerHeight-footerHeight-2)
		}
	case tea.KeyMsg:
		// While the list is filtering it owns the keyboard.
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showAttrs {
			switch msg.String() {
			case "a", "esc":
				m.showAttrs = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		if quit := m.handleKey(msg.String()); quit {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKTData(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.selPath = ""
		m.setData(d)
		m.status = "rendered WKT  " + countsStatus(d)
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// handleKey applies a view key and reports whether the program should quit.
func (m *Model) handleKey(key string) bool {
	switch key {
	case "ctrl+c", "q":
		return true
	case "1":
		m.showLines = !m.showLines
		m.status = fmt.Sprintf("lines: %v", m.showLines)
	case "2":
		m.showAreas = !m.showAreas
		m.status = fmt.Sprintf("areas: %v", m.showAreas)
	case "3":
		m.showMarkers = !m.showMarkers
		m.status = fmt.Sprintf("markers: %v", m.showMarkers)
	case "f":
		m.showFills = !m.showFills
		m.status = fmt.Sprintf("fills: %v", m.showFills)
	case "r":
		if m.mode == assemble.ViewportRect {
			m.mode = assemble.ViewportPolygon
		} else {
			m.mode = assemble.ViewportRect
		}
		m.status = "viewport: " + m.mode.String()
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	case "+", "=":
		if m.zoom < maxZoom {
			m.zoom *= m.zoomStep()
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= m.zoomStep()
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.height-headerHeight-footerHeight-2)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = true
		m.refreshAttrsFromCurrent()
	case "i":
		m.inspect()
	case "esc":
		m.inspectPopup = ""
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "up":
		m.offsetY--
	case "down":
		m.offsetY++
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	}
	return false
}

func (m Model) zoomStep() float64 {
	if s := m.cfg.Viewer.ZoomStep; s > 1 {
		return s
	}
	return 1.2
}

// inspect fills the popup with dataset facts and the control point nearest
// the hover position, or the map center without a hover.
func (m *Model) inspect() {
	graphics := m.data.Graphics()
	if len(graphics) == 0 && len(m.data.Markers) == 0 {
		m.inspectPopup = "no graphics loaded"
		m.status = m.inspectPopup
		return
	}
	w, h, _, _ := m.mapSize()
	p := m.projection(w, h)
	mx, my := w, h*2
	if m.hovering {
		mx, my = m.hoverMicX, m.hoverMicY
	}

	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	lines, areas, markers := m.data.Counts()
	b := m.data.BBox
	meta := []string{
		"name: " + name,
		fmt.Sprintf("counts: lines=%d areas=%d markers=%d", lines, areas, markers),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", b.MinX, b.MinY, b.MaxX, b.MaxY),
	}

	var all []graphic.TaggedPoint
	for _, g := range graphics {
		all = append(all, g.Points...)
	}
	all = append(all, m.data.Markers...)
	if r, err := geodesic.BoundingRectangle(all); err == nil {
		meta = append(meta, fmt.Sprintf("extent: %s x %s", meters(r.Width), meters(r.Height)))
	}
	if c, err := geodesic.Centroid(all); err == nil {
		meta = append(meta, fmt.Sprintf("centroid: lon=%.5f lat=%.5f", c.X, c.Y))
	}
	if pt, _, _, ok := m.nearestVertex(p, mx, my); ok {
		meta = append(meta, fmt.Sprintf("nearest: lon=%.6f lat=%.6f", pt.X, pt.Y))
	}
	a := m.assembler(p)
	view := a.Polygon
	if m.mode == assemble.ViewportRect {
		corners := a.Rect.Corners()
		view = corners[:]
	}
	if r, err := geodesic.BoundingRectangle(graphic.ToGeo(p, view)); err == nil {
		meta = append(meta, fmt.Sprintf("view: %s x %s", meters(r.Width), meters(r.Height)))
	}
	meta = append(meta, "viewport: "+m.mode.String())
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup (esc to close)"
}

// hover tracks the mouse over the map and snaps the marker to the nearest
// control point.
func (m *Model) hover(x, y int) {
	w, h, ox, oy := m.mapSize()
	if x < ox || x >= ox+w || y < oy || y >= oy+h {
		m.hovering = false
		m.hoverHasGeo = false
		return
	}
	cx, cy := x-ox, y-oy
	m.hovering = true
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(cx, cy, w, h)
	m.hoverMicX, m.hoverMicY = cx*2, cy*4
	if _, bx, by, ok := m.nearestVertex(m.projection(w, h), cx*2, cy*4); ok {
		m.hoverMicX, m.hoverMicY = bx, by
	}
}
