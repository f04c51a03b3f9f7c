package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"tacgraph/internal/assemble"
	"tacgraph/internal/config"
	"tacgraph/internal/geom"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

type Model struct {
	width  int
	height int

	cfg config.Config

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	data geom.Data

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showLines   bool
	showAreas   bool
	showMarkers bool
	showFills   bool

	mode assemble.ViewportMode

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// graphics table
	showAttrs bool
	tbl       table.Model
}

func New(cfg config.Config) Model {
	m := Model{
		cfg:         cfg,
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "tacgraph ready",
		showLines:   true,
		showAreas:   true,
		showMarkers: true,
		showFills:   cfg.Viewer.Fills,
		mode:        cfg.ViewportMode(),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON, MULTI*). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg config.Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// mapSize returns the map area in cells and its top-left screen cell.
func (m Model) mapSize() (w, h, originX, originY int) {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	w = contentWidth - 1
	if m.showSidebar {
		w -= sidebarWidth
		originX = sidebarWidth + 1
	}
	return max(10, w), contentHeight, originX, headerHeight
}

func (m Model) projection(w, h int) projection {
	return newProjection(m.data.BBox, m.zoom, m.offsetX, m.offsetY, w, h)
}

// assembler builds the clip pipeline for a w x h cell map.
func (m Model) assembler(p projection) *assemble.Assembler {
	bw, bh := p.bounds()
	a := assemble.New(p, clipRect(bw, bh))
	a.Mode = m.mode
	a.Polygon = viewportPolygon(bw, bh, m.cfg.Viewer.PolygonRotation)
	a.RectClipper = m.cfg.RectClipper()
	a.PolygonClipper = m.cfg.PolygonClipper()
	a.SegmentLength = m.cfg.Clip.SegmentLength
	a.SpikeDistance = m.cfg.Clip.SpikeDistance
	return a
}

// setData replaces the dataset and resets the view.
func (m *Model) setData(d geom.Data) {
	m.data = d
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
}
