package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"tacgraph/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() || !geom.Supported(e.Name()) {
			continue
		}
		name := e.Name()
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

func countsStatus(d geom.Data) string {
	lines, areas, markers := d.Counts()
	return fmt.Sprintf("counts: lines=%d areas=%d markers=%d", lines, areas, markers)
}

// loadPath loads any supported format into the model.
func (m *Model) loadPath(p string) {
	m.selPath = p
	d, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.setData(d)
	m.status = "loaded: " + filepath.Base(p) + "  " + countsStatus(d)
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
