package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"

	"tacgraph/internal/geom"
)

// fixedColumns are always shown; property keys with the same name are not
// repeated.
var fixedColumns = []string{"name", "kind", "shape", "points", "shapes", "clipped"}

// refreshAttrsFromCurrent rebuilds the graphics table for the current view.
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no graphics in current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+6, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(tcols))
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

func propString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}

// propertyKeys unions the property keys of all features, sorted, skipping
// the fixed columns.
func propertyKeys(fs []geom.Feature) []string {
	skip := map[string]bool{}
	for _, c := range fixedColumns {
		skip[c] = true
	}
	seen := map[string]bool{}
	var keys []string
	for _, f := range fs {
		for k := range f.Props {
			if !skip[k] && !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// buildAttributes lists every graphic with its clip outcome in the current
// view, followed by its loaded properties.
func (m *Model) buildAttributes() ([]string, [][]string) {
	fs := m.data.Features
	keys := propertyKeys(fs)
	cols := append(append([]string(nil), fixedColumns...), keys...)

	w, h, _, _ := m.mapSize()
	results := m.assembler(m.projection(w, h)).AssembleAll(m.data.Graphics())

	rows := make([][]string, 0, len(fs))
	for i, f := range fs {
		row := []string{
			f.Name,
			f.Kind.String(),
			f.Shape.String(),
			fmt.Sprintf("%d", len(f.Points)),
			fmt.Sprintf("%d", len(results[i].Shapes)),
			fmt.Sprintf("%t", results[i].Clipped),
		}
		for _, k := range keys {
			row = append(row, propString(f.Props[k]))
		}
		rows = append(rows, row)
	}
	return cols, rows
}
