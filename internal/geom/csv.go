package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"tacgraph/internal/diag"
)

type csvColumns struct {
	lat, lon, name, kind int
}

func findColumns(header []string) (csvColumns, error) {
	c := csvColumns{lat: -1, lon: -1, name: -1, kind: -1}
	set := func(idx *int, i int) {
		if *idx == -1 {
			*idx = i
		}
	}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			set(&c.lat, i)
		case "lon", "lng", "long", "longitude", "x":
			set(&c.lon, i)
		case "name", "graphic", "id":
			set(&c.name, i)
		case "kind", "type":
			set(&c.kind, i)
		}
	}
	if c.lat == -1 || c.lon == -1 {
		return c, errors.New("csv: latitude/longitude columns not found")
	}
	return c, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseCSV reads vertices from latitude/longitude columns (lat, latitude, y
// and lon, lng, long, longitude, x). Consecutive rows with the same name
// column form one line; the first row's kind column sets its kind. A name
// with a single row becomes a marker.
func ParseCSV(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return Data{}, err
	}
	if len(recs) == 0 {
		return Data{}, errors.New("csv: empty input")
	}
	cols, err := findColumns(recs[0])
	if err != nil {
		return Data{}, err
	}

	type group struct {
		name, kind string
		pts        orb.LineString
	}
	var groups []*group
	for _, row := range recs[1:] {
		lon, err1 := strconv.ParseFloat(cell(row, cols.lon), 64)
		lat, err2 := strconv.ParseFloat(cell(row, cols.lat), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		name := cell(row, cols.name)
		if n := len(groups); n == 0 || groups[n-1].name != name {
			groups = append(groups, &group{name: name, kind: cell(row, cols.kind)})
		}
		g := groups[len(groups)-1]
		g.pts = append(g.pts, orb.Point{lon, lat})
	}

	var d Data
	for _, g := range groups {
		props := geojson.Properties{"name": g.name}
		if g.kind != "" {
			props["kind"] = g.kind
		}
		s, err := specFromProps(props)
		if err != nil {
			diag.LogFailure("geom", "csv row group", err)
			continue
		}
		var geom orb.Geometry = g.pts
		if len(g.pts) == 1 {
			geom = g.pts[0]
		}
		if err := d.addGeometry(geom, s); err != nil {
			diag.LogFailure("geom", "csv row group "+g.name, err)
		}
	}
	if err := d.finish(); err != nil {
		return Data{}, err
	}
	return d, nil
}

// LoadCSV reads a CSV file.
func LoadCSV(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ParseCSV(f)
}
