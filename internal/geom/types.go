// Package geom loads map graphics from GeoJSON, WKT, KML and CSV files.
package geom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"tacgraph/internal/assemble"
	"tacgraph/internal/geodesic"
	"tacgraph/internal/graphic"
)

var (
	ErrNoGeometry  = errors.New("geom: no geometries found")
	ErrUnsupported = errors.New("geom: unsupported format")
)

// BBox is a lon/lat bounding box. MaxX may exceed 180 when the data crosses
// the antimeridian.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has a positive extent in both axes.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Feature is a graphic together with the properties it was loaded with.
type Feature struct {
	assemble.Graphic
	Props geojson.Properties
}

// Data is everything loaded from one source.
type Data struct {
	Features []Feature

	// Markers are bare points that do not form a graphic.
	Markers []graphic.TaggedPoint

	BBox BBox
}

// Graphics returns the graphics of every feature in order.
func (d Data) Graphics() []assemble.Graphic {
	out := make([]assemble.Graphic, len(d.Features))
	for i, f := range d.Features {
		out[i] = f.Graphic
	}
	return out
}

// Counts returns the number of open lines, closed areas and markers.
func (d Data) Counts() (lines, areas, markers int) {
	for _, f := range d.Features {
		if f.Closed() {
			areas++
		} else {
			lines++
		}
	}
	return lines, areas, len(d.Markers)
}

// finish computes the bounding box over the expanded paths of all features.
func (d *Data) finish() error {
	if len(d.Features) == 0 && len(d.Markers) == 0 {
		return ErrNoGeometry
	}
	var all []graphic.TaggedPoint
	for _, f := range d.Features {
		if path, err := f.GeoPath(); err == nil {
			all = append(all, path...)
		} else {
			all = append(all, f.Points...)
		}
	}
	all = append(all, d.Markers...)
	if len(all) == 0 {
		return ErrNoGeometry
	}

	mp := make(orb.MultiPoint, 0, len(all))
	for _, p := range geodesic.Normalize(all) {
		mp = append(mp, orb.Point{p.X, p.Y})
	}
	b := mp.Bound()
	d.BBox = BBox{MinX: b.Min.X(), MinY: b.Min.Y(), MaxX: b.Max.X(), MaxY: b.Max.Y()}
	return nil
}

// Load reads path, choosing the parser from the file extension.
func Load(path string) (Data, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		return LoadGeo(path)
	case ".kml":
		return LoadKML(path)
	case ".csv":
		return LoadCSV(path)
	case ".wkt":
		b, err := os.ReadFile(path)
		if err != nil {
			return Data{}, err
		}
		return ParseWKTData(string(b))
	}
	return Data{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
}

// Supported reports whether Load understands the extension of path.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".kml", ".csv", ".wkt":
		return true
	}
	return false
}
