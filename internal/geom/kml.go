package geom

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"tacgraph/internal/diag"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords `xml:"outerBoundaryIs>LinearRing"`
}

type kmlData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type kmlPlacemark struct {
	Name       string      `xml:"name"`
	Point      *kmlCoords  `xml:"Point"`
	LineString *kmlCoords  `xml:"LineString"`
	Polygon    *kmlPolygon `xml:"Polygon"`
	Data       []kmlData   `xml:"ExtendedData>Data"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Document>Placemark"`
	Folders    []kmlPlacemark `xml:"Document>Folder>Placemark"`
	Bare       []kmlPlacemark `xml:"Placemark"`
}

// parseKMLCoords reads "lon,lat[,alt]" tuples separated by whitespace.
// Altitude is ignored.
func parseKMLCoords(s string) []orb.Point {
	var out []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, orb.Point{lon, lat})
	}
	return out
}

// geometry returns the placemark's geometry and its ExtendedData as
// properties. A placemark with several geometries uses the first of point,
// line, polygon.
func (pm kmlPlacemark) geometry() (orb.Geometry, geojson.Properties) {
	props := geojson.Properties{}
	if pm.Name != "" {
		props["name"] = pm.Name
	}
	for _, d := range pm.Data {
		v := strings.TrimSpace(d.Value)
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			props[d.Name] = f
		} else {
			props[d.Name] = v
		}
	}
	switch {
	case pm.Point != nil:
		pts := parseKMLCoords(pm.Point.Coordinates)
		if len(pts) == 1 {
			return pts[0], props
		}
		return orb.MultiPoint(pts), props
	case pm.LineString != nil:
		return orb.LineString(parseKMLCoords(pm.LineString.Coordinates)), props
	case pm.Polygon != nil:
		return orb.Polygon{orb.Ring(parseKMLCoords(pm.Polygon.Outer.Coordinates))}, props
	}
	return nil, props
}

// ParseKML reads placemarks. ExtendedData entries are treated like GeoJSON
// feature properties, so <Data name="kind"> selects the line kind.
func ParseKML(data []byte) (Data, error) {
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Data{}, err
	}
	var d Data
	all := append(append(doc.Placemarks, doc.Folders...), doc.Bare...)
	for _, pm := range all {
		g, props := pm.geometry()
		if g == nil {
			continue
		}
		s, err := specFromProps(props)
		if err == nil {
			err = d.addGeometry(g, s)
		}
		if err != nil {
			diag.LogFailure("geom", "placemark "+pm.Name, err)
		}
	}
	if err := d.finish(); err != nil {
		return Data{}, err
	}
	return d, nil
}

// LoadKML reads a KML file.
func LoadKML(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseKML(b)
}
