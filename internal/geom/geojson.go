package geom

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"tacgraph/internal/assemble"
	"tacgraph/internal/diag"
	"tacgraph/internal/graphic"
)

// featureSpec carries the graphic attributes read from feature properties.
type featureSpec struct {
	name     string
	kind     string
	shape    assemble.Shape
	major    float64
	minor    float64
	rotation float64
	style    graphic.Style
	props    geojson.Properties
}

func specFromProps(props geojson.Properties) (featureSpec, error) {
	s := featureSpec{
		name:     props.MustString("name", ""),
		kind:     props.MustString("kind", ""),
		major:    props.MustFloat64("major", props.MustFloat64("radius", 0)),
		minor:    props.MustFloat64("minor", 0),
		rotation: props.MustFloat64("rotation", 0),
		props:    props,
	}
	if c := props.MustString("color", ""); c != "" {
		s.style = c
	}
	shape, err := assemble.ParseShape(props.MustString("shape", ""))
	if err != nil {
		return s, err
	}
	s.shape = shape
	return s, nil
}

func toTagged(pts []orb.Point) []graphic.TaggedPoint {
	out := make([]graphic.TaggedPoint, len(pts))
	for i, p := range pts {
		out[i] = graphic.Pt(p[0], p[1])
	}
	return out
}

func (s featureSpec) feature(pts []graphic.TaggedPoint, defaultKind graphic.LineKind) (Feature, error) {
	kind := defaultKind
	if s.kind != "" {
		k, err := graphic.ParseLineKind(s.kind)
		if err != nil {
			return Feature{}, fmt.Errorf("%w: %q", err, s.kind)
		}
		kind = k
	}
	return Feature{
		Graphic: assemble.Graphic{
			Name:     s.name,
			Kind:     kind,
			Shape:    s.shape,
			Points:   pts,
			Major:    s.major,
			Minor:    s.minor,
			Rotation: s.rotation,
			Style:    s.style,
		},
		Props: s.props,
	}, nil
}

// addGeometry appends the graphics described by g to d.
func (d *Data) addGeometry(g orb.Geometry, s featureSpec) error {
	add := func(pts []graphic.TaggedPoint, def graphic.LineKind) error {
		f, err := s.feature(pts, def)
		if err != nil {
			return err
		}
		d.Features = append(d.Features, f)
		return nil
	}
	switch g := g.(type) {
	case orb.Point:
		switch s.shape {
		case assemble.Circle:
			return add(toTagged([]orb.Point{g}), graphic.KindCircle)
		case assemble.Ellipse:
			return add(toTagged([]orb.Point{g}), graphic.KindEllipse)
		}
		d.Markers = append(d.Markers, graphic.Pt(g[0], g[1]))
	case orb.MultiPoint:
		switch s.shape {
		case assemble.Arc:
			return add(toTagged(g), graphic.KindArc)
		case assemble.Sector:
			return add(toTagged(g), graphic.KindSector)
		case assemble.Polyline:
			d.Markers = append(d.Markers, toTagged(g)...)
			return nil
		}
		return add(toTagged(g), graphic.KindGeneralArea)
	case orb.LineString:
		return add(toTagged(g), graphic.KindPhaseLine)
	case orb.MultiLineString:
		for _, ls := range g {
			if err := add(toTagged(ls), graphic.KindPhaseLine); err != nil {
				return err
			}
		}
	case orb.Ring:
		return add(toTagged(g), graphic.KindGeneralArea)
	case orb.Polygon:
		if len(g) == 0 {
			return nil
		}
		// holes are not drawn
		return add(toTagged(g[0]), graphic.KindGeneralArea)
	case orb.MultiPolygon:
		for _, p := range g {
			if err := d.addGeometry(p, s); err != nil {
				return err
			}
		}
	case orb.Collection:
		for _, sub := range g {
			if err := d.addGeometry(sub, s); err != nil {
				return err
			}
		}
	case nil:
		return nil
	default:
		return fmt.Errorf("%w: geometry %s", ErrUnsupported, g.GeoJSONType())
	}
	return nil
}

// addFeature converts f. A feature that cannot be converted is logged and
// skipped so one bad entry does not hide the rest of the file.
func (d *Data) addFeature(f *geojson.Feature) {
	s, err := specFromProps(f.Properties)
	if err == nil {
		err = d.addGeometry(f.Geometry, s)
	}
	if err != nil {
		diag.LogFailure("geom", "feature", fmt.Errorf("feature %v: %w", f.ID, err))
	}
}

// ParseGeoJSON reads a FeatureCollection, a single Feature or a bare
// geometry. Feature properties select the graphic: "kind" (a line kind
// name), "shape" (circle, ellipse, arc or sector), "radius", "major",
// "minor", "rotation", "name" and "color".
func ParseGeoJSON(data []byte) (Data, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Data{}, fmt.Errorf("geojson: %w", err)
	}

	var d Data
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Data{}, err
		}
		for _, f := range fc.Features {
			d.addFeature(f)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Data{}, err
		}
		d.addFeature(f)
	case "":
		return Data{}, fmt.Errorf("geojson: missing type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Data{}, err
		}
		if err := d.addGeometry(g.Geometry(), featureSpec{}); err != nil {
			return Data{}, err
		}
	}
	if err := d.finish(); err != nil {
		return Data{}, err
	}
	return d, nil
}

// LoadGeo reads a GeoJSON file.
func LoadGeo(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseGeoJSON(b)
}
