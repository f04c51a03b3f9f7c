package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKTData parses a WKT geometry. Lines become phase lines, polygons
// general areas and points markers; use GeoJSON properties for anything
// more specific.
func ParseWKTData(s string) (Data, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Data{}, errors.New("wkt: empty input")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Data{}, fmt.Errorf("wkt: %w", err)
	}
	var d Data
	if err := d.addGeometry(g, featureSpec{}); err != nil {
		return Data{}, err
	}
	if err := d.finish(); err != nil {
		return Data{}, err
	}
	return d, nil
}
