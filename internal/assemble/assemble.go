// Package assemble turns graphic specifications into clipped shapes for one
// viewport. It is the only place where core failures are logged; each failing
// graphic contributes no shapes and the rest of the scene is unaffected.
package assemble

import (
	"errors"
	"fmt"
	"strings"

	"tacgraph/internal/clip"
	"tacgraph/internal/diag"
	"tacgraph/internal/geodesic"
	"tacgraph/internal/graphic"
)

// Shape selects how a graphic's control points become a path.
type Shape int

const (
	// Polyline uses the points as they are.
	Polyline Shape = iota
	// Arc takes center, start radius point and end bearing point.
	Arc
	// Sector takes center, inner radius point and outer radius point.
	Sector
	// Ellipse takes the center and the Major, Minor and Rotation fields.
	Ellipse
	// Circle takes the center and the Major field as radius.
	Circle
)

var shapeNames = []string{"polyline", "arc", "sector", "ellipse", "circle"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

var (
	ErrUnknownShape = errors.New("assemble: unknown shape")
	ErrNoConverter  = errors.New("assemble: no coordinate converter")
)

// ParseShape maps a shape name to its Shape. The empty string is a polyline.
func ParseShape(s string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	if n == "" {
		return Polyline, nil
	}
	for i, name := range shapeNames {
		if name == n {
			return Shape(i), nil
		}
	}
	return Polyline, fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// Graphic is one map graphic in geographic coordinates.
type Graphic struct {
	Name  string
	Kind  graphic.LineKind
	Shape Shape

	// Points are lon/lat control points.
	Points []graphic.TaggedPoint

	// Major and Minor are radii in meters, Rotation is degrees clockwise
	// from north.
	Major, Minor, Rotation float64

	Style graphic.Style
}

// Closed reports whether g describes a region.
func (g Graphic) Closed() bool {
	switch g.Shape {
	case Sector, Ellipse, Circle:
		return true
	}
	return g.Kind.IsClosed()
}

// GeoPath expands g's control points into its full geographic path.
func (g Graphic) GeoPath() ([]graphic.TaggedPoint, error) {
	switch g.Shape {
	case Polyline:
		return append([]graphic.TaggedPoint(nil), g.Points...), nil
	case Arc:
		arc, err := geodesic.Arc(g.Points)
		if err != nil {
			return nil, err
		}
		// an open arc line does not return to the center
		if !g.Kind.IsClosed() && len(arc) > 0 && len(g.Points) > 0 && arc[len(arc)-1].SameLocation(g.Points[0]) {
			arc = arc[:len(arc)-1]
		}
		return arc, nil
	case Sector:
		s, _, err := geodesic.SectorArc(g.Points)
		return s, err
	case Circle:
		if len(g.Points) == 0 {
			return nil, geodesic.ErrTooFewPoints
		}
		r := geodesic.DirectCoordinate(g.Points[0], g.Major, 0)
		return geodesic.Arc([]graphic.TaggedPoint{g.Points[0], r, r})
	case Ellipse:
		if len(g.Points) == 0 {
			return nil, geodesic.ErrTooFewPoints
		}
		return geodesic.Ellipse(g.Points[0], g.Major, g.Minor, g.Rotation), nil
	}
	return nil, ErrUnknownShape
}

// ViewportMode selects the clipper used by an Assembler.
type ViewportMode int

const (
	ViewportRect ViewportMode = iota
	ViewportPolygon
)

func (m ViewportMode) String() string {
	if m == ViewportPolygon {
		return "polygon"
	}
	return "rect"
}

// ParseViewportMode accepts "rect" and "polygon".
func ParseViewportMode(s string) (ViewportMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rect", "rectangle":
		return ViewportRect, nil
	case "polygon", "poly":
		return ViewportPolygon, nil
	}
	return ViewportRect, fmt.Errorf("assemble: unknown viewport mode %q", s)
}

// Assembler holds the viewport and tuning for one render pass.
type Assembler struct {
	Converter graphic.Converter
	Mode      ViewportMode

	// Rect and Polygon are the viewport in pixel space; only the one
	// selected by Mode is used.
	Rect    clip.Rect
	Polygon []graphic.TaggedPoint

	RectClipper    *clip.RectClipper
	PolygonClipper *clip.PolygonClipper

	// SegmentLength subdivides long pixel segments before clipping; zero
	// disables it. SpikeDistance drops near-coincident points after
	// clipping; zero disables it.
	SegmentLength float64
	SpikeDistance float64
}

// New returns an Assembler with default clippers for a rectangular viewport.
func New(conv graphic.Converter, viewport clip.Rect) *Assembler {
	return &Assembler{
		Converter:      conv,
		Rect:           viewport,
		RectClipper:    clip.NewRectClipper(),
		PolygonClipper: clip.NewPolygonClipper(),
	}
}

// Result is the output for one graphic. Shapes is empty when the graphic is
// off screen or could not be assembled.
type Result struct {
	Shapes  []graphic.ShapeDescriptor
	Clipped bool
}

func (a *Assembler) clipOutline(buf *graphic.Buffer) ([]graphic.TaggedPoint, error) {
	if a.Mode == ViewportPolygon {
		c := a.PolygonClipper
		if c == nil {
			c = clip.NewPolygonClipper()
		}
		return c.Clip(buf, a.Polygon)
	}
	c := a.RectClipper
	if c == nil {
		c = clip.NewRectClipper()
	}
	return c.Clip(buf, a.Rect)
}

func (a *Assembler) extractFill(buf *graphic.Buffer, style graphic.Style) (*graphic.ShapeDescriptor, error) {
	if a.Mode == ViewportPolygon {
		c := a.PolygonClipper
		if c == nil {
			c = clip.NewPolygonClipper()
		}
		return c.ExtractFillShape(buf, a.Polygon, style)
	}
	c := a.RectClipper
	if c == nil {
		c = clip.NewRectClipper()
	}
	return c.ExtractFillShape(buf, a.Rect, style)
}

// Buffer expands g and converts it to a pixel-space buffer ready for
// clipping.
func (a *Assembler) Buffer(g Graphic) (*graphic.Buffer, error) {
	if a.Converter == nil {
		return nil, ErrNoConverter
	}
	geo, err := g.GeoPath()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", g.Shape, g.Kind, err)
	}
	pix := graphic.ToPixel(a.Converter, geodesic.Normalize(geo))
	buf := graphic.NewBuffer(g.Kind, graphic.Segment(pix, a.SegmentLength))
	buf.Closed = g.Closed()
	return buf, nil
}

// Assemble produces the fill (for kinds that have one) and outline shapes of
// g. Failures are logged and yield an empty Result.
func (a *Assembler) Assemble(g Graphic) Result {
	buf, err := a.Buffer(g)
	if err != nil {
		diag.LogFailure("assemble", "expand", err)
		return Result{}
	}

	var res Result
	fill, err := a.extractFill(buf, g.Style)
	if err != nil {
		diag.LogFailure("clip", "fill", err)
		return Result{}
	}
	if fill != nil {
		res.Shapes = append(res.Shapes, *fill)
	}

	pts, err := a.clipOutline(buf)
	if err != nil {
		diag.LogFailure("clip", "outline", err)
		return Result{}
	}
	res.Clipped = buf.Clipped

	pts = graphic.FilterSpikes(pts, a.SpikeDistance)
	if buf.Closed {
		if len(pts) < 4 {
			return res
		}
		res.Shapes = append(res.Shapes, graphic.NewShape(graphic.Outline, pts[:len(pts)-1], true, g.Style))
		return res
	}
	if len(pts) < 2 {
		return res
	}
	res.Shapes = append(res.Shapes, graphic.NewShape(graphic.Outline, pts, false, g.Style))
	return res
}

// AssembleAll assembles every graphic in order.
func (a *Assembler) AssembleAll(gs []Graphic) []Result {
	out := make([]Result, len(gs))
	for i, g := range gs {
		out[i] = a.Assemble(g)
	}
	return out
}
