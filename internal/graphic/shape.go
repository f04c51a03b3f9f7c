package graphic

// ShapeKind tells the renderer whether to stroke or fill a shape.
type ShapeKind int

const (
	Outline ShapeKind = iota
	Fill
)

func (k ShapeKind) String() string {
	if k == Fill {
		return "fill"
	}
	return "outline"
}

// Style is an opaque styling handle. The core passes it through untouched.
type Style any

// ShapeDescriptor is a finished path ready for rasterization. It is not
// modified after NewShape returns.
type ShapeDescriptor struct {
	Kind  ShapeKind
	Path  []TaggedPoint
	Style Style
}

// NewShape copies path and assigns path-segment kinds: the first point moves,
// the rest draw lines, and closed paths get a trailing Close point.
func NewShape(kind ShapeKind, path []TaggedPoint, closed bool, style Style) ShapeDescriptor {
	out := make([]TaggedPoint, 0, len(path)+1)
	for i, p := range path {
		if i == 0 {
			p.Segment = MoveTo
		} else {
			p.Segment = LineTo
		}
		out = append(out, p)
	}
	if (closed || kind == Fill) && len(out) > 0 {
		c := out[0]
		c.Segment = Close
		out = append(out, c)
	}
	return ShapeDescriptor{Kind: kind, Path: out, Style: style}
}
