package graphic

// Buffer is the mutable unit of work for one graphic in one render pass.
// A Buffer exclusively owns its Points; the clippers replace the slice
// wholesale, so callers must not keep references into it across a clip.
type Buffer struct {
	Points []TaggedPoint
	Kind   LineKind

	// Closed is true when Points describe a region rather than a line.
	// NewBuffer derives it from Kind; fill extraction forces it on a copy.
	Closed bool

	// Clipped is set by the clippers when an edge removed or moved geometry.
	Clipped bool
}

// NewBuffer returns a buffer holding a copy of pts.
func NewBuffer(kind LineKind, pts []TaggedPoint) *Buffer {
	return &Buffer{
		Points: append([]TaggedPoint(nil), pts...),
		Kind:   kind,
		Closed: kind.IsClosed(),
	}
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	c := *b
	c.Points = append([]TaggedPoint(nil), b.Points...)
	return &c
}

// CloseRing appends a copy of the first point unless the path already ends
// where it starts.
func (b *Buffer) CloseRing() {
	n := len(b.Points)
	if n == 0 {
		return
	}
	if !b.Points[0].SameLocation(b.Points[n-1]) {
		b.Points = append(b.Points, b.Points[0])
	}
	b.Closed = true
}
