package ribbon

// PolyLine is an ordered sequence of points approximating a path.
// It is the centerline input of the stroke tessellator, which reads it
// without modifying it; copies are cheap value semantics.
type PolyLine []Point

// Len returns the number of points.
func (l PolyLine) Len() int {
	return len(l)
}

// Segments returns the number of implicit segments (points[i], points[i+1]).
func (l PolyLine) Segments() int {
	if len(l) < 2 {
		return 0
	}
	return len(l) - 1
}

// Bounds returns the axis-aligned bounding box of the points.
// Returns the zero Rect for an empty polyline.
func (l PolyLine) Bounds() Rect {
	if len(l) == 0 {
		return Rect{}
	}
	bbox := NewRect(l[0], l[0])
	for _, p := range l[1:] {
		bbox = bbox.Union(NewRect(p, p))
	}
	return bbox
}
