package ribbon

import "github.com/gogpu/ribbon/internal/parallel"

// Stroker converts a polyline into a constant-width triangle mesh.
//
// Each segment becomes a quad of two triangles whose long edges run
// parallel to the segment at offset Width on either side. Adjacent
// segments are joined by a miter: where the offset boundaries of the
// two segments intersect on exactly one side, the shared quad corners
// on that side snap to the intersection point and a single fill
// triangle closes the wedge on the opposite side. Joints whose
// boundaries intersect on both sides or on neither side are left
// unsnapped and unfilled.
type Stroker struct {
	// Width is the offset distance from the centerline to each boundary,
	// half of the total ribbon width. Negative values mirror the left
	// and right boundaries and produce the same triangles.
	Width float64

	// Workers caps the number of goroutines used to build fragments.
	// Zero or negative means one goroutine per available CPU.
	Workers int
}

// NewStroker returns a Stroker with the given half-width.
func NewStroker(halfWidth float64) *Stroker {
	return &Stroker{Width: halfWidth}
}

// Stroke tessellates line with the default sequential stroker.
// Shorthand for NewStroker(halfWidth).Stroke(line).
func Stroke(line PolyLine, halfWidth float64) (Mesh, error) {
	return NewStroker(halfWidth).Stroke(line)
}

// sidePoints holds the two offset points flanking a centerline point,
// left and right of the direction of travel.
type sidePoints struct {
	left, right Point
}

// opposite returns the point on the other side of the given one.
func (s sidePoints) opposite(left bool) Point {
	if left {
		return s.right
	}
	return s.left
}

// side returns the point on the given side.
func (s sidePoints) side(left bool) Point {
	if left {
		return s.left
	}
	return s.right
}

// joint describes the miter decision at an interior polyline point.
type joint struct {
	at   Point
	left bool
	ok   bool
}

// Stroke tessellates line into a triangle mesh.
//
// Returns ErrShortPolyline if line has fewer than two points and
// ErrDegenerateSegment if any two consecutive points coincide. On
// success the mesh contains one quad per segment followed by one fill
// triangle per snapped joint, with segment quads in segment order and
// joint triangles in joint order.
func (s *Stroker) Stroke(line PolyLine) (Mesh, error) {
	if len(line) < 2 {
		return Mesh{}, ErrShortPolyline
	}
	for i := 0; i+1 < len(line); i++ {
		if line[i] == line[i+1] {
			return Mesh{}, ErrDegenerateSegment
		}
	}

	segments := line.Segments()
	joints := segments - 1
	total := segments + joints

	fragments := make([]Mesh, total)
	build := func(k int) {
		if k < segments {
			fragments[k] = s.segmentMesh(line, k)
		} else {
			fragments[k] = s.jointMesh(line, k-segments+1)
		}
	}

	if s.Workers == 1 || total == 1 {
		for k := 0; k < total; k++ {
			build(k)
		}
	} else {
		parallel.For(total, s.Workers, build)
	}

	var out Mesh
	for _, frag := range fragments {
		out.Append(frag)
	}
	return out, nil
}

// offsetPoints returns the points at distance |dir| perpendicular to dir
// on either side of p. dir must already be scaled to the offset distance.
func offsetPoints(p Point, dir Vec2) sidePoints {
	d := dir.Perp()
	return sidePoints{
		left:  p.Translate(d),
		right: p.Translate(d.Neg()),
	}
}

// startPoints returns the offset points at the start of segment i.
func (s *Stroker) startPoints(line PolyLine, i int) sidePoints {
	dir := PointToVec2(line[i+1].Sub(line[i])).Normalize().Mul(s.Width)
	return offsetPoints(line[i], dir)
}

// endPoints returns the offset points at the end of segment i.
func (s *Stroker) endPoints(line PolyLine, i int) sidePoints {
	dir := PointToVec2(line[i+1].Sub(line[i])).Normalize().Mul(s.Width)
	return offsetPoints(line[i+1], dir)
}

// connection resolves the miter at interior point i (the joint between
// segments i-1 and i). The left and right offset boundaries of the two
// segments are intersected independently; the joint snaps only when
// exactly one side yields a unique intersection point.
func (s *Stroker) connection(line PolyLine, i int) joint {
	prevStart := s.startPoints(line, i-1)
	prevEnd := s.endPoints(line, i-1)
	nextStart := s.startPoints(line, i)
	nextEnd := s.endPoints(line, i)

	left := Intersect(
		NewLine(prevStart.left, prevEnd.left),
		NewLine(nextStart.left, nextEnd.left),
	)
	right := Intersect(
		NewLine(prevStart.right, prevEnd.right),
		NewLine(nextStart.right, nextEnd.right),
	)

	leftHit := left.Kind == IntersectionPoint
	rightHit := right.Kind == IntersectionPoint
	if leftHit == rightHit {
		return joint{}
	}
	if leftHit {
		return joint{at: left.Point, left: true, ok: true}
	}
	return joint{at: right.Point, left: false, ok: true}
}

// segmentMesh builds the quad for segment i, snapping its corners at
// interior endpoints whose joint resolved to a miter.
func (s *Stroker) segmentMesh(line PolyLine, i int) Mesh {
	start := s.startPoints(line, i)
	end := s.endPoints(line, i)

	if i > 0 {
		if j := s.connection(line, i); j.ok {
			if j.left {
				start.left = j.at
			} else {
				start.right = j.at
			}
		}
	}
	if i+1 < line.Len()-1 {
		if j := s.connection(line, i+1); j.ok {
			if j.left {
				end.left = j.at
			} else {
				end.right = j.at
			}
		}
	}

	return Mesh{
		Vertices: []Point{start.left, start.right, end.left, end.right},
		Indices:  []uint32{0, 2, 3, 0, 3, 1},
	}
}

// jointMesh builds the fill triangle for the joint at interior point i.
// The triangle sits on the side opposite the miter, spanning the gap
// between the incoming quad's trailing edge and the outgoing quad's
// leading edge. Unsnapped joints produce an empty mesh.
func (s *Stroker) jointMesh(line PolyLine, i int) Mesh {
	j := s.connection(line, i)
	if !j.ok {
		return Mesh{}
	}
	prevEnd := s.endPoints(line, i-1)
	nextStart := s.startPoints(line, i)
	return Mesh{
		Vertices: []Point{prevEnd.opposite(j.left), j.at, nextStart.opposite(j.left)},
		Indices:  []uint32{0, 1, 2},
	}
}
