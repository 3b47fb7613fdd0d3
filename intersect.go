package ribbon

// IntersectionKind classifies the result of intersecting two line segments.
type IntersectionKind int

const (
	// IntersectionNone means the segments are parallel or disjoint.
	IntersectionNone IntersectionKind = iota

	// IntersectionPoint means the segments meet in exactly one point.
	IntersectionPoint

	// IntersectionCollinear means the segments lie on the same line and
	// overlap, so there is no unique intersection point. Callers that
	// only act on a unique point treat this like IntersectionNone.
	IntersectionCollinear
)

// Intersection is the result of Intersect.
type Intersection struct {
	// Kind classifies the configuration.
	Kind IntersectionKind

	// Point is the unique intersection point when Kind is IntersectionPoint.
	Point Point

	// Proper reports whether the intersection point lies strictly inside
	// both segments, as opposed to touching at an endpoint.
	Proper bool
}

// Intersect computes the intersection of two line segments.
//
// It is a pure, stateless predicate built on exact cross-product sign
// tests; no tolerance is applied. Parallel non-collinear segments and
// collinear segments with disjoint ranges yield IntersectionNone,
// collinear overlapping segments yield IntersectionCollinear, and all
// other configurations with a shared point yield IntersectionPoint.
//
// A segment whose endpoints coincide has no direction and never
// intersects anything.
func Intersect(a, b Line) Intersection {
	r := a.Delta()
	s := b.Delta()
	if r.IsZero() || s.IsZero() {
		return Intersection{Kind: IntersectionNone}
	}

	pq := PointToVec2(b.P0.Sub(a.P0))
	rxs := r.Cross(s)

	if rxs == 0 {
		if pq.Cross(r) != 0 {
			// Parallel, not collinear.
			return Intersection{Kind: IntersectionNone}
		}
		// Collinear: project b's endpoints onto a's parameter range.
		rr := r.Dot(r)
		t0 := pq.Dot(r) / rr
		t1 := t0 + s.Dot(r)/rr
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t1 < 0 || t0 > 1 {
			return Intersection{Kind: IntersectionNone}
		}
		return Intersection{Kind: IntersectionCollinear}
	}

	t := pq.Cross(s) / rxs
	u := pq.Cross(r) / rxs
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Intersection{Kind: IntersectionNone}
	}
	return Intersection{
		Kind:   IntersectionPoint,
		Point:  a.P0.Translate(r.Mul(t)),
		Proper: t > 0 && t < 1 && u > 0 && u < 1,
	}
}
