package ribbon

import "errors"

// Errors reported by the core. All three are precondition violations
// detected before any geometry is emitted; there is nothing transient to
// retry. A joint whose offset boundaries have no unique intersection is
// not an error, it is a normal geometric configuration.
var (
	// ErrInvalidSampleCount indicates a Subdivide call with fewer than
	// two samples requested.
	ErrInvalidSampleCount = errors.New("ribbon: sample count must be at least 2")

	// ErrDegenerateSegment indicates two coincident consecutive polyline
	// points, which leave the segment without a direction.
	ErrDegenerateSegment = errors.New("ribbon: degenerate segment: consecutive points coincide")

	// ErrShortPolyline indicates a stroke request for a polyline with
	// fewer than two points.
	ErrShortPolyline = errors.New("ribbon: polyline needs at least 2 points")
)
