// Package ribbon tessellates smooth curves into constant-width triangle
// ribbons.
//
// # Overview
//
// ribbon turns a centerline path into a watertight triangle mesh suitable
// for indexed-triangle rendering. The pipeline has three stages: a quadratic
// Bézier curve is sampled into a PolyLine, the PolyLine is stroked into
// per-segment quads and per-joint miter fill triangles, and the resulting
// fragments are merged into a single Mesh. Joints are closed using only
// local pairwise intersection of the adjacent offset boundaries; there is
// no global path offsetting.
//
// # Quick Start
//
//	import "github.com/gogpu/ribbon"
//
//	curve := ribbon.NewQuadBez(ribbon.Pt(-0.5, 0), ribbon.Pt(0, 1), ribbon.Pt(0.5, 0))
//	line, err := curve.Subdivide(30)
//	if err != nil {
//		// count < 2
//	}
//	mesh, err := ribbon.Stroke(line, 0.01)
//	if err != nil {
//		// degenerate or too-short polyline
//	}
//	// hand mesh.Vertices and mesh.Indices to a renderer
//
// # Architecture
//
// The library is organized into:
//   - Core: Point, Vec2, Line, QuadBez, PolyLine, Mesh, Stroker
//   - Backends: backend/software (CPU raster via x/image/vector),
//     backend/wgpu (GPU upload and draw via gogpu/wgpu)
//
// The core is a pure, synchronous computation with no I/O and no shared
// mutable state. Stroker optionally computes fragments on multiple
// goroutines and merges them in deterministic order; the output is
// identical either way.
//
// # Known limitations
//
// A joint whose offset boundaries intersect on both sides (very sharp
// turns with a large width relative to segment length) or on neither side
// (collinear segments) is left unjoined: the adjacent quads stand alone
// and may show a seam. Round and bevel joins, variable width, and global
// self-intersection resolution are out of scope.
package ribbon
