package ribbon

import "fmt"

// Mesh is an indexed triangle list. Vertices holds positions in world
// coordinates; Indices reference them in groups of three, one group per
// triangle. The zero value is an empty, valid mesh.
type Mesh struct {
	Vertices []Point
	Indices  []uint32
}

// IsEmpty reports whether the mesh has no triangles.
func (m Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// TriangleCount returns the number of triangles.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of the vertices.
// Returns the zero Rect for a mesh with no vertices.
func (m Mesh) Bounds() Rect {
	if len(m.Vertices) == 0 {
		return Rect{}
	}
	bbox := NewRect(m.Vertices[0], m.Vertices[0])
	for _, p := range m.Vertices[1:] {
		bbox = bbox.Union(NewRect(p, p))
	}
	return bbox
}

// Validate checks structural integrity: the index count must be a
// multiple of three and every index must reference an existing vertex.
func (m Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("ribbon: index count %d is not a multiple of 3", len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("ribbon: index %d at position %d out of range (have %d vertices)", idx, i, n)
		}
	}
	return nil
}

// Append concatenates frag onto m in place, rebasing frag's indices by
// the vertex count of m before the append. Vertex order within each
// operand is preserved, so appending fragments in order yields the same
// mesh regardless of how the fragments were produced.
func (m *Mesh) Append(frag Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, frag.Vertices...)
	for _, idx := range frag.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Merge returns a new mesh containing a's triangles followed by b's,
// with b's indices rebased past a's vertices. Neither input is modified.
func Merge(a, b Mesh) Mesh {
	out := Mesh{
		Vertices: make([]Point, 0, len(a.Vertices)+len(b.Vertices)),
		Indices:  make([]uint32, 0, len(a.Indices)+len(b.Indices)),
	}
	out.Append(a)
	out.Append(b)
	return out
}
