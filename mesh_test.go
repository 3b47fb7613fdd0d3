package ribbon

import (
	"reflect"
	"testing"
)

func quadMesh(origin Point) Mesh {
	return Mesh{
		Vertices: []Point{
			origin,
			origin.Add(Pt(1, 0)),
			origin.Add(Pt(0, 1)),
			origin.Add(Pt(1, 1)),
		},
		Indices: []uint32{0, 2, 3, 0, 3, 1},
	}
}

func TestMesh_Empty(t *testing.T) {
	var m Mesh
	if !m.IsEmpty() {
		t.Error("zero mesh not empty")
	}
	if m.TriangleCount() != 0 {
		t.Errorf("TriangleCount = %d, want 0", m.TriangleCount())
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestMesh_Merge(t *testing.T) {
	a := quadMesh(Pt(0, 0))
	b := quadMesh(Pt(5, 5))

	m := Merge(a, b)
	if got := len(m.Vertices); got != 8 {
		t.Fatalf("vertex count = %d, want 8", got)
	}
	if got := m.TriangleCount(); got != 4 {
		t.Fatalf("TriangleCount = %d, want 4", got)
	}
	// b's indices are rebased past a's 4 vertices.
	wantIndices := []uint32{0, 2, 3, 0, 3, 1, 4, 6, 7, 4, 7, 5}
	if !reflect.DeepEqual(m.Indices, wantIndices) {
		t.Errorf("Indices = %v, want %v", m.Indices, wantIndices)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMesh_MergeWithEmpty(t *testing.T) {
	a := quadMesh(Pt(1, 2))

	left := Merge(Mesh{}, a)
	right := Merge(a, Mesh{})
	if !reflect.DeepEqual(left.Vertices, a.Vertices) || !reflect.DeepEqual(left.Indices, a.Indices) {
		t.Errorf("Merge(empty, a) = %+v, want %+v", left, a)
	}
	if !reflect.DeepEqual(right.Vertices, a.Vertices) || !reflect.DeepEqual(right.Indices, a.Indices) {
		t.Errorf("Merge(a, empty) = %+v, want %+v", right, a)
	}
}

func TestMesh_MergeAssociative(t *testing.T) {
	a := quadMesh(Pt(0, 0))
	b := quadMesh(Pt(2, 0))
	c := quadMesh(Pt(4, 0))

	left := Merge(Merge(a, b), c)
	right := Merge(a, Merge(b, c))
	if !reflect.DeepEqual(left, right) {
		t.Errorf("Merge not associative:\n left = %+v\nright = %+v", left, right)
	}
}

func TestMesh_MergeDoesNotAliasInputs(t *testing.T) {
	a := quadMesh(Pt(0, 0))
	b := quadMesh(Pt(5, 5))
	m := Merge(a, b)

	m.Vertices[0] = Pt(99, 99)
	m.Indices[0] = 99
	if a.Vertices[0] == Pt(99, 99) || a.Indices[0] == 99 {
		t.Error("Merge result aliases input slices")
	}
}

func TestMesh_Append(t *testing.T) {
	var m Mesh
	m.Append(quadMesh(Pt(0, 0)))
	m.Append(quadMesh(Pt(3, 3)))

	want := Merge(quadMesh(Pt(0, 0)), quadMesh(Pt(3, 3)))
	if !reflect.DeepEqual(m.Vertices, want.Vertices) || !reflect.DeepEqual(m.Indices, want.Indices) {
		t.Errorf("Append result differs from Merge:\n  got = %+v\n want = %+v", m, want)
	}
}

func TestMesh_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mesh    Mesh
		wantErr bool
	}{
		{"valid quad", quadMesh(Pt(0, 0)), false},
		{
			"index count not multiple of 3",
			Mesh{Vertices: []Point{{}, {}, {}}, Indices: []uint32{0, 1}},
			true,
		},
		{
			"index out of range",
			Mesh{Vertices: []Point{{}, {}, {}}, Indices: []uint32{0, 1, 3}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestMesh_Bounds(t *testing.T) {
	m := quadMesh(Pt(2, 3))
	bbox := m.Bounds()
	if !pointsEqual(bbox.Min, Pt(2, 3), epsilon) || !pointsEqual(bbox.Max, Pt(3, 4), epsilon) {
		t.Errorf("Bounds() = %v", bbox)
	}
	if got := (Mesh{}).Bounds(); got != (Rect{}) {
		t.Errorf("empty Bounds() = %v, want zero", got)
	}
}
