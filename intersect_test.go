package ribbon

import "testing"

func TestIntersect(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Line
		wantKind   IntersectionKind
		wantPoint  Point
		wantProper bool
	}{
		{
			name:       "proper crossing",
			a:          NewLine(Pt(0, 0), Pt(2, 2)),
			b:          NewLine(Pt(0, 2), Pt(2, 0)),
			wantKind:   IntersectionPoint,
			wantPoint:  Pt(1, 1),
			wantProper: true,
		},
		{
			name:       "axis-aligned crossing",
			a:          NewLine(Pt(-1, 0), Pt(1, 0)),
			b:          NewLine(Pt(0, -1), Pt(0, 1)),
			wantKind:   IntersectionPoint,
			wantPoint:  Pt(0, 0),
			wantProper: true,
		},
		{
			name:       "endpoint touch is improper",
			a:          NewLine(Pt(0, 0), Pt(1, 0)),
			b:          NewLine(Pt(1, 0), Pt(1, 1)),
			wantKind:   IntersectionPoint,
			wantPoint:  Pt(1, 0),
			wantProper: false,
		},
		{
			name:       "T junction is improper",
			a:          NewLine(Pt(0, 0), Pt(2, 0)),
			b:          NewLine(Pt(1, 0), Pt(1, 1)),
			wantKind:   IntersectionPoint,
			wantPoint:  Pt(1, 0),
			wantProper: false,
		},
		{
			name:     "segments too short to meet",
			a:        NewLine(Pt(0, 0), Pt(1, 0)),
			b:        NewLine(Pt(2, -1), Pt(2, 1)),
			wantKind: IntersectionNone,
		},
		{
			name:     "parallel",
			a:        NewLine(Pt(0, 0), Pt(1, 0)),
			b:        NewLine(Pt(0, 1), Pt(1, 1)),
			wantKind: IntersectionNone,
		},
		{
			name:     "collinear overlapping",
			a:        NewLine(Pt(0, 0), Pt(2, 0)),
			b:        NewLine(Pt(1, 0), Pt(3, 0)),
			wantKind: IntersectionCollinear,
		},
		{
			name:     "collinear touching at endpoint",
			a:        NewLine(Pt(0, 0), Pt(1, 0)),
			b:        NewLine(Pt(1, 0), Pt(2, 0)),
			wantKind: IntersectionCollinear,
		},
		{
			name:     "collinear disjoint",
			a:        NewLine(Pt(0, 0), Pt(1, 0)),
			b:        NewLine(Pt(2, 0), Pt(3, 0)),
			wantKind: IntersectionNone,
		},
		{
			name:     "collinear contained",
			a:        NewLine(Pt(0, 0), Pt(4, 0)),
			b:        NewLine(Pt(1, 0), Pt(2, 0)),
			wantKind: IntersectionCollinear,
		},
		{
			name:     "degenerate first segment",
			a:        NewLine(Pt(1, 1), Pt(1, 1)),
			b:        NewLine(Pt(0, 0), Pt(2, 2)),
			wantKind: IntersectionNone,
		},
		{
			name:     "degenerate second segment",
			a:        NewLine(Pt(0, 0), Pt(2, 2)),
			b:        NewLine(Pt(1, 1), Pt(1, 1)),
			wantKind: IntersectionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Intersect(tt.a, tt.b)
			if got.Kind != tt.wantKind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if tt.wantKind != IntersectionPoint {
				return
			}
			if !pointsEqual(got.Point, tt.wantPoint, epsilon) {
				t.Errorf("Point = %v, want %v", got.Point, tt.wantPoint)
			}
			if got.Proper != tt.wantProper {
				t.Errorf("Proper = %v, want %v", got.Proper, tt.wantProper)
			}
		})
	}
}

func TestIntersect_Symmetric(t *testing.T) {
	a := NewLine(Pt(0, 0), Pt(3, 1))
	b := NewLine(Pt(0, 1), Pt(3, 0))

	ab := Intersect(a, b)
	ba := Intersect(b, a)
	if ab.Kind != ba.Kind {
		t.Fatalf("Kind differs: %v vs %v", ab.Kind, ba.Kind)
	}
	if !pointsEqual(ab.Point, ba.Point, epsilon) {
		t.Errorf("Point differs: %v vs %v", ab.Point, ba.Point)
	}
}
