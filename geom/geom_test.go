package geom

import "testing"

func TestRectBoundOrdersCorners(t *testing.T) {
	r := NewRect(Pt(10, -2), Pt(-4, 6))
	if r.Min() != Pt(-4, -2) || r.Max() != Pt(10, 6) {
		t.Fatalf("unexpected corners: min=%v max=%v", r.Min(), r.Max())
	}
	if r.Width() != 14 || r.Height() != 8 {
		t.Fatalf("unexpected size %vx%v", r.Width(), r.Height())
	}
	if r.Center() != Pt(3, 2) {
		t.Fatalf("unexpected center %v", r.Center())
	}
}

func TestEmptyRect(t *testing.T) {
	var r AlignedRectangle2D
	if !r.IsEmpty() || !r.IsDegenerate() {
		t.Fatalf("zero value should be empty and degenerate")
	}
	if !r.Diagonal().IsZero() {
		t.Fatalf("empty diagonal should be zero, got %v", r.Diagonal())
	}
	r.Bound(Pt(1, 1))
	if r.IsEmpty() {
		t.Fatalf("bound point should make rect non-empty")
	}
	if !r.IsDegenerate() {
		t.Fatalf("single point rect has zero extent")
	}
}

func TestDegenerateAxis(t *testing.T) {
	tests := []struct {
		name string
		r    AlignedRectangle2D
		want bool
	}{
		{"flat", NewRect(Pt(0, 0), Pt(5, 0)), true},
		{"thin", NewRect(Pt(0, 0), Pt(0, 5)), true},
		{"area", NewRect(Pt(0, 0), Pt(5, 5)), false},
	}
	for _, tt := range tests {
		if got := tt.r.IsDegenerate(); got != tt.want {
			t.Errorf("%s: IsDegenerate() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExpand(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(4, 2)).Expand(Vec(1, 1))
	if r.Min() != Pt(-1, -1) || r.Max() != Pt(5, 3) {
		t.Fatalf("unexpected expanded rect %v %v", r.Min(), r.Max())
	}
}

func TestVectorOps(t *testing.T) {
	v := Pt(3, 4).Sub(Pt(0, 0))
	if v.Length() != 5 {
		t.Fatalf("length = %v, want 5", v.Length())
	}
	if Average(Pt(0, 0), Pt(100, 0)) != Pt(50, 0) {
		t.Fatalf("unexpected midpoint")
	}
}
