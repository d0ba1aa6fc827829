package core

import "testing"

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", NewRect(5, 5, 10, 10), true},
		{"contained", NewRect(2, 2, 4, 4), true},
		{"touching right edge", NewRect(10, 0, 5, 5), false},
		{"touching bottom edge", NewRect(0, 10, 5, 5), false},
		{"disjoint", NewRect(20, 20, 5, 5), false},
	}

	for _, tc := range cases {
		if got := a.Intersects(tc.b); got != tc.want {
			t.Errorf("%s: Intersects = %v, want %v", tc.name, got, tc.want)
		}
		// Intersection is symmetric.
		if got := tc.b.Intersects(a); got != tc.want {
			t.Errorf("%s: reverse Intersects = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(15, 15) {
		t.Error("bottom-right corner is exclusive")
	}
	if r.Contains(9, 12) {
		t.Error("point left of rect should be outside")
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 20)

	if r.Right() != 12 {
		t.Errorf("Right = %f, want 12", r.Right())
	}
	if r.Bottom() != 23 {
		t.Errorf("Bottom = %f, want 23", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %d", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1, 0, 10) = %d", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11, 0, 10) = %d", got)
	}

	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %f", got)
	}
	if got := ClampF(2.5, 0, 1); got != 1 {
		t.Errorf("ClampF(2.5, 0, 1) = %f", got)
	}
}
