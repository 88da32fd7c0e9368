package geom

import "testing"

func TestBorderGrowsBothAxes(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	b := r.Border(2)
	if b.X != 10 || b.Y != 20 || b.Width != 104 || b.Height != 54 {
		t.Fatalf("Border(2) = %+v", b)
	}
}

func TestContains(t *testing.T) {
	r := Rect{X: 0, Y: 22, Width: 1920, Height: 1058}
	if !r.Contains(0, 22) {
		t.Fatalf("top-left corner should be inside")
	}
	if r.Contains(1920, 22) {
		t.Fatalf("right edge is exclusive")
	}
	if r.Contains(10, 21) {
		t.Fatalf("point above the work area should be outside")
	}
}

func TestIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 50, Width: 100, Height: 100}
	if got := Intersection(a, b); got != 50*50 {
		t.Fatalf("Intersection = %d, want %d", got, 50*50)
	}
	c := Rect{X: 200, Y: 0, Width: 10, Height: 10}
	if got := Intersection(a, c); got != 0 {
		t.Fatalf("disjoint rects should intersect in 0 pixels, got %d", got)
	}
}
