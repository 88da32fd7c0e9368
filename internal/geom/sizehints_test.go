package geom

import "testing"

func TestApply_ClampsBelowMinimum(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	hints := SizeHints{MinW: 100, MinH: 80}

	_, _, w, h, changed := Apply(10, 10, 1, 1, 0, hints, true, bounds, 0)
	if w != 100 || h != 80 {
		t.Fatalf("expected 100x80, got %dx%d", w, h)
	}
	if !changed {
		t.Fatalf("expected changed=true")
	}
}

func TestApply_IncrementRounding(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	// basew=0, incw=10: w=107 should round down to 100 (107 - 107%10 = 100).
	hints := SizeHints{IncW: 10, IncH: 10, MinW: 1, MinH: 1}

	_, _, w, h, _ := Apply(0, 0, 107, 83, 0, hints, true, bounds, 0)
	if w != 100 {
		t.Fatalf("expected w=100, got %d", w)
	}
	if h != 80 {
		t.Fatalf("expected h=80, got %d", h)
	}
}

func TestApply_MaxAspectShrinksWidth(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	// maxa=1.0 (square), w=200 h=100 -> aspect 2.0 exceeds 1.0, so w = h*maxa+0.5 = 100.
	hints := SizeHints{MinAspect: 0.5, MaxAspect: 1.0, MinW: 1, MinH: 1}

	_, _, w, h, _ := Apply(0, 0, 200, 100, 0, hints, true, bounds, 0)
	if w != 100 {
		t.Fatalf("expected w clamped to 100 by max aspect, got %d", w)
	}
	if h != 100 {
		t.Fatalf("expected h unchanged at 100, got %d", h)
	}
}

func TestApply_SkipsHintsWhenNotFloatingOrResizeHints(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	hints := SizeHints{MinW: 500, MinH: 500}

	_, _, w, h, _ := Apply(0, 0, 50, 50, 0, hints, false, bounds, 0)
	if w != 50 || h != 50 {
		t.Fatalf("expected tiled client to ignore min hints, got %dx%d", w, h)
	}
}

func TestApply_RepositionsOffRightEdge(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	hints := SizeHints{MinW: 1, MinH: 1}

	x, _, w, _, changed := Apply(1200, 10, 200, 100, 2, hints, true, bounds, 0)
	// x >= bounds.X+bounds.Width (1200 >= 1000) -> x = 1000 - (200+4) = 796
	if x != 796 {
		t.Fatalf("expected x=796, got %d", x)
	}
	if w != 200 {
		t.Fatalf("expected w unchanged, got %d", w)
	}
	if !changed {
		t.Fatalf("expected changed=true")
	}
}

func TestApply_Idempotent(t *testing.T) {
	bounds := Rect{X: 0, Y: 22, Width: 1920, Height: 1058}
	hints := SizeHints{
		BaseW: 10, BaseH: 10, IncW: 7, IncH: 9,
		MinW: 50, MinH: 40, MaxW: 1000, MaxH: 900,
	}

	x, y, w, h, _ := Apply(1900, 30, 543, 481, 2, hints, true, bounds, 22)
	x2, y2, w2, h2, changed := Apply(x, y, w, h, 2, hints, true, bounds, 22)
	if changed {
		t.Fatalf("second Apply with its own output must report unchanged")
	}
	if x2 != x || y2 != y || w2 != w || h2 != h {
		t.Fatalf("second Apply moved the geometry: (%d,%d,%d,%d) -> (%d,%d,%d,%d)", x, y, w, h, x2, y2, w2, h2)
	}
}

func TestIsFixed(t *testing.T) {
	fixed := SizeHints{MinW: 300, MaxW: 300, MinH: 200, MaxH: 200}
	if !fixed.IsFixed() {
		t.Fatalf("expected fixed size hints to report IsFixed")
	}
	notFixed := SizeHints{MinW: 100, MaxW: 300, MinH: 100, MaxH: 300}
	if notFixed.IsFixed() {
		t.Fatalf("expected non-equal min/max to not be fixed")
	}
}
