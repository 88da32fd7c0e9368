package wm

import "testing"

func TestAppendAndRemoveMon(t *testing.T) {
	wmgr := &Manager{}
	m0 := &Monitor{Num: 0}
	m1 := &Monitor{Num: 1}
	m2 := &Monitor{Num: 2}

	wmgr.appendMon(m0)
	wmgr.appendMon(m1)
	wmgr.appendMon(m2)

	mons := wmgr.monitorSlice()
	if len(mons) != 3 || mons[0] != m0 || mons[1] != m1 || mons[2] != m2 {
		t.Fatalf("appendMon should keep insertion order, got %v", mons)
	}

	wmgr.removeMon(m1)
	mons = wmgr.monitorSlice()
	if len(mons) != 2 || mons[0] != m0 || mons[1] != m2 {
		t.Fatalf("removeMon should splice out the middle monitor, got %v", mons)
	}

	wmgr.removeMon(m0)
	if wmgr.Mons != m2 {
		t.Fatalf("removing the head should advance Mons")
	}
}

func TestContainsGeomDeduplicates(t *testing.T) {
	heads := []headGeom{{0, 0, 1920, 1080}}
	if !containsGeom(heads, headGeom{0, 0, 1920, 1080}) {
		t.Fatalf("identical geometry should be treated as a duplicate")
	}
	if containsGeom(heads, headGeom{1920, 0, 1280, 1024}) {
		t.Fatalf("distinct geometry should not match")
	}
}

func TestMonAt(t *testing.T) {
	wmgr := &Manager{}
	left := &Monitor{WX: 0, WY: 0, WW: 1920, WH: 1080}
	right := &Monitor{WX: 1920, WY: 0, WW: 1280, WH: 1024}
	left.Next = right
	wmgr.Mons = left
	wmgr.SelMon = left

	if got := wmgr.monAt(100, 100); got != left {
		t.Fatalf("point on the left head resolved to the wrong monitor")
	}
	if got := wmgr.monAt(2000, 100); got != right {
		t.Fatalf("point on the right head resolved to the wrong monitor")
	}
	// Off every head: falls back to the selected monitor.
	if got := wmgr.monAt(5000, 5000); got != left {
		t.Fatalf("off-screen point should fall back to SelMon")
	}
}
