package wm

import (
	"testing"

	"github.com/mistwood/tilewm/internal/config"
)

func newTestManager(ntags int) *Manager {
	tags := make([]string, ntags)
	for i := range tags {
		tags[i] = "t"
	}
	return &Manager{Cfg: &config.Config{Tags: tags}}
}

func TestTagMask(t *testing.T) {
	wmgr := newTestManager(3)
	if got := wmgr.TagMask(); got != 0b111 {
		t.Fatalf("TagMask() = %b, want 0b111", got)
	}
}

func TestAttachDetachOrder(t *testing.T) {
	m := &Monitor{}
	a := &Client{Name: "a", Mon: m}
	b := &Client{Name: "b", Mon: m}
	c := &Client{Name: "c", Mon: m}

	attach(a)
	attach(b)
	attach(c)

	// attach prepends, so the order is the reverse of attach calls.
	got := []string{}
	for cl := m.Clients; cl != nil; cl = cl.Next {
		got = append(got, cl.Name)
	}
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("client order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("client order = %v, want %v", got, want)
		}
	}

	detach(b)
	got = got[:0]
	for cl := m.Clients; cl != nil; cl = cl.Next {
		got = append(got, cl.Name)
	}
	want = []string{"c", "a"}
	if len(got) != 2 || got[0] != "c" || got[1] != "a" {
		t.Fatalf("after detach(b): order = %v, want %v", got, want)
	}
	if b.Next != nil {
		t.Fatalf("detach should clear the detached client's Next pointer")
	}
}

func TestAttachStackDetachStackReassignsSel(t *testing.T) {
	m := &Monitor{TagSet: [2]uint32{1, 1}}
	a := &Client{Name: "a", Mon: m, Tags: 1}
	b := &Client{Name: "b", Mon: m, Tags: 1}

	attachStack(a)
	attachStack(b)
	m.Sel = b

	detachStack(b)
	if m.Sel != a {
		t.Fatalf("detaching the selected client should fall back to the next visible client in the stack, got %v", m.Sel)
	}
	if b.SNext != nil {
		t.Fatalf("detachStack should clear the detached client's SNext pointer")
	}
}

func TestDetachStackSkipsInvisibleClients(t *testing.T) {
	m := &Monitor{TagSet: [2]uint32{1, 1}}
	hidden := &Client{Name: "hidden", Mon: m, Tags: 2}
	visible := &Client{Name: "visible", Mon: m, Tags: 1}
	sel := &Client{Name: "sel", Mon: m, Tags: 1}

	attachStack(visible)
	attachStack(hidden)
	attachStack(sel)
	m.Sel = sel

	detachStack(sel)
	if m.Sel != visible {
		t.Fatalf("detachStack should skip invisible stack entries, got %v", m.Sel)
	}
}

func TestDirtomonWrapsAround(t *testing.T) {
	wmgr := &Manager{}
	m1 := &Monitor{Num: 1}
	m2 := &Monitor{Num: 2}
	m3 := &Monitor{Num: 3}
	m1.Next, m2.Next = m2, m3
	wmgr.Mons = m1
	wmgr.SelMon = m3

	if got := wmgr.dirtomon(1); got != m1 {
		t.Fatalf("dirtomon(1) from last monitor should wrap to the first, got %v", got.Num)
	}
	wmgr.SelMon = m1
	if got := wmgr.dirtomon(-1); got != m3 {
		t.Fatalf("dirtomon(-1) from first monitor should wrap to the last, got %v", got.Num)
	}
	wmgr.SelMon = m2
	if got := wmgr.dirtomon(1); got != m3 {
		t.Fatalf("dirtomon(1) from m2 should land on m3, got %v", got.Num)
	}
}

func TestNextTiledSkipsFloatingAndHidden(t *testing.T) {
	m := &Monitor{TagSet: [2]uint32{1, 1}}
	floating := &Client{Mon: m, Tags: 1, IsFloating: true}
	hidden := &Client{Mon: m, Tags: 2}
	tiled := &Client{Mon: m, Tags: 1}
	floating.Next = hidden
	hidden.Next = tiled

	if got := NextTiled(floating); got != tiled {
		t.Fatalf("NextTiled should skip floating and hidden clients and land on the first tiled, visible one")
	}
}

func TestClientIsVisible(t *testing.T) {
	m := &Monitor{TagSet: [2]uint32{0b01, 0b10}, SelTags: 1}
	c := &Client{Mon: m, Tags: 0b10}
	if !c.IsVisible() {
		t.Fatalf("client tagged for the currently viewed tagset should be visible")
	}
	c.Tags = 0b01
	if c.IsVisible() {
		t.Fatalf("client tagged outside the currently viewed tagset should not be visible")
	}
}
