package wm

import (
	"testing"

	"github.com/mistwood/tilewm/internal/config"
)

func newBarTestManager() (*Manager, *Monitor) {
	m := &Monitor{
		MX: 0, MY: 0, MW: 1920, MH: 1080,
		WX: 0, WY: 22, WW: 1920, WH: 1058,
		TagSet:   [2]uint32{1, 1},
		ShowBar:  true,
		TopBar:   true,
		LtSymbol: "[]=",
	}
	wmgr := &Manager{
		Cfg:        config.Builtin(),
		BarHeight:  22,
		charW:      6,
		fontAscent: 11,
		Mons:       m,
		SelMon:     m,
		StatusText: "tilewm-" + Version,
	}
	return wmgr, m
}

func TestBarCellsLayout(t *testing.T) {
	wmgr, m := newBarTestManager()
	cells := wmgr.barCells(m)

	// Nine tag cells, the layout symbol, the status text (selected monitor),
	// and the title filler.
	if len(cells) != 9+3 {
		t.Fatalf("expected 12 cells, got %d", len(cells))
	}
	for i := 0; i < 9; i++ {
		if cells[i].area != config.ClickTagBar || cells[i].index != i {
			t.Fatalf("cell %d: expected tag cell with index %d, got %+v", i, i, cells[i])
		}
		if cells[i].x1 <= cells[i].x0 {
			t.Fatalf("cell %d has non-positive width", i)
		}
		if i > 0 && cells[i].x0 != cells[i-1].x1 {
			t.Fatalf("cell %d does not abut cell %d", i, i-1)
		}
	}
	if cells[9].area != config.ClickLtSymbol || cells[9].text != "[]=" {
		t.Fatalf("expected layout symbol cell after the tags, got %+v", cells[9])
	}

	status := cells[10]
	if status.area != config.ClickStatusText {
		t.Fatalf("expected status cell on the selected monitor, got %+v", status)
	}
	if status.x1 != m.MW {
		t.Fatalf("status must be right-aligned: x1=%d, want %d", status.x1, m.MW)
	}

	title := cells[11]
	if title.area != config.ClickWinTitle {
		t.Fatalf("expected title cell last, got %+v", title)
	}
	if title.x0 != cells[9].x1 || title.x1 != status.x0 {
		t.Fatalf("title cell must fill the gap between layout symbol and status: [%d,%d)", title.x0, title.x1)
	}
}

func TestBarCellsOmitStatusOnUnselectedMonitor(t *testing.T) {
	wmgr, m := newBarTestManager()
	other := &Monitor{
		MX: 1920, MW: 1280, MH: 1024,
		TagSet:   [2]uint32{1, 1},
		LtSymbol: "[]=",
	}
	m.Next = other

	for _, cell := range wmgr.barCells(other) {
		if cell.area == config.ClickStatusText {
			t.Fatalf("status text cell must appear only on the selected monitor")
		}
	}
	cells := wmgr.barCells(other)
	if last := cells[len(cells)-1]; last.area != config.ClickWinTitle || last.x1 != other.MW {
		t.Fatalf("title cell should run to the bar's right edge on unselected monitors, got %+v", last)
	}
}

func TestBarCellsTagFlags(t *testing.T) {
	wmgr, m := newBarTestManager()
	c1 := &Client{Mon: m, Tags: 0b001}
	c2 := &Client{Mon: m, Tags: 0b100, IsUrgent: true}
	c1.Next = c2
	m.Clients = c1
	m.Sel = c1

	cells := wmgr.barCells(m)
	if !cells[0].occupied || !cells[0].selhere || cells[0].urgent {
		t.Fatalf("tag 1 should be occupied+selhere, not urgent: %+v", cells[0])
	}
	if cells[1].occupied {
		t.Fatalf("tag 2 should be unoccupied: %+v", cells[1])
	}
	if !cells[2].occupied || !cells[2].urgent || cells[2].selhere {
		t.Fatalf("tag 3 should be occupied+urgent, not selhere: %+v", cells[2])
	}
	if !cells[0].selected || cells[2].selected {
		t.Fatalf("only viewed tags should render selected: %+v %+v", cells[0], cells[2])
	}
}

func TestOccupiedAndUrgent(t *testing.T) {
	m := &Monitor{TagSet: [2]uint32{1, 1}}
	a := &Client{Mon: m, Tags: 0b011}
	b := &Client{Mon: m, Tags: 0b100, IsUrgent: true}
	a.Next = b
	m.Clients = a

	occ, urg := occupiedAndUrgent(m)
	if occ != 0b111 {
		t.Fatalf("occupied = %b, want 111", occ)
	}
	if urg != 0b100 {
		t.Fatalf("urgent = %b, want 100", urg)
	}
}

func TestResolveClick(t *testing.T) {
	wmgr, m := newBarTestManager()
	cells := wmgr.barCells(m)

	if got := wmgr.resolveClick(m, cells[0].x0); got != config.ClickTagBar {
		t.Fatalf("click in first tag cell resolved to %v", got)
	}
	if got := wmgr.resolveClick(m, cells[9].x0+1); got != config.ClickLtSymbol {
		t.Fatalf("click on layout symbol resolved to %v", got)
	}
	if got := wmgr.resolveClick(m, m.MW-1); got != config.ClickStatusText {
		t.Fatalf("click at right edge of selected monitor's bar resolved to %v", got)
	}
	if got := wmgr.resolveClick(m, cells[9].x1+5); got != config.ClickWinTitle {
		t.Fatalf("click in the middle gap resolved to %v", got)
	}
}

func TestBarYHiddenIsNegative(t *testing.T) {
	wmgr, m := newBarTestManager()

	if got := wmgr.barY(m); got != m.MY {
		t.Fatalf("top bar should sit at the top screen edge, got %d", got)
	}
	m.TopBar = false
	if got := wmgr.barY(m); got != m.MY+m.MH-wmgr.BarHeight {
		t.Fatalf("bottom bar should sit flush with the bottom edge, got %d", got)
	}
	m.ShowBar = false
	if got := wmgr.barY(m); got >= 0 {
		t.Fatalf("hidden bar must have negative y, got %d", got)
	}
}

func TestUpdatebarposWorkArea(t *testing.T) {
	wmgr, m := newBarTestManager()

	wmgr.updatebarpos(m)
	if m.WY != m.MY+wmgr.BarHeight || m.WH != m.MH-wmgr.BarHeight {
		t.Fatalf("top bar should shrink the work area from the top: wy=%d wh=%d", m.WY, m.WH)
	}

	m.ShowBar = false
	wmgr.updatebarpos(m)
	if m.WY != m.MY || m.WH != m.MH {
		t.Fatalf("hidden bar should restore the full work area: wy=%d wh=%d", m.WY, m.WH)
	}
}
