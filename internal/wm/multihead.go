package wm

import (
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/mistwood/tilewm/internal/geom"
)

type headGeom struct {
	x, y, w, h int
}

// queryHeads walks RandR's screen resources and returns every CRTC-backed
// output's rectangle, deduplicated by exact geometry equality, preserving
// discovery order.
func (wmgr *Manager) queryHeads() []headGeom {
	conn := wmgr.Conn.XU.Conn()
	if err := randr.Init(conn); err != nil {
		return wmgr.fallbackHead()
	}
	resources, err := randr.GetScreenResources(conn, wmgr.Conn.Root).Reply()
	if err != nil || resources == nil {
		return wmgr.fallbackHead()
	}

	var heads []headGeom
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil || info == nil || len(info.Outputs) == 0 {
			continue
		}
		if info.Width == 0 || info.Height == 0 {
			continue
		}
		g := headGeom{x: int(info.X), y: int(info.Y), w: int(info.Width), h: int(info.Height)}
		if !containsGeom(heads, g) {
			heads = append(heads, g)
		}
	}
	if len(heads) == 0 {
		return wmgr.fallbackHead()
	}
	return heads
}

func (wmgr *Manager) fallbackHead() []headGeom {
	w, h := wmgr.Conn.ScreenSize()
	return []headGeom{{x: 0, y: 0, w: w, h: h}}
}

func containsGeom(heads []headGeom, g headGeom) bool {
	for _, h := range heads {
		if h == g {
			return true
		}
	}
	return false
}

// updategeom reconciles the monitor ring against the current RandR output
// set: existing monitors are resized in place, new heads append new
// monitors, and monitors whose heads disappeared have their clients
// migrated onto the first remaining monitor before being dropped.
func (wmgr *Manager) updategeom() bool {
	heads := wmgr.queryHeads()
	dirty := false

	existing := wmgr.monitorSlice()
	n, nn := len(existing), len(heads)

	if n <= nn {
		for i := n; i < nn; i++ {
			m := wmgr.createMon()
			m.Num = i
			wmgr.appendMon(m)
		}
		existing = wmgr.monitorSlice()
	}
	for i := 0; i < nn; i++ {
		m := existing[i]
		g := heads[i]
		if i >= n || m.MX != g.x || m.MY != g.y || m.MW != g.w || m.MH != g.h {
			dirty = true
			m.MX, m.MY, m.MW, m.MH = g.x, g.y, g.w, g.h
			wmgr.updatebarpos(m)
		}
	}
	if n > nn {
		for i := nn; i < n; i++ {
			m := existing[i]
			for c := m.Clients; c != nil; {
				next := c.Next
				detach(c)
				detachStack(c)
				c.Mon = wmgr.Mons
				attach(c)
				attachStack(c)
				c = next
			}
			if wmgr.SelMon == m {
				wmgr.SelMon = wmgr.Mons
			}
			if m.BarWin != 0 {
				xevent.Detach(wmgr.Conn.XU, m.BarWin)
				xproto.DestroyWindow(wmgr.Conn.XU.Conn(), m.BarWin)
			}
			wmgr.removeMon(m)
			dirty = true
		}
	}

	if dirty {
		wmgr.SelMon = wmgr.wintomon(wmgr.Conn.Root)
	}
	return dirty
}

func (wmgr *Manager) monitorSlice() []*Monitor {
	var out []*Monitor
	for m := wmgr.Mons; m != nil; m = m.Next {
		out = append(out, m)
	}
	return out
}

func (wmgr *Manager) appendMon(m *Monitor) {
	if wmgr.Mons == nil {
		wmgr.Mons = m
		return
	}
	last := wmgr.Mons
	for last.Next != nil {
		last = last.Next
	}
	last.Next = m
}

func (wmgr *Manager) removeMon(target *Monitor) {
	if wmgr.Mons == target {
		wmgr.Mons = target.Next
		return
	}
	for m := wmgr.Mons; m != nil; m = m.Next {
		if m.Next == target {
			m.Next = target.Next
			return
		}
	}
}

// wintomon resolves a window to a monitor: root maps to the monitor under
// the pointer, bar windows and clients to their owners, anything else to
// SelMon.
func (wmgr *Manager) wintomon(win xproto.Window) *Monitor {
	if win == wmgr.Conn.Root {
		return wmgr.ptrtomon()
	}
	if m := wmgr.barMonitorFor(win); m != nil {
		return m
	}
	if c := wmgr.wintoclient(win); c != nil {
		return c.Mon
	}
	return wmgr.SelMon
}

// ptrtomon returns the monitor whose work area contains the pointer.
// Falls back to SelMon on query failure.
func (wmgr *Manager) ptrtomon() *Monitor {
	reply, err := xproto.QueryPointer(wmgr.Conn.XU.Conn(), wmgr.Conn.Root).Reply()
	if err != nil || reply == nil {
		return wmgr.SelMon
	}
	return wmgr.monAt(int(reply.RootX), int(reply.RootY))
}

// recttomon returns the monitor whose work area overlaps r the most,
// falling back to SelMon when nothing overlaps.
func (wmgr *Manager) recttomon(r geom.Rect) *Monitor {
	best := wmgr.SelMon
	area := 0
	for m := wmgr.Mons; m != nil; m = m.Next {
		work := geom.Rect{X: m.WX, Y: m.WY, Width: m.WW, Height: m.WH}
		if a := geom.Intersection(r, work); a > area {
			area, best = a, m
		}
	}
	return best
}

func (wmgr *Manager) monAt(x, y int) *Monitor {
	for m := wmgr.Mons; m != nil; m = m.Next {
		r := geom.Rect{X: m.WX, Y: m.WY, Width: m.WW, Height: m.WH}
		if r.Contains(x, y) {
			return m
		}
	}
	return wmgr.SelMon
}
