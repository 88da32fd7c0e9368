package wm

import (
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/mistwood/tilewm/internal/config"
	"github.com/mistwood/tilewm/internal/x11"
)

// Manager is the single process-wide aggregate of global mutable state:
// the monitor ring, the selected monitor, and the resources (connection,
// atoms, cursors, config) every operation needs. There is exactly one
// Manager per process; it is not safe for concurrent use — every mutating
// method must run on the single event-dispatch goroutine (see dispatch.go).
type Manager struct {
	Conn    *x11.Conn
	Atoms   *x11.Atoms
	Cursors *x11.Cursors
	Cfg     *config.Config
	Log     *slog.Logger

	Mons   *Monitor
	SelMon *Monitor

	BarHeight  int
	Running    bool
	StatusText string

	screenW, screenH int

	barGC      xproto.Gcontext
	charW      int
	fontAscent int
}

// Version is the string this manager reports in its fallback status text
// and in the -v output.
const Version = "0.1"

// TagMask is the bitmask covering every configured tag.
func (wmgr *Manager) TagMask() uint32 {
	return uint32(1)<<uint(len(wmgr.Cfg.Tags)) - 1
}

// New constructs a Manager bound to an open connection and resolved
// resources. Call Setup, Scan and then Run to bring the window manager up.
func New(conn *x11.Conn, atoms *x11.Atoms, cursors *x11.Cursors, cfg *config.Config, log *slog.Logger) *Manager {
	return &Manager{
		Conn:    conn,
		Atoms:   atoms,
		Cursors: cursors,
		Cfg:     cfg,
		Log:     log,
	}
}

// createMon allocates a Monitor with the compiled-in layout/tag defaults.
func (wmgr *Manager) createMon() *Monitor {
	m := &Monitor{
		MFact:   wmgr.Cfg.MFact,
		ShowBar: wmgr.Cfg.ShowBar,
		TopBar:  wmgr.Cfg.TopBar,
	}
	m.TagSet[0] = 1
	m.TagSet[1] = 1
	m.Lt[0] = &wmgr.Cfg.Layouts[0]
	if len(wmgr.Cfg.Layouts) > 1 {
		m.Lt[1] = &wmgr.Cfg.Layouts[1]
	} else {
		m.Lt[1] = &wmgr.Cfg.Layouts[0]
	}
	m.LtSymbol = m.Lt[0].Symbol
	return m
}

// attach prepends c to its monitor's client order list.
func attach(c *Client) {
	c.Next = c.Mon.Clients
	c.Mon.Clients = c
}

// detach removes c from its monitor's client order list.
func detach(c *Client) {
	pp := &c.Mon.Clients
	for *pp != nil && *pp != c {
		pp = &(*pp).Next
	}
	if *pp == c {
		*pp = c.Next
	}
	c.Next = nil
}

// attachStack prepends c to its monitor's focus stack.
func attachStack(c *Client) {
	c.SNext = c.Mon.Stack
	c.Mon.Stack = c
}

// detachStack removes c from its monitor's focus stack. If c was the
// monitor's selected client, the next visible client in the stack (if any)
// becomes selected .
func detachStack(c *Client) {
	pp := &c.Mon.Stack
	for *pp != nil && *pp != c {
		pp = &(*pp).SNext
	}
	if *pp == c {
		*pp = c.SNext
	}
	c.SNext = nil

	if c == c.Mon.Sel {
		t := c.Mon.Stack
		for t != nil && !t.IsVisible() {
			t = t.SNext
		}
		c.Mon.Sel = t
	}
}

// wintoclient finds the managed client owning win, across every monitor.
func (wmgr *Manager) wintoclient(win xproto.Window) *Client {
	for m := wmgr.Mons; m != nil; m = m.Next {
		for c := m.Clients; c != nil; c = c.Next {
			if c.Win == win {
				return c
			}
		}
	}
	return nil
}

// dirtomon returns the monitor dir steps around the ring from SelMon.
func (wmgr *Manager) dirtomon(dir int) *Monitor {
	if wmgr.SelMon == nil {
		return nil
	}
	if dir > 0 {
		if wmgr.SelMon.Next != nil {
			return wmgr.SelMon.Next
		}
		return wmgr.Mons
	}
	if wmgr.SelMon == wmgr.Mons {
		last := wmgr.Mons
		for last.Next != nil {
			last = last.Next
		}
		return last
	}
	m := wmgr.Mons
	for m.Next != wmgr.SelMon {
		m = m.Next
	}
	return m
}

// arrange re-lays-out one monitor, or every monitor when m is nil. It hides
// invisible clients, shows visible ones, reasserts focus, runs the
// monitor's layout function, and restacks .
func (wmgr *Manager) arrange(m *Monitor) {
	if m != nil {
		wmgr.showhide(m.Stack)
	} else {
		for mm := wmgr.Mons; mm != nil; mm = mm.Next {
			wmgr.showhide(mm.Stack)
		}
	}

	wmgr.focus(nil)

	if m != nil {
		wmgr.arrangemon(m)
	} else {
		for mm := wmgr.Mons; mm != nil; mm = mm.Next {
			wmgr.arrangemon(mm)
		}
	}
}

func (wmgr *Manager) arrangemon(m *Monitor) {
	m.LtSymbol = m.Lt[m.SelLt].Symbol
	switch m.Layout().Kind {
	case config.LayoutTile:
		wmgr.tile(m)
	case config.LayoutMonocle:
		wmgr.monocle(m)
	case config.LayoutFloating:
		// no arrange function: clients keep their floating geometry.
	}
	wmgr.restack(m)
}

// showhide recursively shows the visible part of the stack top-down, then
// hides the invisible part bottom-up: hides must happen after descending
// so a lower, about-to-be-hidden client doesn't flash above a still-
// visible one.
func (wmgr *Manager) showhide(c *Client) {
	if c == nil {
		return
	}
	if c.IsVisible() {
		wmgr.moveResizeWindow(c.Win, c.X, c.Y, c.W, c.H, c.BW)
		if (c.Mon.Layout().Kind == config.LayoutFloating || c.IsFloating) && !c.IsFixed {
			wmgr.resize(c, c.X, c.Y, c.W, c.H, false)
		}
		wmgr.showhide(c.SNext)
	} else {
		wmgr.showhide(c.SNext)
		wmgr.moveOffscreen(c)
	}
}

func (wmgr *Manager) moveOffscreen(c *Client) {
	wmgr.moveResizeWindow(c.Win, c.X+2*wmgr.screenW, c.Y, c.W, c.H, c.BW)
}

func (wmgr *Manager) moveResizeWindow(win xproto.Window, x, y, w, h, bw int) {
	xproto.ConfigureWindow(
		wmgr.Conn.XU.Conn(), win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(x), uint32(y), uint32(max0(w)), uint32(max0(h)), uint32(bw)},
	)
}

func max0(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
