package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/mistwood/tilewm/internal/x11"
)

// manage brings a newly mapped (or already-existing, at scan time)
// top-level window under management: it builds a Client, inherits
// tags/monitor from a transient parent if one is managed, otherwise runs
// the rule matcher; applies the fullscreen-pinning heuristic and monitor
// clamping; selects the event mask this manager needs; and finally maps
// and arranges it.
func (wmgr *Manager) manage(win xproto.Window, geom xproto.GetGeometryReply) {
	c := &Client{
		Win: win,
		X:   int(geom.X), Y: int(geom.Y),
		W: int(geom.Width), H: int(geom.Height),
		OldBW: int(geom.BorderWidth),
	}
	wmgr.updatetitle(c)

	var trans xproto.Window
	if tf, err := icccm.WmTransientForGet(wmgr.Conn.XU, win); err == nil && tf != 0 {
		trans = tf
	}

	var parent *Client
	if trans != 0 {
		parent = wmgr.wintoclient(trans)
	}
	if parent != nil {
		c.Mon = parent.Mon
		c.Tags = parent.Tags
	} else {
		c.Mon = wmgr.SelMon
		wmgr.applyrules(c)
	}

	c.X = int(geom.X) + c.Mon.WX
	c.Y = int(geom.Y) + c.Mon.WY

	if c.X+c.W > c.Mon.MX+c.Mon.MW {
		c.X = c.Mon.MX + c.Mon.MW - c.W
	}
	if c.Y+c.H > c.Mon.MY+c.Mon.MH {
		c.Y = c.Mon.MY + c.Mon.MH - c.H
	}
	if c.X < c.Mon.MX {
		c.X = c.Mon.MX
	}
	// Only fix the y offset if the client's center might cover a top bar.
	minY := c.Mon.MY
	if c.Mon.ShowBar && c.Mon.TopBar &&
		c.X+c.W/2 >= c.Mon.WX && c.X+c.W/2 < c.Mon.WX+c.Mon.WW {
		minY = c.Mon.WY
	}
	if c.Y < minY {
		c.Y = minY
	}

	if c.W == c.Mon.MW && c.H == c.Mon.MH {
		c.X, c.Y, c.BW = c.Mon.MX, c.Mon.MY, 0
	} else {
		c.BW = wmgr.Cfg.BorderPx
	}

	xproto.ConfigureWindow(wmgr.Conn.XU.Conn(), win, xproto.ConfigWindowBorderWidth, []uint32{uint32(c.BW)})
	wmgr.setBorder(c, false)
	wmgr.configure(c)
	wmgr.updatesizehints(c)
	wmgr.updatewmhints(c)

	xproto.ChangeWindowAttributes(
		wmgr.Conn.XU.Conn(), win, xproto.CwEventMask,
		[]uint32{uint32(xproto.EventMaskEnterWindow | xproto.EventMaskFocusChange | xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify)},
	)
	wmgr.attachClientHandlers(c)
	wmgr.grabbuttons(c, false)

	if !c.IsFloating {
		c.IsFloating = trans != 0 || c.IsFixed
	}
	if c.IsFloating {
		xproto.ConfigureWindow(wmgr.Conn.XU.Conn(), win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	}

	attach(c)
	attachStack(c)

	wmgr.Atoms.SetWMState(wmgr.Conn, win, x11.WMStateNormal)

	// Move the window off-screen and back: a workaround for clients that
	// misbehave when mapped at their final position directly.
	wmgr.moveResizeWindow(win, c.X+2*wmgr.screenW, c.Y, c.W, c.H, c.BW)
	xproto.MapWindow(wmgr.Conn.XU.Conn(), win)
	wmgr.moveResizeWindow(win, c.X, c.Y, c.W, c.H, c.BW)

	wmgr.arrange(c.Mon)
}

// unmanage removes c from both intrusive lists. If the window was not
// itself destroyed (e.g. it was unmapped, or we're shutting down
// cleanly), its border width is restored and it's marked Withdrawn before
// we let go of it.
func (wmgr *Manager) unmanage(c *Client, destroyed bool) {
	m := c.Mon
	detach(c)
	detachStack(c)
	xevent.Detach(wmgr.Conn.XU, c.Win)

	if !destroyed {
		// Server grab: no other client may interleave configure requests
		// while the border is being restored on a window we no longer own.
		xproto.GrabServer(wmgr.Conn.XU.Conn())
		xproto.ConfigureWindow(wmgr.Conn.XU.Conn(), c.Win, xproto.ConfigWindowBorderWidth, []uint32{uint32(c.OldBW)})
		wmgr.Conn.UngrabAllButtons(c.Win)
		wmgr.Atoms.SetWMState(wmgr.Conn, c.Win, x11.WMStateWithdrawn)
		wmgr.Conn.XU.Conn().Sync()
		xproto.UngrabServer(wmgr.Conn.XU.Conn())
	}

	wmgr.focus(nil)
	wmgr.arrange(m)
}

// scan enumerates the root window's existing children at startup and
// manages them in two passes: non-transient windows first, then
// transient windows. Both passes run against the same QueryTree reply,
// so a transient's owner is always registered by the time the second
// pass runs (see DESIGN.md's deferred-free ordering decision).
func (wmgr *Manager) scan() {
	tree, err := xproto.QueryTree(wmgr.Conn.XU.Conn(), wmgr.Conn.Root).Reply()
	if err != nil {
		return
	}

	manageable := func(win xproto.Window) (xproto.GetGeometryReply, bool) {
		wa, err := xproto.GetWindowAttributes(wmgr.Conn.XU.Conn(), win).Reply()
		if err != nil || wa == nil {
			return xproto.GetGeometryReply{}, false
		}
		if wa.OverrideRedirect {
			return xproto.GetGeometryReply{}, false
		}
		if wa.MapState != xproto.MapStateViewable {
			// Unmapped windows survive a restart only as iconic ones: a
			// previous manager left WM_STATE = Iconic behind.
			state, ok := wmgr.Atoms.GetWMState(wmgr.Conn, win)
			if !ok || state != x11.WMStateIconic {
				return xproto.GetGeometryReply{}, false
			}
		}
		geom, err := xproto.GetGeometry(wmgr.Conn.XU.Conn(), xproto.Drawable(win)).Reply()
		if err != nil || geom == nil {
			return xproto.GetGeometryReply{}, false
		}
		return *geom, true
	}

	for _, win := range tree.Children {
		if tf, err := icccm.WmTransientForGet(wmgr.Conn.XU, win); err == nil && tf != 0 {
			continue
		}
		if geom, ok := manageable(win); ok {
			wmgr.manage(win, geom)
		}
	}
	for _, win := range tree.Children {
		tf, err := icccm.WmTransientForGet(wmgr.Conn.XU, win)
		if err != nil || tf == 0 {
			continue
		}
		if geom, ok := manageable(win); ok {
			wmgr.manage(win, geom)
		}
	}
}
