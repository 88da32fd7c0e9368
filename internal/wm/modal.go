package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/mistwood/tilewm/internal/config"
)

// mouseGrabMask is the event set an interactive move/resize grab needs
// delivered regardless of which window the pointer is over.
const mouseGrabMask = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// grabPointer grabs the pointer on root with cursor, reporting whether the
// grab succeeded.
func (wmgr *Manager) grabPointer(cursor xproto.Cursor) bool {
	reply, err := xproto.GrabPointer(
		wmgr.Conn.XU.Conn(), false, wmgr.Conn.Root, mouseGrabMask,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		0, cursor, xproto.TimeCurrentTime,
	).Reply()
	return err == nil && reply != nil && reply.Status == xproto.GrabStatusSuccess
}

func (wmgr *Manager) ungrabPointer() {
	xproto.UngrabPointer(wmgr.Conn.XU.Conn(), xproto.TimeCurrentTime)
}

// getRootPtr reads the pointer's current position on the root window.
func (wmgr *Manager) getRootPtr() (int, int, bool) {
	reply, err := xproto.QueryPointer(wmgr.Conn.XU.Conn(), wmgr.Conn.Root).Reply()
	if err != nil || reply == nil {
		return 0, 0, false
	}
	return int(reply.RootX), int(reply.RootY), true
}

// pumpModalEvent dispatches the small whitelist of events the manager must
// stay responsive to while a pointer grab holds the server: configure
// requests, expose, and map requests all run synchronously through their
// normal handlers.
func (wmgr *Manager) pumpModalEvent(ev any) {
	switch e := ev.(type) {
	case xproto.ConfigureRequestEvent:
		wmgr.configureRequest(e)
	case xproto.ExposeEvent:
		wmgr.handleExpose(e.Window, e.Count)
	case xproto.MapRequestEvent:
		wmgr.handleMapRequest(e.Window)
	}
}

// movemouse enters the interactive move modal: the selected client follows
// the pointer until button release, snapping to the monitor's work-area
// edges and forcing a tiled client floating if the drag exceeds the snap
// threshold .
func (wmgr *Manager) movemouse() {
	c := wmgr.SelMon.Sel
	if c == nil {
		return
	}
	wmgr.restack(wmgr.SelMon)
	ocx, ocy := c.X, c.Y
	if !wmgr.grabPointer(wmgr.Cursors.Move) {
		return
	}
	x, y, ok := wmgr.getRootPtr()
	if !ok {
		wmgr.ungrabPointer()
		return
	}

	for {
		raw, _ := wmgr.Conn.XU.Conn().WaitForEvent()
		if raw == nil {
			continue
		}
		switch e := raw.(type) {
		case xproto.ConfigureRequestEvent, xproto.ExposeEvent, xproto.MapRequestEvent:
			wmgr.pumpModalEvent(e)
		case xproto.MotionNotifyEvent:
			nx := ocx + (int(e.EventX) - x)
			ny := ocy + (int(e.EventY) - y)
			m := wmgr.SelMon
			// Snap and the tiled-to-floating escape apply only while the
			// proposed position stays on this monitor's work area.
			if wmgr.Cfg.Snap > 0 &&
				nx >= m.WX && nx <= m.WX+m.WW && ny >= m.WY && ny <= m.WY+m.WH {
				if abs(m.WX-nx) < wmgr.Cfg.Snap {
					nx = m.WX
				} else if abs((m.WX+m.WW)-(nx+c.W+2*c.BW)) < wmgr.Cfg.Snap {
					nx = m.WX + m.WW - (c.W + 2*c.BW)
				}
				if abs(m.WY-ny) < wmgr.Cfg.Snap {
					ny = m.WY
				} else if abs((m.WY+m.WH)-(ny+c.H+2*c.BW)) < wmgr.Cfg.Snap {
					ny = m.WY + m.WH - (c.H + 2*c.BW)
				}
				if !c.IsFloating && m.Layout().Kind != config.LayoutFloating &&
					(abs(nx-c.X) > wmgr.Cfg.Snap || abs(ny-c.Y) > wmgr.Cfg.Snap) {
					wmgr.togglefloating()
				}
			}
			if m.Layout().Kind == config.LayoutFloating || c.IsFloating {
				wmgr.resize(c, nx, ny, c.W, c.H, true)
			}
		case xproto.ButtonReleaseEvent:
			wmgr.finishModal(c)
			return
		}
	}
}

// resizemouse enters the interactive resize modal: dragging grows or
// shrinks the selected client from its bottom-right corner, with the same
// snap-to-float escape hatch as movemouse .
func (wmgr *Manager) resizemouse() {
	c := wmgr.SelMon.Sel
	if c == nil {
		return
	}
	wmgr.restack(wmgr.SelMon)
	ocx, ocy := c.X, c.Y
	if !wmgr.grabPointer(wmgr.Cursors.Resize) {
		return
	}
	xproto.WarpPointer(wmgr.Conn.XU.Conn(), 0, c.Win, 0, 0, 0, 0,
		int16(c.W+c.BW-1), int16(c.H+c.BW-1))

	for {
		raw, _ := wmgr.Conn.XU.Conn().WaitForEvent()
		if raw == nil {
			continue
		}
		switch e := raw.(type) {
		case xproto.ConfigureRequestEvent, xproto.ExposeEvent, xproto.MapRequestEvent:
			wmgr.pumpModalEvent(e)
		case xproto.MotionNotifyEvent:
			nw := max0(int(e.EventX) - ocx - 2*c.BW + 1)
			nh := max0(int(e.EventY) - ocy - 2*c.BW + 1)
			m := wmgr.SelMon
			if c.Mon.WX+nw >= m.WX && c.Mon.WX+nw <= m.WX+m.WW &&
				c.Mon.WY+nh >= m.WY && c.Mon.WY+nh <= m.WY+m.WH {
				if !c.IsFloating && m.Layout().Kind != config.LayoutFloating &&
					(abs(nw-c.W) > wmgr.Cfg.Snap || abs(nh-c.H) > wmgr.Cfg.Snap) {
					wmgr.togglefloating()
				}
			}
			if m.Layout().Kind == config.LayoutFloating || c.IsFloating {
				wmgr.resize(c, c.X, c.Y, nw, nh, true)
			}
		case xproto.ButtonReleaseEvent:
			xproto.WarpPointer(wmgr.Conn.XU.Conn(), 0, c.Win, 0, 0, 0, 0,
				int16(c.W+c.BW-1), int16(c.H+c.BW-1))
			wmgr.finishModal(c)
			return
		}
	}
}

// finishModal ungrabs the pointer, flushes, and — if the drag carried the
// client mostly onto a different monitor — reassigns it there and
// refocuses, the shared tail of movemouse()/resizemouse().
func (wmgr *Manager) finishModal(c *Client) {
	wmgr.ungrabPointer()
	wmgr.Conn.Sync()
	if m := wmgr.recttomon(c.Rect().Border(c.BW)); m != wmgr.SelMon {
		wmgr.sendmon(c, m)
		wmgr.SelMon = m
		wmgr.focus(nil)
	}
}
