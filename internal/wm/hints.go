package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/mistwood/tilewm/internal/config"
	"github.com/mistwood/tilewm/internal/geom"
)

// resize clamps (x, y, w, h) through the size-hint engine and, if the
// clamped geometry differs from c's current geometry, issues the
// ConfigureWindow request and a synthetic ConfigureNotify.
func (wmgr *Manager) resize(c *Client, x, y, w, h int, interact bool) {
	bounds := geom.Rect{X: c.Mon.WX, Y: c.Mon.WY, Width: c.Mon.WW, Height: c.Mon.WH}
	if interact {
		bounds = geom.Rect{X: 0, Y: 0, Width: wmgr.screenW, Height: wmgr.screenH}
	}
	honorHints := wmgr.Cfg.ResizeHints || c.IsFloating ||
		c.Mon.Layout().Kind == config.LayoutFloating
	nx, ny, nw, nh, changed := geom.Apply(x, y, w, h, c.BW, c.SizeHints(), honorHints, bounds, wmgr.BarHeight)
	if !changed {
		return
	}
	c.X, c.Y, c.W, c.H = nx, ny, nw, nh
	wmgr.moveResizeWindow(c.Win, c.X, c.Y, c.W, c.H, c.BW)
	wmgr.configure(c)
	wmgr.Conn.Sync()
}

// configure sends a synthetic ConfigureNotify echoing c's current
// geometry, the ICCCM-mandated notice for tiled clients that didn't get
// the geometry they requested.
func (wmgr *Manager) configure(c *Client) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            c.Win,
		Window:           c.Win,
		X:                int16(c.X),
		Y:                int16(c.Y),
		Width:            uint16(c.W),
		Height:           uint16(c.H),
		BorderWidth:      uint16(c.BW),
		OverrideRedirect: false,
	}
	xproto.SendEvent(wmgr.Conn.XU.Conn(), false, c.Win, xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

// updatesizehints reads WM_NORMAL_HINTS and refreshes c's cached hint
// fields.
func (wmgr *Manager) updatesizehints(c *Client) {
	nh, err := icccm.WmNormalHintsGet(wmgr.Conn.XU, c.Win)
	if err != nil || nh == nil {
		c.BaseW, c.BaseH = 0, 0
		c.IncW, c.IncH = 0, 0
		c.MaxW, c.MaxH = 0, 0
		c.MinW, c.MinH = 0, 0
		c.MinAspect, c.MaxAspect = 0, 0
		c.IsFixed = false
		return
	}

	if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		c.BaseW, c.BaseH = int(nh.BaseWidth), int(nh.BaseHeight)
	} else if nh.Flags&icccm.SizeHintPMinSize != 0 {
		c.BaseW, c.BaseH = int(nh.MinWidth), int(nh.MinHeight)
	} else {
		c.BaseW, c.BaseH = 0, 0
	}

	if nh.Flags&icccm.SizeHintPResizeInc != 0 {
		c.IncW, c.IncH = int(nh.WidthInc), int(nh.HeightInc)
	} else {
		c.IncW, c.IncH = 0, 0
	}

	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		c.MaxW, c.MaxH = int(nh.MaxWidth), int(nh.MaxHeight)
	} else {
		c.MaxW, c.MaxH = 0, 0
	}

	if nh.Flags&icccm.SizeHintPMinSize != 0 {
		c.MinW, c.MinH = int(nh.MinWidth), int(nh.MinHeight)
	} else if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		c.MinW, c.MinH = int(nh.BaseWidth), int(nh.BaseHeight)
	} else {
		c.MinW, c.MinH = 0, 0
	}

	if nh.Flags&icccm.SizeHintPAspect != 0 && nh.MinAspectDen != 0 && nh.MaxAspectNum != 0 {
		c.MinAspect = float64(nh.MinAspectDen) / float64(nh.MinAspectNum)
		c.MaxAspect = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
	} else {
		c.MinAspect, c.MaxAspect = 0, 0
	}

	c.IsFixed = c.SizeHints().IsFixed()
}

// updatetitle reads _NET_WM_NAME, falling back to WM_NAME and finally the
// literal "broken".
func (wmgr *Manager) updatetitle(c *Client) {
	if name, err := ewmh.WmNameGet(wmgr.Conn.XU, c.Win); err == nil && name != "" {
		c.Name = name
		return
	}
	if name, err := icccm.WmNameGet(wmgr.Conn.XU, c.Win); err == nil && name != "" {
		c.Name = name
		return
	}
	c.Name = "broken"
}

// updatewmhints reads WM_HINTS. If c is the selected client, a selected
// client cannot be urgent (its urgency bit is cleared and written back);
// otherwise c.IsUrgent tracks the flag.
func (wmgr *Manager) updatewmhints(c *Client) {
	hints, err := icccm.WmHintsGet(wmgr.Conn.XU, c.Win)
	if err != nil || hints == nil {
		return
	}
	if c == c.Mon.Sel && hints.Flags&icccm.HintUrgency != 0 {
		hints.Flags &^= icccm.HintUrgency
		icccm.WmHintsSet(wmgr.Conn.XU, c.Win, hints)
	} else {
		c.IsUrgent = hints.Flags&icccm.HintUrgency != 0
	}
	if hints.Flags&icccm.HintInput != 0 {
		c.NeverFocus = hints.Input == 0
	} else {
		c.NeverFocus = false
	}
}

// clearurgent clears c's urgency flag in local state (used when c becomes
// focused), matching the read side of updatewmhints' selected-client rule.
func clearurgent(c *Client) {
	c.IsUrgent = false
}
