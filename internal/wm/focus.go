package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/mistwood/tilewm/internal/config"
	"github.com/mistwood/tilewm/internal/x11"
)

func colorPixel(c config.Color) uint32 {
	// Approximate RGB16 -> 24-bit TrueColor pixel, the common case for
	// modern X servers, skipping a round trip through the colormap.
	return uint32(c.R>>8)<<16 | uint32(c.G>>8)<<8 | uint32(c.B>>8)
}

// setBorder sets c's window border color, selected or normal.
func (wmgr *Manager) setBorder(c *Client, selected bool) {
	color := wmgr.Cfg.NormBorder
	if selected {
		color = wmgr.Cfg.SelBorder
	}
	xproto.ChangeWindowAttributes(wmgr.Conn.XU.Conn(), c.Win, xproto.CwBorderPixel, []uint32{colorPixel(color)})
}

// grabbuttons (re)installs c's button grabs: when focused, only the chorded
// grabs in the button table fire directly; when unfocused, a catch-all
// AnyButton/AnyModifier grab delivers any click to the manager, which
// focuses the client.
func (wmgr *Manager) grabbuttons(c *Client, focused bool) {
	wmgr.Conn.UpdateNumlockMask()
	wmgr.Conn.UngrabAllButtons(c.Win)
	if focused {
		for _, b := range wmgr.Cfg.Buttons {
			if b.Click != config.ClickClientWin {
				continue
			}
			wmgr.Conn.GrabButtonAllMods(c.Win, xproto.Button(b.Button), b.Mod, false,
				xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease)
		}
	} else {
		xproto.GrabButton(wmgr.Conn.XU.Conn(), false, c.Win,
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease,
			xproto.GrabModeAsync, xproto.GrabModeAsync, 0, 0,
			xproto.ButtonIndexAny, xproto.ModMaskAny)
	}
}

// unfocus strips c's focused decorations and, when setFocus is true,
// returns input focus to root.
func (wmgr *Manager) unfocus(c *Client, setFocus bool) {
	if c == nil {
		return
	}
	wmgr.grabbuttons(c, false)
	wmgr.setBorder(c, false)
	if setFocus {
		xproto.SetInputFocus(wmgr.Conn.XU.Conn(), xproto.InputFocusPointerRoot, wmgr.Conn.Root, xproto.TimeCurrentTime)
		wmgr.Conn.XU.Conn().Sync()
	}
}

// focus selects c as the monitor's focused client. A nil or invisible c
// walks the focus stack for the first visible client instead. Passing a
// client on a different monitor migrates SelMon.
func (wmgr *Manager) focus(c *Client) {
	if c == nil || !c.IsVisible() {
		c = nil
		if wmgr.SelMon != nil {
			for t := wmgr.SelMon.Stack; t != nil; t = t.SNext {
				if t.IsVisible() {
					c = t
					break
				}
			}
		}
	}
	if wmgr.SelMon != nil && wmgr.SelMon.Sel != nil && wmgr.SelMon.Sel != c {
		wmgr.unfocus(wmgr.SelMon.Sel, false)
	}

	if c != nil {
		if c.Mon != wmgr.SelMon {
			wmgr.SelMon = c.Mon
		}
		if c.IsUrgent {
			clearurgent(c)
		}
		detachStack(c)
		attachStack(c)
		wmgr.grabbuttons(c, true)
		wmgr.setBorder(c, true)
		wmgr.setfocus(c)
	} else {
		xproto.SetInputFocus(wmgr.Conn.XU.Conn(), xproto.InputFocusPointerRoot, wmgr.Conn.Root, xproto.TimeCurrentTime)
		x11.SetActiveWindow(wmgr.Conn, 0)
	}
	if wmgr.SelMon != nil {
		wmgr.SelMon.Sel = c
	}
}

// setfocus hands input focus to c, unless c's WM_HINTS asked never to
// receive it, and offers WM_TAKE_FOCUS to clients speaking that protocol.
func (wmgr *Manager) setfocus(c *Client) {
	if !c.NeverFocus {
		xproto.SetInputFocus(wmgr.Conn.XU.Conn(), xproto.InputFocusPointerRoot, c.Win, xproto.TimeCurrentTime)
		x11.SetActiveWindow(wmgr.Conn, c.Win)
	}
	wmgr.Atoms.SendTakeFocus(wmgr.Conn, c.Win)
}

// focusstack walks the client order list from the selected client in dir
// (+1/-1), skipping invisible clients and wrapping.
func (wmgr *Manager) focusstack(dir int) {
	m := wmgr.SelMon
	if m == nil || m.Sel == nil {
		return
	}
	var c *Client
	if dir > 0 {
		c = m.Sel.Next
		for c != nil && !c.IsVisible() {
			c = c.Next
		}
		if c == nil {
			for c = m.Clients; c != nil && !c.IsVisible(); c = c.Next {
			}
		}
	} else {
		var last *Client
		for t := m.Clients; t != nil && t != m.Sel; t = t.Next {
			if t.IsVisible() {
				last = t
			}
		}
		if last == nil {
			for t := m.Sel.Next; t != nil; t = t.Next {
				if t.IsVisible() {
					last = t
				}
			}
		}
		c = last
	}
	if c != nil {
		wmgr.focus(c)
		wmgr.restack(m)
	}
}

// focusmon cycles SelMon in dir around the monitor ring.
func (wmgr *Manager) focusmon(dir int) {
	if wmgr.Mons == nil || wmgr.Mons.Next == nil {
		return
	}
	m := wmgr.dirtomon(dir)
	if m == wmgr.SelMon {
		return
	}
	wmgr.unfocus(wmgr.SelMon.Sel, true)
	wmgr.SelMon = m
	wmgr.focus(nil)
}

// restack raises the selected client (if floating or the layout has no
// arrange function) or, for tiled layouts, stacks every visible
// non-floating client below the bar in reverse focus order.
func (wmgr *Manager) restack(m *Monitor) {
	wmgr.drawbar(m)
	if m.Sel == nil {
		return
	}
	if m.Sel.IsFloating || m.Layout().Kind == config.LayoutFloating {
		xproto.ConfigureWindow(wmgr.Conn.XU.Conn(), m.Sel.Win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	} else {
		sibling := m.BarWin
		for c := m.Stack; c != nil; c = c.SNext {
			if !c.IsFloating && c.IsVisible() {
				xproto.ConfigureWindow(wmgr.Conn.XU.Conn(), c.Win,
					xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
					[]uint32{uint32(sibling), xproto.StackModeBelow})
				sibling = c.Win
			}
		}
	}
	wmgr.Conn.XU.Conn().Sync()
}
