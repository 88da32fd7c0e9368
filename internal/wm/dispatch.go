package wm

import (
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/mistwood/tilewm/internal/config"
)

// Run wires every event handler this manager responds to onto the root
// connection and enters xgbutil's event loop.
func (wmgr *Manager) Run() {
	wmgr.Running = true
	xevent.ErrorHandlerSet(wmgr.Conn.XU, wmgr.handleXError)
	wmgr.registerRootHandlers()
	wmgr.registerBindings()
	xevent.Main(wmgr.Conn.XU)
}

// handleXError swallows the error classes any window manager provokes when
// a client window vanishes between our request and the server processing
// it, and logs everything else.
func (wmgr *Manager) handleXError(err xgb.Error) {
	switch err.(type) {
	case xproto.WindowError, xproto.MatchError, xproto.DrawableError, xproto.AccessError:
		// Expected: the target disappeared mid-request, or a grab raced
		// another client's.
	default:
		wmgr.Log.Error("x11 error", "err", err)
	}
}

// registerRootHandlers connects the handlers xgbutil keys on the root
// window: the two substructure-redirect requests (keyed by the parent),
// root structure/property changes, clicks and pointer entries on root
// itself, and keyboard-mapping changes (keyed on no window at all).
// Per-client and per-bar events are connected window by window — see
// attachClientHandlers and attachBarHandlers.
func (wmgr *Manager) registerRootHandlers() {
	xu := wmgr.Conn.XU
	root := wmgr.Conn.Root

	xevent.MapRequestFun(func(X *xgbutil.XUtil, ev xevent.MapRequestEvent) {
		wmgr.handleMapRequest(ev.Window)
	}).Connect(xu, root)

	xevent.ConfigureRequestFun(func(X *xgbutil.XUtil, ev xevent.ConfigureRequestEvent) {
		wmgr.handleConfigureRequest(ev)
	}).Connect(xu, root)

	xevent.ConfigureNotifyFun(func(X *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		if ev.Window != root {
			return
		}
		wmgr.handleRootConfigureNotify(ev)
	}).Connect(xu, root)

	xevent.EnterNotifyFun(func(X *xgbutil.XUtil, ev xevent.EnterNotifyEvent) {
		wmgr.handleEnterNotify(ev)
	}).Connect(xu, root)

	xevent.ButtonPressFun(func(X *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		wmgr.handleButtonPress(ev)
	}).Connect(xu, root)

	xevent.PropertyNotifyFun(func(X *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		wmgr.handlePropertyNotify(ev)
	}).Connect(xu, root)

	xevent.MappingNotifyFun(func(X *xgbutil.XUtil, ev xevent.MappingNotifyEvent) {
		if ev.Request != xproto.MappingKeyboard {
			return
		}
		wmgr.Conn.ConfigureIgnoreMods()
		wmgr.registerBindings()
	}).Connect(xu, xevent.NoWindow)
}

// attachClientHandlers connects the per-window handlers for a freshly
// managed client. xgbutil dispatches these events keyed on the client's
// own window id, so each managed window carries its own connections,
// detached again in unmanage.
func (wmgr *Manager) attachClientHandlers(c *Client) {
	xu := wmgr.Conn.XU
	win := c.Win

	xevent.DestroyNotifyFun(func(X *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		if cl := wmgr.wintoclient(ev.Window); cl != nil {
			wmgr.unmanage(cl, true)
		}
	}).Connect(xu, win)

	xevent.UnmapNotifyFun(func(X *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		if cl := wmgr.wintoclient(ev.Window); cl != nil {
			wmgr.unmanage(cl, false)
		}
	}).Connect(xu, win)

	xevent.EnterNotifyFun(func(X *xgbutil.XUtil, ev xevent.EnterNotifyEvent) {
		wmgr.handleEnterNotify(ev)
	}).Connect(xu, win)

	xevent.ButtonPressFun(func(X *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		wmgr.handleButtonPress(ev)
	}).Connect(xu, win)

	xevent.PropertyNotifyFun(func(X *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		wmgr.handlePropertyNotify(ev)
	}).Connect(xu, win)

	xevent.FocusInFun(func(X *xgbutil.XUtil, ev xevent.FocusInEvent) {
		// Some broken clients grab focus for themselves; put it back.
		m := wmgr.SelMon
		if m != nil && m.Sel != nil && ev.Event != m.Sel.Win {
			wmgr.setfocus(m.Sel)
		}
	}).Connect(xu, win)
}

// attachBarHandlers connects expose and click handling to a bar window.
func (wmgr *Manager) attachBarHandlers(barWin xproto.Window) {
	xu := wmgr.Conn.XU

	xevent.ExposeFun(func(X *xgbutil.XUtil, ev xevent.ExposeEvent) {
		wmgr.handleExpose(ev.Window, ev.Count)
	}).Connect(xu, barWin)

	xevent.ButtonPressFun(func(X *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		wmgr.handleButtonPress(ev)
	}).Connect(xu, barWin)
}

// handleMapRequest brings a freshly mapped window under management, unless
// it's already managed (a duplicate MapRequest).
func (wmgr *Manager) handleMapRequest(win xproto.Window) {
	if wmgr.wintoclient(win) != nil {
		return
	}
	wa, err := xproto.GetWindowAttributes(wmgr.Conn.XU.Conn(), win).Reply()
	if err != nil || wa == nil || wa.OverrideRedirect {
		return
	}
	geom, err := xproto.GetGeometry(wmgr.Conn.XU.Conn(), xproto.Drawable(win)).Reply()
	if err != nil || geom == nil {
		return
	}
	wmgr.manage(win, *geom)
}

// handleConfigureRequest forwards an unmanaged window's request verbatim,
// and applies a managed client's requested geometry (relative to its
// monitor's origin, re-centred if a floating client would run off the
// monitor) when it is floating or the layout has no arrange function. A
// border-width change is recorded and nothing else; a tiled client's geometry request is ignored but answered
// with a synthetic ConfigureNotify echoing what it actually has .
func (wmgr *Manager) handleConfigureRequest(ev xevent.ConfigureRequestEvent) {
	wmgr.configureRequest(*ev.ConfigureRequestEvent)
}

// configureRequest is the raw-xproto core of the ConfigureRequest handler,
// shared between the normal event dispatch above and the whitelist of
// events an interactive modal (modal.go) dispatches synchronously from its
// own nested read loop.
func (wmgr *Manager) configureRequest(ev xproto.ConfigureRequestEvent) {
	c := wmgr.wintoclient(ev.Window)
	if c == nil {
		values := []uint32{}
		var mask uint16
		if ev.ValueMask&xproto.ConfigWindowX != 0 {
			mask |= xproto.ConfigWindowX
			values = append(values, uint32(ev.X))
		}
		if ev.ValueMask&xproto.ConfigWindowY != 0 {
			mask |= xproto.ConfigWindowY
			values = append(values, uint32(ev.Y))
		}
		if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
			mask |= xproto.ConfigWindowWidth
			values = append(values, uint32(ev.Width))
		}
		if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
			mask |= xproto.ConfigWindowHeight
			values = append(values, uint32(ev.Height))
		}
		if ev.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
			mask |= xproto.ConfigWindowBorderWidth
			values = append(values, uint32(ev.BorderWidth))
		}
		if ev.ValueMask&xproto.ConfigWindowSibling != 0 {
			mask |= xproto.ConfigWindowSibling
			values = append(values, uint32(ev.Sibling))
		}
		if ev.ValueMask&xproto.ConfigWindowStackMode != 0 {
			mask |= xproto.ConfigWindowStackMode
			values = append(values, uint32(ev.StackMode))
		}
		xproto.ConfigureWindow(wmgr.Conn.XU.Conn(), ev.Window, mask, values)
		return
	}

	if ev.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		c.BW = int(ev.BorderWidth)
	} else if c.IsFloating || c.Mon.Layout().Kind == config.LayoutFloating {
		if ev.ValueMask&xproto.ConfigWindowX != 0 {
			c.X = c.Mon.MX + int(ev.X)
		}
		if ev.ValueMask&xproto.ConfigWindowY != 0 {
			c.Y = c.Mon.MY + int(ev.Y)
		}
		if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
			c.W = int(ev.Width)
		}
		if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
			c.H = int(ev.Height)
		}
		if c.X+c.W > c.Mon.MX+c.Mon.MW && c.IsFloating {
			c.X = c.Mon.MX + (c.Mon.MW / 2) - (c.W / 2)
		}
		if c.Y+c.H > c.Mon.MY+c.Mon.MH && c.IsFloating {
			c.Y = c.Mon.MY + (c.Mon.MH / 2) - (c.H / 2)
		}
		// A pure move still deserves the synthetic echo; a real resize is
		// answered by the ConfigureNotify the move-resize below generates.
		if ev.ValueMask&(xproto.ConfigWindowX|xproto.ConfigWindowY) != 0 &&
			ev.ValueMask&(xproto.ConfigWindowWidth|xproto.ConfigWindowHeight) == 0 {
			wmgr.configure(c)
		}
		if c.IsVisible() {
			wmgr.moveResizeWindow(c.Win, c.X, c.Y, c.W, c.H, c.BW)
		}
	} else {
		wmgr.configure(c)
	}
}

// handleRootConfigureNotify re-reads the screen size on a root resize
// (RandR or direct) and reconciles the monitor ring.
func (wmgr *Manager) handleRootConfigureNotify(ev xevent.ConfigureNotifyEvent) {
	w, h := int(ev.Width), int(ev.Height)
	dirty := w != wmgr.screenW || h != wmgr.screenH
	wmgr.screenW, wmgr.screenH = w, h
	// updategeom runs even when the root size is unchanged: a RandR head
	// can appear or move without resizing the root.
	if wmgr.updategeom() || dirty {
		for m := wmgr.Mons; m != nil; m = m.Next {
			wmgr.updatebarpos(m)
			wmgr.updatebars(m)
		}
		wmgr.focus(nil)
		wmgr.arrange(nil)
	}
}

// handleEnterNotify follows the pointer to a new client or monitor under
// focus-follows-mouse, ignoring notifications generated by our own
// grab/ungrab calls .
func (wmgr *Manager) handleEnterNotify(ev xevent.EnterNotifyEvent) {
	if (ev.Mode != xproto.NotifyModeNormal || ev.Detail == xproto.NotifyDetailInferior) && ev.Event != wmgr.Conn.Root {
		return
	}
	c := wmgr.wintoclient(ev.Event)
	m := wmgr.SelMon
	if c != nil {
		m = c.Mon
	}
	if m != wmgr.SelMon {
		wmgr.unfocus(wmgr.SelMon.Sel, true)
		wmgr.SelMon = m
	} else if c == nil || c == wmgr.SelMon.Sel {
		return
	}
	wmgr.focus(c)
}

// handlePropertyNotify refreshes whichever cached client field the changed
// property backs.
func (wmgr *Manager) handlePropertyNotify(ev xevent.PropertyNotifyEvent) {
	if ev.Window == wmgr.Conn.Root {
		if ev.Atom == xproto.AtomWmName {
			wmgr.updatestatus()
		}
		return
	}
	c := wmgr.wintoclient(ev.Window)
	if c == nil {
		return
	}
	switch ev.Atom {
	case xproto.AtomWmTransientFor:
		// A window may declare a parent after mapping; if that parent is
		// one of ours, the client is upgraded to floating.
		if trans, err := icccm.WmTransientForGet(wmgr.Conn.XU, c.Win); err == nil &&
			!c.IsFloating && wmgr.wintoclient(trans) != nil {
			c.IsFloating = true
			wmgr.arrange(c.Mon)
		}
	case xproto.AtomWmNormalHints:
		wmgr.updatesizehints(c)
	case xproto.AtomWmHints:
		wmgr.updatewmhints(c)
		if c.IsUrgent {
			wmgr.drawbar(c.Mon)
		}
	case wmgr.Atoms.NetWMName:
		wmgr.updatetitle(c)
		if c == c.Mon.Sel {
			wmgr.drawbar(c.Mon)
		}
	case xproto.AtomWmName:
		wmgr.updatetitle(c)
		if c == c.Mon.Sel {
			wmgr.drawbar(c.Mon)
		}
	}
}

// handleButtonPress resolves the click site (bar region or client window)
// and dispatches to the matching configured button action.
func (wmgr *Manager) handleButtonPress(ev xevent.ButtonPressEvent) {
	area := config.ClickRootWin
	var arg config.Arg

	// Clicks on another monitor (its bar, its root territory) move the
	// selection there first.
	if m := wmgr.wintomon(ev.Event); m != nil && m != wmgr.SelMon {
		wmgr.unfocus(wmgr.SelMon.Sel, true)
		wmgr.SelMon = m
		wmgr.focus(nil)
	}

	if m := wmgr.barMonitorFor(ev.Event); m != nil {
		area = wmgr.resolveClick(m, int(ev.EventX))
		if area == config.ClickTagBar {
			for _, cell := range wmgr.barCells(m) {
				if cell.area == config.ClickTagBar && int(ev.EventX) >= cell.x0 && int(ev.EventX) < cell.x1 {
					arg = config.Arg{UI: uint32(1) << uint(cell.index)}
					break
				}
			}
		}
	} else if c := wmgr.wintoclient(ev.Event); c != nil {
		wmgr.focus(c)
		wmgr.restack(c.Mon)
		area = config.ClickClientWin
	}

	clean := wmgr.Conn.CleanMask(ev.State)
	for _, b := range wmgr.Cfg.Buttons {
		if b.Click != area || uint8(ev.Detail) != b.Button {
			continue
		}
		if wmgr.Conn.CleanMask(b.Mod) != clean {
			continue
		}
		useArg := b.Arg
		if area == config.ClickTagBar && b.Arg.UI == 0 && b.Arg.Layout == nil {
			useArg = arg
		}
		wmgr.dispatch(b.Action, useArg)
	}
}

// handleExpose redraws a bar on zero-count expose (coalescing a burst of
// expose events into one redraw).
func (wmgr *Manager) handleExpose(win xproto.Window, count uint16) {
	if count != 0 {
		return
	}
	for m := wmgr.Mons; m != nil; m = m.Next {
		if m.BarWin == win {
			wmgr.drawbar(m)
		}
	}
}

func (wmgr *Manager) barMonitorFor(win xproto.Window) *Monitor {
	for m := wmgr.Mons; m != nil; m = m.Next {
		if m.BarWin == win {
			return m
		}
	}
	return nil
}

// registerBindings (re)installs every configured key and button binding.
// Safe to call repeatedly (e.g. after a MappingNotify), since BindKey's
// underlying keybind.KeyPressFun grabs are idempotent per key sequence.
func (wmgr *Manager) registerBindings() {
	for _, k := range wmgr.Cfg.Keys {
		k := k
		seq := keySequence(k.Mod, k.Sym)
		wmgr.Conn.BindKey(wmgr.Conn.Root, seq, func() {
			wmgr.dispatch(k.Action, k.Arg)
		})
	}
}

// keySequence renders a modifier mask and keysym name into the dash-joined
// string keybind.KeyPressFun's Connect parses, the same convention
// termtile's config stores hotkeys in (e.g. "Mod4-Mod1-t").
func keySequence(mod uint16, sym string) string {
	var parts []string
	if mod&config.ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if mod&xproto.ModMaskLock != 0 {
		parts = append(parts, "Lock")
	}
	if mod&config.ModControl != 0 {
		parts = append(parts, "Control")
	}
	if mod&(1<<3) != 0 {
		parts = append(parts, "Mod1")
	}
	if mod&(1<<4) != 0 {
		parts = append(parts, "Mod2")
	}
	if mod&(1<<5) != 0 {
		parts = append(parts, "Mod3")
	}
	if mod&(1<<6) != 0 {
		parts = append(parts, "Mod4")
	}
	if mod&(1<<7) != 0 {
		parts = append(parts, "Mod5")
	}
	parts = append(parts, sym)
	return strings.Join(parts, "-")
}

// dispatch runs the operation named by action with its configured argument.
func (wmgr *Manager) dispatch(action config.Action, arg config.Arg) {
	switch action {
	case config.ActionSpawn:
		spawn(arg.V)
	case config.ActionToggleBar:
		wmgr.togglebar(wmgr.SelMon)
	case config.ActionFocusStack:
		wmgr.focusstack(arg.I)
	case config.ActionSetMFact:
		wmgr.setmfact(arg.F)
	case config.ActionZoom:
		wmgr.zoom()
	case config.ActionView:
		wmgr.view(arg.UI)
	case config.ActionKillClient:
		wmgr.killclient()
	case config.ActionSetLayout:
		wmgr.setlayout(wmgr.SelMon, arg.Layout)
	case config.ActionToggleFloating:
		wmgr.togglefloating()
	case config.ActionTag:
		wmgr.tag(arg.UI)
	case config.ActionFocusMon:
		wmgr.focusmon(arg.I)
	case config.ActionTagMon:
		wmgr.tagmon(arg.I)
	case config.ActionToggleView:
		wmgr.toggleview(arg.UI)
	case config.ActionToggleTag:
		wmgr.toggletag(arg.UI)
	case config.ActionViewPrev:
		wmgr.viewprev()
	case config.ActionViewNext:
		wmgr.viewnext()
	case config.ActionMoveMouse:
		wmgr.movemouse()
	case config.ActionResizeMouse:
		wmgr.resizemouse()
	case config.ActionQuit:
		wmgr.quit()
	}
}
