package wm

import (
	"os/exec"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/mistwood/tilewm/internal/config"
)

// view switches the selected monitor to tag mask ui. A no-op if ui already
// equals the current view; otherwise flips which of the two tagset slots
// is active and, if ui is nonzero, stores it there first .
func (wmgr *Manager) view(ui uint32) {
	m := wmgr.SelMon
	if ui&wmgr.TagMask() == m.Tag() {
		return
	}
	m.SelTags ^= 1
	if ui != 0 {
		m.TagSet[m.SelTags] = ui & wmgr.TagMask()
	}
	wmgr.arrange(m)
}

// viewprev/viewnext cyclically rotate the current tagset by one bit.
func (wmgr *Manager) viewprev() {
	m := wmgr.SelMon
	n := uint(len(wmgr.Cfg.Tags))
	cur := m.Tag()
	rotated := (cur >> 1) | ((cur & 1) << (n - 1))
	m.TagSet[m.SelTags] = rotated & wmgr.TagMask()
	wmgr.arrange(m)
}

func (wmgr *Manager) viewnext() {
	m := wmgr.SelMon
	n := uint(len(wmgr.Cfg.Tags))
	cur := m.Tag()
	rotated := ((cur << 1) | (cur >> (n - 1))) & wmgr.TagMask()
	m.TagSet[m.SelTags] = rotated
	wmgr.arrange(m)
}

// toggleview XORs ui into the selected monitor's current tagset slot,
// applying the change only if the result leaves at least one tag set.
func (wmgr *Manager) toggleview(ui uint32) {
	m := wmgr.SelMon
	newTags := m.Tag() ^ (ui & wmgr.TagMask())
	if newTags == 0 {
		return
	}
	m.TagSet[m.SelTags] = newTags
	wmgr.arrange(m)
}

// tag reassigns the selected client's tag mask to ui (masked), and
// re-arranges. A no-op without a selected client or with ui masking to
// zero .
func (wmgr *Manager) tag(ui uint32) {
	m := wmgr.SelMon
	if m.Sel == nil || ui&wmgr.TagMask() == 0 {
		return
	}
	m.Sel.Tags = ui & wmgr.TagMask()
	wmgr.arrange(m)
}

// toggletag XORs ui into the selected client's tags, never letting it end
// up with zero tags .
func (wmgr *Manager) toggletag(ui uint32) {
	m := wmgr.SelMon
	if m.Sel == nil {
		return
	}
	newTags := m.Sel.Tags ^ (ui & wmgr.TagMask())
	if newTags == 0 {
		return
	}
	m.Sel.Tags = newTags
	wmgr.arrange(m)
}

// setlayout selects a new layout for the monitor (or toggles between the
// two configured layout slots when layout is nil), updates the bar symbol,
// and re-arranges only if a client is selected .
func (wmgr *Manager) setlayout(m *Monitor, layout *config.LayoutEntry) {
	if layout == nil || layout != m.Lt[m.SelLt] {
		m.SelLt ^= 1
	}
	if layout != nil {
		m.Lt[m.SelLt] = layout
	}
	m.LtSymbol = m.Lt[m.SelLt].Symbol
	if m.Sel != nil {
		wmgr.arrange(m)
	} else {
		wmgr.drawbar(m)
	}
}

// setmfact adjusts the master-area fraction. A value below 1.0 is a delta
// applied to the current mfact; a value of 1.0 or more encodes an absolute
// fraction plus one. Out-of-range results ([0.05, 0.95], see DESIGN.md's
// Open Question resolution) are silently ignored, as is any call under a
// layout with no arrange function.
func (wmgr *Manager) setmfact(delta float64) {
	m := wmgr.SelMon
	if m.Layout().Kind == config.LayoutFloating {
		return
	}
	f := delta
	if delta < 1.0 {
		f = delta + m.MFact
	} else {
		f = delta - 1.0
	}
	if f < 0.05 || f > 0.95 {
		return
	}
	m.MFact = f
	wmgr.arrange(m)
}

// zoom promotes the selected client to master. If it is already master,
// the next tiled client is promoted instead (a no-op if there is none).
// No-op under a no-arrange layout or when the selected client floats .
func (wmgr *Manager) zoom() {
	m := wmgr.SelMon
	c := m.Sel
	if c == nil || c.IsFloating || m.Layout().Kind == config.LayoutFloating {
		return
	}
	if c == NextTiled(m.Clients) {
		c = NextTiled(c.Next)
		if c == nil {
			return
		}
	}
	detach(c)
	attach(c)
	wmgr.focus(c)
	wmgr.arrange(c.Mon)
}

// togglefloating flips the selected client's floating bit (fixed-size
// clients are always floating) and, if it just became floating, reasserts
// its current geometry to trigger a configure .
func (wmgr *Manager) togglefloating() {
	c := wmgr.SelMon.Sel
	if c == nil {
		return
	}
	c.IsFloating = !c.IsFloating || c.IsFixed
	if c.IsFloating {
		wmgr.resize(c, c.X, c.Y, c.W, c.H, false)
	}
	wmgr.arrange(c.Mon)
}

// togglebar flips bar visibility and recomputes the monitor's work area.
func (wmgr *Manager) togglebar(m *Monitor) {
	m.ShowBar = !m.ShowBar
	wmgr.updatebarpos(m)
	xproto.ConfigureWindow(wmgr.Conn.XU.Conn(), m.BarWin, xproto.ConfigWindowY, []uint32{uint32(wmgr.barY(m))})
	wmgr.arrange(m)
}

// sendmon migrates c to monitor m: detach, reassign tags to m's current
// view, reattach, and re-arrange both monitors .
func (wmgr *Manager) sendmon(c *Client, m *Monitor) {
	if c.Mon == m {
		return
	}
	wmgr.unfocus(c, true)
	old := c.Mon
	detach(c)
	detachStack(c)
	c.Mon = m
	c.Tags = m.Tag()
	attach(c)
	attachStack(c)
	wmgr.focus(nil)
	wmgr.arrange(old)
	wmgr.arrange(m)
}

// tagmon sends the selected client to the monitor dir steps around the
// ring.
func (wmgr *Manager) tagmon(dir int) {
	if wmgr.SelMon.Sel == nil || wmgr.Mons.Next == nil {
		return
	}
	wmgr.sendmon(wmgr.SelMon.Sel, wmgr.dirtomon(dir))
}

// killclient asks the selected client to close: a WM_DELETE_WINDOW message
// if it advertises support, else a forceful XKillClient.
func (wmgr *Manager) killclient() {
	c := wmgr.SelMon.Sel
	if c == nil {
		return
	}
	if wmgr.Atoms.IsProtoDelete(wmgr.Conn, c.Win) {
		wmgr.Atoms.SendDeleteWindow(wmgr.Conn, c.Win)
		return
	}
	xproto.GrabServer(wmgr.Conn.XU.Conn())
	xproto.KillClient(wmgr.Conn.XU.Conn(), uint32(c.Win))
	wmgr.Conn.XU.Conn().Sync()
	xproto.UngrabServer(wmgr.Conn.XU.Conn())
}

// spawn fire-and-forgets an external command. Out of scope beyond this
// minimal hook: no shell wrapping, no environment manipulation.
func spawn(argv []string) {
	if len(argv) == 0 {
		return
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	_ = cmd.Start()
}

// quit stops the event loop by clearing Running and waking xevent.Quit.
func (wmgr *Manager) quit() {
	wmgr.Running = false
	xevent.Quit(wmgr.Conn.XU)
}
