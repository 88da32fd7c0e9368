package wm

import (
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/mistwood/tilewm/internal/x11"
)

// barHeight is the fixed bar line height this core uses in place of a
// font-metrics-derived height (font rendering is out of scope); it also
// serves as the empirical minimum dimension floor the geometry engine
// applies to every client.
const barHeight = 22

// Setup brings the manager from a freshly opened connection to a ready-to-
// run state: it primes the bar font and screen size, discovers the monitor
// layout via the multi-head reconciler, creates each monitor's bar,
// installs the root cursor and modifier-mask-aware grabs, advertises the
// supported EWMH atoms, and seeds the status text. The only failure mode is
// the bar font: everything else degrades silently.
func (wmgr *Manager) Setup() error {
	wmgr.BarHeight = barHeight
	wmgr.screenW, wmgr.screenH = wmgr.Conn.ScreenSize()

	if err := wmgr.initBarFont(); err != nil {
		return err
	}

	wmgr.updategeom()
	if wmgr.SelMon == nil {
		wmgr.SelMon = wmgr.Mons
	}

	wmgr.Conn.ConfigureIgnoreMods()
	wmgr.Conn.SetRootCursor(wmgr.Cursors.Normal)

	for m := wmgr.Mons; m != nil; m = m.Next {
		wmgr.updatebarpos(m)
		wmgr.updatebars(m)
	}

	_ = x11.AdvertiseSupported(wmgr.Conn)
	x11.SetWMName(wmgr.Conn, wmgr.Conn.Root, "tilewm")
	wmgr.updatestatus()
	return nil
}

// Scan brings every already-existing top-level window under management at
// startup.
func (wmgr *Manager) Scan() {
	wmgr.scan()
}

// updatestatus refreshes the status text from the root window's WM_NAME,
// falling back to the manager's own name/version banner when unset.
func (wmgr *Manager) updatestatus() {
	name, err := icccm.WmNameGet(wmgr.Conn.XU, wmgr.Conn.Root)
	if err != nil || name == "" {
		wmgr.StatusText = "tilewm-" + Version
	} else {
		wmgr.StatusText = name
	}
	if wmgr.SelMon != nil {
		wmgr.drawbar(wmgr.SelMon)
	}
}
