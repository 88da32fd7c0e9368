package wm

import "strconv"

// tile implements the single-master-plus-stack layout: the first tiled
// client fills a master column sized by m.MFact; every other tiled client
// divides the remaining column into equal-height rows, with the last row
// absorbing whatever pixel remainder integer division left over.
func (wmgr *Manager) tile(m *Monitor) {
	master := NextTiled(m.Clients)
	if master == nil {
		return
	}
	n := 0
	for t := master; t != nil; t = NextTiled(t.Next) {
		n++
	}

	mw := int(float64(m.WW) * m.MFact)
	masterW := m.WW
	if n > 1 {
		masterW = mw
	}
	wmgr.resize(master, m.WX, m.WY, masterW-2*master.BW, m.WH-2*master.BW, false)
	if n == 1 {
		return
	}

	// The master may have been clamped wider than mw by its own size
	// hints; the stack column starts past its real right edge in that
	// case.
	x := m.WX + mw
	if master.X+master.W+2*master.BW > m.WX+mw {
		x = master.X + master.W + 2*master.BW
	}
	stackW := m.WX + m.WW - x

	stackN := n - 1
	h := m.WH / stackN
	if h < wmgr.BarHeight {
		h = m.WH
	}

	y := m.WY
	i := 0
	for t := NextTiled(master.Next); t != nil; t = NextTiled(t.Next) {
		rowH := h - 2*t.BW
		if i+1 == stackN {
			rowH = m.WY + m.WH - y - 2*t.BW
		}
		wmgr.resize(t, x, y, stackW-2*t.BW, rowH, false)
		if h != m.WH {
			y += t.H + 2*t.BW
		}
		i++
	}
}

// monocle fills the entire work area with every visible non-floating
// client, stacked in z-order; only the topmost is seen. When clients are
// present the layout symbol shows the count.
func (wmgr *Manager) monocle(m *Monitor) {
	n := 0
	for c := m.Clients; c != nil; c = c.Next {
		if c.IsVisible() {
			n++
		}
	}
	if n > 0 {
		m.LtSymbol = "[" + strconv.Itoa(n) + "]"
	}
	for c := NextTiled(m.Clients); c != nil; c = NextTiled(c.Next) {
		wmgr.resize(c, m.WX, m.WY, m.WW-2*c.BW, m.WH-2*c.BW, false)
	}
}
