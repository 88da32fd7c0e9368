package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/mistwood/tilewm/internal/config"
)

// barCell is one horizontal slice of a monitor's bar, in screen-x order:
// one cell per tag, the layout symbol, then — on the selected monitor — the
// status text right-aligned with the focused client's title filling the
// gap. The same cells drive both rendering and button-click resolution.
type barCell struct {
	area   config.ClickArea
	index  int // tag index, meaningful only when area == ClickTagBar
	text   string
	x0, x1 int

	selected bool // tag is in the monitor's viewed tagset / cell uses the focused palette
	occupied bool // some client on this monitor carries the tag
	selhere  bool // the focused client carries the tag
	urgent   bool // some client carrying the tag is urgent
}

// cellWidth sizes a cell to its text plus half a character of padding on
// each side.
func (wmgr *Manager) cellWidth(text string) int {
	return wmgr.charW*len(text) + wmgr.charW
}

// barCells computes monitor m's bar model in its current state.
func (wmgr *Manager) barCells(m *Monitor) []barCell {
	occ, urg := occupiedAndUrgent(m)
	view := m.Tag()
	var selTags uint32
	if m == wmgr.SelMon && m.Sel != nil {
		selTags = m.Sel.Tags
	}

	cells := make([]barCell, 0, len(wmgr.Cfg.Tags)+3)
	x := 0
	for i, label := range wmgr.Cfg.Tags {
		bit := uint32(1) << uint(i)
		x1 := x + wmgr.cellWidth(label)
		cells = append(cells, barCell{
			area: config.ClickTagBar, index: i, text: label, x0: x, x1: x1,
			selected: view&bit != 0,
			occupied: occ&bit != 0,
			selhere:  selTags&bit != 0,
			urgent:   urg&bit != 0,
		})
		x = x1
	}

	ltX1 := x + wmgr.cellWidth(m.LtSymbol)
	cells = append(cells, barCell{area: config.ClickLtSymbol, text: m.LtSymbol, x0: x, x1: ltX1})
	x = ltX1

	titleEnd := m.MW
	if m == wmgr.SelMon && wmgr.StatusText != "" {
		statusW := wmgr.cellWidth(wmgr.StatusText)
		if statusW > m.MW-x {
			statusW = m.MW - x
		}
		cells = append(cells, barCell{
			area: config.ClickStatusText, text: wmgr.StatusText,
			x0: m.MW - statusW, x1: m.MW,
		})
		titleEnd = m.MW - statusW
	}

	title := ""
	if m.Sel != nil {
		title = m.Sel.Name
	}
	cells = append(cells, barCell{
		area: config.ClickWinTitle, text: title, x0: x, x1: titleEnd,
		selected: m == wmgr.SelMon && m.Sel != nil,
	})
	return cells
}

// resolveClick finds the click region a bar-relative x coordinate falls in.
func (wmgr *Manager) resolveClick(m *Monitor, x int) config.ClickArea {
	for _, cell := range wmgr.barCells(m) {
		if x >= cell.x0 && x < cell.x1 {
			return cell.area
		}
	}
	return config.ClickRootWin
}

// occupiedAndUrgent returns the bitmask of tags that have at least one
// client, and the bitmask of tags with at least one urgent client — the two
// bitmasks a bar redraw precomputes before rendering tag cells.
func occupiedAndUrgent(m *Monitor) (occ, urg uint32) {
	for c := m.Clients; c != nil; c = c.Next {
		occ |= c.Tags
		if c.IsUrgent {
			urg |= c.Tags
		}
	}
	return
}

// barY returns the bar window's y position: flush against the top or bottom
// screen edge when shown, negative (off-screen) when hidden.
func (wmgr *Manager) barY(m *Monitor) int {
	if !m.ShowBar {
		return -wmgr.BarHeight
	}
	if m.TopBar {
		return m.MY
	}
	return m.MY + m.MH - wmgr.BarHeight
}

// initBarFont opens the configured bar font, falling back to the server's
// builtin "fixed" before giving up, and builds the graphics context every
// bar draws through.
func (wmgr *Manager) initBarFont() error {
	conn := wmgr.Conn.XU.Conn()

	font, err := xproto.NewFontId(conn)
	if err != nil {
		return err
	}
	name := wmgr.Cfg.Font
	if err := xproto.OpenFontChecked(conn, font, uint16(len(name)), name).Check(); err != nil {
		if name == "fixed" {
			return fmt.Errorf("wm: cannot load font %q: %w", name, err)
		}
		if err := xproto.OpenFontChecked(conn, font, uint16(len("fixed")), "fixed").Check(); err != nil {
			return fmt.Errorf("wm: cannot load font %q or fallback \"fixed\": %w", name, err)
		}
	}

	wmgr.charW, wmgr.fontAscent = 6, 11
	if info, err := xproto.QueryFont(conn, xproto.Fontable(font)).Reply(); err == nil && info != nil {
		if cw := int(info.MaxBounds.CharacterWidth); cw > 0 {
			wmgr.charW = cw
		}
		if fa := int(info.FontAscent); fa > 0 {
			wmgr.fontAscent = fa
		}
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return err
	}
	xproto.CreateGC(conn, gc, xproto.Drawable(wmgr.Conn.Root),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont,
		[]uint32{colorPixel(wmgr.Cfg.NormFg), colorPixel(wmgr.Cfg.NormBg), uint32(font)})
	wmgr.barGC = gc
	return nil
}

// updatebars creates m's bar window if it doesn't exist yet, and keeps its
// geometry in step with the monitor rectangle otherwise.
func (wmgr *Manager) updatebars(m *Monitor) {
	conn := wmgr.Conn.XU.Conn()
	if m.BarWin != 0 {
		xproto.ConfigureWindow(
			conn, m.BarWin,
			xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(m.MX), uint32(wmgr.barY(m)), uint32(m.MW), uint32(wmgr.BarHeight)},
		)
		return
	}
	screen := wmgr.Conn.XU.Screen()
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return
	}
	xproto.CreateWindowChecked(
		conn, screen.RootDepth, wid, wmgr.Conn.Root,
		int16(m.MX), int16(wmgr.barY(m)), uint16(m.MW), uint16(wmgr.BarHeight),
		0, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{
			colorPixel(wmgr.Cfg.NormBg),
			1,
			uint32(xproto.EventMaskButtonPress | xproto.EventMaskExposure),
		},
	).Check()
	m.BarWin = wid
	wmgr.attachBarHandlers(wid)
	xproto.MapWindow(conn, wid)
}

// updatebarpos recomputes the work area and bar window position for m.
func (wmgr *Manager) updatebarpos(m *Monitor) {
	m.WY, m.WH = m.MY, m.MH
	if m.ShowBar {
		m.WH -= wmgr.BarHeight
		if m.TopBar {
			m.WY += wmgr.BarHeight
		}
	}
	m.WX, m.WW = m.MX, m.MW
}

// drawbar renders monitor m's bar cell by cell.
func (wmgr *Manager) drawbar(m *Monitor) {
	if m.BarWin == 0 || wmgr.barGC == 0 {
		return
	}
	// The cells tile the full bar width, so no separate blanking pass is
	// needed between draws.
	for _, cell := range wmgr.barCells(m) {
		wmgr.drawCell(m, cell)
	}
	wmgr.Conn.XU.Conn().Sync()
}

func (wmgr *Manager) drawCell(m *Monitor, cell barCell) {
	conn := wmgr.Conn.XU.Conn()
	drawable := xproto.Drawable(m.BarWin)

	fg, bg := wmgr.Cfg.NormFg, wmgr.Cfg.NormBg
	if cell.selected {
		fg, bg = wmgr.Cfg.SelFg, wmgr.Cfg.SelBg
	}
	if cell.urgent {
		fg, bg = bg, fg
	}

	w := cell.x1 - cell.x0
	if w <= 0 {
		return
	}

	xproto.ChangeGC(conn, wmgr.barGC, xproto.GcForeground, []uint32{colorPixel(bg)})
	xproto.PolyFillRectangle(conn, drawable, wmgr.barGC, []xproto.Rectangle{{
		X: int16(cell.x0), Y: 0, Width: uint16(w), Height: uint16(wmgr.BarHeight),
	}})

	xproto.ChangeGC(conn, wmgr.barGC,
		xproto.GcForeground|xproto.GcBackground,
		[]uint32{colorPixel(fg), colorPixel(bg)})

	text := cell.text
	if maxChars := (w - wmgr.charW) / wmgr.charW; maxChars >= 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	if text != "" {
		y := (wmgr.BarHeight + wmgr.fontAscent) / 2
		xproto.ImageText8(conn, byte(len(text)), drawable, wmgr.barGC,
			int16(cell.x0+wmgr.charW/2), int16(y), text)
	}

	if cell.area == config.ClickTagBar && cell.occupied {
		sq := wmgr.fontAscent / 2
		rect := []xproto.Rectangle{{X: int16(cell.x0 + 1), Y: 1, Width: uint16(sq), Height: uint16(sq)}}
		if cell.selhere {
			xproto.PolyFillRectangle(conn, drawable, wmgr.barGC, rect)
		} else {
			xproto.PolyRectangle(conn, drawable, wmgr.barGC, rect)
		}
	}
}
