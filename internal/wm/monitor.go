package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/mistwood/tilewm/internal/config"
)

// Monitor is one physical display head and the tag/layout state bound to
// it. MX/MY/MW/MH is the full monitor rectangle; WX/WY/WW/WH is the work
// area (monitor rectangle minus the bar). TagSet holds two tag masks —
// SelTags selects which of the two is "current" — so toggling between two
// views doesn't lose the previous one.
type Monitor struct {
	LtSymbol string
	MFact    float64
	Num      int

	MX, MY, MW, MH int
	WX, WY, WW, WH int

	SelTags int
	SelLt   int
	TagSet  [2]uint32

	ShowBar bool
	TopBar  bool

	Clients *Client
	Sel     *Client
	Stack   *Client
	Next    *Monitor

	BarWin xproto.Window
	Lt     [2]*config.LayoutEntry
}

// Tag returns m's currently viewed tag mask.
func (m *Monitor) Tag() uint32 {
	return m.TagSet[m.SelTags]
}

// Layout returns the currently selected layout entry.
func (m *Monitor) Layout() *config.LayoutEntry {
	return m.Lt[m.SelLt]
}

// NextTiled returns the first visible, non-floating client in the client
// order list starting at c (inclusive).
func NextTiled(c *Client) *Client {
	for c != nil && (c.IsFloating || !c.IsVisible()) {
		c = c.Next
	}
	return c
}
