// Package wm is the core state machine: the Client/Monitor data model, the
// rule matcher, the layout engine, focus and stacking policy, the event
// dispatcher, the interactive move/resize modal, the multi-head
// reconciler, and the bar's textual model.
package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/mistwood/tilewm/internal/geom"
)

// Client is a single managed top-level window. The Next/SNext fields are
// intrusive singly-linked list pointers: Next threads the per-monitor
// client order list (insertion/zoom order), SNext threads the focus
// stack (most-recently-focused first). A Client belongs to exactly one
// Monitor and appears in exactly one position of each list.
type Client struct {
	Name string

	X, Y, W, H             int
	OldX, OldY, OldW, OldH int

	BaseW, BaseH         int
	IncW, IncH           int
	MaxW, MaxH           int
	MinW, MinH           int
	MinAspect, MaxAspect float64

	BW, OldBW int

	Tags uint32

	IsFixed    bool
	IsFloating bool
	IsUrgent   bool
	NeverFocus bool

	Mon   *Monitor
	Win   xproto.Window
	Next  *Client // client order list (per monitor)
	SNext *Client // focus stack (per monitor)
}

// SizeHints adapts the client's cached ICCCM hints into the geom package's
// pure representation.
func (c *Client) SizeHints() geom.SizeHints {
	return geom.SizeHints{
		BaseW: c.BaseW, BaseH: c.BaseH,
		IncW: c.IncW, IncH: c.IncH,
		MinW: c.MinW, MinH: c.MinH,
		MaxW: c.MaxW, MaxH: c.MaxH,
		MinAspect: c.MinAspect, MaxAspect: c.MaxAspect,
	}
}

// Rect returns the client's content-area geometry (excluding border).
func (c *Client) Rect() geom.Rect {
	return geom.Rect{X: c.X, Y: c.Y, Width: c.W, Height: c.H}
}

// IsVisible reports whether c's tag mask intersects its monitor's
// currently viewed tagset.
func (c *Client) IsVisible() bool {
	return c.Tags&c.Mon.TagSet[c.Mon.SelTags] != 0
}
