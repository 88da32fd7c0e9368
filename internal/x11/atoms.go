package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Atoms caches the interned atom ids this manager cares about: the ICCCM
// protocol atoms used for client-message dispatch, plus the EWMH atoms
// this core advertises (_NET_SUPPORTED, _NET_WM_NAME, _NET_ACTIVE_WINDOW).
type Atoms struct {
	WMProtocols  xproto.Atom
	WMDeleteWin  xproto.Atom
	WMState      xproto.Atom
	WMTakeFocus  xproto.Atom
	NetSupported xproto.Atom
	NetWMName    xproto.Atom
	NetActiveWin xproto.Atom
}

func internAtom(c *Conn, name string) xproto.Atom {
	reply, err := xproto.InternAtom(c.XU.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0
	}
	return reply.Atom
}

// InternAtoms interns the atoms this manager speaks. Called once at setup.
func InternAtoms(c *Conn) *Atoms {
	return &Atoms{
		WMProtocols:  internAtom(c, "WM_PROTOCOLS"),
		WMDeleteWin:  internAtom(c, "WM_DELETE_WINDOW"),
		WMState:      internAtom(c, "WM_STATE"),
		WMTakeFocus:  internAtom(c, "WM_TAKE_FOCUS"),
		NetSupported: internAtom(c, "_NET_SUPPORTED"),
		NetWMName:    internAtom(c, "_NET_WM_NAME"),
		NetActiveWin: internAtom(c, "_NET_ACTIVE_WINDOW"),
	}
}

// AdvertiseSupported writes _NET_SUPPORTED on the root window. This manager
// implements only two EWMH atoms (_NET_WM_NAME and _NET_ACTIVE_WINDOW) —
// it does not claim compositing, struts, or desktop-switching EWMH
// support.
func AdvertiseSupported(c *Conn) error {
	return ewmh.SupportedSet(c.XU, []string{
		"_NET_SUPPORTED",
		"_NET_WM_NAME",
		"_NET_ACTIVE_WINDOW",
	})
}

// SetActiveWindow publishes _NET_ACTIVE_WINDOW for the currently focused
// client, or clears it (writes None) when nothing is focused.
func SetActiveWindow(c *Conn, win xproto.Window) {
	ewmh.ActiveWindowSet(c.XU, win)
}

// SetWMName publishes this manager's name via _NET_WM_NAME on a given
// window; Setup calls it on the root window.
func SetWMName(c *Conn, win xproto.Window, name string) {
	ewmh.WmNameSet(c.XU, win, name)
}

// supportsProtocol reports whether win advertises proto in its WM_PROTOCOLS
// property.
func (a *Atoms) supportsProtocol(c *Conn, win xproto.Window, proto xproto.Atom) bool {
	reply, err := xproto.GetProperty(
		c.XU.Conn(), false, win, a.WMProtocols,
		xproto.AtomAtom, 0, (1<<32)-1,
	).Reply()
	if err != nil || reply == nil {
		return false
	}
	n := int(reply.ValueLen)
	for i := 0; i < n; i++ {
		off := i * 4
		if off+4 > len(reply.Value) {
			break
		}
		atom := xproto.Atom(
			uint32(reply.Value[off]) |
				uint32(reply.Value[off+1])<<8 |
				uint32(reply.Value[off+2])<<16 |
				uint32(reply.Value[off+3])<<24,
		)
		if atom == proto {
			return true
		}
	}
	return false
}

// sendProtocol delivers a WM_PROTOCOLS client message carrying proto.
func (a *Atoms) sendProtocol(c *Conn, win xproto.Window, proto xproto.Atom) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   a.WMProtocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(proto), xproto.TimeCurrentTime, 0, 0, 0}),
	}
	return xproto.SendEventChecked(c.XU.Conn(), false, win, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// IsProtoDelete reports whether win advertises WM_DELETE_WINDOW.
func (a *Atoms) IsProtoDelete(c *Conn, win xproto.Window) bool {
	return a.supportsProtocol(c, win, a.WMDeleteWin)
}

// SendDeleteWindow sends a WM_DELETE_WINDOW client message, the graceful
// half of killclient.
func (a *Atoms) SendDeleteWindow(c *Conn, win xproto.Window) error {
	return a.sendProtocol(c, win, a.WMDeleteWin)
}

// SendTakeFocus sends WM_TAKE_FOCUS if win advertises it, reporting whether
// a message went out.
func (a *Atoms) SendTakeFocus(c *Conn, win xproto.Window) bool {
	if !a.supportsProtocol(c, win, a.WMTakeFocus) {
		return false
	}
	return a.sendProtocol(c, win, a.WMTakeFocus) == nil
}

// wmState values for the ICCCM WM_STATE property.
const (
	WMStateWithdrawn = 0
	WMStateNormal    = 1
	WMStateIconic    = 3
)

// GetWMState reads the ICCCM WM_STATE property from win, reporting whether
// the property was present and well-formed.
func (a *Atoms) GetWMState(c *Conn, win xproto.Window) (uint32, bool) {
	reply, err := xproto.GetProperty(
		c.XU.Conn(), false, win, a.WMState, a.WMState, 0, 2,
	).Reply()
	if err != nil || reply == nil || len(reply.Value) < 4 {
		return 0, false
	}
	state := uint32(reply.Value[0]) |
		uint32(reply.Value[1])<<8 |
		uint32(reply.Value[2])<<16 |
		uint32(reply.Value[3])<<24
	return state, true
}

// SetWMState writes the ICCCM WM_STATE property on win.
func (a *Atoms) SetWMState(c *Conn, win xproto.Window, state uint32) {
	xproto.ChangeProperty(
		c.XU.Conn(), xproto.PropModeReplace, win, a.WMState, a.WMState,
		32, 2, []byte{
			byte(state), byte(state >> 8), byte(state >> 16), byte(state >> 24),
			0, 0, 0, 0,
		},
	)
}
