// Package x11 owns the connection to the X server: bringing up substructure
// redirect on the root window, the atom and cursor registries, and the
// modifier-mask-aware key/button grab helpers the rest of the manager uses.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
)

// Conn wraps the xgbutil connection and root window this process manages.
type Conn struct {
	XU   *xgbutil.XUtil
	Root xproto.Window

	numLockMask uint16
}

// rootEventMask is the event set a window manager must select on the root
// window: SubstructureRedirect is what makes us the window manager, the
// rest let us track geometry, input, and property changes on root.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange

// Open connects to the X server named by $DISPLAY, selects substructure
// redirect on the root window, and initializes keybind/mousebind state.
// Selecting SubstructureRedirect fails with BadAccess if another window
// manager already holds it, which is how we detect one is already running.
func Open() (*Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}

	root := xu.RootWin()
	if err := xproto.ChangeWindowAttributesChecked(
		xu.Conn(),
		root,
		xproto.CwEventMask,
		[]uint32{rootEventMask},
	).Check(); err != nil {
		return nil, fmt.Errorf("x11: another window manager is already running: %w", err)
	}

	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	return &Conn{XU: xu, Root: root}, nil
}

// Close tears down the X connection.
func (c *Conn) Close() {
	c.XU.Conn().Close()
}

// Sync flushes the request queue and waits for a reply, used after a burst
// of window configuration requests to make their effects visible server-side.
func (c *Conn) Sync() {
	xproto.GetInputFocus(c.XU.Conn()).Reply()
}

// ScreenSize returns the root window's width and height in pixels.
func (c *Conn) ScreenSize() (int, int) {
	screen := c.XU.Screen()
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}
