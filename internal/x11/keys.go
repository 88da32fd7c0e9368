package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// CleanMask strips the NumLock and CapsLock bits from a modifier mask so
// bindings match regardless of which lock keys are toggled.
func (c *Conn) CleanMask(mask uint16) uint16 {
	return mask &^ (c.numLockMask | xproto.ModMaskLock)
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}

// UpdateNumlockMask queries the modifier mapping to find which modifier bit
// NumLock is bound to on this keyboard. The result feeds CleanMask and the
// button/key grab variant tables.
func (c *Conn) UpdateNumlockMask() {
	c.numLockMask = modMaskForKeysym(c.XU, "Num_Lock")
}

// ConfigureIgnoreMods computes every lock-key modifier combination (none,
// CapsLock, NumLock, ScrollLock and their unions) and installs it as
// xevent's globally ignored mod set, so hotkeys registered via
// keybind.KeyPressFun fire regardless of lock-key state. This is the
// callback-dispatch equivalent of grabbing every lock-key modifier variant
// of a key combination explicitly.
func (c *Conn) ConfigureIgnoreMods() {
	xu := c.XU
	caps := uint16(xproto.ModMaskLock)
	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	c.numLockMask = numLock

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	unique := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}
	xevent.IgnoreMods = ignore
}

// GrabButtonAllMods grabs button on win for every lock-key modifier variant
// of mods: {0, LockMask, numlockmask, numlockmask|LockMask}.
func (c *Conn) GrabButtonAllMods(win xproto.Window, button xproto.Button, mods uint16, ownerEvents bool, eventMask uint16) {
	variants := []uint16{0, xproto.ModMaskLock, c.numLockMask, c.numLockMask | xproto.ModMaskLock}
	seen := map[uint16]bool{}
	for _, v := range variants {
		combined := mods | v
		if seen[combined] {
			continue
		}
		seen[combined] = true
		xproto.GrabButton(
			c.XU.Conn(), ownerEvents, win, eventMask,
			xproto.GrabModeAsync, xproto.GrabModeAsync,
			0, 0, byte(button), combined,
		)
	}
}

// UngrabAllButtons releases every button grab on win, an AnyButton/
// AnyModifier ungrab issued before a window's grabs are reinstalled.
func (c *Conn) UngrabAllButtons(win xproto.Window) {
	xproto.UngrabButton(c.XU.Conn(), xproto.ButtonIndexAny, win, xproto.ModMaskAny)
}

// BindKey registers a hotkey on win using a keysym key sequence string
// (e.g. "Mod1-j"), the same idiom termtile's hotkeys.Handler uses.
func (c *Conn) BindKey(win xproto.Window, keySequence string, fn func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		fn()
	}).Connect(c.XU, win, keySequence, true)
}
