package x11

import (
	"github.com/BurntSushi/xgb/xproto"
)

// Standard X cursor font glyph indices (cursorfont.h) for the idle,
// resize, and move cursor shapes this manager allocates at startup.
const (
	glyphLeftPtr = 68  // XC_left_ptr
	glyphSizing  = 120 // XC_sizing
	glyphFleur   = 52  // XC_fleur
)

// Cursors holds the three cursor glyphs this manager swaps the root and
// grab cursor between: idle, resizing, and moving.
type Cursors struct {
	Normal xproto.Cursor
	Resize xproto.Cursor
	Move   xproto.Cursor
}

func loadCursor(c *Conn, font xproto.Font, glyph uint16) xproto.Cursor {
	cursor, err := xproto.NewCursorId(c.XU.Conn())
	if err != nil {
		return 0
	}
	xproto.CreateGlyphCursor(
		c.XU.Conn(), cursor, font, font,
		glyph, glyph+1,
		0, 0, 0,
		0xffff, 0xffff, 0xffff,
	)
	return cursor
}

// LoadCursors opens the builtin "cursor" font and creates the three cursor
// glyphs the manager needs.
func LoadCursors(c *Conn) (*Cursors, error) {
	font, err := xproto.NewFontId(c.XU.Conn())
	if err != nil {
		return nil, err
	}
	if err := xproto.OpenFontChecked(c.XU.Conn(), font, uint16(len("cursor")), "cursor").Check(); err != nil {
		return nil, err
	}

	return &Cursors{
		Normal: loadCursor(c, font, glyphLeftPtr),
		Resize: loadCursor(c, font, glyphSizing),
		Move:   loadCursor(c, font, glyphFleur),
	}, nil
}

// SetRootCursor applies a cursor to the root window's background, the idle
// mouse shape shown whenever the pointer is over empty root territory.
func (c *Conn) SetRootCursor(cursor xproto.Cursor) {
	xproto.ChangeWindowAttributes(c.XU.Conn(), c.Root, xproto.CwCursor, []uint32{uint32(cursor)})
}
