package headlessterm

// CursorStyle selects how a host should render the text cursor (DECSCUSR).
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// CursorState is a small bitset carried on the cursor itself: wrap-next
// (the next printable character should wrap before it is drawn) and origin
// mode (DECOM: cursor addressing is relative to the scroll region).
type CursorState uint8

const (
	CursorWrapNext CursorState = 1 << iota
	CursorOrigin
)

// TCursor is the terminal's cursor: position, the attribute template applied
// to newly written cells (mutated by SGR), and the wrap-next/origin bits.
type TCursor struct {
	X, Y  int
	Attrs Cell // template cell; Char is ignored, Fg/Bg/Attrs are live SGR state
	State CursorState
}

// NewTCursor returns a cursor at (0,0) with default attributes.
func NewTCursor() TCursor {
	return TCursor{Attrs: NewCell()}
}

func (c *TCursor) setWrapNext(v bool) {
	if v {
		c.State |= CursorWrapNext
	} else {
		c.State &^= CursorWrapNext
	}
}

func (c *TCursor) wrapNext() bool { return c.State&CursorWrapNext != 0 }

func (c *TCursor) setOrigin(v bool) {
	if v {
		c.State |= CursorOrigin
	} else {
		c.State &^= CursorOrigin
	}
}

func (c *TCursor) origin() bool { return c.State&CursorOrigin != 0 }

// CharsetMode is the glyph-translation mode assigned to a G0-G3 slot by
// ESC ( / ESC ) / ESC * / ESC +.
type CharsetMode int

const (
	CharsetUSA CharsetMode = iota
	CharsetGraphic0
)

// SavedCursor is the full state captured by DECSC / CSI s and restored by
// DECRC / CSI u: position, attribute template, origin mode and the full
// charset translation table. There are exactly two slots, one per screen
// buffer, addressed by the altscreen bit.
type SavedCursor struct {
	X, Y     int
	Attrs    Cell
	Origin   bool
	Charset  int
	Trantbl  [4]CharsetMode
}
