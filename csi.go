package headlessterm

// dispatchCSI runs the final byte of a completed CSI sequence (ESC [ ...
// final) against t.csi, already split into its private-mode flag, integer
// parameters, and one-or-two-byte mode by csiAccumulator.parse.
func (t *Term) dispatchCSI() {
	c := &t.csi
	mode := c.mode[0]

	if c.private && mode != 'h' && mode != 'l' && mode != 's' && mode != 'r' {
		t.log.Debug("unhandled private CSI sequence", "mode", string(mode))
		return
	}

	switch mode {
	case '@': // ICH
		t.insertBlank(c.arg(0, 1))
	case 'A': // CUU
		t.moveTo(t.cur.X, t.cur.Y-c.arg(0, 1))
	case 'B', 'e': // CUD, VPR
		t.moveTo(t.cur.X, t.cur.Y+c.arg(0, 1))
	case 'C', 'a': // CUF, HPR
		t.moveTo(t.cur.X+c.arg(0, 1), t.cur.Y)
	case 'D': // CUB
		t.moveTo(t.cur.X-c.arg(0, 1), t.cur.Y)
	case 'E': // CNL
		t.moveTo(0, t.cur.Y+c.arg(0, 1))
	case 'F': // CPL
		t.moveTo(0, t.cur.Y-c.arg(0, 1))
	case 'G', '`': // CHA, HPA
		t.moveTo(c.arg(0, 1)-1, t.cur.Y)
	case 'H', 'f': // CUP, HVP
		t.moveATo(c.arg(1, 1)-1, c.arg(0, 1)-1)
	case 'I': // CHT
		t.putTab(c.arg(0, 1))
	case 'J': // ED
		t.eraseDisplay(c.arg(0, 0))
	case 'K': // EL
		t.eraseLine(c.arg(0, 0))
	case 'S': // SU
		t.scrollUp(t.top, c.arg(0, 1))
	case 'T': // SD
		t.scrollDown(t.top, c.arg(0, 1))
	case 'L': // IL
		t.insertBlankLine(c.arg(0, 1))
	case 'M': // DL
		t.deleteLine(c.arg(0, 1))
	case 'X': // ECH
		n := c.arg(0, 1)
		t.clearRegion(t.cur.X, t.cur.Y, t.cur.X+n-1, t.cur.Y)
	case 'P': // DCH
		t.deleteChar(c.arg(0, 1))
	case 'Z': // CBT
		t.putTab(-c.arg(0, 1))
	case 'd': // VPA
		t.moveATo(t.cur.X, c.arg(0, 1)-1)
	case 'h': // SM
		t.setMode(c.private, true)
	case 'l': // RM
		t.setMode(c.private, false)
	case 'm': // SGR
		t.setAttr()
	case 'n': // DSR
		t.reportDeviceStatus(c.arg(0, 0))
	case 'r': // DECSTBM
		t.setScroll(c.argRaw(0)-1, c.arg(1, t.rows)-1)
	case 's': // save cursor (or DECSLRM if private, not implemented)
		t.saveCursor()
	case 'u': // restore cursor
		t.restoreCursor()
	case 't': // xterm window manipulation
		switch c.arg(0, 0) {
		case 22:
			t.pushTitle()
		case 23:
			t.popTitle()
		}
	case 'i': // MC
		t.mediaCopy(c.arg(0, 0))
	case 'c': // DA
		if c.arg(0, 0) == 0 {
			t.writeResponse(t.vtIdent)
		}
	case 'b': // REP
		if t.lastc != 0 {
			for i := 0; i < c.arg(0, 1); i++ {
				t.putPrintable(t.lastc)
			}
		}
	case 'g': // TBC
		switch c.arg(0, 0) {
		case 0:
			t.clearTabStop(t.cur.X)
		case 3:
			t.clearAllTabStops()
		}
	case ' ':
		if c.mode[1] == 'q' { // DECSCUSR
			t.setCursorStyle(c.arg(0, 1))
		}
	default:
		t.log.Debug("unhandled CSI sequence", "mode", string(c.mode[:]), "private", c.private)
	}
}

// eraseDisplay implements ED. Case 1 only clears rows strictly above the
// cursor when cursor.y > 1 — an off-by-one inherited from the reference
// implementation this core tracks, preserved rather than silently fixed.
func (t *Term) eraseDisplay(n int) {
	switch n {
	case 0:
		t.clearRegion(t.cur.X, t.cur.Y, t.cols-1, t.cur.Y)
		t.clearRegion(0, t.cur.Y+1, t.cols-1, t.rows-1)
	case 1:
		if t.cur.Y > 1 {
			t.clearRegion(0, 0, t.cols-1, t.cur.Y-1)
		}
		t.clearRegion(0, t.cur.Y, t.cur.X, t.cur.Y)
	case 2:
		t.clearRegion(0, 0, t.cols-1, t.rows-1)
	}
}

// eraseLine implements EL.
func (t *Term) eraseLine(n int) {
	switch n {
	case 0:
		t.clearRegion(t.cur.X, t.cur.Y, t.cols-1, t.cur.Y)
	case 1:
		t.clearRegion(0, t.cur.Y, t.cur.X, t.cur.Y)
	case 2:
		t.clearRegion(0, t.cur.Y, t.cols-1, t.cur.Y)
	}
}

func (t *Term) reportDeviceStatus(n int) {
	if n == 6 { // CPR
		t.writeResponse(cprResponse(t.cur.Y+1, t.cur.X+1))
	}
}

func cprResponse(row, col int) string {
	return "\x1b[" + itoa(row) + ";" + itoa(col) + "R"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func (t *Term) setScroll(top, bot int) {
	top = clamp(top, 0, t.rows-1)
	bot = clamp(bot, 0, t.rows-1)
	if top > bot {
		top, bot = bot, top
	}
	t.top, t.bot = top, bot
	t.moveATo(0, 0)
}

func (t *Term) setCursorStyle(n int) {
	if n < 0 || n > 6 {
		return
	}
	if n > 0 { // DECSCUSR 0 and 1 both select a blinking block
		n--
	}
	t.cursorStyle = CursorStyle(n)
	t.cursorP.SetCursorStyle(t.cursorStyle)
}

// mediaCopy implements MC: 4/5 toggle print mode, everything else logged
// and ignored (printer-attached MC 0/1/2/10/11 aren't meaningful headless).
func (t *Term) mediaCopy(n int) {
	switch n {
	case 4:
		t.mode &^= ModePrint
	case 5:
		t.mode |= ModePrint
	default:
		t.log.Debug("unhandled media copy parameter", "n", n)
	}
}

// setMode implements SM/RM: the shared table of ANSI and DEC private modes.
func (t *Term) setMode(private, set bool) {
	c := &t.csi
	for i := 0; i < c.narg; i++ {
		if private {
			t.setPrivateMode(c.argRaw(i), set)
		} else {
			t.setANSIMode(c.argRaw(i), set)
		}
	}
}

func (t *Term) setANSIMode(n int, set bool) {
	switch n {
	case 4: // IRM
		t.setModeFlag(ModeInsert, set)
	case 20: // LNM
		t.setModeFlag(ModeCRLF, set)
	default:
		t.log.Debug("unhandled ANSI mode", "mode", n)
	}
}

func (t *Term) setPrivateMode(n int, set bool) {
	switch n {
	case 1: // DECCKM
		t.setModeFlag(ModeAppCursorKeys, set)
	case 5: // DECSCNM
		t.setModeFlag(ModeReverseVideo, set)
	case 6: // DECOM
		t.cur.setOrigin(set)
		t.moveATo(0, 0)
	case 7: // DECAWM
		t.setModeFlag(ModeWrap, set)
	case 9, 1000, 1002, 1003, 1005, 1006, 1015: // mouse reporting variants
		t.mouseMode = n
		t.mouseP.SetMouseMode(n, set)
	case 25: // DECTCEM
		t.setModeFlag(ModeCursorVisible, set)
	case 1049: // alt screen + save/restore cursor
		if set {
			t.saveCursor()
		}
		t.setAltScreen(set)
		if set {
			t.clearRegion(0, 0, t.cols-1, t.rows-1)
		} else {
			t.restoreCursor()
		}
	case 47, 1047: // alt screen, no cursor save
		if set {
			t.setAltScreen(true)
		} else {
			// Clear the alternate screen while it is still active, then
			// swap back — clearing after the swap would blank the
			// primary screen's surviving content instead.
			t.clearRegion(0, 0, t.cols-1, t.rows-1)
			t.setAltScreen(false)
		}
	case 1048:
		if set {
			t.saveCursor()
		} else {
			t.restoreCursor()
		}
	case 2004: // bracketed paste
		t.setModeFlag(ModeBracketedPaste, set)
	case 12: // att610 cursor blink, not modeled, accepted silently
	default:
		t.log.Debug("unhandled private mode", "mode", n)
	}
}

func (t *Term) setModeFlag(f ModeFlags, set bool) {
	if set {
		t.mode |= f
	} else {
		t.mode &^= f
	}
}

// setAltScreen switches the active screen index and the altscreen mode bit
// and marks the new screen dirty. It clears neither buffer; the mode
// handlers above clear the alternate screen where they need to.
func (t *Term) setAltScreen(enable bool) {
	want := 0
	if enable {
		want = 1
	}
	if t.active == want {
		return
	}
	t.active = want
	t.setModeFlag(ModeAltScreen, enable)
	t.screen().markAllDirty()
}

// setAttr implements SGR, including the 38/48 extended (256-color and
// truecolor) forms.
func (t *Term) setAttr() {
	c := &t.csi
	if c.narg == 0 {
		t.cur.Attrs.Attrs = 0
		t.cur.Attrs.Fg = DefaultColor()
		t.cur.Attrs.Bg = DefaultColor()
		return
	}
	for i := 0; i < c.narg; i++ {
		switch v := c.argRaw(i); v {
		case 0:
			t.cur.Attrs.Attrs = 0
			t.cur.Attrs.Fg = DefaultColor()
			t.cur.Attrs.Bg = DefaultColor()
		case 1:
			t.cur.Attrs.SetFlag(CellFlagBold)
		case 2:
			t.cur.Attrs.SetFlag(CellFlagFaint)
		case 3:
			t.cur.Attrs.SetFlag(CellFlagItalic)
		case 4:
			t.cur.Attrs.SetFlag(CellFlagUnderline)
		case 5, 6:
			t.cur.Attrs.SetFlag(CellFlagBlink)
		case 7:
			t.cur.Attrs.SetFlag(CellFlagReverse)
		case 8:
			t.cur.Attrs.SetFlag(CellFlagInvisible)
		case 9:
			t.cur.Attrs.SetFlag(CellFlagStruck)
		case 22:
			t.cur.Attrs.ClearFlag(CellFlagBold)
			t.cur.Attrs.ClearFlag(CellFlagFaint)
		case 23:
			t.cur.Attrs.ClearFlag(CellFlagItalic)
		case 24:
			t.cur.Attrs.ClearFlag(CellFlagUnderline)
		case 25:
			t.cur.Attrs.ClearFlag(CellFlagBlink)
		case 27:
			t.cur.Attrs.ClearFlag(CellFlagReverse)
		case 28:
			t.cur.Attrs.ClearFlag(CellFlagInvisible)
		case 29:
			t.cur.Attrs.ClearFlag(CellFlagStruck)
		case 30, 31, 32, 33, 34, 35, 36, 37:
			t.cur.Attrs.Fg = PaletteColor(uint8(v - 30))
		case 38:
			if col, adv, ok := t.parseExtendedColor(i); ok {
				t.cur.Attrs.Fg = col
				i += adv
			}
		case 39:
			t.cur.Attrs.Fg = DefaultColor()
		case 40, 41, 42, 43, 44, 45, 46, 47:
			t.cur.Attrs.Bg = PaletteColor(uint8(v - 40))
		case 48:
			if col, adv, ok := t.parseExtendedColor(i); ok {
				t.cur.Attrs.Bg = col
				i += adv
			}
		case 49:
			t.cur.Attrs.Bg = DefaultColor()
		case 90, 91, 92, 93, 94, 95, 96, 97:
			t.cur.Attrs.Fg = PaletteColor(uint8(v-90) + 8)
		case 100, 101, 102, 103, 104, 105, 106, 107:
			t.cur.Attrs.Bg = PaletteColor(uint8(v-100) + 8)
		default:
			t.log.Debug("unhandled SGR attribute", "n", v)
		}
	}
}

// parseExtendedColor parses the ;5;n (256-color) or ;2;r;g;b (truecolor)
// tail following an SGR 38/48 parameter, starting at index i+1. It returns
// the color, how many extra parameters it consumed, and whether parsing
// succeeded.
func (t *Term) parseExtendedColor(i int) (Color, int, bool) {
	c := &t.csi
	if i+1 >= c.narg {
		return Color{}, 0, false
	}
	switch c.argRaw(i + 1) {
	case 5:
		if i+2 >= c.narg {
			return Color{}, 0, false
		}
		return PaletteColor(uint8(c.argRaw(i + 2))), 2, true
	case 2:
		if i+4 >= c.narg {
			return Color{}, 0, false
		}
		r := uint8(c.argRaw(i + 2))
		g := uint8(c.argRaw(i + 3))
		b := uint8(c.argRaw(i + 4))
		return RGBColor(r, g, b), 4, true
	}
	return Color{}, 0, false
}
