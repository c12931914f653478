package headlessterm

// dispatchESC handles a single byte immediately following a lone ESC, for
// every sequence that isn't a CSI/STR/charset-designator/test introducer
// (those set a state flag and return false so the caller keeps collecting
// bytes). It reports whether the escape sequence is now complete.
func (t *Term) dispatchESC(b byte) bool {
	switch b {
	case '[':
		t.esc |= escCSI
		return false
	case '#':
		t.esc |= escTest
		return false
	case '%':
		t.esc |= escUTF8
		return false
	case 'P', 'X', '_', '^', ']', 'k':
		t.beginSTR(b)
		return false
	case 'n', 'o':
		t.charset = 2 + int(b-'n')
	case '(', ')', '*', '+':
		t.icharset = int(b - '(')
		t.esc |= escAltCharset
		return false
	case 'D': // IND
		if t.cur.Y == t.bot {
			t.scrollUp(t.top, 1)
		} else {
			t.moveTo(t.cur.X, t.cur.Y+1)
		}
	case 'E': // NEL
		t.newline(true)
	case 'H': // HTS
		t.setTabStop(t.cur.X)
	case 'M': // RI
		if t.cur.Y == t.top {
			t.scrollDown(t.top, 1)
		} else {
			t.moveTo(t.cur.X, t.cur.Y-1)
		}
	case 'Z': // DECID
		t.writeResponse(t.vtIdent)
	case 'c': // RIS
		t.resetHard()
	case '=': // DECPAM
		t.mode |= ModeAppKeypad
	case '>': // DECPNM
		t.mode &^= ModeAppKeypad
	case '7': // DECSC
		t.saveCursor()
	case '8': // DECRC
		t.restoreCursor()
	case '\\': // ST
		if t.esc&escSTREnd != 0 {
			t.handleSTR()
		}
	default:
		t.log.Debug("unknown ESC sequence", "byte", b)
	}
	return true
}

// resetHard implements RIS (ESC c): a full terminal reset. st.c's treset
// loops tswapscreen twice, which nets zero screen swaps; here reset()
// rebuilds both screens blank and selects the primary screen directly, so
// no swap is performed.
func (t *Term) resetHard() {
	t.reset()
	t.titleP.SetTitle("")
	t.title = ""
}
