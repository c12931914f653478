package headlessterm

// handleControl implements the C0/C1 control-code handler: cursor motion,
// tab stops, charset shifts, string-sequence entry/exit, and the small set
// of codes that abort an in-progress escape or string sequence (BEL, CAN,
// SUB, ESC, and any C1 control).
func (t *Term) handleControl(u rune) {
	switch u {
	case 0x09: // HT
		t.putTab(1)
		return
	case 0x08: // BS
		t.moveTo(t.cur.X-1, t.cur.Y)
		return
	case 0x0D: // CR
		t.moveTo(0, t.cur.Y)
		return
	case 0x0C, 0x0B, 0x0A: // FF, VT, LF
		t.newline(t.mode&ModeCRLF != 0)
		return
	case 0x07: // BEL
		if t.esc&escSTREnd != 0 {
			t.handleSTR()
		} else {
			t.bell.Ring()
		}
	case 0x1B: // ESC
		t.csi.reset()
		t.esc &^= escCSI | escAltCharset | escTest
		t.esc |= escStart
		return
	case 0x0E, 0x0F: // SO, SI
		if u == 0x0E {
			t.charset = 1
		} else {
			t.charset = 0
		}
		return
	case 0x1A: // SUB
		t.setChar('?', t.cur.Attrs, t.cur.X, t.cur.Y)
		fallthrough
	case 0x18: // CAN
		t.csi.reset()
	case 0x05, 0x00, 0x11, 0x13, 0x7F: // ENQ, NUL, XON, XOFF, DEL
		return
	case 0x85: // NEL
		t.newline(true)
	case 0x88: // HTS
		t.setTabStop(t.cur.X)
	case 0x9A: // DECID
		t.writeResponse(t.vtIdent)
	case 0x90, 0x98, 0x9D, 0x9E, 0x9F: // DCS, SOS, OSC, PM, APC (8-bit forms)
		t.beginSTR(byte(u))
		return
	default:
		// 0x80-0x9C and 0x9B-0x9C C1 controls this core doesn't implement
		// (PAD, HOP, BPH, NBH, IND, SSA, ESA, ...) fall through and, like
		// st.c, only abort any in-progress string/escape sequence.
	}
	t.esc &^= escSTREnd | escSTR
}

// beginSTR starts accumulating an OSC/DCS/PM/APC string body. ascii maps an
// 8-bit C1 introducer to its 7-bit type byte the way tstrsequence does.
func (t *Term) beginSTR(ascii byte) {
	typ := ascii
	switch ascii {
	case 0x90:
		typ = 'P'
	case 0x98:
		typ = 'X'
	case 0x9F:
		typ = '_'
	case 0x9E:
		typ = '^'
	case 0x9D:
		typ = ']'
	}
	t.str.reset(typ)
	t.esc |= escSTR
}

func (t *Term) writeResponse(s string) {
	_, _ = t.response.Write([]byte(s))
}
