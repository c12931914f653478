package headlessterm

// escState is the escape-sequence state machine's bitset. It starts empty
// (idle) and accumulates flags as an escape sequence is recognized; every
// flag is cleared once the sequence is dispatched.
type escState uint16

const (
	escStart escState = 1 << iota // ESC seen, not yet classified
	escCSI                        // accumulating a CSI sequence
	escSTR                        // accumulating an OSC/DCS/PM/APC string
	escAltCharset                 // ESC ( / ) / * / + seen, next byte designates a charset
	escSTREnd                     // a string sequence's terminator byte arrived
	escTest                       // ESC # seen (DEC screen alignment test)
	escUTF8                       // ESC % seen (UTF-8 designate)
)

// csiAccumulator collects the bytes of a CSI sequence (ESC [ ... final)
// until a final byte or the raw-buffer cap is reached.
type csiAccumulator struct {
	buf     []byte
	args    [16]int
	narg    int
	private bool
	mode    [2]byte
}

const csiMaxRaw = 512

func (c *csiAccumulator) reset() { *c = csiAccumulator{} }

// arg returns parameter i, defaulting to def when it is absent or zero —
// the DEFAULT(p, v) pattern used throughout the CSI dispatch table.
func (c *csiAccumulator) arg(i, def int) int {
	if i >= c.narg || c.args[i] == 0 {
		return def
	}
	return c.args[i]
}

// argRaw returns parameter i without substituting a default, or 0 if absent.
func (c *csiAccumulator) argRaw(i int) int {
	if i >= c.narg {
		return 0
	}
	return c.args[i]
}

// parse splits the accumulated raw buffer into the private-mode flag,
// semicolon-delimited integer parameters (cap 16), and a one-or-two-byte
// final mode, mirroring csiparse's behavior exactly (including mapping
// overflowed parameters to -1).
func (c *csiAccumulator) parse() {
	p := c.buf
	i := 0
	if len(p) > 0 && p[0] == '?' {
		c.private = true
		i = 1
	}
	c.narg = 0
	for i < len(p) && c.narg < len(c.args) {
		start := i
		for i < len(p) && p[i] >= '0' && p[i] <= '9' {
			i++
		}
		v := 0
		overflow := false
		for _, ch := range p[start:i] {
			v = v*10 + int(ch-'0')
			if v > 1<<30 {
				overflow = true
			}
		}
		if overflow {
			v = -1
		}
		c.args[c.narg] = v
		c.narg++
		if i >= len(p) || p[i] != ';' {
			break
		}
		i++
	}
	if i < len(p) {
		c.mode[0] = p[i]
		i++
	}
	if i < len(p) {
		c.mode[1] = p[i]
	}
}

// strAccumulator collects an OSC/DCS/PM/APC body, growing by doubling from
// an initial 512 bytes up to a ceiling that resists unbounded memory growth
// on malicious/unterminated input.
type strAccumulator struct {
	typ byte
	buf []byte
}

const (
	strInitialCap = 512
	strMaxCap     = 16 << 20
)

func (s *strAccumulator) reset(typ byte) {
	s.typ = typ
	s.buf = s.buf[:0]
}

func (s *strAccumulator) append(p []byte) (accepted bool) {
	if s.buf == nil {
		s.buf = make([]byte, 0, strInitialCap)
	}
	if len(s.buf)+len(p) > cap(s.buf) {
		if cap(s.buf) >= strMaxCap {
			return false
		}
		newCap := cap(s.buf) * 2
		if newCap == 0 {
			newCap = strInitialCap
		}
		for newCap < len(s.buf)+len(p) && newCap < strMaxCap {
			newCap *= 2
		}
		grown := make([]byte, len(s.buf), newCap)
		copy(grown, s.buf)
		s.buf = grown
	}
	s.buf = append(s.buf, p...)
	return true
}

// args splits the accumulated body on ';' into at most 16 arguments.
func (s *strAccumulator) args() [][]byte {
	const maxArgs = 16
	out := make([][]byte, 0, maxArgs)
	start := 0
	for i := 0; i < len(s.buf) && len(out) < maxArgs-1; i++ {
		if s.buf[i] == ';' {
			out = append(out, s.buf[start:i])
			start = i + 1
		}
	}
	out = append(out, s.buf[start:])
	return out
}

func isControl(u rune) bool {
	return (u >= 0 && u <= 0x1F) || u == 0x7F || (u >= 0x80 && u <= 0x9F)
}

func isC1Control(u rune) bool { return u >= 0x80 && u <= 0x9F }

// putc is the master per-code-point dispatcher: string accumulation, then
// control codes, then the escape-sequence state machine, then plain
// printable output. Every Feed byte eventually funnels through here.
func (t *Term) putc(u rune) {
	control := isControl(u)

	if t.mode&ModePrint != 0 {
		t.printer.Print(encodeUTF8(u))
	}

	if t.esc&escSTR != 0 {
		if u == 0x07 || u == 0x18 || u == 0x1A || u == 0x1B || isC1Control(u) {
			t.esc &^= escStart | escSTR
			t.esc |= escSTREnd
			t.handleControl(u)
			return
		}
		if !t.str.append(encodeUTF8(u)) {
			t.log.Warn("STR sequence exceeded maximum size, dropping byte")
		}
		return
	}

	if control {
		t.handleControl(u)
		if t.esc == 0 {
			t.lastc = 0
		}
		return
	}

	if t.esc&escStart != 0 {
		switch {
		case t.esc&escCSI != 0:
			t.csi.buf = append(t.csi.buf, byte(u))
			if (u >= 0x40 && u <= 0x7E) || len(t.csi.buf) >= csiMaxRaw-1 {
				t.esc = 0
				t.csi.parse()
				t.dispatchCSI()
			}
			return
		case t.esc&escUTF8 != 0:
			t.defineUTF8Mode(byte(u))
		case t.esc&escAltCharset != 0:
			t.defineCharset(byte(u))
		case t.esc&escTest != 0:
			t.runAlignmentTest(byte(u))
		default:
			if !t.dispatchESC(byte(u)) {
				return
			}
		}
		t.esc = 0
		return
	}

	t.putPrintable(u)
}

// putPrintable implements the printable branch of the escape state machine:
// wrap-next handling, insert-mode shifting, wide-character pairing and
// cursor advance.
func (t *Term) putPrintable(u rune) {
	width := runeWidth(u)
	if width < 0 {
		width = 1
	}

	s := t.screen()
	if t.mode&ModeWrap != 0 && t.cur.wrapNext() {
		s.Rows[t.cur.Y][t.cur.X].SetFlag(CellFlagWrap)
		t.newline(true)
	}

	if t.mode&ModeInsert != 0 && t.cur.X+width < t.cols {
		t.insertBlank(width)
	}

	if t.cur.X+width > t.cols {
		t.newline(true)
	}

	t.setChar(u, t.cur.Attrs, t.cur.X, t.cur.Y)
	t.lastc = u

	if width == 2 {
		row := t.screen().Rows[t.cur.Y]
		row[t.cur.X].SetFlag(CellFlagWide)
		if t.cur.X+1 < t.cols {
			row[t.cur.X+1] = Cell{Char: 0, Attrs: CellFlagWideDummy}
		}
	}

	if t.cur.X+width < t.cols {
		t.moveTo(t.cur.X+width, t.cur.Y)
	} else {
		t.cur.setWrapNext(true)
	}
}

func (t *Term) defineUTF8Mode(b byte) {
	switch b {
	case 'G':
		t.mode |= ModeUTF8
	case '@':
		t.mode &^= ModeUTF8
	}
}

func (t *Term) defineCharset(b byte) {
	switch b {
	case '0':
		t.trantbl[t.icharset] = CharsetGraphic0
	case 'B':
		t.trantbl[t.icharset] = CharsetUSA
	default:
		t.log.Debug("unhandled charset designator", "byte", b)
	}
}

func (t *Term) runAlignmentTest(b byte) {
	if b != '8' {
		return
	}
	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			t.setChar('E', t.cur.Attrs, x, y)
		}
	}
}
