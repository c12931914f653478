package headlessterm

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	term := New()
	if term.Rows() != 24 || term.Cols() != 80 {
		t.Fatalf("expected 24x80, got %dx%d", term.Rows(), term.Cols())
	}
	x, y := term.CursorPos()
	if x != 0 || y != 0 {
		t.Fatalf("expected cursor at (0,0), got (%d,%d)", x, y)
	}
	if term.Mode()&ModeWrap == 0 {
		t.Error("expected autowrap on by default")
	}
}

func TestWritePrintableText(t *testing.T) {
	term := New(WithSize(5, 20))
	term.WriteString("hello")
	if got := term.LineContent(0); got != "hello" {
		t.Errorf("LineContent(0) = %q, want %q", got, "hello")
	}
	x, y := term.CursorPos()
	if x != 5 || y != 0 {
		t.Errorf("cursor = (%d,%d), want (5,0)", x, y)
	}
}

func TestCursorMovementCSI(t *testing.T) {
	term := New(WithSize(10, 20))
	term.WriteString("\x1b[5;10H")
	x, y := term.CursorPos()
	if x != 9 || y != 4 {
		t.Errorf("CUP moved to (%d,%d), want (9,4)", x, y)
	}
	term.WriteString("\x1b[2A")
	_, y = term.CursorPos()
	if y != 2 {
		t.Errorf("CUU moved to row %d, want 2", y)
	}
}

func TestSGRColorsAndReset(t *testing.T) {
	term := New()
	term.WriteString("\x1b[1;31mX\x1b[0mY")
	if !term.Cell(0, 0).HasFlag(CellFlagBold) {
		t.Error("expected bold attribute on X")
	}
	if term.Cell(0, 0).Fg.Kind != ColorPalette || term.Cell(0, 0).Fg.Index != 1 {
		t.Errorf("expected red (palette 1) foreground, got %+v", term.Cell(0, 0).Fg)
	}
	if term.Cell(1, 0).HasFlag(CellFlagBold) {
		t.Error("expected SGR 0 to clear bold before Y")
	}
}

func TestSGRTruecolor(t *testing.T) {
	term := New()
	term.WriteString("\x1b[38;2;10;20;30mZ")
	fg := term.Cell(0, 0).Fg
	if fg.Kind != ColorRGB || fg.R != 10 || fg.G != 20 || fg.B != 30 {
		t.Errorf("truecolor fg = %+v", fg)
	}
}

func TestLineWrapOnOverflow(t *testing.T) {
	term := New(WithSize(3, 5))
	term.WriteString("abcdef")
	if got := term.LineContent(0); got != "abcde" {
		t.Errorf("row 0 = %q, want %q", got, "abcde")
	}
	if got := term.LineContent(1); got != "f" {
		t.Errorf("row 1 = %q, want %q", got, "f")
	}
}

func TestNewlineScrollsAtBottomMargin(t *testing.T) {
	term := New(WithSize(2, 10))
	term.WriteString("one\r\ntwo\r\nthree")
	if got := term.LineContent(0); got != "two" {
		t.Errorf("row 0 = %q, want %q", got, "two")
	}
	if got := term.LineContent(1); got != "three" {
		t.Errorf("row 1 = %q, want %q", got, "three")
	}
}

func TestAlternateScreenSwap(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("main")
	term.WriteString("\x1b[?1049h")
	if term.Mode()&ModeAltScreen == 0 {
		t.Error("expected altscreen mode set")
	}
	if got := term.LineContent(0); got != "" {
		t.Errorf("alt screen row 0 should start blank, got %q", got)
	}
	term.WriteString("alt")
	term.WriteString("\x1b[?1049l")
	if term.Mode()&ModeAltScreen != 0 {
		t.Error("expected altscreen mode cleared")
	}
	if got := term.LineContent(0); got != "main" {
		t.Errorf("primary screen row 0 = %q, want %q (restored)", got, "main")
	}
}

func TestEraseDisplayModes(t *testing.T) {
	term := New(WithSize(3, 5))
	term.WriteString("aaaaa\r\nbbbbb\r\nccccc")
	term.WriteString("\x1b[2J")
	for y := 0; y < 3; y++ {
		if got := term.LineContent(y); got != "" {
			t.Errorf("row %d after ED2 = %q, want blank", y, got)
		}
	}
}

func TestEraseLine(t *testing.T) {
	term := New(WithSize(1, 10))
	term.WriteString("abcdefghij\r")
	term.WriteString("\x1b[5C")  // cursor to col 5
	term.WriteString("\x1b[0K") // erase to end of line
	if got := term.LineContent(0); got != "abcde" {
		t.Errorf("row after EL0 = %q, want %q", got, "abcde")
	}
}

func TestTabStops(t *testing.T) {
	term := New(WithSize(1, 20))
	term.WriteString("\t\tX")
	x, _ := term.CursorPos()
	if x != 17 {
		t.Errorf("cursor x after two tabs and X = %d, want 17", x)
	}
}

func TestResizeShrinkDropsRows(t *testing.T) {
	term := New(WithSize(5, 10))
	term.WriteString("l1\r\nl2\r\nl3\r\nl4\r\nl5")
	if err := term.Resize(2, 10); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if term.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", term.Rows())
	}
	if got := term.LineContent(1); got != "l5" {
		t.Errorf("row 1 after shrink = %q, want %q", got, "l5")
	}
}

func TestResizeRejectsNonPositive(t *testing.T) {
	term := New()
	if err := term.Resize(0, 10); err == nil {
		t.Error("expected error for rows=0")
	}
	if err := term.Resize(10, -1); err == nil {
		t.Error("expected error for cols=-1")
	}
}

func TestWideCharacterPairing(t *testing.T) {
	term := New(WithSize(1, 10))
	term.WriteString("中")
	if !term.Cell(0, 0).IsWide() {
		t.Error("expected CJK char cell to be marked wide")
	}
	if !term.Cell(1, 0).IsWideDummy() {
		t.Error("expected following cell to be the wide dummy")
	}
	x, _ := term.CursorPos()
	if x != 2 {
		t.Errorf("cursor after wide char = %d, want 2", x)
	}
}

func TestDA1Response(t *testing.T) {
	var resp bytes.Buffer
	term := New(WithResponse(&resp))
	term.WriteString("\x1b[c")
	if !strings.HasPrefix(resp.String(), "\x1b[?") {
		t.Errorf("DA response = %q, want VT220 identify prefix", resp.String())
	}
}

func TestCPRResponse(t *testing.T) {
	var resp bytes.Buffer
	term := New(WithSize(10, 10), WithResponse(&resp))
	term.WriteString("\x1b[4;4H\x1b[6n")
	if resp.String() != "\x1b[4;4R" {
		t.Errorf("CPR response = %q, want %q", resp.String(), "\x1b[4;4R")
	}
}

func TestOSCSetTitle(t *testing.T) {
	term := New()
	term.WriteString("\x1b]2;my title\x07")
	if term.Title() != "my title" {
		t.Errorf("Title() = %q, want %q", term.Title(), "my title")
	}
}

func TestOSC52Clipboard(t *testing.T) {
	cb := &recordingClipboard{}
	term := New(WithClipboard(cb))
	// base64("hi") == "aGk="
	term.WriteString("\x1b]52;c;aGk=\x07")
	if cb.selector != 'c' || string(cb.data) != "hi" {
		t.Errorf("clipboard write = (%c, %q), want ('c', \"hi\")", cb.selector, cb.data)
	}
}

type recordingClipboard struct {
	selector byte
	data     []byte
}

func (r *recordingClipboard) Read(byte) string         { return "" }
func (r *recordingClipboard) Write(sel byte, p []byte) { r.selector, r.data = sel, append([]byte(nil), p...) }

func TestScrollbackPush(t *testing.T) {
	sb := &sliceScrollback{}
	term := New(WithSize(2, 10), WithScrollback(sb))
	term.WriteString("one\r\ntwo\r\nthree")
	if sb.Len() != 1 {
		t.Fatalf("scrollback Len() = %d, want 1", sb.Len())
	}
}

type sliceScrollback struct{ lines [][]Cell }

func (s *sliceScrollback) Push(line []Cell)      { s.lines = append(s.lines, line) }
func (s *sliceScrollback) Len() int              { return len(s.lines) }
func (s *sliceScrollback) Line(i int) []Cell     { return s.lines[i] }
func (s *sliceScrollback) Clear()                { s.lines = nil }
func (s *sliceScrollback) SetMaxLines(int)       {}
func (s *sliceScrollback) MaxLines() int         { return 0 }

func TestFeedNeverBlocksOnMalformedInput(t *testing.T) {
	term := New()
	term.Feed([]byte{0xFF, 0xFE, 0x1B, '[', '9', '9', '9', 'q', 'X'})
	// Reaching this line without a panic or hang satisfies the never-blocks
	// / never-errors contract Feed documents.
}

func TestRISResetsModesAndCursor(t *testing.T) {
	term := New(WithSize(5, 10))
	term.WriteString("\x1b[31mhi\x1b[3;3H")
	term.WriteString("\x1bc")
	x, y := term.CursorPos()
	if x != 0 || y != 0 {
		t.Errorf("cursor after RIS = (%d,%d), want (0,0)", x, y)
	}
	if got := term.LineContent(0); got != "" {
		t.Errorf("row 0 after RIS = %q, want blank", got)
	}
}

func TestSaveRestoreCursor(t *testing.T) {
	term := New(WithSize(10, 10))
	term.WriteString("\x1b[4;4H\x1b7")
	term.WriteString("\x1b[1;1H")
	term.WriteString("\x1b8")
	x, y := term.CursorPos()
	if x != 3 || y != 3 {
		t.Errorf("cursor after DECRC = (%d,%d), want (3,3)", x, y)
	}
}
