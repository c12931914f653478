// Package headlessterm implements the core of a headless VT220/xterm-style
// terminal emulator: an escape-sequence parser plus a cell-grid state
// machine. It has no knowledge of windowing, fonts, PTYs or process
// spawning — a host feeds it raw bytes and reads back a grid of styled
// cells, wiring the handful of callbacks (bell, title, clipboard, ...) that
// this package intentionally leaves to the host. See doc.go for an overview.
package headlessterm

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
)

// ModeFlags is the terminal-wide mode bitset: wrap, insert, altscreen,
// crlf, echo, print, utf8, plus the handful of xterm extensions (origin,
// reverse video, app keypad/cursor keys, 8-bit controls, cursor visibility,
// bracketed paste) that CSI mode set/reset toggles.
type ModeFlags uint32

const (
	ModeWrap ModeFlags = 1 << iota
	ModeInsert
	ModeAltScreen
	ModeCRLF
	ModeEcho
	ModePrint
	ModeUTF8
	ModeOrigin
	ModeReverseVideo
	ModeAppKeypad
	ModeAppCursorKeys
	Mode8BitControls
	ModeCursorVisible
	ModeBracketedPaste
)

const defaultTabWidth = 8

// Term is a single terminal instance: two owned screen buffers, a cursor,
// and all of the parser's accumulator state. Per the concurrency model, Term
// holds no internal lock — a caller driving Term from multiple goroutines
// must serialize its own access.
type Term struct {
	cols, rows int

	screens     [2]*Screen // 0 = primary, 1 = alternate
	active      int
	savedCursor [2]SavedCursor

	cur TCursor

	tabs     []bool
	top, bot int

	mode      ModeFlags
	mouseMode int

	trantbl  [4]CharsetMode
	charset  int
	icharset int

	lastc rune

	esc escState
	csi csiAccumulator
	str strAccumulator
	dec utf8Decoder

	palette     [256]RGBA8
	defaultFg   RGBA8
	defaultBg   RGBA8
	cursorStyle CursorStyle
	title       string
	titleStack  []string
	vtIdent     string
	tabWidth    int

	log *slog.Logger

	response   io.Writer
	bell       BellProvider
	titleP     TitleProvider
	apc        APCProvider
	pm         PMProvider
	sos        SOSProvider
	clipboard  ClipboardProvider
	scrollback ScrollbackProvider
	recording  RecordingProvider
	cursorP    CursorStyleProvider
	paletteP   PaletteProvider
	mouseP     MouseModeProvider
	printer    PrinterProvider
}

// Option configures a Term at construction time.
type Option func(*Term)

// WithSize sets the initial grid dimensions (default 80x24).
func WithSize(rows, cols int) Option {
	return func(t *Term) { t.rows, t.cols = rows, cols }
}

// WithResponse sets where DA/DSR/DECID replies are written.
func WithResponse(w io.Writer) Option { return func(t *Term) { t.response = w } }

// WithBell sets the bell callback.
func WithBell(b BellProvider) Option { return func(t *Term) { t.bell = b } }

// WithTitle sets the title-change callback.
func WithTitle(p TitleProvider) Option { return func(t *Term) { t.titleP = p } }

// WithAPC sets the Application Program Command callback.
func WithAPC(p APCProvider) Option { return func(t *Term) { t.apc = p } }

// WithPM sets the Privacy Message callback.
func WithPM(p PMProvider) Option { return func(t *Term) { t.pm = p } }

// WithSOS sets the Start-of-String callback.
func WithSOS(p SOSProvider) Option { return func(t *Term) { t.sos = p } }

// WithClipboard sets the clipboard read/write callback (OSC 52).
func WithClipboard(p ClipboardProvider) Option { return func(t *Term) { t.clipboard = p } }

// WithScrollback sets the provider that stores lines scrolled off the
// primary screen.
func WithScrollback(p ScrollbackProvider) Option { return func(t *Term) { t.scrollback = p } }

// WithRecording sets a provider that captures raw input bytes for replay.
func WithRecording(p RecordingProvider) Option { return func(t *Term) { t.recording = p } }

// WithCursorStyle sets the DECSCUSR callback.
func WithCursorStyle(p CursorStyleProvider) Option { return func(t *Term) { t.cursorP = p } }

// WithPalette sets the OSC 4/104 palette-change callback.
func WithPalette(p PaletteProvider) Option { return func(t *Term) { t.paletteP = p } }

// WithMouseMode sets the mouse-mode-toggle callback.
func WithMouseMode(p MouseModeProvider) Option { return func(t *Term) { t.mouseP = p } }

// WithPrinter sets the MC (media copy) printer callback.
func WithPrinter(p PrinterProvider) Option { return func(t *Term) { t.printer = p } }

// WithVTIdent overrides the DA/DECID identification string (default is a
// VT220-with-options response, ESC [ ? 6 2 ; 1 ; 2 ; 4 ; 6 ; 9 ; 1 5 ; 2 2 c).
func WithVTIdent(ident string) Option { return func(t *Term) { t.vtIdent = ident } }

// WithLogger sets the diagnostic logger used for malformed-input warnings.
// A nil logger (the default) uses slog.Default().
func WithLogger(l *slog.Logger) Option { return func(t *Term) { t.log = l } }

// WithTabWidth overrides the default tab stop spacing (default 8).
func WithTabWidth(n int) Option { return func(t *Term) { t.tabWidth = n } }

// New creates a Term sized 80x24 unless overridden by WithSize, with all
// modes reset to wrap|utf8|cursor-visible, cursor at (0,0), tab stops every
// tabWidth columns, and a saved-cursor slot per screen.
func New(opts ...Option) *Term {
	t := &Term{rows: 24, cols: 80, tabWidth: defaultTabWidth}
	for _, o := range opts {
		o(t)
	}
	if t.rows < 1 {
		t.rows = 1
	}
	if t.cols < 1 {
		t.cols = 1
	}
	if t.tabWidth < 1 {
		t.tabWidth = defaultTabWidth
	}
	if t.log == nil {
		t.log = slog.Default()
	}
	if t.response == nil {
		t.response = NoopResponse{}
	}
	if t.bell == nil {
		t.bell = NoopBell{}
	}
	if t.titleP == nil {
		t.titleP = NoopTitle{}
	}
	if t.apc == nil {
		t.apc = NoopAPC{}
	}
	if t.pm == nil {
		t.pm = NoopPM{}
	}
	if t.sos == nil {
		t.sos = NoopSOS{}
	}
	if t.clipboard == nil {
		t.clipboard = NoopClipboard{}
	}
	if t.scrollback == nil {
		t.scrollback = NoopScrollback{}
	}
	if t.recording == nil {
		t.recording = NoopRecording{}
	}
	if t.cursorP == nil {
		t.cursorP = NoopCursorStyle{}
	}
	if t.paletteP == nil {
		t.paletteP = NoopPalette{}
	}
	if t.mouseP == nil {
		t.mouseP = NoopMouseMode{}
	}
	if t.printer == nil {
		t.printer = NoopPrinter{}
	}
	if t.vtIdent == "" {
		t.vtIdent = "\x1b[?62;1;2;4;6;9;15;22c"
	}

	t.palette = DefaultPalette
	t.defaultFg = DefaultForeground
	t.defaultBg = DefaultBackground
	t.reset()
	return t
}

// reset reinitializes grid, cursor, modes and tab stops to the state New
// produces, without changing dimensions. It backs both RIS (ESC c) and the
// initial construction in New.
func (t *Term) reset() {
	fill := NewCell()
	t.screens[0] = newScreen(t.cols, t.rows, fill)
	t.screens[1] = newScreen(t.cols, t.rows, fill)
	t.active = 0
	t.cur = NewTCursor()
	t.top, t.bot = 0, t.rows-1
	t.mode = ModeWrap | ModeUTF8 | ModeCursorVisible
	t.trantbl = [4]CharsetMode{}
	t.charset = 0
	t.icharset = 0
	t.lastc = 0
	t.esc = 0
	t.csi = csiAccumulator{}
	t.str = strAccumulator{}
	t.resetTabs()
	for i := range t.savedCursor {
		t.savedCursor[i] = t.snapshotCursor()
	}
}

func (t *Term) resetTabs() {
	t.tabs = make([]bool, t.cols)
	for i := 0; i < t.cols; i += t.tabWidth {
		t.tabs[i] = true
	}
}

func (t *Term) screen() *Screen     { return t.screens[t.active] }
func (t *Term) altScreen() *Screen  { return t.screens[1-t.active] }

func (t *Term) snapshotCursor() SavedCursor {
	return SavedCursor{
		X: t.cur.X, Y: t.cur.Y,
		Attrs:   t.cur.Attrs,
		Origin:  t.cur.origin(),
		Charset: t.charset,
		Trantbl: t.trantbl,
	}
}

func (t *Term) restoreCursorFrom(s SavedCursor) {
	t.cur.X, t.cur.Y = s.X, s.Y
	t.cur.Attrs = s.Attrs
	t.cur.setOrigin(s.Origin)
	t.cur.setWrapNext(false)
	t.charset = s.Charset
	t.trantbl = s.Trantbl
	t.clampCursor()
}

// saveCursor implements DECSC / CSI s: snapshot the cursor into the active
// screen's single saved-cursor slot.
func (t *Term) saveCursor() { t.savedCursor[t.active] = t.snapshotCursor() }

// restoreCursor implements DECRC / CSI u.
func (t *Term) restoreCursor() { t.restoreCursorFrom(t.savedCursor[t.active]) }

// Rows and Cols report the current grid dimensions.
func (t *Term) Rows() int { return t.rows }
func (t *Term) Cols() int { return t.cols }

// CursorPos reports the cursor's 0-based (col, row).
func (t *Term) CursorPos() (col, row int) { return t.cur.X, t.cur.Y }

// Mode reports the current mode bitset.
func (t *Term) Mode() ModeFlags { return t.mode }

// Title reports the most recent window title set via OSC 0/1/2.
func (t *Term) Title() string { return t.title }

// pushTitle implements CSI 22 t: save the current title on the title
// stack, notifying the TitleProvider the way it notifies any other title
// change.
func (t *Term) pushTitle() {
	t.titleStack = append(t.titleStack, t.title)
	t.titleP.PushTitle()
}

// popTitle implements CSI 23 t: restore the most recently pushed title, if
// any; an empty stack is a no-op, matching xterm.
func (t *Term) popTitle() {
	if len(t.titleStack) == 0 {
		return
	}
	last := len(t.titleStack) - 1
	title := t.titleStack[last]
	t.titleStack = t.titleStack[:last]
	t.title = title
	t.titleP.PopTitle()
}

// CellColor resolves cell (x, y)'s foreground and background against the
// terminal's configured palette and defaults, the step a host performs
// when rendering a cell to concrete pixels.
func (t *Term) CellColor(x, y int) (fg, bg RGBA8) {
	c := t.Cell(x, y)
	fg = c.Fg.Resolve(&t.palette, t.defaultFg, t.defaultBg, true)
	bg = c.Bg.Resolve(&t.palette, t.defaultFg, t.defaultBg, false)
	if c.HasFlag(CellFlagReverse) {
		fg, bg = bg, fg
	}
	return fg, bg
}

// Cell returns the glyph at (x, y) on the active screen. Out-of-range
// coordinates return a blank cell rather than panicking, matching the
// clamped-index error policy used throughout the core.
func (t *Term) Cell(x, y int) Cell {
	s := t.screen()
	if y < 0 || y >= len(s.Rows) || x < 0 || x >= t.cols {
		return NewCell()
	}
	return s.Rows[y][x]
}

// RowDirty reports whether row y of the active screen has been modified
// since the host last cleared it.
func (t *Term) RowDirty(y int) bool {
	s := t.screen()
	if y < 0 || y >= len(s.Dirty) {
		return false
	}
	return s.Dirty[y]
}

// ClearDirty clears the active screen's dirty bitmap; the host calls this
// after it has consumed the marked rows.
func (t *Term) ClearDirty() {
	s := t.screen()
	for i := range s.Dirty {
		s.Dirty[i] = false
	}
}

// Feed consumes raw input bytes, decoding UTF-8 and driving the escape
// state machine and cell grid. It never blocks and never returns an error:
// malformed input is logged and skipped per the error-handling design.
func (t *Term) Feed(p []byte) {
	if len(p) > 0 {
		t.recording.Record(p)
	}
	for _, b := range p {
		for _, r := range t.dec.push(b) {
			t.putc(r)
		}
	}
}

// Write implements io.Writer over Feed, so a Term can be used directly as
// the destination of a PTY reader's io.Copy.
func (t *Term) Write(p []byte) (int, error) {
	t.Feed(p)
	return len(p), nil
}

// WriteString is a convenience wrapper around Feed for string input.
func (t *Term) WriteString(s string) { t.Feed([]byte(s)) }

// LineContent returns row y of the active screen as a string, with
// wide-dummy cells skipped and trailing blanks elided the way Dump renders
// a row.
func (t *Term) LineContent(y int) string {
	s := t.screen()
	if y < 0 || y >= len(s.Rows) {
		return ""
	}
	return renderRow(s.Rows[y])
}

// Resize changes the grid to (rows, cols), both of which must be >= 1;
// non-positive values are rejected with no state change, per the
// seven-step resize algorithm.
func (t *Term) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		t.log.Warn("resize rejected: non-positive dimension", "rows", rows, "cols", cols)
		return fmt.Errorf("headlessterm: resize requires rows >= 1 and cols >= 1, got (%d, %d)", rows, cols)
	}
	if rows == t.rows && cols == t.cols {
		return nil
	}

	fill := NewCell()

	// Step 1: if the cursor would fall off the bottom of the shrunk grid,
	// drop that many rows from the top of both screens so the content the
	// cursor sits on stays visible.
	drop := 0
	if t.cur.Y >= rows {
		drop = t.cur.Y - rows + 1
	}
	if drop > 0 {
		t.screens[0].dropTop(drop)
		t.screens[1].dropTop(drop)
		t.cur.Y -= drop
		for i := range t.savedCursor {
			t.savedCursor[i].Y -= drop
			if t.savedCursor[i].Y < 0 {
				t.savedCursor[i].Y = 0
			}
		}
	}

	// Steps 2-5: reallocate rows and columns.
	t.screens[0].resizeTo(cols, rows, fill)
	t.screens[1].resizeTo(cols, rows, fill)

	// Step 6: resize and re-derive the tab stop vector.
	oldTabs := t.tabs
	newTabs := make([]bool, cols)
	n := len(oldTabs)
	if n > cols {
		n = cols
	}
	copy(newTabs, oldTabs[:n])
	last := 0
	for i := 0; i < n; i++ {
		if newTabs[i] {
			last = i
		}
	}
	for i := last + t.tabWidth; i < cols; i += t.tabWidth {
		newTabs[i] = true
	}
	t.tabs = newTabs

	// Step 7: reset scroll region, clamp cursor, mark everything dirty.
	t.rows, t.cols = rows, cols
	t.top, t.bot = 0, rows-1
	t.clampCursor()
	t.screens[0].markAllDirty()
	t.screens[1].markAllDirty()
	return nil
}

func (t *Term) clampCursor() {
	if t.cur.X >= t.cols {
		t.cur.X = t.cols - 1
	}
	if t.cur.X < 0 {
		t.cur.X = 0
	}
	if t.cur.Y >= t.rows {
		t.cur.Y = t.rows - 1
	}
	if t.cur.Y < 0 {
		t.cur.Y = 0
	}
	t.cur.setWrapNext(false)
}

// renderRow encodes a row to UTF-8 text, skipping wide-dummy cells and
// eliding trailing blanks (a wholly blank row renders as the empty string),
// per the dump format.
func renderRow(row []Cell) string {
	end := -1
	for i, c := range row {
		if c.HasFlag(CellFlagWideDummy) {
			continue
		}
		if c.Char != ' ' {
			end = i
		}
	}
	if end < 0 {
		return ""
	}
	var buf bytes.Buffer
	for i := 0; i <= end; i++ {
		c := row[i]
		if c.HasFlag(CellFlagWideDummy) {
			continue
		}
		buf.WriteRune(c.Char)
	}
	return buf.String()
}

// Dump writes the whole active screen to w, rows separated by a single
// newline with no trailing newline after the last row.
func (t *Term) Dump(w io.Writer) (int, error) {
	s := t.screen()
	total := 0
	for y, row := range s.Rows {
		if y > 0 {
			n, err := w.Write([]byte{'\n'})
			total += n
			if err != nil {
				return total, err
			}
		}
		n, err := io.WriteString(w, renderRow(row))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// DumpLine writes row y of the active screen to w with no trailing newline.
func (t *Term) DumpLine(w io.Writer, y int) (int, error) {
	s := t.screen()
	if y < 0 || y >= len(s.Rows) {
		return 0, fmt.Errorf("headlessterm: row %d out of range [0,%d)", y, len(s.Rows))
	}
	return io.WriteString(w, renderRow(s.Rows[y]))
}

// DumpToBuffer renders the whole screen into buf, growing it as needed, and
// returns the number of bytes written.
func (t *Term) DumpToBuffer(buf *bytes.Buffer) int {
	n, _ := t.Dump(buf)
	return n
}

// dumpChunkSize bounds the size of each chunk DumpToCallback delivers.
const dumpChunkSize = 4096

// DumpToCallback renders the screen and invokes cb with successive chunks
// of at most dumpChunkSize bytes, so a host can stream a large dump without
// buffering it all at once.
func (t *Term) DumpToCallback(cb func([]byte)) {
	var buf bytes.Buffer
	_, _ = t.Dump(&buf) // bytes.Buffer.Write never fails
	data := buf.Bytes()
	for len(data) > 0 {
		n := dumpChunkSize
		if n > len(data) {
			n = len(data)
		}
		cb(data[:n])
		data = data[n:]
	}
}
