package headlessterm

import "io"

// ResponseProvider writes terminal responses (DA, DSR, DECID) back to the
// host, typically an io.Writer connected to the PTY's input side.
type ResponseProvider = io.Writer

// NoopResponse discards all response data.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) { return len(p), nil }

// --- Bell Provider ---

// BellProvider handles bell/beep events triggered by BEL (0x07).
type BellProvider interface {
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// --- Title Provider ---

// TitleProvider handles window title changes (OSC 0, 1, 2) and the
// xterm title stack (CSI 22/23 t, routed through PushTitle/PopTitle).
type TitleProvider interface {
	SetTitle(title string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// --- APC Provider ---

// APCProvider handles Application Program Command sequences (ESC _).
type APCProvider interface {
	Receive(data []byte)
}

// NoopAPC ignores all APC sequences.
type NoopAPC struct{}

func (NoopAPC) Receive(data []byte) {}

// --- PM Provider ---

// PMProvider handles Privacy Message sequences (ESC ^).
type PMProvider interface {
	Receive(data []byte)
}

// NoopPM ignores all PM sequences.
type NoopPM struct{}

func (NoopPM) Receive(data []byte) {}

// --- SOS Provider ---

// SOSProvider handles Start of String sequences (ESC X).
type SOSProvider interface {
	Receive(data []byte)
}

// NoopSOS ignores all SOS sequences.
type NoopSOS struct{}

func (NoopSOS) Receive(data []byte) {}

var _ ResponseProvider = NoopResponse{}

// ClipboardProvider handles clipboard read/write operations (OSC 52).
type ClipboardProvider interface {
	// Read returns content from the specified clipboard ('c' for clipboard, 'p' for primary selection).
	Read(clipboard byte) string
	// Write stores content to the specified clipboard.
	Write(clipboard byte, data []byte)
}

// ScrollbackProvider stores lines scrolled off the top of the primary
// buffer. Implementations can use in-memory storage, disk, a database, etc.
type ScrollbackProvider interface {
	Push(line []Cell)
	Len() int
	Line(index int) []Cell
	Clear()
	SetMaxLines(max int)
	MaxLines() int
}

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string        { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// NoopScrollback discards all scrollback lines.
type NoopScrollback struct{}

func (NoopScrollback) Push(line []Cell)      {}
func (NoopScrollback) Len() int              { return 0 }
func (NoopScrollback) Line(index int) []Cell { return nil }
func (NoopScrollback) Clear()                {}
func (NoopScrollback) SetMaxLines(max int)   {}
func (NoopScrollback) MaxLines() int         { return 0 }

// --- Recording Provider ---

// RecordingProvider captures raw input bytes before parsing, for replay or
// debugging.
type RecordingProvider interface {
	Record(data []byte)
	Data() []byte
	Clear()
}

// NoopRecording discards all input recordings.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// --- Cursor Style Provider ---

// CursorStyleProvider handles DECSCUSR cursor-style changes.
type CursorStyleProvider interface {
	SetCursorStyle(style CursorStyle)
}

// NoopCursorStyle ignores cursor style changes.
type NoopCursorStyle struct{}

func (NoopCursorStyle) SetCursorStyle(style CursorStyle) {}

// --- Palette Provider ---

// PaletteProvider handles OSC 4 (set palette entry) and OSC 104 (reset).
type PaletteProvider interface {
	SetColor(index int, c RGBA8)
	ResetColor(index int)
}

// NoopPalette ignores palette changes.
type NoopPalette struct{}

func (NoopPalette) SetColor(index int, c RGBA8) {}
func (NoopPalette) ResetColor(index int)        {}

// --- Mouse Mode Provider ---

// MouseModeProvider is notified when a mouse-reporting private mode
// (9, 1000, 1002, 1003, 1005, 1006, 1015) is toggled.
type MouseModeProvider interface {
	SetMouseMode(mode int, enabled bool)
}

// NoopMouseMode ignores mouse mode changes.
type NoopMouseMode struct{}

func (NoopMouseMode) SetMouseMode(mode int, enabled bool) {}

// --- Printer Provider ---

// PrinterProvider receives bytes while print mode (MC 4/5) is active.
type PrinterProvider interface {
	Print(data []byte)
}

// NoopPrinter discards printer output.
type NoopPrinter struct{}

func (NoopPrinter) Print(data []byte) {}

var _ BellProvider = (*NoopBell)(nil)
var _ TitleProvider = (*NoopTitle)(nil)
var _ APCProvider = (*NoopAPC)(nil)
var _ PMProvider = (*NoopPM)(nil)
var _ SOSProvider = (*NoopSOS)(nil)
var _ ClipboardProvider = (*NoopClipboard)(nil)
var _ ScrollbackProvider = (*NoopScrollback)(nil)
var _ RecordingProvider = (*NoopRecording)(nil)
var _ CursorStyleProvider = (*NoopCursorStyle)(nil)
var _ PaletteProvider = (*NoopPalette)(nil)
var _ MouseModeProvider = (*NoopMouseMode)(nil)
var _ PrinterProvider = (*NoopPrinter)(nil)
