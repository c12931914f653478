// Package headlessterm provides a headless VT220/xterm-compatible terminal
// emulator.
//
// It emulates a terminal's state — the cell grid, cursor, modes and escape
// sequence parser — without ever drawing anything, which makes it useful
// for:
//   - testing terminal applications without a real TTY
//   - building terminal multiplexers and session recorders
//   - terminal-based web applications that render the grid themselves
//   - screen scraping and automation of interactive CLI tools
//
// # Quick start
//
// Create a Term and feed it raw bytes containing ANSI escape sequences:
//
//	term := headlessterm.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.LineContent(0)) // "Hello World!"
//
// # Architecture
//
// The package is organized around a small set of types:
//
//   - [Term]: the emulator, driven by [Term.Feed] or [Term.Write]
//   - [Screen]: a grid of [Cell] values plus a per-row dirty bitmap
//   - [Cell]: one character cell's glyph, colors and attributes
//   - [TCursor]: cursor position, SGR attribute template, wrap/origin state
//
// Term implements [io.Writer], so it can sit directly at the end of an
// [io.Copy] from a PTY:
//
//	term := headlessterm.New(
//	    headlessterm.WithSize(24, 80),
//	    headlessterm.WithScrollback(storage),
//	    headlessterm.WithResponse(ptyWriter),
//	)
//
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
//	for row := 0; row < term.Rows(); row++ {
//	    fmt.Println(term.LineContent(row))
//	}
//
// # Dual buffers
//
// Term maintains two screen buffers, switched by CSI ?1049h/l, ?47h/l and
// ?1047h/l:
//
//   - the primary buffer, whose lines scrolling off the top reach the
//     configured [ScrollbackProvider]
//   - the alternate buffer, used by full-screen applications (vim, less,
//     htop), which never feeds the scrollback
//
// Check [Term.Mode] against [ModeAltScreen] to tell which is active.
//
// # Host callbacks
//
// A handful of side effects the core itself has no opinion about — ringing
// a bell, changing a window title, reading or writing the clipboard,
// storing scrollback, recording raw input — are routed through small
// provider interfaces set with the With* options. Every provider defaults
// to a Noop implementation, so a bare New() is always safe to drive.
//
// # Concurrency
//
// Term holds no internal lock. A single goroutine is expected to own Feed
// calls and state reads; a host that wants concurrent access must
// serialize it itself.
//
// # Configuration
//
// [Config] and [LoadConfigFile] load grid size, tab width and
// identification strings from YAML, for hosts that want these as
// deployment configuration rather than Go literals:
//
//	cfg, err := headlessterm.LoadConfigFile("term.yaml")
//	term := headlessterm.NewFromConfig(cfg)
package headlessterm
