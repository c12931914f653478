// Command ptyhost is a minimal demonstration host: it spawns a shell under
// a PTY, feeds its output into a headlessterm.Term, resizes the Term on
// SIGWINCH, and with --dump writes the resulting grid to stdout on exit. It
// exists to exercise the library end
// to end, not as a production terminal multiplexer.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"github.com/spf13/cobra"

	"github.com/vtcore/headlessterm"
)

var (
	cols         int
	rows         int
	shellCommand string
	dumpOnExit   bool
)

var rootCmd = &cobra.Command{
	Use:   "ptyhost",
	Short: "Run a shell under a PTY through a headless terminal emulator",
	Long: `ptyhost spawns a shell, feeds everything it writes through a
headlessterm.Term, and mirrors bytes through to this process's own stdout so
the session stays interactive. On exit it can dump the emulated screen.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().IntVar(&cols, "cols", 80, "terminal width")
	rootCmd.Flags().IntVar(&rows, "rows", 24, "terminal height")
	rootCmd.Flags().StringVar(&shellCommand, "shell", defaultShell(), "command to run under the PTY")
	rootCmd.Flags().BoolVar(&dumpOnExit, "dump", false, "dump the final screen to stdout on exit")
}

func defaultShell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ptyhost: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	c := exec.Command(shellCommand)
	c.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(c, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	term := headlessterm.New(
		headlessterm.WithSize(rows, cols),
		headlessterm.WithResponse(ptmx),
		headlessterm.WithLogger(logger),
		headlessterm.WithBell(bellToStderr{}),
		headlessterm.WithTitle(&titleToStderr{}),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	go watchResize(sigCh, ptmx, term)

	go func() { _, _ = io.Copy(ptmx, os.Stdin) }()

	_, copyErr := io.Copy(io.MultiWriter(os.Stdout, term), ptmx)
	waitErr := c.Wait()

	if dumpOnExit {
		fmt.Fprintln(os.Stderr, "--- final screen ---")
		_, _ = term.Dump(os.Stdout)
		fmt.Fprintln(os.Stderr)
	}

	if copyErr != nil && copyErr != io.EOF {
		return fmt.Errorf("read pty: %w", copyErr)
	}
	return waitErr
}

func watchResize(sigCh chan os.Signal, ptmx *os.File, term *headlessterm.Term) {
	for range sigCh {
		ws, err := pty.GetsizeFull(os.Stdin)
		if err != nil {
			continue
		}
		_ = pty.Setsize(ptmx, ws)
		_ = term.Resize(int(ws.Rows), int(ws.Cols))
	}
}

type bellToStderr struct{}

func (bellToStderr) Ring() { fmt.Fprint(os.Stderr, "\a") }

type titleToStderr struct {
	stack []string
}

func (t *titleToStderr) SetTitle(title string) { fmt.Fprintf(os.Stderr, "\x1b]0;%s\x07", title) }
func (t *titleToStderr) PushTitle()            {}
func (t *titleToStderr) PopTitle()             {}
