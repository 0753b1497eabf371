// Command vtcoredemo runs a shell under a PTY through vtcore.Core,
// printing the resulting screen grid to stdout. It exists to exercise
// the library end to end, not as a production terminal.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/phroun/vtcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vtcoredemo:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var shell string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "vtcoredemo",
		Short: "Run a shell through vtcore and print its screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(shell, verbose)
		},
	}
	cmd.Flags().StringVar(&shell, "shell", defaultShell(), "shell command to run under the PTY")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log dropped/unrecognized escape sequences")
	return cmd
}

func defaultShell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}

func run(shell string, verbose bool) error {
	c := exec.Command(shell)
	ptmx, err := pty.Start(c)
	if err != nil {
		return fmt.Errorf("starting pty: %w", err)
	}
	defer ptmx.Close()

	cols, rows := 80, 24
	if w, h, err := pty.Getsize(os.Stdout); err == nil && w > 0 && h > 0 {
		cols, rows = w, h
	}
	_ = pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})

	var logger *zerolog.Logger
	if verbose {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		logger = &l
	}
	core := vtcore.NewCoreWithLogger(cols, rows, logger)

	// Core carries no mutex of its own: the host serializes
	// every access with a single external lock. Here that's this mutex,
	// guarding the SIGWINCH goroutine's Resize against the read loop's
	// PushBytes/TakeResponses/VisibleCells.
	var mu sync.Mutex

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	go func() {
		for range sigCh {
			if w, h, err := pty.Getsize(os.Stdout); err == nil && w > 0 && h > 0 {
				_ = pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(w), Rows: uint16(h)})
				mu.Lock()
				core.Resize(w, h, 0, 0)
				mu.Unlock()
			}
		}
	}()

	go io.Copy(ptmx, os.Stdin)

	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			mu.Lock()
			core.PushBytes(buf[:n])
			resp := core.TakeResponses()
			renderScreen(core)
			mu.Unlock()
			if len(resp) > 0 {
				_, _ = ptmx.Write(resp)
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading pty: %w", err)
		}
	}
}

// renderScreen is the demo's minimal Renderer: it redraws the visible
// grid as plain text, ignoring FormatState entirely. A real host
// implements vtcore.Renderer against its own widget toolkit instead.
func renderScreen(core *vtcore.Core) {
	fmt.Print("\x1b[H\x1b[2J")
	for _, row := range core.VisibleCells() {
		var b strings.Builder
		for _, cell := range row {
			if cell.Kind == vtcore.CellContinuation {
				continue
			}
			b.WriteString(cell.TChar.Text())
		}
		fmt.Println(strings.TrimRight(b.String(), " "))
	}
}
