package vtcore

import "context"

// This file defines the collaborator boundary: Core
// itself never touches a file descriptor, a window system, or a
// keyboard driver. A host wires these interfaces to real I/O (a PTY,
// a terminal renderer, an input backend) and owns the single mutex
// that serializes calls into Core.

// PTYWriter is the narrow interface Core's host uses to forward
// KeyInput/RuneInput/BracketedPaste bytes to the child process. Both
// os.File (from creack/pty) and a net.Conn satisfy it.
type PTYWriter interface {
	Write(p []byte) (int, error)
}

// PTYReader is the narrow interface a host's read loop consumes PTY
// output through before calling Core.PushBytes.
type PTYReader interface {
	Read(p []byte) (int, error)
}

// Renderer is what a host implements to paint Core's state. Render is
// called after a batch of PushBytes calls with the current grid; the
// renderer owns all layout, font metrics, and color-to-pixel mapping
// (spec Non-goals: rendering and font measurement are explicitly out
// of Core's scope).
type Renderer interface {
	Render(ctx context.Context, visible [][]Cell, cursor CursorState, title string)
}

// InputSource is what a host's keyboard/mouse backend implements to
// feed Core.KeyInput/RuneInput results to a PTYWriter. Core does not
// read raw input events itself — only the already-decoded Key/rune
// plus modifiers.
type InputSource interface {
	Next(ctx context.Context) (r rune, key Key, isKey bool, mods KeyMods, ok bool)
}

// Config bundles the construction-time knobs a host CLI
// typically exposes: initial geometry and whether parse-diagnostic
// logging is enabled. It deliberately excludes anything Core decides
// internally (mode defaults, palette) since those are protocol state,
// not host configuration.
type Config struct {
	Cols, Rows int
	Verbose    bool
}

// DefaultConfig returns the construction defaults a freshly attached
// terminal uses: 80x24, diagnostics off.
func DefaultConfig() Config {
	return Config{Cols: 80, Rows: 24}
}
