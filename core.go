package vtcore

import "github.com/rs/zerolog"

// Core is the terminal emulator core: it owns the screen state and
// turns a byte stream from a host-supplied PTY into a renderable grid
// plus a stream of bytes to write back. Core holds no
// mutex of its own — the host serializes all
// access with a single external lock, since nothing inside Core
// suspends or spawns goroutines.
//
// Grounded on purfecterm's Terminal type (buffer.go/parser.go
// composition) but restructured around the decoupled
// ControlByteRecognizer -> ParserEvent -> applyEvent pipeline this
// module's parser layer uses instead of purfecterm's direct
// parser-calls-buffer wiring.
type Core struct {
	primary   *ScreenBuffer
	alternate *ScreenBuffer
	onAlt     bool

	format    *FormatTracker
	altFormat *FormatTracker

	cursor       CursorState
	savedAltMain *CursorState // primary cursor stashed across a 1049 switch to alt screen

	modes *ModeRegistry

	recognizer *ControlByteRecognizer
	tracer     *TracerRing

	charsets  [4]CharsetVariant
	glInvoked CharsetSlot

	marginTop, marginBottom int // 0-based, inclusive; every resize resets marginBottom to the last row, discarding a DECSTBM bottom margin

	windowTitle string
	iconTitle   string

	responses []byte
	windowOps []WindowOp

	palette       *[16]RGB8
	defaultFG     *RGB8
	defaultBG     *RGB8
	defaultCursor *RGB8

	log *zerolog.Logger
}

// WindowOp is one queued XTWINOPS/DECSLPP request for the host to act
// on (move, resize, iconify, ...) — Core only parses and records
// these; it has no window of its own to manipulate.
type WindowOp struct {
	Op     WindowManipulationOp
	Params []int
}

// NewCore returns a Core sized to cols x rows, all state at VT510
// power-on defaults.
func NewCore(cols, rows int) *Core {
	return NewCoreWithLogger(cols, rows, nil)
}

// NewCoreWithLogger is NewCore with an optional zerolog logger for
// parse-diagnostic output (malformed sequences, dropped OSC bodies).
// Grounded on badu-term's manifest, the pack's zerolog precedent; a
// nil logger disables all diagnostic logging (no-op, never nil-panic).
func NewCoreWithLogger(cols, rows int, log *zerolog.Logger) *Core {
	c := &Core{
		primary:       NewScreenBuffer(cols, rows),
		alternate:     NewScreenBuffer(cols, rows),
		format:        NewFormatTracker(),
		altFormat:     NewFormatTracker(),
		cursor:        NewCursorState(),
		modes:         NewModeRegistry(),
		tracer:        NewTracerRing(),
		marginTop:     0,
		marginBottom:  rows - 1,
		charsets:      [4]CharsetVariant{CharsetASCII, CharsetASCII, CharsetASCII, CharsetASCII},
		log:           log,
	}
	c.recognizer = NewControlByteRecognizer(c.tracer)
	return c
}

func (c *Core) screen() *ScreenBuffer {
	if c.onAlt {
		return c.alternate
	}
	return c.primary
}

func (c *Core) tracker() *FormatTracker {
	if c.onAlt {
		return c.altFormat
	}
	return c.format
}

// PushBytes feeds host output through the parser pipeline, applying
// every resulting event in order. It never returns an error: malformed
// input produces EventInvalid/EventIgnored events that are logged and
// otherwise have no effect, matching how a real terminal degrades
// rather than aborting a session over a bad escape sequence.
func (c *Core) PushBytes(data []byte) {
	for _, b := range data {
		for _, e := range c.recognizer.Feed(b) {
			c.applyEvent(e)
		}
	}
}

// Resize changes the visible geometry of both screens, remapping the
// cursor in whichever is currently active. pixelW/pixelH are accepted
// but not stored: the core keeps no pixel sizes and does no
// pixel-level layout of its own.
func (c *Core) Resize(cols, rows, pixelW, pixelH int) {
	if c.onAlt {
		_ = c.primary.Resize(cols, rows, CursorPosition{})
		c.cursor.Position = c.alternate.Resize(cols, rows, c.cursor.Position)
	} else {
		c.cursor.Position = c.primary.Resize(cols, rows, c.cursor.Position)
		_ = c.alternate.Resize(cols, rows, CursorPosition{})
	}
	c.marginBottom = rows - 1
	if c.marginTop > c.marginBottom {
		c.marginTop = 0
	}
	_, _ = pixelW, pixelH
}

// Cursor returns the current cursor state. The returned value is a
// copy; mutating it has no effect on Core.
func (c *Core) Cursor() CursorState { return c.cursor }

// WindowTitle returns the most recent OSC 0/2 title, and OSC 1 icon
// title.
func (c *Core) WindowTitle() (title, icon string) { return c.windowTitle, c.iconTitle }

// TakeResponses drains and returns any bytes queued for the host (DA,
// DSR, DECRQM reports, OSC color replies).
func (c *Core) TakeResponses() []byte {
	out := c.responses
	c.responses = nil
	return out
}

// TakeWindowOps drains and returns any queued XTWINOPS requests.
func (c *Core) TakeWindowOps() []WindowOp {
	out := c.windowOps
	c.windowOps = nil
	return out
}

// ResolveColor resolves a ColorValue to RGB, applying this Core's OSC
// 10/11/12 dynamic-color overrides (if any) ahead of the static
// default/palette lookup ColorValue.ResolveRGB performs.
func (c *Core) ResolveColor(cv ColorValue) RGB8 {
	if !cv.IsCustom {
		switch cv.Slot {
		case ColorDefaultForeground:
			if c.defaultFG != nil {
				return *c.defaultFG
			}
		case ColorDefaultBackground:
			if c.defaultBG != nil {
				return *c.defaultBG
			}
		case ColorDefaultCursor:
			if c.defaultCursor != nil {
				return *c.defaultCursor
			}
		}
	}
	return cv.ResolveRGB(c.palette)
}

func (c *Core) queueResponse(s string) {
	c.responses = append(c.responses, []byte(s)...)
}

// VisibleCells renders the active screen's visible rows as a grid of
// Cells, one slice per row, suitable for a renderer to blit directly.
func (c *Core) VisibleCells() [][]Cell {
	s := c.screen()
	return cellsForRanges(s.Raw(), s.VisibleRanges(), s.width, c.tracker())
}

// ScrollbackCells renders every row before the visible region, oldest
// first.
func (c *Core) ScrollbackCells() [][]Cell {
	s := c.screen()
	scrollbackEnd := s.ScrollbackLen()
	if scrollbackEnd == 0 {
		return nil
	}
	var ranges []VisibleRange
	lineStart := 0
	for i := 0; i <= scrollbackEnd; i++ {
		if i == scrollbackEnd || s.Raw()[i].Kind == TCharNewline {
			ranges = append(ranges, wrapLogicalLine(s.Raw(), lineStart, i, s.width)...)
			lineStart = i + 1
			if i == scrollbackEnd {
				break
			}
		}
	}
	return cellsForRanges(s.Raw(), ranges, s.width, c.tracker())
}

// cellsForRanges expands each [Start,End) range into exactly width
// Cells, filling the remainder of a short line with the default pen
// and emitting a CellContinuation after every wide glyph.
func cellsForRanges(buf []TChar, ranges []VisibleRange, width int, tracker *FormatTracker) [][]Cell {
	out := make([][]Cell, len(ranges))
	for i, r := range ranges {
		row := make([]Cell, 0, width)
		for pos := r.Start; pos < r.End; pos++ {
			ch := buf[pos]
			tag, _ := tracker.TagAt(pos)
			row = append(row, HeadCell(ch, tag.State))
			if ch.IsWide() {
				row = append(row, ContinuationCell())
			}
		}
		for len(row) < width {
			row = append(row, HeadCell(SpaceTChar(), DefaultFormatState()))
		}
		if len(row) > width {
			row = row[:width]
		}
		out[i] = row
	}
	return out
}
