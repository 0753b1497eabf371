package vtcore

// FontWeight is Normal or Bold.
type FontWeight uint8

const (
	WeightNormal FontWeight = iota
	WeightBold
)

// Decoration is one of the independent text decorations a FormatState
// can carry (Italic, Underline, Strikethrough, Faint). Underline style
// and color are tracked separately (UnderlineStyle, UnderlineColor)
// since VT510 treats underline as richer than a boolean.
type Decoration uint8

const (
	DecorationItalic Decoration = iota
	DecorationUnderline
	DecorationStrikethrough
	DecorationFaint
)

// UnderlineStyle distinguishes the VT510/SGR 4:n underline variants.
type UnderlineStyle uint8

const (
	UnderlineStyleNone UnderlineStyle = iota
	UnderlineStyleSingle
	UnderlineStyleDouble
	UnderlineStyleCurly
	UnderlineStyleDotted
	UnderlineStyleDashed
)

// FormatState is the immutable "pen": every attribute that affects how
// a character is displayed, minus its position. Two FormatStates
// compare equal with ==, which FormatTracker relies on to decide
// whether adjacent tags may be merged.
type FormatState struct {
	Foreground     ColorValue
	Background     ColorValue
	UnderlineColor ColorValue
	HasUnderlineColor bool

	Reverse bool
	Weight  FontWeight

	Italic        bool
	Underline     bool
	UnderlineKind UnderlineStyle
	Strikethrough bool
	Faint         bool

	AutoWrap bool // mirrors DECAWM at the time this run of text was written

	Hyperlink   string // URI, empty when not inside an OSC 8 hyperlink
	HyperlinkID string // OSC 8 id= grouping key
}

// DefaultFormatState is the pen every buffer starts with: default
// colors, normal weight, no decorations, autowrap on.
func DefaultFormatState() FormatState {
	return FormatState{
		Foreground: NamedColor(ColorDefaultForeground),
		Background: NamedColor(ColorDefaultBackground),
		AutoWrap:   true,
	}
}

// HasDecoration reports whether d is active on this pen.
func (f FormatState) HasDecoration(d Decoration) bool {
	switch d {
	case DecorationItalic:
		return f.Italic
	case DecorationUnderline:
		return f.Underline
	case DecorationStrikethrough:
		return f.Strikethrough
	case DecorationFaint:
		return f.Faint
	default:
		return false
	}
}

// CursorVisualStyle is the DECSCUSR cursor shape (0..6): blink/steady
// block, underline, bar.
type CursorVisualStyle uint8

const (
	CursorStyleDefault CursorVisualStyle = iota
	CursorStyleBlinkingBlock
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// CursorPosition is a zero-based (x, y) address into the visible
// screen. x == width is the deferred-wrap latch: the
// cursor just wrote the rightmost column and has not yet wrapped.
type CursorPosition struct {
	X, Y int
}

// CursorState bundles the cursor's position, its visibility/style, and
// the saved-cursor slot DECSC/DECRC round-trips through.
type CursorState struct {
	Position    CursorPosition
	WrapPending bool // deferred-wrap latch, tracked independently of X == width; BS leaves both X and this latch untouched per spec §8
	Visible     bool
	Style       CursorVisualStyle
	Pen         FormatState // the active pen SGR mutates

	saved       *savedCursor
}

type savedCursor struct {
	position    CursorPosition
	wrapPending bool
	pen         FormatState
}

// NewCursorState returns the construction-time default cursor: (0,0),
// visible, default pen.
func NewCursorState() CursorState {
	return CursorState{
		Position: CursorPosition{X: 0, Y: 0},
		Visible:  true,
		Style:    CursorStyleDefault,
		Pen:      DefaultFormatState(),
	}
}

// Save implements DECSC: stashes position, wrap latch, and pen.
func (c *CursorState) Save() {
	s := savedCursor{position: c.Position, wrapPending: c.WrapPending, pen: c.Pen}
	c.saved = &s
}

// Restore implements DECRC: restores position, wrap latch, and pen from
// the last Save, or resets to defaults if nothing was ever saved (per
// VT510 behavior on DECRC with no prior DECSC).
func (c *CursorState) Restore() {
	if c.saved == nil {
		c.Position = CursorPosition{X: 0, Y: 0}
		c.WrapPending = false
		c.Pen = DefaultFormatState()
		return
	}
	c.Position = c.saved.position
	c.WrapPending = c.saved.wrapPending
	c.Pen = c.saved.pen
}

// ClearWrapLatch clears the deferred-wrap state. Called by every
// operation the wrap-latch table marks "cleared".
func (c *CursorState) ClearWrapLatch() {
	c.WrapPending = false
}
