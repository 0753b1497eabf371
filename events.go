package vtcore

// EventKind tags the closed set of events the parser layer
// (ControlByteRecognizer/CsiParser/OscParser/ScsParser) can emit. It is
// the Go rendering of the ParserEvent sum type: rather than a
// Rust-style enum-with-payload, each kind carries its payload in the
// matching fields of ParserEvent, left zero otherwise — the pattern
// freminal's own ansi.rs TerminalOutput enum follows one level up
// (Display/Debug impls that switch on the variant).
type EventKind int

const (
	EventData EventKind = iota
	EventCR
	EventLF
	EventBS
	EventBell
	EventHT
	EventSetCursorAbs
	EventSetCursorRel
	EventEraseDisplayFromCursor
	EventEraseDisplayToCursor
	EventEraseDisplayAll
	EventEraseScrollbackAndDisplay
	EventEraseLineForward
	EventEraseLineBackward
	EventEraseLine
	EventInsertLines
	EventDeleteLines
	EventScrollUp
	EventScrollDown
	EventDeleteChars
	EventEraseChars
	EventInsertSpaces
	EventSGR
	EventMode
	EventOSCDispatch
	EventReportCursor
	EventRequestDeviceAttributes
	EventSetTopAndBottomMargins
	EventSelectCharset
	EventKeypadApp
	EventKeypadNormal
	EventCursorVisualStyle
	EventWindowManipulation
	EventSaveCursor
	EventRestoreCursor
	EventFullReset
	EventDECAlignmentTest
	EventDECLineAttribute
	EventIndex
	EventReverseIndex
	EventNextLine
	EventShiftIn
	EventShiftOut
	EventInvalid
	EventIgnored
)

// ModeAction is what an SM/RM/DECSET/DECRST/DECRQM dispatch does to a
// mode: set it, reset it, or merely query it (DECRQM never mutates).
type ModeAction int

const (
	ModeActionSet ModeAction = iota
	ModeActionReset
	ModeActionQuery
)

// CharsetSlot is a G0-G3 character-set designator register (SCS).
type CharsetSlot int

const (
	CharsetG0 CharsetSlot = iota
	CharsetG1
	CharsetG2
	CharsetG3
)

// CharsetVariant is what a CharsetSlot was designated to.
type CharsetVariant int

const (
	CharsetASCII CharsetVariant = iota
	CharsetDECSpecialGraphics
	CharsetUK
)

// WindowManipulationOp enumerates the DECSLPP/XTWINOPS (CSI t)
// sub-commands, supplementing the "Window manipulation (1..24)"
// with the closed set freminal-common/src/window_manipulation.rs names.
type WindowManipulationOp int

const (
	WindowOpDeiconify WindowManipulationOp = iota + 1
	WindowOpIconify
	WindowOpMove
	WindowOpResizePixels
	WindowOpRaise
	WindowOpLower
	WindowOpRefresh
	WindowOpResizeChars
	WindowOpMaximize
	WindowOpUnmaximize
	WindowOpFullscreenToggle
	WindowOpReportState
	WindowOpReportPosition
	WindowOpReportSizePixels
	WindowOpReportSizeChars
	WindowOpReportScreenSizeChars
	WindowOpReportScreenSizePixels
	WindowOpReportIconLabel
	WindowOpReportTitle
)

// Optional wraps a parameter that may be absent (an empty CSI
// parameter), distinct from an explicit zero.
type Optional struct {
	Valid bool
	Value int
}

// Some builds a present Optional.
func Some(v int) Optional { return Optional{Valid: true, Value: v} }

// OrElse returns the wrapped value, or def if absent.
func (o Optional) OrElse(def int) int {
	if o.Valid {
		return o.Value
	}
	return def
}

// ParserEvent is one item of the typed event stream the parser layer
// produces and ActionApplier consumes. Exactly one Kind applies; only
// the fields documented for that Kind are meaningful.
type ParserEvent struct {
	Kind EventKind

	// EventData
	Data []byte

	// EventSetCursorAbs (1-based on the wire, 0-based here; Optional.Valid
	// false means "keep current axis"); EventSetCursorRel also uses AbsX
	// to return to column 0 (CNL/CPL)
	AbsX, AbsY Optional

	// EventSetCursorRel
	RelDX, RelDY Optional

	// EventInsertLines, EventDeleteLines, EventDeleteChars,
	// EventEraseChars, EventInsertSpaces, EventScrollUp, EventScrollDown
	Count int

	// EventSGR
	SGRParams []SGRParam

	// EventMode
	ModeNumber  int
	ModePrivate bool
	ModeAct     ModeAction

	// EventOSCDispatch
	OSCCommand int
	OSCArgs    []string

	// EventSetTopAndBottomMargins
	MarginTop, MarginBottom int

	// EventSelectCharset
	Slot    CharsetSlot
	Variant CharsetVariant

	// EventCursorVisualStyle
	CursorStyle CursorVisualStyle

	// EventWindowManipulation
	WindowOp     WindowManipulationOp
	WindowParams []int

	// EventDECLineAttribute
	LineAttr LineAttribute

	// Diagnostic context for EventInvalid/EventIgnored
	Raw string
}

// SGRParam is one SGR parameter with its optional colon-delimited
// subparameters, e.g. "38:2:255:128:0" -> {Base: 38, Subs: [2,255,128,0]}.
// Mirrors purfecterm's parser.go SGRParam type.
type SGRParam struct {
	Base int
	Subs []int
}
