package vtcore

// ModeKind enumerates every DEC private and ANSI mode the core tracks,
// Private (DEC, "?"-prefixed) and ANSI modes share one
// registry; ModeDispatcher is responsible for routing a parsed mode
// number plus its private-prefix flag to the right ModeKind.
type ModeKind int

const (
	ModeDECCKM ModeKind = iota // 1  cursor-key application mode
	ModeDECANM                 // 2  ANSI/VT52 mode
	ModeDECCOLM                 // 3  80/132 column mode
	ModeDECSCLM                 // 4  smooth scroll
	ModeDECSCNM                 // 5  reverse video screen
	ModeDECOM                   // 6  origin mode
	ModeDECAWM                  // 7  autowrap
	ModeDECARM                  // 8  auto-repeat
	ModeMouseX10                // 9
	ModeXTCBlink                 // 12 cursor blink
	ModeDECTCEM                  // 25 cursor visible
	ModeAllowColumnModeSwitch    // 40
	ModeReverseWrapAround        // 45
	ModeMouseX11                 // 1000
	ModeMouseBtn                 // 1002
	ModeMouseAny                 // 1003
	ModeMouseUTF                 // 1005
	ModeMouseSGR                 // 1006
	ModeMouseURXVT                // 1015
	ModeMouseSGRPixels            // 1016
	ModeXTMseWin                  // 1004 focus reporting
	ModeXTExtScrn                 // 1049 alternate screen
	ModeLNM                       // 20  linefeed/newline
	ModeBracketedPaste            // 2004
	ModeSynchronizedUpdates       // 2026 / 2027

	modeKindCount
)

// modeCatalog maps the wire number (and private-prefix requirement) to
// a ModeKind, grounded on freminal's terminal_mode_from_params
// (ansi_components/mode.rs) extended to the full table this module tracks.
type modeNumber struct {
	number  int
	private bool
}

var modeCatalog = map[modeNumber]ModeKind{
	{1, true}:     ModeDECCKM,
	{2, true}:     ModeDECANM,
	{3, true}:     ModeDECCOLM,
	{4, true}:     ModeDECSCLM,
	{5, true}:     ModeDECSCNM,
	{6, true}:     ModeDECOM,
	{7, true}:     ModeDECAWM,
	{8, true}:     ModeDECARM,
	{9, true}:      ModeMouseX10,
	{12, true}:     ModeXTCBlink,
	{25, true}:     ModeDECTCEM,
	{40, true}:     ModeAllowColumnModeSwitch,
	{45, true}:     ModeReverseWrapAround,
	{1000, true}:   ModeMouseX11,
	{1002, true}:   ModeMouseBtn,
	{1003, true}:   ModeMouseAny,
	{1004, true}:   ModeXTMseWin,
	{1005, true}:   ModeMouseUTF,
	{1006, true}:   ModeMouseSGR,
	{1015, true}:   ModeMouseURXVT,
	{1016, true}:   ModeMouseSGRPixels,
	{1049, true}:   ModeXTExtScrn,
	{2004, true}:   ModeBracketedPaste,
	{2026, true}:   ModeSynchronizedUpdates,
	{2027, true}:   ModeSynchronizedUpdates,
	{20, false}:    ModeLNM,
}

// defaultModeValue gives the construction-time Set/Reset value for
// modes where "off" is not simply false (DECAWM, DECTCEM and DECARM
// default on, matching a freshly attached VT510 terminal).
func defaultModeValue(k ModeKind) bool {
	switch k {
	case ModeDECAWM, ModeDECTCEM, ModeDECARM:
		return true
	default:
		return false
	}
}

// ModeRegistry holds the current Set/Reset value of every supported
// mode. It has no notion of "Query" as stored state —
// DECRQM is an on-demand report computed from the stored boolean, per
// the v column of spec's DECRQM table.
type ModeRegistry struct {
	values [modeKindCount]bool
}

// NewModeRegistry returns a registry at construction defaults.
func NewModeRegistry() *ModeRegistry {
	r := &ModeRegistry{}
	r.Reset()
	return r
}

// Reset restores every mode to its construction default. Used on RIS
// (ESC c) and at Core construction.
func (r *ModeRegistry) Reset() {
	for k := ModeKind(0); k < modeKindCount; k++ {
		r.values[k] = defaultModeValue(k)
	}
}

// Get reports whether k is currently Set.
func (r *ModeRegistry) Get(k ModeKind) bool {
	return r.values[k]
}

// Set updates k's Set/Reset value.
func (r *ModeRegistry) Set(k ModeKind, on bool) {
	r.values[k] = on
}

// LookupMode resolves a wire mode number (as parsed by ModeDispatcher)
// to a ModeKind. ok is false for unrecognized numbers, which DECRQM
// must report as v=0.
func LookupMode(number int, private bool) (ModeKind, bool) {
	k, ok := modeCatalog[modeNumber{number: number, private: private}]
	return k, ok
}

// DECRQMValue is the v field of a DECRQM response: CSI ? n ; v $ y.
type DECRQMValue int

const (
	DECRQMNotRecognized    DECRQMValue = 0
	DECRQMSet              DECRQMValue = 1
	DECRQMReset            DECRQMValue = 2
	DECRQMPermanentlySet   DECRQMValue = 3
	DECRQMPermanentlyReset DECRQMValue = 4
)

// QueryDECRQM reports the current value of mode `number` in DECRQM
// encoding. Unrecognized modes report DECRQMNotRecognized.
func (r *ModeRegistry) QueryDECRQM(number int, private bool) DECRQMValue {
	k, ok := LookupMode(number, private)
	if !ok {
		return DECRQMNotRecognized
	}
	if r.Get(k) {
		return DECRQMSet
	}
	return DECRQMReset
}
