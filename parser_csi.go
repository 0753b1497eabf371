package vtcore

// CsiParser accumulates one CSI sequence's private-marker, parameter,
// and intermediate bytes, and turns the finished sequence into
// ParserEvents once the final byte arrives. It is driven
// one byte at a time by ControlByteRecognizer; it never sees the
// leading ESC [ itself.
//
// Grounded on purfecterm's parser.go CSI accumulation loop, but
// restructured to return events instead of calling buffer methods
// directly.
type CsiParser struct {
	private       byte // '?', '<', '=', '>', or 0
	paramsRaw     []byte
	intermediates []byte
}

// Reset clears accumulated state for a new sequence.
func (c *CsiParser) Reset() {
	c.private = 0
	c.paramsRaw = c.paramsRaw[:0]
	c.intermediates = c.intermediates[:0]
}

// FeedByte consumes one byte of the sequence. done is true once b is
// the final byte, which FeedByte also returns.
func (c *CsiParser) FeedByte(b byte) (final byte, done bool) {
	switch {
	case b >= 0x3C && b <= 0x3F && len(c.paramsRaw) == 0:
		c.private = b
		return 0, false
	case b >= 0x30 && b <= 0x3B:
		c.paramsRaw = append(c.paramsRaw, b)
		return 0, false
	case b >= 0x20 && b <= 0x2F:
		c.intermediates = append(c.intermediates, b)
		return 0, false
	case b >= 0x40 && b <= 0x7E:
		return b, true
	default:
		return 0, false
	}
}

func splitBytes(b []byte, sep byte) [][]byte {
	if len(b) == 0 {
		return nil
	}
	var out [][]byte
	start := 0
	for i, c := range b {
		if c == sep {
			out = append(out, b[start:i])
			start = i + 1
		}
	}
	out = append(out, b[start:])
	return out
}

func parseIntBytes(b []byte) int {
	v := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return v
		}
		v = v*10 + int(c-'0')
	}
	return v
}

// intParams splits the accumulated parameter bytes on ';', ignoring
// any ':' subparameters, and parses each token to an Optional (absent
// for an empty token, i.e. two adjacent ';' or a leading one).
func (c *CsiParser) intParams() []Optional {
	if len(c.paramsRaw) == 0 {
		return nil
	}
	var out []Optional
	for _, tok := range splitBytes(c.paramsRaw, ';') {
		if idx := indexByte(tok, ':'); idx >= 0 {
			tok = tok[:idx]
		}
		if len(tok) == 0 {
			out = append(out, Optional{})
			continue
		}
		out = append(out, Some(parseIntBytes(tok)))
	}
	return out
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

// sgrParams parses the accumulated bytes as SGR parameters: ';'
// separates parameters, ':' separates a parameter's subparameters
// (used by 38/48/58 extended color syntax). An empty sequence (bare
// CSI m) yields a single {Base: 0} — the implicit reset parameter.
func (c *CsiParser) sgrParams() []SGRParam {
	if len(c.paramsRaw) == 0 {
		return []SGRParam{{Base: 0}}
	}
	var out []SGRParam
	for _, tok := range splitBytes(c.paramsRaw, ';') {
		subs := splitBytes(tok, ':')
		p := SGRParam{Base: parseIntBytes(subs[0])}
		for _, s := range subs[1:] {
			p.Subs = append(p.Subs, parseIntBytes(s))
		}
		out = append(out, p)
	}
	return out
}

func (c *CsiParser) param(i int, def int) int {
	p := c.intParams()
	if i < 0 || i >= len(p) {
		return def
	}
	return p[i].OrElse(def)
}

func (c *CsiParser) hasIntermediate(b byte) bool {
	for _, x := range c.intermediates {
		if x == b {
			return true
		}
	}
	return false
}

// Dispatch turns the finished sequence into its ParserEvent(s).
// Unrecognized combinations produce a single EventIgnored carrying the
// raw sequence for diagnostics, rather than silently dropping it.
func (c *CsiParser) Dispatch(final byte) []ParserEvent {
	private := c.private == '?'
	n := func(i int) int {
		v := c.param(i, 0)
		if v == 0 {
			return 1
		}
		return v
	}

	switch final {
	case 'A':
		return ev(EventSetCursorRel, func(e *ParserEvent) { e.RelDY = Some(-n(0)) })
	case 'B':
		return ev(EventSetCursorRel, func(e *ParserEvent) { e.RelDY = Some(n(0)) })
	case 'C':
		return ev(EventSetCursorRel, func(e *ParserEvent) { e.RelDX = Some(n(0)) })
	case 'D':
		return ev(EventSetCursorRel, func(e *ParserEvent) { e.RelDX = Some(-n(0)) })
	case 'E':
		return ev(EventSetCursorRel, func(e *ParserEvent) { e.RelDY = Some(n(0)); e.AbsX = Some(0) })
	case 'F':
		return ev(EventSetCursorRel, func(e *ParserEvent) { e.RelDY = Some(-n(0)); e.AbsX = Some(0) })
	case 'G', '`':
		return ev(EventSetCursorAbs, func(e *ParserEvent) { e.AbsX = Some(c.param(0, 1) - 1) })
	case 'd':
		return ev(EventSetCursorAbs, func(e *ParserEvent) { e.AbsY = Some(c.param(0, 1) - 1) })
	case 'H', 'f':
		return ev(EventSetCursorAbs, func(e *ParserEvent) {
			e.AbsY = Some(c.param(0, 1) - 1)
			e.AbsX = Some(c.param(1, 1) - 1)
		})
	case 'J':
		switch c.param(0, 0) {
		case 1:
			return []ParserEvent{{Kind: EventEraseDisplayToCursor}}
		case 2:
			return []ParserEvent{{Kind: EventEraseDisplayAll}}
		case 3:
			return []ParserEvent{{Kind: EventEraseScrollbackAndDisplay}}
		default:
			return []ParserEvent{{Kind: EventEraseDisplayFromCursor}}
		}
	case 'K':
		switch c.param(0, 0) {
		case 1:
			return []ParserEvent{{Kind: EventEraseLineBackward}}
		case 2:
			return []ParserEvent{{Kind: EventEraseLine}}
		default:
			return []ParserEvent{{Kind: EventEraseLineForward}}
		}
	case 'L':
		return []ParserEvent{{Kind: EventInsertLines, Count: n(0)}}
	case 'M':
		return []ParserEvent{{Kind: EventDeleteLines, Count: n(0)}}
	case 'S':
		return []ParserEvent{{Kind: EventScrollUp, Count: n(0)}}
	case 'T':
		return []ParserEvent{{Kind: EventScrollDown, Count: n(0)}}
	case '@':
		return []ParserEvent{{Kind: EventInsertSpaces, Count: n(0)}}
	case 'P':
		return []ParserEvent{{Kind: EventDeleteChars, Count: n(0)}}
	case 'X':
		return []ParserEvent{{Kind: EventEraseChars, Count: n(0)}}
	case 'm':
		return []ParserEvent{{Kind: EventSGR, SGRParams: c.sgrParams()}}
	case 'h', 'l':
		return c.dispatchModes(final == 'h', private)
	case 'r':
		return []ParserEvent{{Kind: EventSetTopAndBottomMargins, MarginTop: c.param(0, 0), MarginBottom: c.param(1, 0)}}
	case 'n':
		if c.param(0, 0) == 6 {
			return []ParserEvent{{Kind: EventReportCursor}}
		}
		return []ParserEvent{{Kind: EventIgnored, Raw: "CSI n"}}
	case 'c':
		return []ParserEvent{{Kind: EventRequestDeviceAttributes}}
	case 'q':
		if c.hasIntermediate(' ') {
			return []ParserEvent{{Kind: EventCursorVisualStyle, CursorStyle: CursorVisualStyle(c.param(0, 0))}}
		}
		return []ParserEvent{{Kind: EventIgnored, Raw: "CSI q"}}
	case 'p':
		if private && c.hasIntermediate('$') {
			return []ParserEvent{{Kind: EventMode, ModeNumber: c.param(0, 0), ModePrivate: true, ModeAct: ModeActionQuery}}
		}
		return []ParserEvent{{Kind: EventIgnored, Raw: "CSI p"}}
	case 't':
		params := c.intParams()
		var ints []int
		for _, p := range params {
			ints = append(ints, p.OrElse(0))
		}
		if len(ints) == 0 {
			return []ParserEvent{{Kind: EventIgnored, Raw: "CSI t"}}
		}
		return []ParserEvent{{Kind: EventWindowManipulation, WindowOp: WindowManipulationOp(ints[0]), WindowParams: ints[1:]}}
	case 's':
		if !private {
			return []ParserEvent{{Kind: EventSaveCursor}}
		}
		return []ParserEvent{{Kind: EventIgnored, Raw: "CSI s"}}
	case 'u':
		if !private {
			return []ParserEvent{{Kind: EventRestoreCursor}}
		}
		return []ParserEvent{{Kind: EventIgnored, Raw: "CSI u"}}
	default:
		return []ParserEvent{{Kind: EventIgnored, Raw: "CSI " + string(rune(final))}}
	}
}

// dispatchModes expands a (possibly multi-parameter) SM/RM/DECSET/
// DECRST sequence into one EventMode per parameter, since each names
// an independently-dispatched mode.
func (c *CsiParser) dispatchModes(set bool, private bool) []ParserEvent {
	params := c.intParams()
	if len(params) == 0 {
		return nil
	}
	act := ModeActionReset
	if set {
		act = ModeActionSet
	}
	out := make([]ParserEvent, 0, len(params))
	for _, p := range params {
		out = append(out, ParserEvent{
			Kind:        EventMode,
			ModeNumber:  p.OrElse(0),
			ModePrivate: private,
			ModeAct:     act,
		})
	}
	return out
}

func ev(kind EventKind, mutate func(e *ParserEvent)) []ParserEvent {
	e := ParserEvent{Kind: kind}
	mutate(&e)
	return []ParserEvent{e}
}
