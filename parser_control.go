package vtcore

// ControlByteRecognizer is the outermost layer of the parser pipeline
// it classifies every incoming byte into Ground, Escape,
// CSI, OSC, or SCS handling and produces a ParserEvent stream. It holds
// no screen state — only parse-in-progress state — so ActionApplier
// can consume its output on any schedule.
//
// Grounded on freminal's ansi.rs byte-classification match plus the
// teacher's parser.go state enum, reshaped into an explicit state
// machine with a typed event stream instead of direct buffer calls,
// a deliberate divergence, documented in DESIGN.md.
type ControlByteRecognizer struct {
	state parserState

	csi CsiParser
	osc OscParser

	scsSlot CharsetSlot

	pendingUTF8 []byte

	tracer *TracerRing
}

type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateHash // after ESC '#', awaiting the DECDWL/DECDHL/DECALN final byte
	stateCSI
	stateOSC
	stateSCS
)

// NewControlByteRecognizer returns a recognizer in Ground state. tracer
// may be nil; when non-nil, every fed byte is also recorded there for
// diagnostics.
func NewControlByteRecognizer(tracer *TracerRing) *ControlByteRecognizer {
	return &ControlByteRecognizer{tracer: tracer}
}

// Feed processes one input byte and returns zero or more events.
func (p *ControlByteRecognizer) Feed(b byte) []ParserEvent {
	if p.tracer != nil {
		p.tracer.Push(b)
	}
	switch p.state {
	case stateGround:
		return p.feedGround(b)
	case stateEscape:
		return p.feedEscape(b)
	case stateHash:
		return p.feedHash(b)
	case stateCSI:
		return p.feedCSI(b)
	case stateOSC:
		return p.feedOSC(b)
	case stateSCS:
		return p.feedSCS(b)
	default:
		p.state = stateGround
		return nil
	}
}

// PendingBytes reports how many bytes of an in-progress UTF-8 sequence
// are held between calls (at most 3 trailing
// bytes between push_bytes calls").
func (p *ControlByteRecognizer) PendingBytes() int { return len(p.pendingUTF8) }

func (p *ControlByteRecognizer) feedGround(b byte) []ParserEvent {
	if len(p.pendingUTF8) > 0 {
		p.pendingUTF8 = append(p.pendingUTF8, b)
		if len(p.pendingUTF8) >= utf8SeqLen(p.pendingUTF8[0]) {
			data := p.pendingUTF8
			p.pendingUTF8 = nil
			return []ParserEvent{{Kind: EventData, Data: data}}
		}
		return nil
	}

	switch {
	case b == 0x1B:
		p.state = stateEscape
		return nil
	case b == 0x00:
		return nil
	case b == 0x07:
		return []ParserEvent{{Kind: EventBell}}
	case b == 0x08:
		return []ParserEvent{{Kind: EventBS}}
	case b == 0x09:
		return []ParserEvent{{Kind: EventHT}}
	case b == 0x0A, b == 0x0B, b == 0x0C:
		return []ParserEvent{{Kind: EventLF}}
	case b == 0x0D:
		return []ParserEvent{{Kind: EventCR}}
	case b == 0x0E:
		return []ParserEvent{{Kind: EventShiftOut}}
	case b == 0x0F:
		return []ParserEvent{{Kind: EventShiftIn}}
	case b < 0x20:
		return nil
	case b < 0x7F:
		return []ParserEvent{{Kind: EventData, Data: []byte{b}}}
	case b == 0x7F:
		return nil
	default:
		n := utf8SeqLen(b)
		if n <= 1 {
			return []ParserEvent{{Kind: EventInvalid, Raw: string(rune(b))}}
		}
		p.pendingUTF8 = []byte{b}
		return nil
	}
}

func utf8SeqLen(lead byte) int {
	switch {
	case lead&0x80 == 0:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

func (p *ControlByteRecognizer) feedEscape(b byte) []ParserEvent {
	switch b {
	case '[':
		p.csi.Reset()
		p.state = stateCSI
		return nil
	case ']':
		p.osc.Reset()
		p.state = stateOSC
		return nil
	case '(':
		p.scsSlot = CharsetG0
		p.state = stateSCS
		return nil
	case ')':
		p.scsSlot = CharsetG1
		p.state = stateSCS
		return nil
	case '*':
		p.scsSlot = CharsetG2
		p.state = stateSCS
		return nil
	case '+':
		p.scsSlot = CharsetG3
		p.state = stateSCS
		return nil
	case '#':
		p.state = stateHash
		return nil
	case '7':
		p.state = stateGround
		return []ParserEvent{{Kind: EventSaveCursor}}
	case '8':
		p.state = stateGround
		return []ParserEvent{{Kind: EventRestoreCursor}}
	case 'c':
		p.state = stateGround
		return []ParserEvent{{Kind: EventFullReset}}
	case '=':
		p.state = stateGround
		return []ParserEvent{{Kind: EventKeypadApp}}
	case '>':
		p.state = stateGround
		return []ParserEvent{{Kind: EventKeypadNormal}}
	case 'D':
		p.state = stateGround
		return []ParserEvent{{Kind: EventIndex}}
	case 'M':
		p.state = stateGround
		return []ParserEvent{{Kind: EventReverseIndex}}
	case 'E':
		p.state = stateGround
		return []ParserEvent{{Kind: EventNextLine}}
	case 0x1B:
		// A second ESC while collecting one abandons the incomplete
		// sequence silently and starts over, per spec's "ESC ESC" note.
		return nil
	default:
		p.state = stateGround
		return []ParserEvent{{Kind: EventIgnored, Raw: "ESC " + string(rune(b))}}
	}
}

func (p *ControlByteRecognizer) feedHash(b byte) []ParserEvent {
	p.state = stateGround
	switch b {
	case '8':
		return []ParserEvent{{Kind: EventDECAlignmentTest}}
	case '3':
		return []ParserEvent{{Kind: EventDECLineAttribute, LineAttr: LineAttrDoubleTop}}
	case '4':
		return []ParserEvent{{Kind: EventDECLineAttribute, LineAttr: LineAttrDoubleBottom}}
	case '5':
		return []ParserEvent{{Kind: EventDECLineAttribute, LineAttr: LineAttrNormal}}
	case '6':
		return []ParserEvent{{Kind: EventDECLineAttribute, LineAttr: LineAttrDoubleWidth}}
	default:
		return []ParserEvent{{Kind: EventIgnored, Raw: "ESC #" + string(rune(b))}}
	}
}

func (p *ControlByteRecognizer) feedCSI(b byte) []ParserEvent {
	final, done := p.csi.FeedByte(b)
	if !done {
		return nil
	}
	p.state = stateGround
	return p.csi.Dispatch(final)
}

func (p *ControlByteRecognizer) feedOSC(b byte) []ParserEvent {
	done := p.osc.FeedByte(b)
	if !done {
		return nil
	}
	p.state = stateGround
	return p.osc.Dispatch()
}

func (p *ControlByteRecognizer) feedSCS(b byte) []ParserEvent {
	p.state = stateGround
	variant, ok := scsFinalToVariant(b)
	if !ok {
		return []ParserEvent{{Kind: EventIgnored, Raw: "SCS " + string(rune(b))}}
	}
	return []ParserEvent{{Kind: EventSelectCharset, Slot: p.scsSlot, Variant: variant}}
}
