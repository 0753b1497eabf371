package vtcore

import (
	"github.com/mattn/go-runewidth"
)

// TCharKind tags the closed set of display-character primitives a
// ScreenBuffer can hold. It is the Go rendering of a TChar sum
// type: Ascii, Utf8, Space, Newline.
type TCharKind uint8

const (
	// TCharAscii is a single-byte printable ASCII character.
	TCharAscii TCharKind = iota
	// TCharUTF8 is a non-empty, valid UTF-8 byte cluster (a rune that
	// did not fit in a single ASCII byte).
	TCharUTF8
	// TCharSpace is a filler cell inserted by padding or erase.
	TCharSpace
	// TCharNewline is a hard line terminator. It only ever appears as
	// the final character of a logical line in the linear store; soft
	// wraps never produce one.
	TCharNewline
)

// TChar is one character of the buffer's linear store. Exactly one of
// its kinds applies at a time; Bytes is only meaningful for TCharAscii
// and TCharUTF8. Combining holds zero or more combining marks (accents,
// vowel points, variation selectors) that attached to this glyph after
// it was written — it never occupies a column of its own
// (ported from purfecterm's Cell.Combining, see DESIGN.md).
type TChar struct {
	Kind      TCharKind
	Ascii     byte
	Utf8      []byte // non-empty, valid UTF-8, only set when Kind == TCharUTF8
	Combining string
}

// NewAsciiTChar builds an ASCII TChar.
func NewAsciiTChar(b byte) TChar {
	return TChar{Kind: TCharAscii, Ascii: b}
}

// NewUTF8TChar builds a TChar from a decoded rune's UTF-8 encoding.
// The caller guarantees r did not fit in one ASCII byte.
func NewUTF8TChar(encoded []byte) TChar {
	cp := make([]byte, len(encoded))
	copy(cp, encoded)
	return TChar{Kind: TCharUTF8, Utf8: cp}
}

// SpaceTChar is the shared filler character.
func SpaceTChar() TChar { return TChar{Kind: TCharSpace} }

// NewlineTChar is the shared hard line terminator.
func NewlineTChar() TChar { return TChar{Kind: TCharNewline} }

// Rune returns the character's code point. Space reports ' ', Newline
// reports '\n'.
func (t TChar) Rune() rune {
	switch t.Kind {
	case TCharAscii:
		return rune(t.Ascii)
	case TCharUTF8:
		r, _ := decodeRuneUTF8(t.Utf8)
		return r
	case TCharSpace:
		return ' '
	default:
		return '\n'
	}
}

// Text returns the full rendered glyph: the base rune plus any
// combining marks attached to it, e.g. "e" + U+0301 -> "é" as two code
// points. Renderers should call this instead of Rune() when they want
// the visually complete grapheme cluster.
func (t TChar) Text() string {
	base := string(t.Rune())
	if t.Kind == TCharSpace || t.Kind == TCharNewline {
		return base
	}
	if t.Combining == "" {
		return base
	}
	return base + t.Combining
}

// WithCombining returns a copy of t with r appended to its combining
// marks. Only meaningful for TCharAscii/TCharUTF8; callers must not
// call this on Space/Newline.
func (t TChar) WithCombining(r rune) TChar {
	t.Combining += string(r)
	return t
}

// DisplayWidth is the number of terminal columns this character
// occupies: 1 for everything except wide CJK/emoji clusters, which
// report 2. Newline reports 0 — it never occupies a visible column.
func (t TChar) DisplayWidth() int {
	switch t.Kind {
	case TCharNewline:
		return 0
	case TCharAscii, TCharSpace:
		return 1
	default:
		w := runewidth.RuneWidth(t.Rune())
		if w <= 0 {
			return 1
		}
		return w
	}
}

// IsWide reports whether this character occupies two display columns.
func (t TChar) IsWide() bool { return t.DisplayWidth() == 2 }

func decodeRuneUTF8(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0xFFFD, 0
	}
	switch {
	case b[0]&0x80 == 0:
		return rune(b[0]), 1
	case b[0]&0xE0 == 0xC0 && len(b) >= 2:
		return rune(b[0]&0x1F)<<6 | rune(b[1]&0x3F), 2
	case b[0]&0xF0 == 0xE0 && len(b) >= 3:
		return rune(b[0]&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F), 3
	case b[0]&0xF8 == 0xF0 && len(b) >= 4:
		return rune(b[0]&0x07)<<18 | rune(b[1]&0x3F)<<12 | rune(b[2]&0x3F)<<6 | rune(b[3]&0x3F), 4
	default:
		return 0xFFFD, 1
	}
}

// IsCombiningMark reports whether r is a Unicode combining character
// (diacritics, vowel points, variation selectors, ZWJ/ZWNJ). Ported
// from purfecterm's cell.go table; kept because go-runewidth does not
// expose an equivalent predicate.
func IsCombiningMark(r rune) bool {
	switch {
	case r >= 0x0300 && r <= 0x036F,
		r >= 0x1AB0 && r <= 0x1AFF,
		r >= 0x1DC0 && r <= 0x1DFF,
		r >= 0x20D0 && r <= 0x20FF,
		r >= 0xFE20 && r <= 0xFE2F,
		r >= 0x0591 && r <= 0x05BD,
		r == 0x05BF, r == 0x05C1, r == 0x05C2, r == 0x05C4, r == 0x05C5, r == 0x05C7,
		r >= 0x0610 && r <= 0x061A,
		r >= 0x064B && r <= 0x065F,
		r == 0x0670,
		r >= 0x06D6 && r <= 0x06DC,
		r >= 0x06DF && r <= 0x06E4,
		r >= 0x06E7 && r <= 0x06E8,
		r >= 0x06EA && r <= 0x06ED,
		r >= 0x0E31 && r <= 0x0E3A,
		r >= 0x0E47 && r <= 0x0E4E,
		r >= 0x0901 && r <= 0x0903,
		r >= 0x093A && r <= 0x094F,
		r >= 0x0951 && r <= 0x0957,
		r >= 0x0962 && r <= 0x0963,
		r >= 0x1160 && r <= 0x11FF,
		r >= 0xFE00 && r <= 0xFE0F,
		r == 0x200C, r == 0x200D:
		return true
	default:
		return false
	}
}

// TCharsFromRune converts a decoded rune into the TChar(s) it expands
// to. ASCII runes produce a single TCharAscii; everything else produces
// a TCharUTF8 carrying its encoded bytes.
func TCharsFromRune(r rune) TChar {
	if r >= 0x20 && r < 0x7F {
		return NewAsciiTChar(byte(r))
	}
	return NewUTF8TChar(encodeRuneUTF8(r))
}

func encodeRuneUTF8(r rune) []byte {
	switch {
	case r < 0x80:
		return []byte{byte(r)}
	case r < 0x800:
		return []byte{
			0xC0 | byte(r>>6),
			0x80 | byte(r)&0x3F,
		}
	case r < 0x10000:
		return []byte{
			0xE0 | byte(r>>12),
			0x80 | byte(r>>6)&0x3F,
			0x80 | byte(r)&0x3F,
		}
	default:
		return []byte{
			0xF0 | byte(r>>18),
			0x80 | byte(r>>12)&0x3F,
			0x80 | byte(r>>6)&0x3F,
			0x80 | byte(r)&0x3F,
		}
	}
}
