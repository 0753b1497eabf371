package vtcore

// scsFinalToVariant maps an SCS final byte (the byte following ESC ( /
// ) / * / +) to the CharsetVariant it designates. Only the variants
// Three charset variants (ASCII, DEC Special Graphics, UK) are
// recognized; anything else is reported to the caller as unrecognized
// so it can be logged and ignored, matching how real terminals treat
// an unsupported SCS final.
func scsFinalToVariant(final byte) (CharsetVariant, bool) {
	switch final {
	case 'B':
		return CharsetASCII, true
	case '0':
		return CharsetDECSpecialGraphics, true
	case 'A':
		return CharsetUK, true
	default:
		return 0, false
	}
}

// decSpecialGraphicsTable maps ASCII bytes 0x5F-0x7E to the Unicode
// code point DEC Special Graphics (the line-drawing charset) assigns
// them, per the VT100 technical manual. Grounded on the same mapping
// freminal's ansi_components/split_command_and_params.rs references
// for SCS '0'.
var decSpecialGraphicsTable = map[byte]rune{
	0x5F: 0x00A0, // blank
	0x60: 0x25C6, // diamond
	0x61: 0x2592, // checkerboard
	0x62: 0x2409, // HT symbol
	0x63: 0x240C, // FF symbol
	0x64: 0x240D, // CR symbol
	0x65: 0x240A, // LF symbol
	0x66: 0x00B0, // degree
	0x67: 0x00B1, // plus/minus
	0x68: 0x2424, // NL symbol
	0x69: 0x240B, // VT symbol
	0x6A: 0x2518, // lower-right corner
	0x6B: 0x2510, // upper-right corner
	0x6C: 0x250C, // upper-left corner
	0x6D: 0x2514, // lower-left corner
	0x6E: 0x253C, // crossing lines
	0x6F: 0x23BA, // scan line 1
	0x70: 0x23BB, // scan line 3
	0x71: 0x2500, // horizontal line
	0x72: 0x23BC, // scan line 7
	0x73: 0x23BD, // scan line 9
	0x74: 0x251C, // left tee
	0x75: 0x2524, // right tee
	0x76: 0x2534, // bottom tee
	0x77: 0x252C, // top tee
	0x78: 0x2502, // vertical line
	0x79: 0x2264, // less-or-equal
	0x7A: 0x2265, // greater-or-equal
	0x7B: 0x03C0, // pi
	0x7C: 0x2260, // not-equal
	0x7D: 0x00A3, // pound sterling
	0x7E: 0x00B7, // middot
}

// TranslateCharset rewrites r through the given charset variant, the
// way an application byte gets reinterpreted once a G-slot is invoked
// (SI/SO, or the GL/GR mapping the host layer applies). ASCII is the
// identity; DEC Special Graphics remaps the printable range through
// decSpecialGraphicsTable; UK only differs from ASCII in its pound
// sign at 0x23.
func TranslateCharset(variant CharsetVariant, r rune) rune {
	switch variant {
	case CharsetDECSpecialGraphics:
		if r >= 0x5F && r <= 0x7E {
			if mapped, ok := decSpecialGraphicsTable[byte(r)]; ok {
				return mapped
			}
		}
		return r
	case CharsetUK:
		if r == 0x23 {
			return 0x00A3
		}
		return r
	default:
		return r
	}
}
