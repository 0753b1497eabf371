package vtcore

import "strconv"

// Key identifies one logical key press the host's input layer
// collaborator reports to Core. Printable characters
// should be sent through RuneInput, not decomposed into this enum.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyBackspace
	KeyTab
	KeyEnter
	KeyEscape
)

// KeyMods are the modifier bits XTerm's CSI u / modifyOtherKeys
// encoding expects: 1=Shift, 2=Alt, 4=Ctrl, 8=Meta, combined by
// addition with a base of 1 (so "no modifiers" encodes as 1).
type KeyMods int

const (
	ModShift KeyMods = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// KeyInput translates a non-printable key press into the byte
// sequence to write to the PTY, honoring DECCKM (cursor-key
// application mode) for the arrow/Home/End cluster. Grounded on the
// teacher's terminal_caps.go key-sequence tables, generalized from its
// fixed xterm table to consult ModeRegistry instead of a static
// terminfo capability string.
func (c *Core) KeyInput(k Key, mods KeyMods) []byte {
	appCursor := c.modes.Get(ModeDECCKM)

	if mods != 0 {
		if seq, ok := modifiedKeySequence(k, mods); ok {
			return []byte(seq)
		}
	}

	switch k {
	case KeyUp:
		return cursorSeq(appCursor, 'A')
	case KeyDown:
		return cursorSeq(appCursor, 'B')
	case KeyRight:
		return cursorSeq(appCursor, 'C')
	case KeyLeft:
		return cursorSeq(appCursor, 'D')
	case KeyHome:
		return cursorSeq(appCursor, 'H')
	case KeyEnd:
		return cursorSeq(appCursor, 'F')
	case KeyPageUp:
		return []byte("\x1b[5~")
	case KeyPageDown:
		return []byte("\x1b[6~")
	case KeyInsert:
		return []byte("\x1b[2~")
	case KeyDelete:
		return []byte("\x1b[3~")
	case KeyF1:
		return []byte("\x1bOP")
	case KeyF2:
		return []byte("\x1bOQ")
	case KeyF3:
		return []byte("\x1bOR")
	case KeyF4:
		return []byte("\x1bOS")
	case KeyF5:
		return []byte("\x1b[15~")
	case KeyF6:
		return []byte("\x1b[17~")
	case KeyF7:
		return []byte("\x1b[18~")
	case KeyF8:
		return []byte("\x1b[19~")
	case KeyF9:
		return []byte("\x1b[20~")
	case KeyF10:
		return []byte("\x1b[21~")
	case KeyF11:
		return []byte("\x1b[23~")
	case KeyF12:
		return []byte("\x1b[24~")
	case KeyBackspace:
		return []byte{0x7F}
	case KeyTab:
		return []byte{0x09}
	case KeyEnter:
		return []byte{0x0D}
	case KeyEscape:
		return []byte{0x1B}
	default:
		return nil
	}
}

func cursorSeq(appMode bool, final byte) []byte {
	if appMode {
		return []byte{0x1B, 'O', final}
	}
	return []byte{0x1B, '[', final}
}

func modifiedKeySequence(k Key, mods KeyMods) (string, bool) {
	final, ok := keyFinalByte(k)
	if !ok {
		return "", false
	}
	return "\x1b[1;" + strconv.Itoa(1+int(mods)) + string(rune(final)), true
}

func keyFinalByte(k Key) (byte, bool) {
	switch k {
	case KeyUp:
		return 'A', true
	case KeyDown:
		return 'B', true
	case KeyRight:
		return 'C', true
	case KeyLeft:
		return 'D', true
	case KeyHome:
		return 'H', true
	case KeyEnd:
		return 'F', true
	default:
		return 0, false
	}
}

// RuneInput translates a printable character keypress into the bytes
// to write to the PTY. Ctrl+letter combinations collapse to their C0
// control code, matching standard terminal behavior.
func RuneInput(r rune, mods KeyMods) []byte {
	if mods&ModCtrl != 0 && r >= 'a' && r <= 'z' {
		return []byte{byte(r - 'a' + 1)}
	}
	if mods&ModCtrl != 0 && r >= 'A' && r <= 'Z' {
		return []byte{byte(r - 'A' + 1)}
	}
	if mods&ModAlt != 0 {
		return append([]byte{0x1B}, []byte(string(r))...)
	}
	return []byte(string(r))
}

// BracketedPaste wraps text in the bracketed-paste markers when mode
// 2004 is set, so pasted content can't be mistaken for typed keys by
// the foreground application.
func (c *Core) BracketedPaste(text string) []byte {
	if !c.modes.Get(ModeBracketedPaste) {
		return []byte(text)
	}
	return append(append([]byte("\x1b[200~"), []byte(text)...), []byte("\x1b[201~")...)
}
