package vtcore

import "testing"

func firstRowText(c *Core) string {
	rows := c.VisibleCells()
	if len(rows) == 0 {
		return ""
	}
	return rowText(rows[0])
}

func TestCorePlainTextWrites(t *testing.T) {
	c := NewCore(10, 3)
	c.PushBytes([]byte("hi"))
	if got := firstRowText(c); got[:2] != "hi" {
		t.Errorf("first row = %q, want to start with \"hi\"", got)
	}
	if c.Cursor().Position.X != 2 {
		t.Errorf("cursor X = %d, want 2", c.Cursor().Position.X)
	}
}

func TestCoreAutowrapAdvancesLine(t *testing.T) {
	c := NewCore(3, 3)
	c.PushBytes([]byte("abcd"))
	rows := c.VisibleCells()
	if rowText(rows[0])[:3] != "abc" {
		t.Errorf("row 0 = %q, want \"abc\"", rowText(rows[0]))
	}
	if rowText(rows[1])[:1] != "d" {
		t.Errorf("row 1 = %q, want to start with \"d\"", rowText(rows[1]))
	}
	if c.Cursor().Position.Y != 1 || c.Cursor().Position.X != 1 {
		t.Errorf("cursor = %+v, want (1,1)", c.Cursor().Position)
	}
}

func TestCoreDECAWMOffOverwritesLastColumn(t *testing.T) {
	c := NewCore(5, 3)
	c.PushBytes([]byte("\x1b[?7l")) // DECRST 7: disable autowrap
	c.PushBytes([]byte("abcdef"))

	if got := firstRowText(c)[:5]; got != "abcdf" {
		t.Errorf("row 0 = %q, want \"abcdf\"", got)
	}
	if c.Cursor().Position.Y != 0 {
		t.Errorf("cursor should stay on row 0 with autowrap off, got Y=%d", c.Cursor().Position.Y)
	}
}

func TestCoreCursorMovementClamps(t *testing.T) {
	c := NewCore(10, 5)
	c.PushBytes([]byte("\x1b[100B")) // CUD past the bottom margin
	if c.Cursor().Position.Y != 4 {
		t.Errorf("cursor Y = %d, want clamped to 4", c.Cursor().Position.Y)
	}
	c.PushBytes([]byte("\x1b[3;3H")) // CUP to (row 3, col 3), 1-based
	if c.Cursor().Position != (CursorPosition{X: 2, Y: 2}) {
		t.Errorf("cursor = %+v, want (2,2)", c.Cursor().Position)
	}
}

func TestCoreSGRBold(t *testing.T) {
	c := NewCore(10, 3)
	c.PushBytes([]byte("\x1b[1mhi\x1b[0m"))
	rows := c.VisibleCells()
	if !rows[0][0].Format.Weight.isBold() {
		t.Error("first cell should be bold")
	}
	if rows[0][2].Format.Weight.isBold() {
		t.Error("cell after SGR reset should not be bold")
	}
}

func (w FontWeight) isBold() bool { return w == WeightBold }

func TestCoreEraseDisplayAll(t *testing.T) {
	c := NewCore(5, 2)
	c.PushBytes([]byte("hello"))
	c.PushBytes([]byte("\x1b[2J"))
	if got := firstRowText(c); got != "     " {
		t.Errorf("row 0 after ED 2 = %q, want blank", got)
	}
}

func TestCoreDECRQMReport(t *testing.T) {
	c := NewCore(10, 3)
	c.PushBytes([]byte("\x1b[?25$p")) // query DECTCEM, which defaults on
	resp := string(c.TakeResponses())
	if resp != "\x1b[?25;1$y" {
		t.Errorf("DECRQM response = %q, want \"\\x1b[?25;1$y\"", resp)
	}
}

func TestCoreAlternateScreenSwap(t *testing.T) {
	c := NewCore(12, 3)
	c.PushBytes([]byte("main screen"))
	c.PushBytes([]byte("\x1b[?1049h"))
	c.PushBytes([]byte("alt screen"))
	if got := firstRowText(c)[:10]; got != "alt screen" {
		t.Errorf("alt screen row 0 = %q", got)
	}
	c.PushBytes([]byte("\x1b[?1049l"))
	if got := firstRowText(c)[:11]; got != "main screen" {
		t.Errorf("primary screen row 0 after restore = %q, want \"main screen\"", got)
	}
}

func TestCoreReportCursorPosition(t *testing.T) {
	c := NewCore(10, 3)
	c.PushBytes([]byte("\x1b[2;4H\x1b[6n"))
	resp := string(c.TakeResponses())
	if resp != "\x1b[2;4R" {
		t.Errorf("DSR 6 response = %q, want \"\\x1b[2;4R\"", resp)
	}
}

func TestCoreCombiningMarkAttachesToPreviousCell(t *testing.T) {
	c := NewCore(10, 3)
	c.PushBytes([]byte("e"))
	c.PushBytes([]byte("́")) // combining acute accent

	if c.Cursor().Position.X != 1 {
		t.Errorf("cursor X = %d, want 1 (combining mark should not advance the cursor)", c.Cursor().Position.X)
	}
	rows := c.VisibleCells()
	if got, want := rows[0][0].TChar.Text(), "é"; got != want {
		t.Errorf("cell 0 text = %q, want %q", got, want)
	}
	if rows[0][1].TChar.Text() != " " {
		t.Errorf("cell 1 should still be blank, got %q", rows[0][1].TChar.Text())
	}
}

func TestCoreScrollRegionCarriesFormatWithContent(t *testing.T) {
	c := NewCore(5, 4)
	c.PushBytes([]byte("\x1b[2;3r")) // DECSTBM: scroll region rows 2-3 (1-based)
	c.PushBytes([]byte("\x1b[2;1H"))
	c.PushBytes([]byte("\x1b[31mred\x1b[0m")) // row 2 (index 1): "red" in red, rest default
	c.PushBytes([]byte("\x1b[3;1H"))
	c.PushBytes([]byte("blue")) // row 3 (index 2): default-colored "blue"
	c.PushBytes([]byte("\x1b[2;1H\x1b[1S"))

	rows := c.VisibleCells()
	// Row index 1 (screen row 2 within the region) should now show what
	// was row 3's plain "blue" content, not row 2's stale red tag.
	if got := rowText(rows[1])[:4]; got != "blue" {
		t.Errorf("row 1 after region scroll = %q, want \"blue\"", got)
	}
	if rows[1][0].Format.Foreground != NamedColor(ColorDefaultForeground) {
		t.Errorf("row 1 cell 0 foreground = %+v, want default (moved-in content is unformatted)", rows[1][0].Format.Foreground)
	}
}

func TestCoreWindowTitleOSC(t *testing.T) {
	c := NewCore(10, 3)
	c.PushBytes([]byte("\x1b]2;hello there\x07"))
	title, _ := c.WindowTitle()
	if title != "hello there" {
		t.Errorf("window title = %q, want \"hello there\"", title)
	}
}

func TestCoreHTWrapsAtDeferredLatch(t *testing.T) {
	c := NewCore(2, 3)
	c.PushBytes([]byte("AB\t")) // fills row 0, latches, then HT should wrap to row 1
	if c.Cursor().Position.Y != 1 {
		t.Errorf("cursor Y = %d, want 1 (HT wraps a pending latch)", c.Cursor().Position.Y)
	}
	if c.Cursor().Position.X != 1 {
		t.Errorf("cursor X = %d, want 1 (tab stop on a 2-column row)", c.Cursor().Position.X)
	}
}

func TestCoreBackspaceAtLatchLeavesLatchSet(t *testing.T) {
	c := NewCore(2, 3)
	c.PushBytes([]byte("AB\x08")) // B at the last column latches; BS must not clear it
	c.PushBytes([]byte("\x1b[6n"))
	resp := string(c.TakeResponses())
	if resp != "\x1b[1;3R" {
		t.Errorf("DSR after BS at latch = %q, want \"\\x1b[1;3R\" (latch still holds col 3)", resp)
	}
}

func TestCoreCUFPreservesWrapLatch(t *testing.T) {
	c := NewCore(2, 3)
	c.PushBytes([]byte("AB"))      // latches at (2,0)
	c.PushBytes([]byte("\x1b[1C")) // CUF: spec says "no" for latch clearing
	c.PushBytes([]byte("C"))       // should wrap per the still-pending latch, not overwrite col 2
	if c.Cursor().Position.Y != 1 {
		t.Errorf("cursor Y = %d, want 1 (latch from \"AB\" should still be pending after CUF)", c.Cursor().Position.Y)
	}
}

func TestCoreEraseScrollbackAndDisplayClearsFormat(t *testing.T) {
	c := NewCore(5, 2)
	c.PushBytes([]byte("\x1b[31mhello\x1b[0m")) // red text fills the screen
	c.PushBytes([]byte("\x1b[3J"))               // ED 3: erase scrollback + display
	rows := c.VisibleCells()
	if rows[0][0].Format.Foreground != NamedColor(ColorDefaultForeground) {
		t.Errorf("cell 0 foreground after ED 3 = %+v, want default", rows[0][0].Format.Foreground)
	}
}
