package vtcore

import "testing"

func asciiChars(s string) []TChar {
	out := make([]TChar, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = NewAsciiTChar(s[i])
	}
	return out
}

func rowText(row []Cell) string {
	out := make([]rune, 0, len(row))
	for _, c := range row {
		if c.Kind == CellHead {
			out = append(out, c.TChar.Rune())
		}
	}
	return string(out)
}

// tcharsText renders a raw TChar slice (as returned by ScreenBuffer.Raw)
// to its plain-text form, for comparing against expected row content.
func tcharsText(chars []TChar) string {
	out := make([]rune, len(chars))
	for i, c := range chars {
		out[i] = c.Rune()
	}
	return string(out)
}

func TestInsertCharsWrapsOnWidth(t *testing.T) {
	s := NewScreenBuffer(3, 5)
	s.InsertChars(CursorPosition{X: 0, Y: 0}, asciiChars("Hello"))

	ranges := s.VisibleRanges()
	if len(ranges) != 2 {
		t.Fatalf("expected 2 wrapped rows, got %d: %+v", len(ranges), ranges)
	}
	got0 := tcharsText(s.Raw()[ranges[0].Start:ranges[0].End])
	got1 := tcharsText(s.Raw()[ranges[1].Start:ranges[1].End])
	if got0 != "Hel" {
		t.Errorf("row 0 = %q, want \"Hel\"", got0)
	}
	if got1 != "lo" {
		t.Errorf("row 1 = %q, want \"lo\"", got1)
	}
}

func TestInsertCharsWideGlyphFillsRowThenWraps(t *testing.T) {
	s := NewScreenBuffer(3, 5)
	chars := []TChar{
		NewAsciiTChar('a'),
		TCharsFromRune('中'), // width 2; fills columns 1-2 exactly, so 'b' wraps
		NewAsciiTChar('b'),
	}
	s.InsertChars(CursorPosition{X: 0, Y: 0}, chars)

	ranges := s.VisibleRanges()
	if len(ranges) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(ranges), ranges)
	}
	if got := len(s.Raw()[ranges[0].Start:ranges[0].End]); got != 2 {
		t.Errorf("row 0 should hold 2 TChars ('a' + the wide glyph), got %d", got)
	}
	if got := tcharsText(s.Raw()[ranges[1].Start:ranges[1].End]); got != "b" {
		t.Errorf("row 1 = %q, want \"b\"", got)
	}
}

func TestScrollbackGrowsPastHeight(t *testing.T) {
	s := NewScreenBuffer(10, 2)
	cursor := CursorPosition{X: 0, Y: 0}
	for i := 0; i < 5; i++ {
		res := s.InsertChars(cursor, append(asciiChars("line"), NewlineTChar()))
		cursor = res.NewCursor
	}
	if len(s.VisibleRanges()) != 2 {
		t.Fatalf("expected exactly 2 visible rows (height), got %d", len(s.VisibleRanges()))
	}
	if s.ScrollbackLen() == 0 {
		t.Error("expected some scrollback after writing more lines than height")
	}
}

func TestEraseLineForwardPreservesGeometry(t *testing.T) {
	s := NewScreenBuffer(5, 1)
	s.InsertChars(CursorPosition{X: 0, Y: 0}, asciiChars("abcde"))
	before := len(s.VisibleRanges())

	cleared, ok := s.EraseLineForward(CursorPosition{X: 2, Y: 0})
	if !ok {
		t.Fatal("EraseLineForward reported not ok")
	}
	if cleared.len() != 3 {
		t.Errorf("expected 3 chars cleared, got %d", cleared.len())
	}
	if len(s.VisibleRanges()) != before {
		t.Error("EraseLineForward should not change row count")
	}

	row := s.Raw()[s.VisibleRanges()[0].Start:s.VisibleRanges()[0].End]
	got := tcharsText(row)
	if got != "ab   " {
		t.Errorf("row after erase = %q, want \"ab   \"", got)
	}
}

func TestDeleteCharsShiftsLeft(t *testing.T) {
	s := NewScreenBuffer(5, 1)
	s.InsertChars(CursorPosition{X: 0, Y: 0}, asciiChars("abcde"))

	if _, ok := s.DeleteChars(CursorPosition{X: 1, Y: 0}, 2); !ok {
		t.Fatal("DeleteChars reported not ok")
	}
	row := s.Raw()[s.VisibleRanges()[0].Start:s.VisibleRanges()[0].End]
	if got := tcharsText(row); got != "ade" {
		t.Errorf("row after DeleteChars = %q, want \"ade\"", got)
	}
}

func TestEraseCharsDoesNotShift(t *testing.T) {
	s := NewScreenBuffer(5, 1)
	s.InsertChars(CursorPosition{X: 0, Y: 0}, asciiChars("abcde"))

	if _, ok := s.EraseChars(CursorPosition{X: 1, Y: 0}, 2); !ok {
		t.Fatal("EraseChars reported not ok")
	}
	row := s.Raw()[s.VisibleRanges()[0].Start:s.VisibleRanges()[0].End]
	if got := tcharsText(row); got != "a  de" {
		t.Errorf("row after EraseChars = %q, want \"a  de\"", got)
	}
}

func TestResizeRemapsCursor(t *testing.T) {
	s := NewScreenBuffer(10, 5)
	s.InsertChars(CursorPosition{X: 0, Y: 0}, append(asciiChars("hello"), NewlineTChar()))
	s.InsertChars(CursorPosition{X: 0, Y: 1}, asciiChars("world"))

	newCursor := s.Resize(20, 10, CursorPosition{X: 5, Y: 1})
	if w, h := s.Size(); w != 20 || h != 10 {
		t.Fatalf("Size() = (%d,%d), want (20,10)", w, h)
	}
	if newCursor.Y != 1 {
		t.Errorf("cursor row should stay on the \"world\" line, got Y=%d", newCursor.Y)
	}
}
