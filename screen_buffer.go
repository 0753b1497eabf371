package vtcore

// VisibleRange is a half-open [Start, End) span into ScreenBuffer's
// linear TChar store, covering exactly one on-screen row (§3
// "Visible line range"). Ranges never include the TCharNewline that
// separates one logical line from the next.
type VisibleRange struct {
	Start, End int
}

func (r VisibleRange) len() int { return r.End - r.Start }

// LineAttribute is the DECDWL/DECDHL display mode of one visible row
// (not rendered by the
// core, only carried so a host renderer can act on it).
type LineAttribute int

const (
	LineAttrNormal LineAttribute = iota
	LineAttrDoubleWidth
	LineAttrDoubleTop
	LineAttrDoubleBottom
)

// ScreenBuffer is a linear sequence of TChar plus the visible-line
// ranges derived from it. It owns no cursor and no
// format data: ActionApplier coordinates ScreenBuffer mutations with
// the matching CursorState and FormatTracker mutations.
//
// Ported from freminal-terminal-emulator/src/state/buffer.rs
// (TerminalBufferHolder) rather than purfecterm's buffer.go: the
// teacher stores a pre-wrapped 2D grid of Cells directly (no
// scrollback-as-linear-store, no soft/hard newline distinction),
// while this module uses the linear-store-plus-derived-ranges model
// the original Rust implementation uses.
type ScreenBuffer struct {
	buf           []TChar
	width, height int
	visible       []VisibleRange
	lineAttrs     []LineAttribute // parallel to visible; every entry is reset to Normal whenever ranges are recomputed
}

// NewScreenBuffer returns an empty buffer of the given size.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	return &ScreenBuffer{width: width, height: height}
}

// Size returns the buffer's (width, height) in character cells.
func (s *ScreenBuffer) Size() (width, height int) { return s.width, s.height }

// VisibleRanges returns the current visible-line ranges, bottom region
// of the linear store. Callers must not mutate the returned slice.
func (s *ScreenBuffer) VisibleRanges() []VisibleRange { return s.visible }

// Raw returns the full linear TChar store (scrollback + visible).
// Callers must not mutate the returned slice.
func (s *ScreenBuffer) Raw() []TChar { return s.buf }

// ScrollbackLen returns the number of characters before the first
// visible range.
func (s *ScreenBuffer) ScrollbackLen() int {
	if len(s.visible) == 0 {
		return len(s.buf)
	}
	return s.visible[0].Start
}

// LineAttribute returns the DECDWL/DECDHL attribute of visible row y.
func (s *ScreenBuffer) LineAttribute(y int) LineAttribute {
	if y < 0 || y >= len(s.lineAttrs) {
		return LineAttrNormal
	}
	return s.lineAttrs[y]
}

// SetLineAttribute sets row y's DECDWL/DECDHL attribute. Cleared back
// to Normal the next time the ranges are recomputed for that row
// index, matching real terminals where DECALN/resize resets it.
func (s *ScreenBuffer) SetLineAttribute(y int, attr LineAttribute) {
	if y < 0 || y >= len(s.lineAttrs) {
		return
	}
	s.lineAttrs[y] = attr
}

// recomputeVisible reflows the whole linear store into visible-line
// ranges at the buffer's current width/height. Every logical line
// (delimited by TCharNewline) is soft-wrapped on display width — not
// raw TChar count — so a wide glyph that would straddle the right
// margin wraps whole, never splitting its two columns across rows
// wide glyphs are first-class citizens of the buffer.
// This replaces freminal's reverse-iteration
// line_ranges_to_visible_line_ranges with an equivalent forward pass:
// the reverse algorithm assumed one column per TChar and has no path
// for display width.
func (s *ScreenBuffer) recomputeVisible() {
	if len(s.buf) == 0 {
		s.visible = nil
		s.lineAttrs = nil
		return
	}

	var all []VisibleRange
	lineStart := 0
	for i := 0; i <= len(s.buf); i++ {
		if i == len(s.buf) || s.buf[i].Kind == TCharNewline {
			if i == len(s.buf) && lineStart == i {
				// A trailing newline terminates the last line; it does
				// not open an empty row after it.
				break
			}
			all = append(all, wrapLogicalLine(s.buf, lineStart, i, s.width)...)
			lineStart = i + 1
			if i == len(s.buf) {
				break
			}
		}
	}

	if len(all) > s.height {
		all = all[len(all)-s.height:]
	}
	s.visible = all
	s.lineAttrs = make([]LineAttribute, len(all))
}

// wrapLogicalLine splits [start,end) of buf into one-or-more
// VisibleRanges, each no wider than width display columns.
func wrapLogicalLine(buf []TChar, start, end, width int) []VisibleRange {
	if start == end {
		return []VisibleRange{{Start: start, End: end}}
	}
	var out []VisibleRange
	segStart := start
	col := 0
	for i := start; i < end; i++ {
		w := buf[i].DisplayWidth()
		if col+w > width && col > 0 {
			out = append(out, VisibleRange{Start: segStart, End: i})
			segStart = i
			col = 0
		}
		col += w
	}
	out = append(out, VisibleRange{Start: segStart, End: end})
	return out
}

// cursorToBufPos maps a cursor position to a linear buffer offset, and
// reports the visible range (logical row) it falls in. ok is false
// when the row has no addressable position (y out of range, or x past
// the row's stored content).
func (s *ScreenBuffer) cursorToBufPos(c CursorPosition) (pos int, row VisibleRange, ok bool) {
	if c.Y < 0 || c.Y >= len(s.visible) {
		return 0, VisibleRange{}, false
	}
	row = s.visible[c.Y]
	pos = row.Start + c.X
	if pos > row.End {
		return 0, row, false
	}
	return pos, row, true
}

// bufPosToCursor is the inverse of cursorToBufPos: it locates which
// visible range contains pos and returns the corresponding
// CursorPosition. If pos lies before the first visible range or past
// the last, it returns the zero CursorPosition.
func (s *ScreenBuffer) bufPosToCursor(pos int) CursorPosition {
	for i, r := range s.visible {
		if pos <= r.End {
			if pos < r.Start {
				return CursorPosition{}
			}
			return CursorPosition{X: pos - r.Start, Y: i}
		}
	}
	return CursorPosition{}
}

// unwrappedLineEnd finds the end of the logical (hard-newline
// delimited) line starting at startPos, ignoring soft wrap — i.e. the
// position of the next TCharNewline, or len(buf) if none.
func unwrappedLineEnd(buf []TChar, startPos int) int {
	for i := startPos; i < len(buf); i++ {
		if buf[i].Kind == TCharNewline {
			return i
		}
	}
	return len(buf)
}

// padForWrite ensures cursor is addressable: if its row doesn't exist
// yet, newlines are appended until it does; if its column is past the
// end of the (unwrapped) logical line, spaces are appended. Returns the
// buffer offset to write at and the range of characters inserted as
// padding (for FormatTracker range-adjustment). Ported from freminal's
// pad_buffer_for_write.
func (s *ScreenBuffer) padForWrite(cursor CursorPosition, writeLen int) (writeIdx int, insertedPadding VisibleRange) {
	verticalPaddingNeeded := 0
	if cursor.Y+1 > len(s.visible) {
		verticalPaddingNeeded = cursor.Y + 1 - len(s.visible)
	}

	paddingStart := -1
	numInserted := 0
	if verticalPaddingNeeded > 0 {
		paddingStart = len(s.buf)
		numInserted += verticalPaddingNeeded
		for i := 0; i < verticalPaddingNeeded; i++ {
			s.buf = append(s.buf, NewlineTChar())
			pos := len(s.buf) - 1
			s.visible = append(s.visible, VisibleRange{Start: pos, End: pos})
			s.lineAttrs = append(s.lineAttrs, LineAttrNormal)
		}
	}

	lineRange := s.visible[cursor.Y]
	desiredStart := lineRange.Start + cursor.X
	desiredEnd := desiredStart + writeLen
	actualEnd := unwrappedLineEnd(s.buf, lineRange.Start)

	if paddingStart < 0 {
		paddingStart = actualEnd
	}

	numSpaces := desiredEnd - actualEnd
	if numSpaces < 0 {
		numSpaces = 0
	}
	numInserted += numSpaces
	if numSpaces > 0 {
		spaces := make([]TChar, numSpaces)
		for i := range spaces {
			spaces[i] = SpaceTChar()
		}
		tail := append([]TChar{}, s.buf[actualEnd:]...)
		s.buf = append(s.buf[:actualEnd], append(spaces, tail...)...)
	}

	return desiredStart, VisibleRange{Start: paddingStart, End: paddingStart + numInserted}
}

// AppendCombiningMark attaches a combining-mark rune to the glyph just
// before cursor, without inserting a new column or moving anything.
// If cursor is at the start of a line, it attaches to the last glyph
// of the previous line instead; if there is no previous glyph at all
// (very start of buffer), the mark is dropped. Ported from the
// teacher's Buffer.appendCombiningMark (buffer.go), adapted to this
// module's linear-store-plus-visible-ranges layout in place of the
// teacher's 2D screen grid.
func (s *ScreenBuffer) AppendCombiningMark(cursor CursorPosition, r rune) bool {
	prevX, prevY := cursor.X-1, cursor.Y
	if prevX >= s.width {
		prevX = s.width - 1
	}
	if prevX < 0 {
		prevY--
		if prevY < 0 || prevY >= len(s.visible) {
			return false
		}
		row := s.visible[prevY]
		if row.len() == 0 {
			return false
		}
		prevX = row.len() - 1
	}
	if prevY < 0 || prevY >= len(s.visible) {
		return false
	}
	row := s.visible[prevY]
	pos := row.Start + prevX
	if pos < row.Start || pos >= row.End {
		return false
	}
	switch s.buf[pos].Kind {
	case TCharAscii, TCharUTF8:
		s.buf[pos] = s.buf[pos].WithCombining(r)
		return true
	default:
		return false
	}
}

// InsertResult describes the effect of an insertion, for ActionApplier
// to replay against the FormatTracker.
type InsertResult struct {
	WrittenRange    VisibleRange // where the new characters ended up, after padding
	InsertionRange  VisibleRange // the subrange that is genuinely new data (may include padding)
	NewCursor       CursorPosition
	NewCursorLatched bool // true if the write ended exactly at the right margin (deferred wrap)
}

// InsertChars writes already-decoded TChars into the buffer at the
// cursor, padding as needed, overwriting the cells they land on, and
// recomputes visible ranges. This is
// insert(cursor, bytes), minus the byte->TChar decoding
// (which Core's UTF-8 accumulator performs before calling this, so
// ScreenBuffer only ever deals in whole characters).
func (s *ScreenBuffer) InsertChars(cursor CursorPosition, chars []TChar) InsertResult {
	writeIdx, padding := s.padForWrite(cursor, len(chars))

	copy(s.buf[writeIdx:writeIdx+len(chars)], chars)

	s.recomputeVisible()

	writtenRange := VisibleRange{Start: writeIdx, End: writeIdx + len(chars)}
	newCursor := s.bufPosToCursor(writtenRange.End)
	latched := newCursor.X == s.width
	return InsertResult{
		WrittenRange:     writtenRange,
		InsertionRange:   padding,
		NewCursor:        newCursor,
		NewCursorLatched: latched,
	}
}

// OverwriteAt replaces the single TChar at the exact cursor position
// (padding first if needed) without shifting anything after it. Used
// by ActionApplier when DECAWM is reset and the cursor is latched at
// the right margin: VT510 behavior is to overwrite the last column in
// place rather than wrap, per VT510 behavior.
func (s *ScreenBuffer) OverwriteAt(cursor CursorPosition, ch TChar) {
	writeIdx, _ := s.padForWrite(cursor, 1)
	if writeIdx < len(s.buf) && s.buf[writeIdx].Kind != TCharNewline {
		s.buf[writeIdx] = ch
	} else {
		tail := append([]TChar{}, s.buf[writeIdx:]...)
		s.buf = append(s.buf[:writeIdx], append([]TChar{ch}, tail...)...)
	}
	s.recomputeVisible()
}

// InsertSpaces implements ICH: inserts up to n spaces before the
// cursor column on the current line, overwriting content that would
// fall off the right margin. Never crosses a newline. Ported from
// freminal's insert_spaces.
func (s *ScreenBuffer) InsertSpaces(cursor CursorPosition, n int) InsertResult {
	if n > s.width {
		n = s.width
	}
	pos, lineRange, ok := s.cursorToBufPos(cursor)
	if !ok {
		writeIdx, padding := s.padForWrite(cursor, n)
		s.recomputeVisible()
		return InsertResult{
			WrittenRange:   VisibleRange{Start: writeIdx, End: writeIdx + n},
			InsertionRange: padding,
			NewCursor:      cursor,
		}
	}

	lineLen := lineRange.len()
	numInserted := n
	if numInserted > s.width-lineLen {
		numInserted = s.width - lineLen
	}
	if numInserted < 0 {
		numInserted = 0
	}
	numOverwritten := n - numInserted
	if maxOverwrite := lineRange.End - pos; numOverwritten > maxOverwrite {
		numOverwritten = maxOverwrite
	}
	if numOverwritten < 0 {
		numOverwritten = 0
	}

	for i := 0; i < numOverwritten; i++ {
		s.buf[pos+i] = SpaceTChar()
	}
	if numInserted > 0 {
		spaces := make([]TChar, numInserted)
		for i := range spaces {
			spaces[i] = SpaceTChar()
		}
		tail := append([]TChar{}, s.buf[pos:]...)
		s.buf = append(s.buf[:pos], append(spaces, tail...)...)
		s.recomputeVisible()
	}

	used := numInserted + numOverwritten
	return InsertResult{
		WrittenRange:   VisibleRange{Start: pos, End: pos + used},
		InsertionRange: VisibleRange{Start: pos, End: pos + numInserted},
		NewCursor:      cursor,
	}
}

// InsertLines implements IL at the cursor row: rows below shift down
// within height; overflow at the bottom is discarded. n is clamped to
// height-cursor.Y. Ported from freminal's insert_lines.
func (s *ScreenBuffer) InsertLines(cursor CursorPosition, n int) (deleted, inserted VisibleRange) {
	if cursor.Y < 0 || cursor.Y >= len(s.visible) {
		return VisibleRange{}, VisibleRange{}
	}
	lineRange := s.visible[cursor.Y]

	availableSpace := s.height - len(s.visible)
	if n > s.height-cursor.Y {
		n = s.height - cursor.Y
	}

	deletedRange := VisibleRange{}
	if n > availableSpace {
		numRemoved := n - availableSpace
		removalStart := s.visible[len(s.visible)-numRemoved].Start
		deletedRange = VisibleRange{Start: removalStart, End: len(s.buf)}
		s.buf = s.buf[:removalStart]
	}

	insertionPos := lineRange.Start
	if insertionPos > 0 && s.buf[insertionPos-1].Kind != TCharNewline {
		n++
	}

	newlines := make([]TChar, n)
	for i := range newlines {
		newlines[i] = NewlineTChar()
	}
	tail := append([]TChar{}, s.buf[insertionPos:]...)
	s.buf = append(s.buf[:insertionPos], append(newlines, tail...)...)

	s.recomputeVisible()
	return deletedRange, VisibleRange{Start: insertionPos, End: insertionPos + n}
}

// DeleteLines implements DL at the cursor row: removes n lines
// starting there, shifting everything below up, and pads the bottom of
// the buffer with n blank lines so total height is unchanged.
func (s *ScreenBuffer) DeleteLines(cursor CursorPosition, n int) (deleted VisibleRange) {
	if cursor.Y < 0 || cursor.Y >= len(s.visible) {
		return VisibleRange{}
	}
	if n > len(s.visible)-cursor.Y {
		n = len(s.visible) - cursor.Y
	}
	if n <= 0 {
		return VisibleRange{}
	}

	deleteStart := s.visible[cursor.Y].Start
	deleteEnd := s.visible[cursor.Y+n-1].End
	if deleteEnd < len(s.buf) && s.buf[deleteEnd].Kind == TCharNewline {
		deleteEnd++
	}
	s.buf = append(s.buf[:deleteStart], s.buf[deleteEnd:]...)
	s.recomputeVisible()

	for i := 0; i < n; i++ {
		s.appendBlankLine()
	}
	return VisibleRange{Start: deleteStart, End: deleteEnd}
}

// Resize pads for the cursor, recomputes
// ranges at the new geometry, maps the cursor through, and returns the
// new cursor. A no-op resize (same width and height) leaves everything
// untouched and returns the cursor unchanged.
func (s *ScreenBuffer) Resize(newWidth, newHeight int, cursor CursorPosition) CursorPosition {
	if newWidth == s.width && newHeight == s.height {
		return cursor
	}

	writeIdx, _ := s.padForWrite(cursor, 0)
	s.width = newWidth
	s.height = newHeight
	s.recomputeVisible()
	return s.bufPosToCursor(writeIdx)
}
