package vtcore

// This file holds the erase and delete family of ScreenBuffer
// mutations (ED/EL/DCH/ECH), ported from freminal's
// clear_forwards/clear_backwards/clear_line_* /delete_forwards/
// erase_forwards (state/buffer.rs). Every operation returns the
// [start,end) range it touched so ActionApplier can replay the same
// range against the FormatTracker with PushRange(range, default state)
// or DeleteRange(range).

// EraseLineForward clears from the cursor to the end of its visible
// line, inclusive of the cursor's own cell. Geometry is preserved
// (spaces fill the gap, nothing is deleted from the linear store).
func (s *ScreenBuffer) EraseLineForward(cursor CursorPosition) (cleared VisibleRange, ok bool) {
	pos, lineRange, ok := s.cursorToBufPos(cursor)
	if !ok {
		return VisibleRange{}, false
	}
	end := lineRange.End
	s.fillSpaces(pos, end)
	return VisibleRange{Start: pos, End: end}, true
}

// EraseLineBackward clears from the start of the cursor's visible line
// through the cursor, inclusive.
func (s *ScreenBuffer) EraseLineBackward(cursor CursorPosition) (cleared VisibleRange, ok bool) {
	pos, lineRange, ok := s.cursorToBufPos(cursor)
	if !ok {
		return VisibleRange{}, false
	}
	end := pos + 1
	if end > lineRange.End {
		end = lineRange.End
	}
	s.fillSpaces(lineRange.Start, end)
	return VisibleRange{Start: lineRange.Start, End: end}, true
}

// EraseLine clears the cursor's entire visible line.
func (s *ScreenBuffer) EraseLine(cursor CursorPosition) (cleared VisibleRange, ok bool) {
	if cursor.Y < 0 || cursor.Y >= len(s.visible) {
		return VisibleRange{}, false
	}
	r := s.visible[cursor.Y]
	s.fillSpaces(r.Start, r.End)
	return r, true
}

// EraseDisplayFromCursor clears from the cursor to the end of the
// visible region (geometry preserved).
func (s *ScreenBuffer) EraseDisplayFromCursor(cursor CursorPosition) (cleared VisibleRange, ok bool) {
	pos, _, ok := s.cursorToBufPos(cursor)
	if !ok || len(s.visible) == 0 {
		return VisibleRange{}, false
	}
	end := s.visible[len(s.visible)-1].End
	s.fillSpaces(pos, end)
	return VisibleRange{Start: pos, End: end}, true
}

// EraseDisplayToCursor clears from the start of the visible region
// through the cursor, inclusive.
func (s *ScreenBuffer) EraseDisplayToCursor(cursor CursorPosition) (cleared VisibleRange, ok bool) {
	pos, _, ok := s.cursorToBufPos(cursor)
	if !ok || len(s.visible) == 0 {
		return VisibleRange{}, false
	}
	start := s.visible[0].Start
	end := pos + 1
	s.fillSpaces(start, end)
	return VisibleRange{Start: start, End: end}, true
}

// EraseDisplayAll clears every visible row, leaving scrollback intact.
func (s *ScreenBuffer) EraseDisplayAll() (cleared VisibleRange, ok bool) {
	if len(s.visible) == 0 {
		return VisibleRange{}, false
	}
	start := s.visible[0].Start
	end := s.visible[len(s.visible)-1].End
	s.fillSpaces(start, end)
	return VisibleRange{Start: start, End: end}, true
}

// EraseScrollbackAndDisplay discards scrollback and clears every
// visible row, resetting the buffer to just the (now blank) visible
// rows with their original line count preserved.
func (s *ScreenBuffer) EraseScrollbackAndDisplay() (deleted VisibleRange) {
	scrollback := s.ScrollbackLen()
	if scrollback == 0 {
		s.EraseDisplayAll()
		return VisibleRange{}
	}
	s.buf = s.buf[scrollback:]
	s.recomputeVisible()
	if len(s.visible) > 0 {
		s.fillSpaces(s.visible[0].Start, s.visible[len(s.visible)-1].End)
	}
	return VisibleRange{Start: 0, End: scrollback}
}

// fillSpaces overwrites buf[start:end] in place with SpaceTChar,
// skipping any TCharNewline encountered (a newline is a line separator,
// never erasable content).
func (s *ScreenBuffer) fillSpaces(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(s.buf) {
		end = len(s.buf)
	}
	for i := start; i < end; i++ {
		if s.buf[i].Kind != TCharNewline {
			s.buf[i] = SpaceTChar()
		}
	}
}

// DeleteChars implements DCH at the cursor: removes n characters
// starting at the cursor, shifting the remainder of the current line
// left. If the deletion would run past the line's end without a hard
// newline there (i.e. the line only ends because of soft wrap or end
// of buffer), a newline is spliced in first so the line boundary the
// deletion exposes still separates this line from the next, then the
// deletion is clamped to the line. Ported from freminal's
// delete_forwards.
func (s *ScreenBuffer) DeleteChars(cursor CursorPosition, n int) (deleted VisibleRange, ok bool) {
	pos, lineRange, ok := s.cursorToBufPos(cursor)
	if !ok || n <= 0 {
		return VisibleRange{}, false
	}
	lineEnd := unwrappedLineEnd(s.buf, lineRange.Start)

	end := pos + n
	if end > lineEnd {
		if lineEnd >= len(s.buf) || s.buf[lineEnd].Kind != TCharNewline {
			s.buf = append(s.buf[:lineEnd], append([]TChar{NewlineTChar()}, s.buf[lineEnd:]...)...)
			lineEnd++
		}
	}
	if end > lineEnd {
		end = lineEnd
	}
	if end <= pos {
		return VisibleRange{}, false
	}

	s.buf = append(s.buf[:pos], s.buf[end:]...)
	s.recomputeVisible()
	return VisibleRange{Start: pos, End: end}, true
}

// EraseChars implements ECH at the cursor: unlike DeleteChars, it
// never shifts anything — the n cells starting at the cursor are
// overwritten with blanks in place, and nothing past the current
// visible line is touched even when that line is only a soft-wrap
// continuation. Ported from freminal's erase_forwards.
func (s *ScreenBuffer) EraseChars(cursor CursorPosition, n int) (cleared VisibleRange, ok bool) {
	pos, lineRange, ok := s.cursorToBufPos(cursor)
	if !ok || n <= 0 {
		return VisibleRange{}, false
	}
	end := pos + n
	if end > lineRange.End {
		end = lineRange.End
	}
	if end <= pos {
		return VisibleRange{}, false
	}

	s.fillSpaces(pos, end)
	return VisibleRange{Start: pos, End: end}, true
}
