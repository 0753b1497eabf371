package vtcore

// This file holds scroll-region mutations (IND/RI/NEL margin handling
// and CSI S/T). A full-screen region (the
// common case, no DECSTBM in effect) grows the linear store exactly
// like padForWrite does, so the pushed-off line becomes scrollback. A
// restricted DECSTBM region instead rewrites line content in place —
// real VT100s do not feed a restricted-region scroll into scrollback
// either, so this matches observed behavior, not just implementation
// convenience.

// ScrollUp moves the region [top,bottom] (0-based, inclusive, as
// visible-row indices) up by n lines, discarding the top n lines of
// the region and blanking the bottom n.
func (s *ScreenBuffer) ScrollUp(top, bottom, n int) {
	if n <= 0 {
		return
	}
	if top <= 0 && bottom >= s.height-1 {
		for i := 0; i < n; i++ {
			s.appendBlankLine()
		}
		return
	}
	if bottom >= len(s.visible) {
		bottom = len(s.visible) - 1
	}
	if top < 0 {
		top = 0
	}
	if top > bottom {
		return
	}
	for step := 0; step < n; step++ {
		for i := top; i < bottom; i++ {
			s.copyLineContent(i+1, i)
		}
		s.blankLine(bottom)
	}
}

// ScrollDown moves the region [top,bottom] down by n lines, discarding
// the bottom n lines and blanking the top n.
func (s *ScreenBuffer) ScrollDown(top, bottom, n int) {
	if n <= 0 {
		return
	}
	if top <= 0 && bottom >= s.height-1 {
		s.InsertLines(CursorPosition{X: 0, Y: 0}, n)
		return
	}
	if bottom >= len(s.visible) {
		bottom = len(s.visible) - 1
	}
	if top < 0 {
		top = 0
	}
	if top > bottom {
		return
	}
	for step := 0; step < n; step++ {
		for i := bottom; i > top; i-- {
			s.copyLineContent(i-1, i)
		}
		s.blankLine(top)
	}
}

func (s *ScreenBuffer) appendBlankLine() {
	s.padForWrite(CursorPosition{X: 0, Y: len(s.visible)}, 0)
	s.recomputeVisible()
}

func (s *ScreenBuffer) copyLineContent(from, to int) {
	if from < 0 || from >= len(s.visible) || to < 0 || to >= len(s.visible) {
		return
	}
	src := s.visible[from]
	content := append([]TChar{}, s.buf[src.Start:src.End]...)
	s.setLineContent(to, content)
}

func (s *ScreenBuffer) blankLine(y int) { s.setLineContent(y, nil) }

// setLineContent overwrites visible row y's stored characters in
// place with content, padding with spaces or truncating to the row's
// existing length. It never changes the row count or any other row's
// offsets, so callers need not recompute visible ranges afterward.
func (s *ScreenBuffer) setLineContent(y int, content []TChar) {
	if y < 0 || y >= len(s.visible) {
		return
	}
	r := s.visible[y]
	target := r.len()
	buf := make([]TChar, target)
	for i := range buf {
		buf[i] = SpaceTChar()
	}
	n := len(content)
	if n > target {
		n = target
	}
	copy(buf, content[:n])
	copy(s.buf[r.Start:r.End], buf)
}
