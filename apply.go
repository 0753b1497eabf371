package vtcore

import "strconv"

// This file is the ActionApplier layer: applyEvent is the
// single entry point that replays one ParserEvent against the active
// ScreenBuffer, FormatTracker, CursorState, and ModeRegistry, keeping
// them mutually consistent and implementing the deferred-wrap latch
// state machine.

func (c *Core) applyEvent(e ParserEvent) {
	switch e.Kind {
	case EventData:
		c.writeData(e.Data)
	case EventCR:
		c.cursor.ClearWrapLatch()
		c.cursor.Position.X = 0
	case EventLF:
		c.lineFeed()
	case EventIndex:
		c.index()
	case EventReverseIndex:
		c.reverseIndex()
	case EventNextLine:
		c.cursor.ClearWrapLatch()
		c.cursor.Position.X = 0
		c.index()
	case EventBS:
		c.backspace()
	case EventBell:
		// No screen effect; a host-level collaborator may
		// hook audible/visual bell from TakeResponses-adjacent signaling.
		// Nothing for Core itself to track.
	case EventHT:
		c.tab()
	case EventShiftOut:
		c.glInvoked = CharsetG1
	case EventShiftIn:
		c.glInvoked = CharsetG0
	case EventSetCursorAbs:
		c.setCursorAbs(e.AbsX, e.AbsY)
	case EventSetCursorRel:
		c.setCursorRel(e)
	case EventEraseDisplayFromCursor:
		c.clearRange(c.screen().EraseDisplayFromCursor(c.cursor.Position))
	case EventEraseDisplayToCursor:
		c.clearRange(c.screen().EraseDisplayToCursor(c.cursor.Position))
	case EventEraseDisplayAll:
		c.clearRange(c.screen().EraseDisplayAll())
	case EventEraseScrollbackAndDisplay:
		r := c.screen().EraseScrollbackAndDisplay()
		if r.len() > 0 {
			c.tracker().DeleteRange(r.Start, r.End)
		}
		c.tracker().PushRange(0, len(c.screen().Raw()), DefaultFormatState())
	case EventEraseLineForward:
		c.clearRange(c.screen().EraseLineForward(c.cursor.Position))
	case EventEraseLineBackward:
		c.clearRange(c.screen().EraseLineBackward(c.cursor.Position))
	case EventEraseLine:
		c.clearRange(c.screen().EraseLine(c.cursor.Position))
	case EventInsertLines:
		deleted, inserted := c.screen().InsertLines(c.cursor.Position, e.Count)
		if deleted.len() > 0 {
			c.tracker().DeleteRange(deleted.Start, deleted.End)
		}
		c.tracker().PushRangeAdjustment(inserted.Start, inserted.len())
		c.tracker().PushRange(inserted.Start, inserted.End, DefaultFormatState())
	case EventDeleteLines:
		r := c.screen().DeleteLines(c.cursor.Position, e.Count)
		if r.len() > 0 {
			c.tracker().DeleteRange(r.Start, r.End)
		}
	case EventScrollUp:
		c.scrollUpRegion(e.Count)
	case EventScrollDown:
		c.scrollDownRegion(e.Count)
	case EventInsertSpaces:
		res := c.screen().InsertSpaces(c.cursor.Position, e.Count)
		if res.InsertionRange.len() > 0 {
			c.tracker().PushRangeAdjustment(res.InsertionRange.Start, res.InsertionRange.len())
		}
		c.tracker().PushRange(res.WrittenRange.Start, res.WrittenRange.End, c.cursor.Pen)
	case EventDeleteChars:
		if r, ok := c.screen().DeleteChars(c.cursor.Position, e.Count); ok {
			c.tracker().DeleteRange(r.Start, r.End)
		}
	case EventEraseChars:
		c.clearRangeOK(c.screen().EraseChars(c.cursor.Position, e.Count))
	case EventSGR:
		c.cursor.Pen = ApplySGR(c.cursor.Pen, e.SGRParams)
	case EventMode:
		c.applyMode(e)
	case EventOSCDispatch:
		c.applyOSC(e)
	case EventReportCursor:
		row := c.cursor.Position.Y + 1
		col := c.cursor.Position.X + 1
		c.queueResponse("\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "R")
	case EventRequestDeviceAttributes:
		c.queueResponse("\x1b[?62;22c")
	case EventSetTopAndBottomMargins:
		c.setMargins(e.MarginTop, e.MarginBottom)
	case EventSelectCharset:
		c.charsets[e.Slot] = e.Variant
	case EventKeypadApp, EventKeypadNormal:
		// Accepted and ignored: Core keeps no keypad-mode flag, and the
		// keys.go translation emits the same bytes for keypad keys in
		// either mode.
	case EventCursorVisualStyle:
		c.cursor.Style = e.CursorStyle
	case EventWindowManipulation:
		c.windowOps = append(c.windowOps, WindowOp{Op: e.WindowOp, Params: e.WindowParams})
	case EventSaveCursor:
		c.cursor.Save()
	case EventRestoreCursor:
		c.cursor.Restore()
	case EventFullReset:
		c.fullReset()
	case EventDECAlignmentTest:
		c.alignmentTest()
	case EventDECLineAttribute:
		c.screen().SetLineAttribute(c.cursor.Position.Y, e.LineAttr)
	case EventInvalid, EventIgnored:
		c.logParseIssue(e)
	}
}

func (c *Core) logParseIssue(e ParserEvent) {
	if c.log == nil {
		return
	}
	c.log.Debug().Str("raw", e.Raw).Str("trace", c.tracer.Snapshot()).Msg("dropped unrecognized sequence")
}

// clearRange pushes the default pen over a cleared range reported by
// one of ScreenBuffer's erase methods.
func (c *Core) clearRange(r VisibleRange, ok bool) {
	if !ok || r.len() == 0 {
		return
	}
	c.tracker().PushRange(r.Start, r.End, DefaultFormatState())
}

func (c *Core) clearRangeOK(r VisibleRange, ok bool) { c.clearRange(r, ok) }

// writeData decodes the first complete UTF-8/ASCII character in data
// (already assembled by ControlByteRecognizer) and writes it at the
// cursor, honoring DECAWM autowrap and the deferred-wrap latch. Any
// bytes after that first character are ignored.
func (c *Core) writeData(data []byte) {
	r, _ := decodeRuneUTF8(data)

	if IsCombiningMark(r) {
		c.screen().AppendCombiningMark(c.cursor.Position, r)
		return
	}

	r = TranslateCharset(c.charsets[c.glInvoked], r)
	ch := TCharsFromRune(r)

	width, height := c.screen().Size()
	autoWrap := c.modes.Get(ModeDECAWM)

	if c.cursor.WrapPending {
		c.cursor.ClearWrapLatch()
		if autoWrap {
			c.cursor.Position.X = 0
			c.index()
		} else {
			c.cursor.Position.X = width - 1
			c.screen().OverwriteAt(c.cursor.Position, ch)
			if pos, _, ok := c.screen().cursorToBufPos(c.cursor.Position); ok {
				c.tracker().PushRange(pos, pos+1, c.cursor.Pen)
			}
			c.cursor.WrapPending = true
			return
		}
	}

	if ch.IsWide() && c.cursor.Position.X == width-1 && autoWrap {
		// A wide glyph that would straddle the margin wraps whole.
		c.cursor.Position.X = 0
		c.index()
	}

	res := c.screen().InsertChars(c.cursor.Position, []TChar{ch})
	c.tracker().PushRangeAdjustment(res.InsertionRange.Start, res.InsertionRange.len())
	c.tracker().PushRange(res.WrittenRange.Start, res.WrittenRange.End, c.cursor.Pen)

	c.cursor.Position = res.NewCursor
	if c.cursor.Position.Y >= height {
		c.cursor.Position.Y = height - 1
	}
	if res.NewCursorLatched {
		c.cursor.WrapPending = true
		c.cursor.Position.X = width
	}

	_ = width
}

// lineFeed implements LF/VT/FF: move down one row, scrolling within
// the margins if already at the bottom margin. Unlike CR, LF does not
// reset the column. The deferred-wrap latch is cleared: an explicit
// vertical move always cancels a pending wrap.
func (c *Core) lineFeed() {
	c.cursor.ClearWrapLatch()
	c.index()
}

// index implements IND (ESC D): same vertical move as LF, without
// touching the wrap latch (callers that need the latch cleared do so
// themselves, since NEL and the post-wrap write path call index too).
func (c *Core) index() {
	if c.cursor.Position.Y == c.marginBottom {
		c.scrollUpRegion(1)
		return
	}
	_, height := c.screen().Size()
	if c.cursor.Position.Y+1 < height {
		c.cursor.Position.Y++
	}
}

// reverseIndex implements RI (ESC M): move up one row, scrolling down
// within the margins if already at the top margin. Per spec §8
// ("RI | no"), the deferred-wrap latch is left untouched.
func (c *Core) reverseIndex() {
	if c.cursor.Position.Y == c.marginTop {
		c.scrollDownRegion(1)
		return
	}
	if c.cursor.Position.Y > 0 {
		c.cursor.Position.Y--
	}
}

// scrollUpRegion moves the active scroll region (marginTop..marginBottom)
// up by n lines, keeping the FormatTracker consistent with the content
// ScreenBuffer.ScrollUp physically relocates. A full-screen region grows
// the linear store exactly like a line feed would (the pushed-off line
// becomes scrollback, its tags untouched since nothing moved), so only
// the margin-restricted in-place case needs tag bookkeeping: setLineContent
// overwrites row content without changing any row's buffer offsets, so a
// row's tags must be recaptured from whichever row donated its content
// and replayed onto the (unchanged) destination range.
func (c *Core) scrollUpRegion(n int) {
	if n <= 0 {
		return
	}
	_, height := c.screen().Size()
	top, bottom := c.marginTop, c.marginBottom
	if top <= 0 && bottom >= height-1 {
		c.screen().ScrollUp(top, bottom, n)
		return
	}
	ranges := append([]VisibleRange{}, c.screen().VisibleRanges()...)
	if bottom >= len(ranges) {
		bottom = len(ranges) - 1
	}
	if top < 0 {
		top = 0
	}
	if top > bottom {
		c.screen().ScrollUp(c.marginTop, c.marginBottom, n)
		return
	}

	rowTags := make([][]FormatTag, bottom-top+1)
	for i := top; i <= bottom; i++ {
		rowTags[i-top] = c.tracker().SliceAbsolute(ranges[i].Start, ranges[i].End)
	}

	c.screen().ScrollUp(c.marginTop, c.marginBottom, n)

	for i := top; i <= bottom; i++ {
		dest := ranges[i]
		if i+n <= bottom {
			c.retagRow(dest, rowTags[i+n-top], ranges[i+n])
		} else {
			c.tracker().PushRange(dest.Start, dest.End, DefaultFormatState())
		}
	}
}

// scrollDownRegion is scrollUpRegion's mirror for RI/CSI T: row i
// (bottom down to top+n) receives row i-n's content; rows top..top+n-1
// are blanked.
func (c *Core) scrollDownRegion(n int) {
	if n <= 0 {
		return
	}
	_, height := c.screen().Size()
	top, bottom := c.marginTop, c.marginBottom
	if top <= 0 && bottom >= height-1 {
		c.screen().ScrollDown(top, bottom, n)
		return
	}
	ranges := append([]VisibleRange{}, c.screen().VisibleRanges()...)
	if bottom >= len(ranges) {
		bottom = len(ranges) - 1
	}
	if top < 0 {
		top = 0
	}
	if top > bottom {
		c.screen().ScrollDown(c.marginTop, c.marginBottom, n)
		return
	}

	rowTags := make([][]FormatTag, bottom-top+1)
	for i := top; i <= bottom; i++ {
		rowTags[i-top] = c.tracker().SliceAbsolute(ranges[i].Start, ranges[i].End)
	}

	c.screen().ScrollDown(c.marginTop, c.marginBottom, n)

	for i := top; i <= bottom; i++ {
		dest := ranges[i]
		if i-n >= top {
			c.retagRow(dest, rowTags[i-n-top], ranges[i-n])
		} else {
			c.tracker().PushRange(dest.Start, dest.End, DefaultFormatState())
		}
	}
}

// retagRow replays a row's previously captured tags (from src's buffer
// offsets) onto dest, which occupies the same buffer offsets it always
// did (setLineContent never moves a row's Start/End). Anything in dest
// beyond the source row's captured length falls back to the default pen.
func (c *Core) retagRow(dest VisibleRange, srcTags []FormatTag, src VisibleRange) {
	c.tracker().PushRange(dest.Start, dest.End, DefaultFormatState())
	offset := dest.Start - src.Start
	for _, t := range srcTags {
		ns, ne := t.Start+offset, t.End+offset
		if ns < dest.Start {
			ns = dest.Start
		}
		if ne > dest.End {
			ne = dest.End
		}
		if ns >= ne {
			continue
		}
		c.tracker().PushRange(ns, ne, t.State)
	}
}

// backspace implements BS. At the deferred-wrap latch it leaves the
// latch set and does not move (the cursor was never really past the
// margin, and BS does not cancel a pending wrap per spec §8); otherwise
// it moves one column left, never past column 0 or across a newline.
func (c *Core) backspace() {
	if c.cursor.WrapPending {
		return
	}
	if c.cursor.Position.X > 0 {
		c.cursor.Position.X--
	}
}

// tab implements HT: a pending wrap is resolved first (HT wraps to the
// next line per spec §8), then the cursor advances to the next
// multiple-of-8 column, never past the right margin.
func (c *Core) tab() {
	pending := c.cursor.WrapPending
	c.cursor.ClearWrapLatch()
	if pending {
		c.cursor.Position.X = 0
		c.index()
	}
	width, _ := c.screen().Size()
	next := (c.cursor.Position.X/8 + 1) * 8
	if next >= width {
		next = width - 1
	}
	c.cursor.Position.X = next
}

func (c *Core) setCursorAbs(absX, absY Optional) {
	c.cursor.ClearWrapLatch()
	width, height := c.screen().Size()
	if absY.Valid {
		y := absY.Value
		if c.modes.Get(ModeDECOM) {
			y += c.marginTop
		}
		c.cursor.Position.Y = clampInt(y, 0, height-1)
	}
	if absX.Valid {
		c.cursor.Position.X = clampInt(absX.Value, 0, width-1)
	}
}

// setCursorRel implements CUU/CUD/CUF/CUB. Per spec §8 ("CUF | no"),
// relative cursor motion does not clear the deferred-wrap latch.
func (c *Core) setCursorRel(e ParserEvent) {
	width, height := c.screen().Size()
	if e.RelDY.Valid {
		c.cursor.Position.Y = clampInt(c.cursor.Position.Y+e.RelDY.Value, 0, height-1)
	}
	if e.RelDX.Valid {
		c.cursor.Position.X = clampInt(c.cursor.Position.X+e.RelDX.Value, 0, width-1)
	}
	if e.AbsX.Valid {
		c.cursor.Position.X = clampInt(e.AbsX.Value, 0, width-1)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// setMargins implements DECSTBM. top/bottom are the wire's 1-based row
// numbers (0 meaning the parameter was absent, per CsiParser.param's
// default), so both need the same -1 conversion to this module's
// 0-based marginTop/marginBottom before use.
func (c *Core) setMargins(top, bottom int) {
	_, height := c.screen().Size()
	if top <= 0 {
		top = 1
	}
	if bottom <= 0 || bottom > height {
		bottom = height
	}
	if top >= bottom {
		top, bottom = 1, height
	}
	c.marginTop = top - 1
	c.marginBottom = bottom - 1
	c.cursor.Position = CursorPosition{X: 0, Y: c.marginTop}
	if c.modes.Get(ModeDECOM) {
		c.cursor.Position.Y = 0
	}
	c.cursor.ClearWrapLatch()
}

func (c *Core) applyMode(e ParserEvent) {
	result := ApplyModeEvent(c.modes, e)
	if result.Response != "" {
		c.queueResponse(result.Response)
	}
	if !result.Known || e.ModeAct == ModeActionQuery {
		return
	}
	switch result.Kind {
	case ModeXTExtScrn:
		c.swapAlternateScreen(e.ModeAct == ModeActionSet)
	case ModeDECCOLM:
		cols := 80
		if e.ModeAct == ModeActionSet {
			cols = 132
		}
		_, height := c.screen().Size()
		c.Resize(cols, height, 0, 0)
		c.screen().EraseDisplayAll()
		c.cursor.Position = CursorPosition{}
	}
}

func (c *Core) swapAlternateScreen(toAlt bool) {
	if toAlt == c.onAlt {
		return
	}
	if toAlt {
		saved := c.cursor
		c.savedAltMain = &saved
		width, height := c.primary.Size()
		c.alternate = NewScreenBuffer(width, height)
		c.altFormat = NewFormatTracker()
		c.onAlt = true
		c.cursor = NewCursorState()
		return
	}
	c.onAlt = false
	if c.savedAltMain != nil {
		c.cursor = *c.savedAltMain
		c.savedAltMain = nil
	}
}

func (c *Core) fullReset() {
	width, height := c.primary.Size()
	c.primary = NewScreenBuffer(width, height)
	c.alternate = NewScreenBuffer(width, height)
	c.onAlt = false
	c.format = NewFormatTracker()
	c.altFormat = NewFormatTracker()
	c.cursor = NewCursorState()
	c.modes.Reset()
	c.marginTop = 0
	c.marginBottom = height - 1
	c.charsets = [4]CharsetVariant{CharsetASCII, CharsetASCII, CharsetASCII, CharsetASCII}
	c.glInvoked = CharsetG0
	c.windowTitle = ""
	c.iconTitle = ""
}

// alignmentTest implements DECALN: fills the entire visible screen
// with 'E', used by terminal test suites to check margin/geometry
// rendering.
func (c *Core) alignmentTest() {
	width, height := c.screen().Size()
	for y := 0; y < height; y++ {
		c.screen().OverwriteAt(CursorPosition{X: 0, Y: y}, NewAsciiTChar('E'))
		for x := 1; x < width; x++ {
			c.screen().OverwriteAt(CursorPosition{X: x, Y: y}, NewAsciiTChar('E'))
		}
	}
	c.tracker().PushRange(0, len(c.screen().Raw()), DefaultFormatState())
	c.cursor.Position = CursorPosition{}
	c.cursor.ClearWrapLatch()
}
