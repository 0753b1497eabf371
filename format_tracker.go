package vtcore

import "math"

// Unbounded marks the end of the last FormatTag: a range that extends
// to the end of the buffer and beyond, so that appending new data never
// needs a tracker mutation of its own.
const Unbounded = math.MaxInt

// FormatTag is a half-open [Start, End) range over buffer positions,
// tagged with the FormatState that applied to every position in it.
type FormatTag struct {
	Start, End int
	State      FormatState
}

func (t FormatTag) len() int {
	if t.End == Unbounded {
		return Unbounded
	}
	return t.End - t.Start
}

// overlap reports whether ranges [aStart,aEnd) and [bStart,bEnd)
// overlap: a.start < b.end && b.start < a.end.
func overlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// FormatTracker is the ordered, non-overlapping, contiguous sequence of
// FormatTags covering every position in the buffer it shadows. It never
// touches the buffer itself — ActionApplier pairs every buffer mutation
// with the matching tracker mutation.
type FormatTracker struct {
	tags []FormatTag
}

// NewFormatTracker returns a tracker with one tag, [0, Unbounded),
// carrying the default FormatState — the construction-time state spec
// §3 Lifecycle describes.
func NewFormatTracker() *FormatTracker {
	return &FormatTracker{
		tags: []FormatTag{{Start: 0, End: Unbounded, State: DefaultFormatState()}},
	}
}

// Tags returns the tracker's tag list. Callers must not mutate it.
func (f *FormatTracker) Tags() []FormatTag {
	return f.tags
}

// TagAt returns the tag covering position p, or the zero FormatTag and
// false if p is negative (every non-negative position is covered by
// construction — the last tag is always Unbounded).
func (f *FormatTracker) TagAt(p int) (FormatTag, bool) {
	if p < 0 {
		return FormatTag{}, false
	}
	for _, t := range f.tags {
		if p >= t.Start && p < t.End {
			return t, true
		}
	}
	return FormatTag{}, false
}

// PushRange applies state to [start, end), splitting existing tags as
// needed so the new range is exactly covered. Adjacent tags with equal
// state are merged as an optimization (permitted but not
// require this).
func (f *FormatTracker) PushRange(start, end int, state FormatState) {
	if start >= end {
		return
	}

	var out []FormatTag
	for _, t := range f.tags {
		switch {
		case t.End <= start || t.Start >= end:
			// Entirely outside the new range: unchanged.
			out = append(out, t)
		case t.Start < start && t.End > end:
			// New range falls strictly inside t: split into three.
			out = append(out, FormatTag{Start: t.Start, End: start, State: t.State})
			out = append(out, FormatTag{Start: end, End: t.End, State: t.State})
		case t.Start < start:
			// t's tail overlaps the new range's head.
			out = append(out, FormatTag{Start: t.Start, End: start, State: t.State})
		case t.End > end:
			// t's head overlaps the new range's tail; the rest of t
			// (the new-range part) is dropped here and re-added once,
			// below, to avoid duplicating it per overlapping source tag.
			out = append(out, FormatTag{Start: end, End: t.End, State: t.State})
		default:
			// t is wholly inside the new range: drop it.
		}
	}
	out = append(out, FormatTag{Start: start, End: end, State: state})
	f.tags = normalizeTags(out)
}

// PushRangeAdjustment shifts every tag at or after insertedStart by
// insertedLen, splitting a straddling tag so only its tail moves (spec
// §4.5 push_range_adjustment).
func (f *FormatTracker) PushRangeAdjustment(insertedStart, insertedLen int) {
	if insertedLen <= 0 {
		return
	}
	var out []FormatTag
	for _, t := range f.tags {
		switch {
		case t.End <= insertedStart:
			out = append(out, t)
		case t.Start >= insertedStart:
			out = append(out, shiftTag(t, insertedLen))
		default:
			// Straddles the insertion point: split, shift the tail only.
			out = append(out, FormatTag{Start: t.Start, End: insertedStart, State: t.State})
			out = append(out, shiftTag(FormatTag{Start: insertedStart, End: t.End, State: t.State}, insertedLen))
		}
	}
	f.tags = normalizeTags(out)
}

func shiftTag(t FormatTag, by int) FormatTag {
	t.Start += by
	if t.End != Unbounded {
		t.End += by
	}
	return t
}

// DeleteRange removes [start, end) from the coordinate space: tags
// overlapping it are shrunk or dropped, and everything after is shifted
// down by its length. If shrinking would leave a gap at the end, the
// last tag is extended to Unbounded so contiguity never breaks (spec
// §4.5 delete_range).
func (f *FormatTracker) DeleteRange(start, end int) {
	if start >= end {
		return
	}
	length := end - start

	var out []FormatTag
	for _, t := range f.tags {
		switch {
		case t.End <= start:
			out = append(out, t)
		case t.Start >= end:
			out = append(out, shiftTag(t, -length))
		case t.Start < start && t.End > end:
			out = append(out, FormatTag{Start: t.Start, End: t.End - length, State: t.State})
		case t.Start < start:
			out = append(out, FormatTag{Start: t.Start, End: start, State: t.State})
		case t.End > end:
			out = append(out, shiftTag(FormatTag{Start: start, End: t.End, State: t.State}, -length))
		default:
			// t wholly inside the deleted range: drop it entirely.
		}
	}
	f.tags = normalizeTags(out)
	if len(f.tags) == 0 {
		f.tags = []FormatTag{{Start: 0, End: Unbounded, State: DefaultFormatState()}}
		return
	}
	last := &f.tags[len(f.tags)-1]
	if last.End != Unbounded {
		last.End = Unbounded
	}
}

// SliceAbsolute returns the tags overlapping [start, end), clipped to
// that span, with Start/End left in absolute buffer coordinates. Used
// to capture a row's formatting before a scroll-region copy moves its
// content to a different row at the same buffer offsets.
func (f *FormatTracker) SliceAbsolute(start, end int) []FormatTag {
	if start >= end {
		return nil
	}
	var out []FormatTag
	for _, t := range f.tags {
		if t.End <= start || t.Start >= end {
			continue
		}
		s, e := t.Start, t.End
		if s < start {
			s = start
		}
		if e > end || e == Unbounded {
			e = end
		}
		out = append(out, FormatTag{Start: s, End: e, State: t.State})
	}
	return out
}

// normalizeTags sorts by Start, merges adjacent equal-state runs, and
// re-stitches any gap left by the splitting logic above (every End
// becomes the next tag's Start) so the contiguity invariant always
// holds after a mutation.
func normalizeTags(tags []FormatTag) []FormatTag {
	if len(tags) == 0 {
		return nil
	}
	insertionSort(tags)

	out := tags[:0:0]
	for _, t := range tags {
		if t.Start >= t.End && t.End != Unbounded {
			continue
		}
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.State == t.State && last.End == t.Start {
				last.End = t.End
				continue
			}
			if last.End != t.Start {
				last.End = t.Start
			}
		}
		out = append(out, t)
	}
	if len(out) > 0 {
		out[len(out)-1].End = Unbounded
		out[0].Start = 0
	}
	return out
}

func insertionSort(tags []FormatTag) {
	for i := 1; i < len(tags); i++ {
		for j := i; j > 0 && tags[j-1].Start > tags[j].Start; j-- {
			tags[j-1], tags[j] = tags[j], tags[j-1]
		}
	}
}
