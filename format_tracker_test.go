package vtcore

import "testing"

func assertContiguous(t *testing.T, f *FormatTracker) {
	t.Helper()
	tags := f.Tags()
	if len(tags) == 0 {
		t.Fatal("tracker has no tags")
	}
	if tags[0].Start != 0 {
		t.Errorf("first tag starts at %d, want 0", tags[0].Start)
	}
	for i := 0; i < len(tags)-1; i++ {
		if tags[i].End != tags[i+1].Start {
			t.Errorf("gap between tag %d (end %d) and tag %d (start %d)", i, tags[i].End, i+1, tags[i+1].Start)
		}
	}
	if tags[len(tags)-1].End != Unbounded {
		t.Errorf("last tag ends at %d, want Unbounded", tags[len(tags)-1].End)
	}
}

func TestNewFormatTrackerStartsUnbounded(t *testing.T) {
	f := NewFormatTracker()
	assertContiguous(t, f)
	if len(f.Tags()) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(f.Tags()))
	}
}

func TestPushRangeSplitsAndStaysContiguous(t *testing.T) {
	f := NewFormatTracker()
	bold := DefaultFormatState()
	bold.Weight = WeightBold

	f.PushRange(5, 10, bold)
	assertContiguous(t, f)

	if tag, ok := f.TagAt(7); !ok || tag.State.Weight != WeightBold {
		t.Errorf("position 7 should be bold, got %+v (ok=%v)", tag, ok)
	}
	if tag, ok := f.TagAt(0); !ok || tag.State.Weight != WeightNormal {
		t.Errorf("position 0 should be normal weight, got %+v", tag)
	}
	if tag, ok := f.TagAt(20); !ok || tag.State.Weight != WeightNormal {
		t.Errorf("position 20 should be normal weight (past the bold run), got %+v", tag)
	}
}

func TestPushRangeMergesAdjacentEqualRuns(t *testing.T) {
	f := NewFormatTracker()
	italic := DefaultFormatState()
	italic.Italic = true

	f.PushRange(0, 5, italic)
	f.PushRange(5, 10, italic)
	assertContiguous(t, f)

	if len(f.Tags()) != 2 {
		t.Errorf("expected adjacent equal-state tags to merge into 1 plus the default tail (2 tags), got %d: %+v", len(f.Tags()), f.Tags())
	}
}

func TestPushRangeAdjustmentShiftsTail(t *testing.T) {
	f := NewFormatTracker()
	bold := DefaultFormatState()
	bold.Weight = WeightBold
	f.PushRange(10, 20, bold)

	f.PushRangeAdjustment(5, 3)
	assertContiguous(t, f)

	if tag, ok := f.TagAt(16); !ok || tag.State.Weight != WeightBold {
		t.Errorf("bold run should have shifted to start at 13, position 16 got %+v (ok=%v)", tag, ok)
	}
	if tag, ok := f.TagAt(11); !ok || tag.State.Weight == WeightBold {
		t.Errorf("position 11 should still be normal weight after the shift, got %+v", tag)
	}
}

func TestDeleteRangeShrinksAndShifts(t *testing.T) {
	f := NewFormatTracker()
	bold := DefaultFormatState()
	bold.Weight = WeightBold
	f.PushRange(0, 10, bold)

	f.DeleteRange(3, 6)
	assertContiguous(t, f)

	if tag, ok := f.TagAt(3); !ok || tag.State.Weight != WeightBold {
		t.Errorf("position 3 (formerly 6) should still be bold, got %+v", tag)
	}
	if tag, ok := f.TagAt(6); !ok || tag.State.Weight != WeightBold {
		t.Errorf("position 6 (formerly 9) should still be bold, got %+v", tag)
	}
}

func TestOverlap(t *testing.T) {
	if !overlap(0, 5, 3, 8) {
		t.Error("ranges [0,5) and [3,8) should overlap")
	}
	if overlap(0, 5, 5, 10) {
		t.Error("ranges [0,5) and [5,10) should not overlap (half-open, touching)")
	}
	if overlap(0, 5, 6, 10) {
		t.Error("ranges [0,5) and [6,10) should not overlap")
	}
}
