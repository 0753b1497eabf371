package vtcore

import "testing"

func TestTCharDisplayWidth(t *testing.T) {
	cases := []struct {
		name string
		ch   TChar
		want int
	}{
		{"ascii", NewAsciiTChar('a'), 1},
		{"space", SpaceTChar(), 1},
		{"newline", NewlineTChar(), 0},
		{"wide-cjk", TCharsFromRune('中'), 2},
		{"narrow-latin", TCharsFromRune('é'), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ch.DisplayWidth(); got != tc.want {
				t.Errorf("DisplayWidth() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTCharsFromRuneRoundTrip(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '0', '中', '🙂', 'é'} {
		ch := TCharsFromRune(r)
		if got := ch.Rune(); got != r {
			t.Errorf("TCharsFromRune(%q).Rune() = %q, want %q", r, got, r)
		}
	}
}

func TestIsCombiningMark(t *testing.T) {
	if !IsCombiningMark(0x0301) {
		t.Error("U+0301 (combining acute accent) should be a combining mark")
	}
	if IsCombiningMark('a') {
		t.Error("'a' should not be a combining mark")
	}
}

func TestTCharTextIncludesCombiningMarks(t *testing.T) {
	ch := NewAsciiTChar('e').WithCombining(0x0301)
	if got, want := ch.Text(), "é"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got := ch.DisplayWidth(); got != 1 {
		t.Errorf("DisplayWidth() with a combining mark attached = %d, want 1", got)
	}
}
