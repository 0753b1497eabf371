package vtcore

import "strings"

// tracerCapacity is the number of trailing input bytes retained for
// diagnostics.
const tracerCapacity = 128

// TracerRing is a fixed-size, lossy ring buffer of the most recently
// pushed input bytes, used only to annotate diagnostic log lines when
// the parser abandons a malformed sequence. Ported from purfecterm's
// (unexported) SequenceTracer concept but exported here since the core
// has no internal package boundary to hide it behind.
type TracerRing struct {
	buf [tracerCapacity]byte
	len int
	idx int
}

// NewTracerRing returns an empty ring.
func NewTracerRing() *TracerRing {
	return &TracerRing{}
}

// Push records one byte, overwriting the oldest byte once the ring is
// full.
func (t *TracerRing) Push(b byte) {
	t.buf[t.idx] = b
	t.idx = (t.idx + 1) % len(t.buf)
	if t.len < len(t.buf) {
		t.len++
	}
}

// Snapshot returns the retained bytes, oldest first, as a UTF-8-lossy
// string suitable for embedding in a diagnostic message.
func (t *TracerRing) Snapshot() string {
	if t.len == 0 {
		return ""
	}
	end := t.idx
	start := (t.idx + len(t.buf) - t.len) % len(t.buf)
	var b strings.Builder
	if start < end {
		b.Write(t.buf[start:end])
	} else {
		b.Write(t.buf[start:])
		b.Write(t.buf[:end])
	}
	return b.String()
}
