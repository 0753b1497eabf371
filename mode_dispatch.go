package vtcore

import "strconv"

// ModeDispatchResult is what applying one EventMode produced: the
// ModeKind it resolved to (for ActionApplier to act on side effects
// like 1049's alternate-screen swap), and a host response string when
// the event was a DECRQM query (empty otherwise).
type ModeDispatchResult struct {
	Kind     ModeKind
	Known    bool
	Response string
}

// ApplyModeEvent resolves an EventMode against the registry: a Set or
// Reset action mutates it directly; a Query (DECRQM) leaves it
// untouched and produces the CSI ? n ; v $ y report
// describes. Unknown mode numbers are reported Known: false so
// ActionApplier can skip any side-effect switch on Kind.
func ApplyModeEvent(reg *ModeRegistry, e ParserEvent) ModeDispatchResult {
	kind, known := LookupMode(e.ModeNumber, e.ModePrivate)

	if e.ModeAct == ModeActionQuery {
		v := reg.QueryDECRQM(e.ModeNumber, e.ModePrivate)
		return ModeDispatchResult{Kind: kind, Known: known, Response: formatDECRQM(e.ModeNumber, v)}
	}

	if known {
		reg.Set(kind, e.ModeAct == ModeActionSet)
	}
	return ModeDispatchResult{Kind: kind, Known: known}
}

func formatDECRQM(number int, v DECRQMValue) string {
	return "\x1b[?" + strconv.Itoa(number) + ";" + strconv.Itoa(int(v)) + "$y"
}
