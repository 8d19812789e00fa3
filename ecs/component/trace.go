package component

import "time"

// TraceCapacity bounds the resolver decision trace.
const TraceCapacity = 20

// TraceEntry records one resolver decision.
type TraceEntry struct {
	Participant Participant
	At          time.Duration
	Kind        string
	Detail      string
}

// Trace is a bounded ring of recent resolver decisions.
type Trace struct {
	entries []TraceEntry
}

var TraceComponent = NewComponent[Trace]()

func (t *Trace) Record(e TraceEntry) {
	if t == nil {
		return
	}
	t.entries = append(t.entries, e)
	if len(t.entries) > TraceCapacity {
		t.entries = append(t.entries[:0], t.entries[len(t.entries)-TraceCapacity:]...)
	}
}

// Entries returns a copy, oldest first.
func (t *Trace) Entries() []TraceEntry {
	if t == nil || len(t.entries) == 0 {
		return nil
	}
	out := make([]TraceEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
