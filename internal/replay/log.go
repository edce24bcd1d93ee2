package replay

import "strings"

// Log is the ordered, append-only event list the engine maintains when
// skip_event_log is false (spec.md §6). Ground: persist.go's
// GamePersister accumulation pattern, minus the MongoDB write-through.
type Log struct {
	entries []Event
}

// Append records e, unless the log is disabled (a nil *Log is a valid,
// no-op "skip_event_log=true" log, letting the engine hold an always-set
// field rather than a nilable interface).
func (l *Log) Append(e Event) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, e)
}

// Entries returns the recorded events in order; callers must not mutate
// the returned slice.
func (l *Log) Entries() []Event {
	if l == nil {
		return nil
	}
	return l.entries
}

// String renders the full log as newline-separated ASCII lines.
func (l *Log) String() string {
	if l == nil {
		return ""
	}
	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}
