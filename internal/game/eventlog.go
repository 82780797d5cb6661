package game

import "time"

// MaxLogEntries caps the event log; older entries fall off the end.
const MaxLogEntries = 50

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Day       int       `json:"game_day"`
	Severity  Severity  `json:"type"`
	Message   string    `json:"message"`
}

// prependLog returns a new log with entry first, trimmed to MaxLogEntries.
func prependLog(entries []LogEntry, entry LogEntry) []LogEntry {
	n := min(len(entries), MaxLogEntries-1)
	out := make([]LogEntry, 0, n+1)
	out = append(out, entry)
	return append(out, entries[:n]...)
}
