package api

import (
	"encoding/json"
	"sync"
	"time"
)

// CallStatus classifies the outcome of one API call.
type CallStatus string

const (
	CallSuccess CallStatus = "success"
	CallError   CallStatus = "error"
)

// CallEntry is a single record in the call log.
type CallEntry struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Resource  string        `json:"resource"`
	Status    CallStatus    `json:"status"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration"`
}

// CallLog is a bounded in-memory record of recent API calls, used by the
// CLI to show what the client has been doing against the backend.
type CallLog struct {
	mu      sync.Mutex
	entries []CallEntry
	max     int
}

// NewCallLog creates a log that keeps at most max entries, dropping the
// oldest first.
func NewCallLog(max int) *CallLog {
	if max <= 0 {
		max = 100
	}
	return &CallLog{max: max}
}

func (l *CallLog) add(e CallEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// Entries returns a copy of the current log, oldest first. The result is
// never nil, so an empty log exports as an empty JSON array.
func (l *CallLog) Entries() []CallEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]CallEntry{}, l.entries...)
}

// Clear empties the log.
func (l *CallLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Export renders the log as indented JSON for support bundles.
func (l *CallLog) Export() string {
	b, err := json.MarshalIndent(l.Entries(), "", "  ")
	if err != nil {
		return "[]"
	}
	return string(b)
}
