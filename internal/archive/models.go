package archive

import (
	"strings"
	"time"
)

// Status is the terminal state of a recorded run.
type Status string

const (
	// StatusRunning marks a run that has started and not yet finished.
	StatusRunning Status = "running"
	// StatusCompleted marks a run that finished its full cycle budget.
	StatusCompleted Status = "completed"
	// StatusPartial marks a run aborted by a fatal source failure after
	// persisting whatever had accumulated.
	StatusPartial Status = "partial"
	// StatusFailed marks a run that produced no output.
	StatusFailed Status = "failed"
)

var statusSet = map[Status]struct{}{
	StatusRunning:   {},
	StatusCompleted: {},
	StatusPartial:   {},
	StatusFailed:    {},
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Run is one extraction run recorded in the ledger.
type Run struct {
	ID              string
	ChatName        string
	Status          Status
	CyclesRequested int
	CyclesCompleted int
	RecordCount     int
	KeptCount       int
	RawPath         string
	FilteredPath    string
	ErrorMessage    string
	StartedAt       time.Time
	FinishedAt      *time.Time
}
