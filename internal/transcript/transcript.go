package transcript

import "chatscribe/internal/record"

// Transcript is a frozen, ordered sequence of records produced by one
// extraction run. It is append-only while owned by the Accumulator and
// read-only once handed to classification or persistence.
type Transcript struct {
	records []record.Record
}

// FromRecords builds a transcript from an already-ordered record slice.
// Used when re-loading a persisted transcript for a filter pass.
func FromRecords(records []record.Record) *Transcript {
	cp := make([]record.Record, len(records))
	copy(cp, records)
	return &Transcript{records: cp}
}

// Records returns a copy of the transcript contents in order.
func (t *Transcript) Records() []record.Record {
	if t == nil {
		return nil
	}
	cp := make([]record.Record, len(t.records))
	copy(cp, t.records)
	return cp
}

// Len reports the number of records.
func (t *Transcript) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}
