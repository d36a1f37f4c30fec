package transcript

import "chatscribe/internal/record"

// Accumulator merges full-window observation batches into a growing
// transcript, dropping re-observations of records already seen. It is owned
// by exactly one extraction run and is not safe for concurrent use.
type Accumulator struct {
	records []record.Record
	seen    map[record.Key]struct{}
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{seen: make(map[record.Key]struct{})}
}

// Merge folds one observed batch into the transcript, preserving the batch's
// relative order for records not seen before. It returns the number of
// records appended. Merging the same batch twice is a no-op the second time.
func (a *Accumulator) Merge(batch []record.Record) int {
	added := 0
	for _, rec := range batch {
		key := rec.Key()
		if _, ok := a.seen[key]; ok {
			continue
		}
		a.seen[key] = struct{}{}
		a.records = append(a.records, rec)
		added++
	}
	return added
}

// Len reports the current transcript length.
func (a *Accumulator) Len() int {
	return len(a.records)
}

// Finalize freezes the accumulated records into a Transcript. The
// accumulator must not be used after Finalize.
func (a *Accumulator) Finalize() *Transcript {
	t := &Transcript{records: a.records}
	a.records = nil
	a.seen = nil
	return t
}
