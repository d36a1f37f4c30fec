// Package transcript owns the growing, de-duplicated message sequence built
// up across scroll observation cycles, and its persisted JSON form.
//
// The source re-renders the whole visible window on every observation, so
// successive batches overlap heavily. The Accumulator keeps records in
// first-seen order using a composite key set; because history loads upward,
// first-seen order approximates chronological order but is not a guaranteed
// total order. That approximation is documented behavior, not a bug.
package transcript
