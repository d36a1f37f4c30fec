// Package scrollload drives a virtualized chat surface through repeated
// "reveal more history, observe, accumulate" cycles until a fixed cycle
// budget is exhausted.
//
// The source UI offers no reliable end-of-history signal, so the budget is
// the sole termination condition. Failures inside a cycle are soft: an empty
// or failed observation contributes nothing and the loop moves on, and a
// failed reveal degrades to re-observing the same window, which dedup
// absorbs. Only loss of the observation source connection aborts the run.
package scrollload
