// Package pipeline orchestrates one extraction run end to end: session
// attach, login wait, chat open, scroll loading, raw persistence, the
// filtered output pass, the run ledger entry, and notifications.
//
// The raw transcript is persisted whenever any records were captured, even
// when the run aborts partway. The filtered pass never blocks raw output.
package pipeline
