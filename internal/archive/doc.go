// Package archive persists a ledger of past extraction runs in SQLite.
//
// Each run records the target chat, cycle counts, record and kept counts,
// output paths, and terminal status, so operators can see what a given
// output file came from without re-reading logs. The ledger is bookkeeping,
// not a message store; transcripts live in their JSON output files.
package archive
