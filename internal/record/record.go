package record

import "strings"

// SystemSender is the sentinel author label used when the source UI exposes
// no sender for a message (own messages and unattributed system rows render
// without one).
const SystemSender = "Me/System"

// Record is a single extracted chat message. All three fields are always
// present, possibly empty; Timestamp is free-form text exactly as rendered
// by the source and carries no ordering guarantee.
type Record struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Key is the dedup identity of a record: the normalized triple.
type Key struct {
	Sender    string
	Text      string
	Timestamp string
}

// New builds a normalized Record from raw observed fragments. Incidental
// whitespace is trimmed, an absent sender becomes SystemSender, and an
// absent timestamp becomes the empty string. New is idempotent: feeding a
// normalized record's fields back in yields an equal record.
func New(sender, text, timestamp string) Record {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		sender = SystemSender
	}
	return Record{
		Sender:    sender,
		Text:      strings.TrimSpace(text),
		Timestamp: strings.TrimSpace(timestamp),
	}
}

// Key returns the dedup key for the record.
func (r Record) Key() Key {
	return Key{Sender: r.Sender, Text: r.Text, Timestamp: r.Timestamp}
}

// IsUnattributed reports whether the record carries the system sender
// sentinel rather than a real author label.
func (r Record) IsUnattributed() bool {
	return r.Sender == SystemSender
}

// IsEmpty reports whether every field of the record is empty after
// normalization. Empty records carry no information and are dropped before
// accumulation.
func (r Record) IsEmpty() bool {
	return (r.Sender == "" || r.Sender == SystemSender) && r.Text == "" && r.Timestamp == ""
}
