// Package record defines the canonical message record extracted from a chat
// surface and the composite identity used to deduplicate repeated
// observations.
//
// The source UI exposes no stable message identifier, so identity is the
// normalized (sender, text, timestamp) triple. Two genuinely distinct
// messages that render identically collapse to one record; that is a known
// limitation of the source, not something this package tries to paper over.
package record
