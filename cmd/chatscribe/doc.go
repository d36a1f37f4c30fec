// Command chatscribe extracts chat transcripts from a WhatsApp Web session
// running in a browser with remote debugging enabled.
package main
