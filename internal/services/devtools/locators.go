package devtools

// Locators is the versioned selector set for the WhatsApp Web page
// structure. The page markup changes without notice; keeping every selector
// in one place makes a breakage a one-file fix.
type Locators struct {
	Version string

	// ChatPane is the sidebar chat list, present only when logged in.
	ChatPane string
	// QRCanvas is the login QR code shown when no session exists.
	QRCanvas string
	// SearchBox is the contenteditable chat search field.
	SearchBox string
	// MessagePane is the scrollable container holding the open conversation.
	MessagePane string
	// MessageRows matches individual incoming and outgoing message rows.
	MessageRows string
	// CopyableText carries sender and timestamp in its
	// data-pre-plain-text attribute, formatted "[HH:MM, D/M/YYYY] Sender: ".
	CopyableText string
	// SelectableText is the visible message body inside a row.
	SelectableText string
}

// DefaultLocators returns the selector set matching the current page layout.
func DefaultLocators() Locators {
	return Locators{
		Version:        "2026-08",
		ChatPane:       "#pane-side",
		QRCanvas:       "canvas[aria-label]",
		SearchBox:      "div[contenteditable='true'][data-tab='3']",
		MessagePane:    "#main div[data-tab='8']",
		MessageRows:    "div.message-in, div.message-out",
		CopyableText:   "div.copyable-text",
		SelectableText: "span.selectable-text",
	}
}
