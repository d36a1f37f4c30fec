package devtools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"chatscribe/internal/config"
	"chatscribe/internal/logging"
	"chatscribe/internal/scrollload"
	"chatscribe/internal/services"
)

const (
	whatsappURL     = "https://web.whatsapp.com"
	loginPollPeriod = 2 * time.Second
	searchSettle    = 1500 // milliseconds the search box gets before the result list is read
)

// Source drives the WhatsApp Web page and exposes its message pane to the
// scroll loader.
type Source struct {
	client   *Client
	locators Locators
	logger   *slog.Logger

	loginWait   time.Duration
	elementWait time.Duration
	reuse       bool
}

// NewSource wraps an attached client with page-level operations.
func NewSource(client *Client, cfg *config.Config, logger *slog.Logger) *Source {
	return &Source{
		client:      client,
		locators:    DefaultLocators(),
		logger:      logging.NewComponentLogger(logger, "devtools"),
		loginWait:   cfg.LoginWait(),
		elementWait: cfg.ElementWait(),
		reuse:       cfg.Session.Reuse,
	}
}

// EnsureWhatsApp navigates the attached page to WhatsApp Web unless it is
// already there. With session reuse off the page is reloaded regardless, so
// the run starts from a fresh page state.
func (s *Source) EnsureWhatsApp(ctx context.Context) error {
	var href string
	if err := s.client.Evaluate(ctx, "window.location.href", &href); err != nil {
		return err
	}
	if s.reuse && len(href) >= len(whatsappURL) && href[:len(whatsappURL)] == whatsappURL {
		return nil
	}
	s.logger.Info("navigating to WhatsApp Web", logging.String("from", href))
	return s.client.Navigate(ctx, whatsappURL)
}

// WaitForLogin polls for the sidebar chat pane until it appears or the
// configured login wait elapses. A fresh session shows a QR code; the
// operator scans it on their phone while this polls.
func (s *Source) WaitForLogin(ctx context.Context) error {
	deadline := time.Now().Add(s.loginWait)
	qrAnnounced := false

	for {
		var state struct {
			Pane bool `json:"pane"`
			QR   bool `json:"qr"`
		}
		expr := fmt.Sprintf(
			"({pane: !!document.querySelector(%s), qr: !!document.querySelector(%s)})",
			jsString(s.locators.ChatPane), jsString(s.locators.QRCanvas),
		)
		if err := s.client.Evaluate(ctx, expr, &state); err != nil {
			if services.IsFatal(err) {
				return err
			}
			s.logger.Warn("login probe failed", logging.Error(err))
		}
		if state.Pane {
			s.logger.Info("session is logged in")
			return nil
		}
		if state.QR && !qrAnnounced {
			s.logger.Info("waiting for QR code scan")
			qrAnnounced = true
		}

		if time.Now().After(deadline) {
			return services.Wrap(services.ErrLogin, "devtools", "wait for login",
				fmt.Sprintf("chat pane did not appear within %s", s.loginWait), nil)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(loginPollPeriod):
		}
	}
}

// OpenChat types the chat name into the search box and clicks the matching
// result. The name must match the chat title exactly.
func (s *Source) OpenChat(ctx context.Context, name string) error {
	expr := fmt.Sprintf(`(async () => {
  const search = document.querySelector(%s);
  if (!search) return "no-search";
  search.focus();
  document.execCommand("selectAll", false, null);
  document.execCommand("insertText", false, %s);
  await new Promise(r => setTimeout(r, %d));
  const chat = document.querySelector("span[title=" + JSON.stringify(%s) + "]");
  if (!chat) return "no-chat";
  chat.click();
  await new Promise(r => setTimeout(r, %d));
  if (!document.querySelector(%s)) return "no-pane";
  return "ok";
})()`,
		jsString(s.locators.SearchBox),
		jsString(name),
		searchSettle,
		jsString(name),
		searchSettle,
		jsString(s.locators.MessagePane),
	)

	var status string
	if err := s.client.Evaluate(ctx, expr, &status); err != nil {
		return err
	}
	switch status {
	case "ok":
		s.logger.Info("chat opened", logging.String(logging.FieldChat, name))
		return nil
	case "no-search":
		return services.Wrap(services.ErrStaleLocators, "devtools", "open chat", "search box not found", nil)
	case "no-chat":
		return services.Wrap(services.ErrConfiguration, "devtools", "open chat",
			fmt.Sprintf("no chat titled %q in search results", name), nil)
	case "no-pane":
		return services.Wrap(services.ErrStaleLocators, "devtools", "open chat", "message pane did not open", nil)
	default:
		return services.Wrap(services.ErrTransient, "devtools", "open chat", "unexpected status "+status, nil)
	}
}

// RevealMoreHistory scrolls the message pane to its top so older messages
// load into the DOM.
func (s *Source) RevealMoreHistory(ctx context.Context) error {
	expr := fmt.Sprintf(`(() => {
  const pane = document.querySelector(%s);
  if (!pane) return false;
  pane.scrollTop = 0;
  return true;
})()`, jsString(s.locators.MessagePane))

	var found bool
	if err := s.client.Evaluate(ctx, expr, &found); err != nil {
		return err
	}
	if !found {
		return services.Wrap(services.ErrStaleLocators, "devtools", "reveal history", "message pane not found", nil)
	}
	return nil
}

// ObserveVisibleMessages reads every message row currently in the DOM.
// Sender and timestamp come from the data-pre-plain-text attribute; rows
// without it (system notices) yield empty sender and timestamp.
func (s *Source) ObserveVisibleMessages(ctx context.Context) ([]scrollload.Fragment, error) {
	expr := fmt.Sprintf(`(() => {
  const out = [];
  for (const row of document.querySelectorAll(%s)) {
    const body = row.querySelector(%s);
    const text = body ? body.innerText : "";
    let sender = "", timestamp = "";
    const copyable = row.querySelector(%s);
    if (copyable) {
      const pre = copyable.getAttribute("data-pre-plain-text") || "";
      const m = pre.match(/^\[(.+?)\]\s*(.*?):\s*$/);
      if (m) { timestamp = m[1]; sender = m[2]; }
    }
    out.push({sender: sender, text: text, timestamp: timestamp});
  }
  return out;
})()`,
		jsString(s.locators.MessageRows),
		jsString(s.locators.SelectableText),
		jsString(s.locators.CopyableText),
	)

	var fragments []scrollload.Fragment
	if err := s.client.Evaluate(ctx, expr, &fragments); err != nil {
		return nil, err
	}
	return fragments, nil
}

// Close releases the debugger connection.
func (s *Source) Close() error {
	return s.client.Close()
}

func jsString(value string) string {
	encoded, _ := json.Marshal(value)
	return string(encoded)
}
