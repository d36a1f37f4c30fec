package devtools

import (
	"context"
	"errors"
	"testing"

	"chatscribe/internal/logging"
	"chatscribe/internal/services"
	"chatscribe/internal/testsupport"
)

func newFakeSource(t *testing.T, page *fakePage) *Source {
	t.Helper()
	client := attachToFake(t, page)
	return NewSource(client, testsupport.NewConfig(t), logging.NewNop())
}

func TestObserveVisibleMessagesParsesRows(t *testing.T) {
	page := newFakePage(t)
	page.answers["querySelectorAll"] = []map[string]string{
		{"sender": "Ana", "text": "see you at 8", "timestamp": "21:15, 3/14/2026"},
		{"sender": "", "text": "Messages are end-to-end encrypted.", "timestamp": ""},
	}
	source := newFakeSource(t, page)

	fragments, err := source.ObserveVisibleMessages(context.Background())
	if err != nil {
		t.Fatalf("ObserveVisibleMessages failed: %v", err)
	}
	if len(fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(fragments))
	}
	if fragments[0].Sender != "Ana" || fragments[0].Timestamp != "21:15, 3/14/2026" {
		t.Fatalf("unexpected fragment %#v", fragments[0])
	}
	if fragments[1].Sender != "" {
		t.Fatalf("system rows keep an empty sender, got %q", fragments[1].Sender)
	}
}

func TestRevealMoreHistoryMissingPane(t *testing.T) {
	page := newFakePage(t)
	page.answers["scrollTop"] = false
	source := newFakeSource(t, page)

	err := source.RevealMoreHistory(context.Background())
	if !errors.Is(err, services.ErrStaleLocators) {
		t.Fatalf("expected stale-locator marker, got %v", err)
	}
	if services.IsFatal(err) {
		t.Fatal("a missing pane aborts the cycle, not the run")
	}
}

func TestOpenChatStatuses(t *testing.T) {
	cases := []struct {
		status string
		marker error
	}{
		{"no-search", services.ErrStaleLocators},
		{"no-chat", services.ErrConfiguration},
		{"no-pane", services.ErrStaleLocators},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			page := newFakePage(t)
			page.answers["insertText"] = tc.status
			source := newFakeSource(t, page)

			err := source.OpenChat(context.Background(), "Family")
			if !errors.Is(err, tc.marker) {
				t.Fatalf("expected %v, got %v", tc.marker, err)
			}
		})
	}
}

func TestOpenChatSuccess(t *testing.T) {
	page := newFakePage(t)
	page.answers["insertText"] = "ok"
	source := newFakeSource(t, page)

	if err := source.OpenChat(context.Background(), "Family"); err != nil {
		t.Fatalf("OpenChat failed: %v", err)
	}
}

func TestWaitForLoginSucceedsWhenPanePresent(t *testing.T) {
	page := newFakePage(t)
	page.answers["pane:"] = map[string]bool{"pane": true, "qr": false}
	source := newFakeSource(t, page)

	if err := source.WaitForLogin(context.Background()); err != nil {
		t.Fatalf("WaitForLogin failed: %v", err)
	}
}
