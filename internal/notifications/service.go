package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chatscribe/internal/config"
)

const userAgent = "Chatscribe/0.1.0"

// Service defines the notification surface exposed to the pipeline.
type Service interface {
	NotifyRunCompleted(ctx context.Context, chatName string, records, kept int, duration time.Duration) error
	NotifyRunPartial(ctx context.Context, chatName string, records int, cause error) error
	NotifyRunFailed(ctx context.Context, chatName string, cause error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, chatName string, records, kept int, duration time.Duration) error {
	chatName = strings.TrimSpace(chatName)
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	data := payload{
		title:   "Chatscribe - Run Complete",
		message: fmt.Sprintf("Extracted %d messages from %s (%d kept after filtering) in %s", records, chatName, kept, duration),
		tags:    []string{"chatscribe", "run", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunPartial(ctx context.Context, chatName string, records int, cause error) error {
	chatName = strings.TrimSpace(chatName)
	message := fmt.Sprintf("Run for %s aborted after capturing %d messages", chatName, records)
	if cause != nil {
		message = fmt.Sprintf("%s: %s", message, strings.TrimSpace(cause.Error()))
	}
	data := payload{
		title:    "Chatscribe - Partial Run",
		message:  message,
		tags:     []string{"chatscribe", "run", "partial"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, chatName string, cause error) error {
	chatName = strings.TrimSpace(chatName)
	var builder strings.Builder
	builder.WriteString("Run failed")
	if chatName != "" {
		builder.WriteString(" for ")
		builder.WriteString(chatName)
	}
	builder.WriteString(": ")
	if cause != nil {
		builder.WriteString(strings.TrimSpace(cause.Error()))
	} else {
		builder.WriteString("unknown")
	}
	data := payload{
		title:    "Chatscribe - Error",
		message:  builder.String(),
		tags:     []string{"chatscribe", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Chatscribe - Test",
		message:  "Notification system test",
		tags:     []string{"chatscribe", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, string, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyRunPartial(context.Context, string, int, error) error { return nil }
func (noopService) NotifyRunFailed(context.Context, string, error) error       { return nil }
func (noopService) TestNotification(context.Context) error                     { return nil }
