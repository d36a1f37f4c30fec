package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	scoped := NewComponentLogger(logger, "scrollload")
	scoped.Info("cycle accumulated", Int("cycle", 3), String("phase", "accumulating"))

	line := buf.String()
	if !strings.Contains(line, "INFO scrollload: cycle accumulated") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "cycle=3") || !strings.Contains(line, "phase=accumulating") {
		t.Fatalf("expected attrs in line: %q", line)
	}
}

func TestConsoleHandlerQuotesAwkwardValues(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Warn("observe failed", Error(errors.New("empty render: no rows")))
	if !strings.Contains(buf.String(), `error="empty render: no rows"`) {
		t.Fatalf("expected quoted error value, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected info line suppressed, got %q", buf.String())
	}
	logger.Error("should appear")
	if !strings.Contains(buf.String(), "ERROR should appear") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if parseLevel("nonsense") != slog.LevelInfo {
		t.Fatal("expected fallback to info level")
	}
	if parseLevel("debug") != slog.LevelDebug {
		t.Fatal("expected debug level")
	}
}
