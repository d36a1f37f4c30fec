// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"chatscribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Chat.Name = "Test Chat"
	cfgVal.Output.Dir = filepath.Join(base, "output")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Session.DataDir = filepath.Join(base, "session")
	cfgVal.Archive.Path = filepath.Join(base, "logs", "runs.db")
	cfgVal.Scroll.Cycles = 3
	cfgVal.Scroll.SettleMS = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithChat sets the target chat name on the test config.
func WithChat(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Chat.Name = name
	}
}

// WithCycles overrides the scroll cycle budget on the test config.
func WithCycles(cycles int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scroll.Cycles = cycles
	}
}

// WithClassifierDisabled turns off the filtered output pass.
func WithClassifierDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Classifier.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Output.Dir)
}

// WriteJSON writes raw bytes to the target path, creating parent
// directories as needed.
func WriteJSON(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
