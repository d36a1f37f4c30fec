package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chatscribe/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaultsAndFileValues(t *testing.T) {
	path := writeConfig(t, `
[chat]
name = "SheffSnow Announcements"

[scroll]
cycles = 3
`)
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected config file to be found at %q", resolved)
	}
	if cfg.Chat.Name != "SheffSnow Announcements" {
		t.Fatalf("unexpected chat name %q", cfg.Chat.Name)
	}
	if cfg.Scroll.Cycles != 3 {
		t.Fatalf("expected cycles override, got %d", cfg.Scroll.Cycles)
	}
	if cfg.Scroll.SettleMS != 1500 {
		t.Fatalf("expected default settle, got %d", cfg.Scroll.SettleMS)
	}
	if cfg.Output.RawFile != "whatsapp_messages_raw.json" {
		t.Fatalf("expected default raw file, got %q", cfg.Output.RawFile)
	}
}

func TestLoadExpandsPaths(t *testing.T) {
	path := writeConfig(t, `
[output]
dir = "~/chatscribe-out"
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if strings.HasPrefix(cfg.Output.Dir, "~") {
		t.Fatalf("expected tilde expansion, got %q", cfg.Output.Dir)
	}
	if !filepath.IsAbs(cfg.Output.Dir) {
		t.Fatalf("expected absolute path, got %q", cfg.Output.Dir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"zero cycles", "[scroll]\ncycles = 0\n"},
		{"negative settle", "[scroll]\nsettle_ms = -1\n"},
		{"bad devtools url", "[session]\ndevtools_url = \"ws://localhost\"\n"},
		{"empty raw file", "[output]\nraw_file = \"\"\n"},
		{"bad log format", "[logging]\nformat = \"yaml\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, _, err := config.Load(writeConfig(t, tc.content)); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	t.Setenv("CHATSCRIBE_CHAT", "Env Chat")
	path := writeConfig(t, "[chat]\nname = \"File Chat\"\n")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Chat.Name != "Env Chat" {
		t.Fatalf("expected env override, got %q", cfg.Chat.Name)
	}
}

func TestArchivePathDefaultsToLogDir(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = "/tmp/chatscribe-logs"
	cfg.Archive.Path = ""
	if got := cfg.ArchivePath(); got != filepath.Join("/tmp/chatscribe-logs", "runs.db") {
		t.Fatalf("unexpected archive path %q", got)
	}
}

func TestCreateSampleWritesParseableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample config to load cleanly, exists=%v err=%v", exists, err)
	}
}
