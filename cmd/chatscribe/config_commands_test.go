package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"chatscribe/internal/config"
)

func TestConfigInitWritesLoadableSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	cmd := newConfigInitCommand()
	cmd.SetArgs([]string{"--path", target})
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out.String(), target) {
		t.Fatalf("expected output to mention %s, got %q", target, out.String())
	}

	if _, _, exists, err := config.Load(target); err != nil || !exists {
		t.Fatalf("generated sample did not load: exists=%v err=%v", exists, err)
	}
}

func TestConfigInitRefusesExistingFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("seed sample: %v", err)
	}

	cmd := newConfigInitCommand()
	cmd.SetArgs([]string{"--path", target})
	cmd.SetOut(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected refusal without --overwrite")
	}
}
