package pipeline

import (
	"path/filepath"
	"testing"
	"time"

	"chatscribe/internal/classify"
	"chatscribe/internal/testsupport"
	"chatscribe/internal/transcript"
)

var fixedNow = time.Date(2026, 3, 14, 21, 15, 42, 0, time.UTC)

func TestDeriveFilteredPath(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"/out/whatsapp_messages_raw.json", "/out/whatsapp_messages_raw_filtered_20260314_211542.json"},
		{"/out/export", "/out/export_filtered_20260314_211542.json"},
		{"archive.backup.json", "archive.backup_filtered_20260314_211542.json"},
	}
	for _, tc := range cases {
		if got := DeriveFilteredPath(tc.source, "_filtered", fixedNow); got != tc.want {
			t.Errorf("DeriveFilteredPath(%q) = %q, want %q", tc.source, got, tc.want)
		}
	}
}

func TestFilterFileDropsAutomatedRows(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "capture.json")
	testsupport.WriteJSON(t, source, []byte(`[
  {"sender": "Ana", "text": "see you at 8", "timestamp": "21:15, 3/14/2026"},
  {"sender": "Me/System", "text": "Missed voice call", "timestamp": "21:20, 3/14/2026"},
  {"sender": "Bea", "text": "bringing snacks", "timestamp": "21:21, 3/14/2026"},
  42,
  {"sender": "Me/System", "text": "Messages are end-to-end encrypted. Tap to learn more.", "timestamp": ""}
]`))

	result, err := FilterFile(classify.Default(), source, "_filtered", fixedNow)
	if err != nil {
		t.Fatalf("FilterFile failed: %v", err)
	}
	if result.Skipped != 1 {
		t.Fatalf("expected 1 skipped element, got %d", result.Skipped)
	}
	if result.Total != 4 || result.Kept != 2 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.OutputPath != filepath.Join(dir, "capture_filtered_20260314_211542.json") {
		t.Fatalf("unexpected output path %q", result.OutputPath)
	}

	filtered, _, err := transcript.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read filtered output: %v", err)
	}
	records := filtered.Records()
	if len(records) != 2 || records[0].Sender != "Ana" || records[1].Sender != "Bea" {
		t.Fatalf("unexpected filtered records: %#v", records)
	}
}

func TestFilterFileWithNothingSubstantiveWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "capture.json")
	testsupport.WriteJSON(t, source, []byte(`[
  {"sender": "Me/System", "text": "Missed video call", "timestamp": ""}
]`))

	result, err := FilterFile(classify.Default(), source, "_filtered", fixedNow)
	if err != nil {
		t.Fatalf("FilterFile failed: %v", err)
	}
	if result.Kept != 0 {
		t.Fatalf("expected nothing kept, got %d", result.Kept)
	}
	filtered, _, err := transcript.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("empty filtered output must still be readable: %v", err)
	}
	if filtered.Len() != 0 {
		t.Fatalf("expected empty transcript, got %d records", filtered.Len())
	}
}
