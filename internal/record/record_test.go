package record_test

import (
	"testing"

	"chatscribe/internal/record"
)

func TestNewNormalizesFields(t *testing.T) {
	rec := record.New("  Ruby ", "  SnowBall on 7/5/25  ", " 9:45 am ")
	if rec.Sender != "Ruby" {
		t.Fatalf("expected trimmed sender, got %q", rec.Sender)
	}
	if rec.Text != "SnowBall on 7/5/25" {
		t.Fatalf("expected trimmed text, got %q", rec.Text)
	}
	if rec.Timestamp != "9:45 am" {
		t.Fatalf("expected trimmed timestamp, got %q", rec.Timestamp)
	}
}

func TestNewSubstitutesSentinels(t *testing.T) {
	rec := record.New("", "encrypted notice", "")
	if rec.Sender != record.SystemSender {
		t.Fatalf("expected system sender sentinel, got %q", rec.Sender)
	}
	if rec.Timestamp != "" {
		t.Fatalf("expected empty timestamp, got %q", rec.Timestamp)
	}
	if !rec.IsUnattributed() {
		t.Fatal("expected record to be unattributed")
	}
}

func TestNewIsIdempotent(t *testing.T) {
	first := record.New("  Ana", "hi  there", "10:45")
	second := record.New(first.Sender, first.Text, first.Timestamp)
	if first != second {
		t.Fatalf("expected idempotent normalization, got %#v vs %#v", first, second)
	}
}

func TestKeyEquality(t *testing.T) {
	a := record.New("Ana", "Ok", "10:45")
	b := record.New(" Ana ", " Ok ", " 10:45 ")
	if a.Key() != b.Key() {
		t.Fatalf("expected equal keys, got %#v vs %#v", a.Key(), b.Key())
	}
	c := record.New("Ana", "Ok", "10:46")
	if a.Key() == c.Key() {
		t.Fatal("expected differing timestamps to produce different keys")
	}
}

func TestIsEmpty(t *testing.T) {
	if !record.New("", "", "").IsEmpty() {
		t.Fatal("expected fully blank fragment to be empty")
	}
	if record.New("", "[Image/Media]", "").IsEmpty() {
		t.Fatal("media-only text still counts as content")
	}
	if record.New("Ana", "", "").IsEmpty() {
		t.Fatal("a sender alone still counts as content")
	}
}
