package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"chatscribe/internal/record"
)

// WriteFile persists a transcript as a JSON array of records. An empty
// transcript is written as a valid empty array, never omitted.
func WriteFile(path string, t *Transcript) error {
	records := t.Records()
	if records == nil {
		records = []record.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write transcript %q: %w", path, err)
	}
	return nil
}

// ReadFile loads a persisted transcript. Elements that do not decode into a
// record shape are skipped rather than aborting the load; the skip count is
// returned so callers can report it. Loaded records pass through the normal
// normalization, which is a no-op for records this program wrote.
func ReadFile(path string) (*Transcript, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read transcript %q: %w", path, err)
	}
	return Decode(data)
}

// Decode parses a JSON transcript array, skipping malformed elements.
func Decode(data []byte) (*Transcript, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, 0, fmt.Errorf("%w: got %s", ErrNotArray, typeErr.Value)
		}
		return nil, 0, fmt.Errorf("parse transcript: %w", err)
	}

	records := make([]record.Record, 0, len(raw))
	skipped := 0
	for _, element := range raw {
		var stored struct {
			Sender    *string `json:"sender"`
			Text      *string `json:"text"`
			Timestamp *string `json:"timestamp"`
		}
		if err := json.Unmarshal(element, &stored); err != nil {
			skipped++
			continue
		}
		if stored.Sender == nil && stored.Text == nil && stored.Timestamp == nil {
			skipped++
			continue
		}
		records = append(records, record.New(
			deref(stored.Sender),
			deref(stored.Text),
			deref(stored.Timestamp),
		))
	}
	return &Transcript{records: records}, skipped, nil
}

// ErrNotArray reports a persisted transcript whose top level is not a JSON
// array.
var ErrNotArray = errors.New("transcript is not a JSON array")

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
