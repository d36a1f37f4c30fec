package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"chatscribe/internal/classify"
	"chatscribe/internal/record"
	"chatscribe/internal/services"
	"chatscribe/internal/transcript"
)

// Filter keeps only substantive records, preserving order.
func Filter(classifier *classify.Classifier, captured *transcript.Transcript) *transcript.Transcript {
	kept := make([]record.Record, 0, captured.Len())
	for _, rec := range captured.Records() {
		if classifier.Classify(rec) == classify.Substantive {
			kept = append(kept, rec)
		}
	}
	return transcript.FromRecords(kept)
}

// DeriveFilteredPath names the filtered output after the source file with
// the configured suffix and a second-resolution timestamp. The extension is
// preserved; an extensionless source gets .json.
func DeriveFilteredPath(sourcePath, suffix string, now time.Time) string {
	ext := filepath.Ext(sourcePath)
	if ext == "" {
		ext = ".json"
	}
	stem := strings.TrimSuffix(sourcePath, ext)
	return stem + suffix + "_" + now.Format("20060102_150405") + ext
}

// FilterResult summarizes a standalone filtering pass over an existing file.
type FilterResult struct {
	OutputPath string
	Total      int
	Kept       int
	Skipped    int
}

// FilterFile reads a previously captured transcript, drops automated
// records, and writes the remainder next to the source file. Malformed
// elements in the source are skipped, not fatal. An input with nothing
// substantive still produces a valid empty transcript file.
func FilterFile(classifier *classify.Classifier, sourcePath, suffix string, now time.Time) (*FilterResult, error) {
	captured, skipped, err := transcript.ReadFile(sourcePath)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "pipeline", "read transcript", sourcePath, err)
	}

	kept := Filter(classifier, captured)
	outputPath := DeriveFilteredPath(sourcePath, suffix, now)
	if err := transcript.WriteFile(outputPath, kept); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "pipeline", "write filtered transcript", outputPath, err)
	}

	return &FilterResult{
		OutputPath: outputPath,
		Total:      captured.Len(),
		Kept:       kept.Len(),
		Skipped:    skipped,
	}, nil
}
