package main

import (
	"strings"
	"testing"
	"time"

	"chatscribe/internal/archive"
)

func TestRenderRunsShowsCountsAndStatus(t *testing.T) {
	started := time.Date(2026, 3, 14, 21, 15, 0, 0, time.UTC)
	finished := started.Add(95 * time.Second)
	runs := []*archive.Run{
		{
			ID:              "abc",
			ChatName:        "SheffSnow",
			Status:          archive.StatusCompleted,
			CyclesRequested: 15,
			CyclesCompleted: 15,
			RecordCount:     120,
			KeptCount:       98,
			StartedAt:       started,
			FinishedAt:      &finished,
		},
		{
			ID:              "def",
			ChatName:        "Family",
			Status:          archive.StatusPartial,
			CyclesRequested: 15,
			CyclesCompleted: 4,
			RecordCount:     37,
			StartedAt:       started,
		},
	}

	rendered := renderRuns(runs)
	for _, want := range []string{"SheffSnow", "completed", "15/15", "120", "98", "1m35s", "partial", "4/15"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered table missing %q:\n%s", want, rendered)
		}
	}
}

func TestFormatRunDurationUnfinished(t *testing.T) {
	run := &archive.Run{StartedAt: time.Now()}
	if got := formatRunDuration(run); got != "-" {
		t.Fatalf("expected placeholder for unfinished run, got %q", got)
	}
}
