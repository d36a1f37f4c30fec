package main

import (
	"time"

	"chatscribe/internal/archive"
)

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Local().Format("2006-01-02 15:04:05")
}

func formatRunDuration(run *archive.Run) string {
	if run.FinishedAt == nil || run.StartedAt.IsZero() {
		return "-"
	}
	duration := run.FinishedAt.Sub(run.StartedAt).Round(time.Second)
	if duration < 0 {
		return "-"
	}
	return duration.String()
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
