package scrollload_test

import (
	"context"
	"errors"
	"testing"

	"chatscribe/internal/scrollload"
	"chatscribe/internal/services"
)

// scriptedSource replays canned windows and errors, one entry per cycle.
type scriptedSource struct {
	windows    [][]scrollload.Fragment
	observeErr []error
	revealErr  []error
	observes   int
	reveals    int
}

func (s *scriptedSource) RevealMoreHistory(context.Context) error {
	idx := s.reveals
	s.reveals++
	if idx < len(s.revealErr) {
		return s.revealErr[idx]
	}
	return nil
}

func (s *scriptedSource) ObserveVisibleMessages(context.Context) ([]scrollload.Fragment, error) {
	idx := s.observes
	s.observes++
	if idx < len(s.observeErr) && s.observeErr[idx] != nil {
		return nil, s.observeErr[idx]
	}
	if idx < len(s.windows) {
		return s.windows[idx], nil
	}
	if len(s.windows) == 0 {
		return nil, nil
	}
	return s.windows[len(s.windows)-1], nil
}

func run(t *testing.T, src scrollload.Source, cycles int) (*scriptedRun, error) {
	t.Helper()
	loader, err := scrollload.New(src, scrollload.Options{Cycles: cycles})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tr, completed, runErr := loader.Run(context.Background())
	return &scriptedRun{transcriptLen: tr.Len(), completed: completed}, runErr
}

type scriptedRun struct {
	transcriptLen int
	completed     int
}

func TestRunDeduplicatesOverlappingWindows(t *testing.T) {
	window := []scrollload.Fragment{
		{Sender: "a", Text: "hi", Timestamp: "t1"},
		{Sender: "b", Text: "bye", Timestamp: "t2"},
	}
	src := &scriptedSource{windows: [][]scrollload.Fragment{window, window}}

	res, err := run(t, src, 2)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.transcriptLen != 2 {
		t.Fatalf("expected 2 unique records across repeated windows, got %d", res.transcriptLen)
	}
	if res.completed != 2 {
		t.Fatalf("expected 2 completed cycles, got %d", res.completed)
	}
}

func TestRunRespectsCycleBudget(t *testing.T) {
	src := &scriptedSource{windows: [][]scrollload.Fragment{{{Sender: "a", Text: "hi"}}}}
	if _, err := run(t, src, 5); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if src.reveals != 5 || src.observes != 5 {
		t.Fatalf("expected 5 reveal/observe calls, got %d/%d", src.reveals, src.observes)
	}
}

func TestRunSkipsTransientObservationFailures(t *testing.T) {
	src := &scriptedSource{
		windows: [][]scrollload.Fragment{
			nil,
			{{Sender: "a", Text: "hi", Timestamp: "t1"}},
		},
		observeErr: []error{services.Wrap(services.ErrTransient, "devtools", "observe", "empty render", nil)},
	}
	res, err := run(t, src, 2)
	if err != nil {
		t.Fatalf("expected transient failure to be absorbed, got %v", err)
	}
	if res.transcriptLen != 1 {
		t.Fatalf("expected 1 record from the surviving cycle, got %d", res.transcriptLen)
	}
}

func TestRunTreatsRevealFailureAsNonFatal(t *testing.T) {
	window := []scrollload.Fragment{{Sender: "a", Text: "hi", Timestamp: "t1"}}
	src := &scriptedSource{
		windows:   [][]scrollload.Fragment{window, window},
		revealErr: []error{errors.New("scroll target missing")},
	}
	res, err := run(t, src, 2)
	if err != nil {
		t.Fatalf("expected reveal failure to be absorbed, got %v", err)
	}
	if res.transcriptLen != 1 {
		t.Fatalf("expected dedup to absorb the repeated window, got %d", res.transcriptLen)
	}
}

func TestRunAbortsOnSourceClosed(t *testing.T) {
	closed := services.Wrap(services.ErrSourceClosed, "devtools", "observe", "connection lost", nil)
	src := &scriptedSource{
		windows:    [][]scrollload.Fragment{{{Sender: "a", Text: "hi", Timestamp: "t1"}}, nil},
		observeErr: []error{nil, closed},
	}
	res, err := run(t, src, 3)
	if !errors.Is(err, services.ErrSourceClosed) {
		t.Fatalf("expected source-closed error to propagate, got %v", err)
	}
	if res.transcriptLen != 1 {
		t.Fatalf("expected partial transcript to be returned, got %d records", res.transcriptLen)
	}
	if res.completed != 1 {
		t.Fatalf("expected 1 completed cycle before abort, got %d", res.completed)
	}
}

func TestRunDropsBlankFragments(t *testing.T) {
	src := &scriptedSource{windows: [][]scrollload.Fragment{{
		{},
		{Sender: "a", Text: "hi", Timestamp: "t1"},
	}}}
	res, err := run(t, src, 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.transcriptLen != 1 {
		t.Fatalf("expected blank fragment to be dropped, got %d records", res.transcriptLen)
	}
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	src := &scriptedSource{windows: [][]scrollload.Fragment{{{Sender: "a", Text: "hi"}}}}
	loader, err := scrollload.New(src, scrollload.Options{Cycles: 10})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, completed, runErr := loader.Run(ctx)
	if !errors.Is(runErr, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", runErr)
	}
	if completed != 0 {
		t.Fatalf("expected no completed cycles, got %d", completed)
	}
}

func TestNewValidatesArguments(t *testing.T) {
	if _, err := scrollload.New(nil, scrollload.Options{Cycles: 1}); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := scrollload.New(&scriptedSource{}, scrollload.Options{Cycles: 0}); err == nil {
		t.Fatal("expected error for zero cycle budget")
	}
}
