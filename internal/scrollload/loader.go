package scrollload

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"chatscribe/internal/logging"
	"chatscribe/internal/record"
	"chatscribe/internal/services"
	"chatscribe/internal/transcript"
)

// Fragment is one raw message observation: possibly-absent sender and
// timestamp around the rendered text, exactly as the source exposed them.
type Fragment struct {
	Sender    string
	Text      string
	Timestamp string
}

// Source is the external observation surface the loader drives.
type Source interface {
	// RevealMoreHistory asks the surface to materialize older content.
	// Best effort; a no-op when no further history exists.
	RevealMoreHistory(ctx context.Context) error
	// ObserveVisibleMessages snapshots the currently rendered window in
	// top-to-bottom order. Snapshots overlap across calls and may be
	// empty during asynchronous settling.
	ObserveVisibleMessages(ctx context.Context) ([]Fragment, error)
}

// loader phase labels used in log output.
const (
	phaseRequesting   = "requesting_more_history"
	phaseObserving    = "observing"
	phaseAccumulating = "accumulating"
)

// Options configures a Loader.
type Options struct {
	// Cycles is the fixed reveal/observe budget. Must be positive.
	Cycles int
	// Settle is the bounded wait after each reveal for asynchronous
	// content to materialize. It is a fixed delay, not interruptible by
	// content arrival.
	Settle time.Duration
	Logger *slog.Logger
}

// Loader runs the scroll-and-observe state machine over one Source.
type Loader struct {
	source Source
	cycles int
	settle time.Duration
	logger *slog.Logger
}

// New builds a Loader.
func New(source Source, opts Options) (*Loader, error) {
	if source == nil {
		return nil, errors.New("scrollload: source is required")
	}
	if opts.Cycles <= 0 {
		return nil, errors.New("scrollload: cycle budget must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{
		source: source,
		cycles: opts.Cycles,
		settle: opts.Settle,
		logger: logging.NewComponentLogger(logger, "scrollload"),
	}, nil
}

// Run executes the full cycle budget and returns the frozen transcript.
// On a fatal source failure the transcript accumulated so far is returned
// alongside the error so the caller can persist a best-effort partial
// result; CyclesCompleted reports how many cycles contributed.
func (l *Loader) Run(ctx context.Context) (*transcript.Transcript, int, error) {
	acc := transcript.NewAccumulator()

	for cycle := 1; cycle <= l.cycles; cycle++ {
		if err := ctx.Err(); err != nil {
			return acc.Finalize(), cycle - 1, err
		}

		if err := l.source.RevealMoreHistory(ctx); err != nil {
			if fatal(ctx, err) {
				return acc.Finalize(), cycle - 1, err
			}
			// Degrades to re-observing the current window.
			l.logger.Warn("reveal more history failed",
				logging.Error(err),
				logging.String(logging.FieldEventType, "reveal_failed"),
				logging.String("phase", phaseRequesting),
				logging.Int("cycle", cycle),
			)
		}

		if err := l.wait(ctx); err != nil {
			return acc.Finalize(), cycle - 1, err
		}

		fragments, err := l.source.ObserveVisibleMessages(ctx)
		if err != nil {
			if fatal(ctx, err) {
				return acc.Finalize(), cycle - 1, err
			}
			// Soft failure: this cycle contributes nothing.
			l.logger.Warn("observation failed for cycle",
				logging.Error(err),
				logging.String(logging.FieldEventType, "observe_failed"),
				logging.String("phase", phaseObserving),
				logging.Int("cycle", cycle),
			)
			continue
		}

		batch := make([]record.Record, 0, len(fragments))
		for _, frag := range fragments {
			rec := record.New(frag.Sender, frag.Text, frag.Timestamp)
			if rec.IsEmpty() {
				continue
			}
			batch = append(batch, rec)
		}
		added := acc.Merge(batch)
		l.logger.Debug("cycle accumulated",
			logging.String("phase", phaseAccumulating),
			logging.Int("cycle", cycle),
			logging.Int("observed", len(fragments)),
			logging.Int("added", added),
			logging.Int("total", acc.Len()),
		)
	}

	return acc.Finalize(), l.cycles, nil
}

func (l *Loader) wait(ctx context.Context) error {
	if l.settle <= 0 {
		return nil
	}
	timer := time.NewTimer(l.settle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func fatal(ctx context.Context, err error) bool {
	if services.IsFatal(err) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return ctx.Err() != nil
}
