package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"chatscribe/internal/archive"
	"chatscribe/internal/classify"
	"chatscribe/internal/config"
	"chatscribe/internal/logging"
	"chatscribe/internal/notifications"
	"chatscribe/internal/scrollload"
	"chatscribe/internal/services"
	"chatscribe/internal/transcript"
)

// Session is the authenticated chat surface a run drives. It extends the
// loader's observation source with login and navigation.
type Session interface {
	scrollload.Source
	WaitForLogin(ctx context.Context) error
	OpenChat(ctx context.Context, name string) error
	Close() error
}

// SessionFactory opens a Session for a run.
type SessionFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Session, error)

// Result summarizes a finished run.
type Result struct {
	RunID           string
	ChatName        string
	Records         int
	Kept            int
	CyclesCompleted int
	RawPath         string
	FilteredPath    string
	Partial         bool
}

// Pipeline runs extractions against a configured chat.
type Pipeline struct {
	cfg        *config.Config
	factory    SessionFactory
	store      *archive.Store
	notifier   notifications.Service
	classifier *classify.Classifier
	logger     *slog.Logger
	clock      func() time.Time
}

// New wires a pipeline from its collaborators. store may be nil when run
// history is disabled.
func New(cfg *config.Config, factory SessionFactory, store *archive.Store, notifier notifications.Service, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: config is required")
	}
	if factory == nil {
		return nil, errors.New("pipeline: session factory is required")
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	classifier, err := NewClassifier(cfg)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:        cfg,
		factory:    factory,
		store:      store,
		notifier:   notifier,
		classifier: classifier,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		clock:      time.Now,
	}, nil
}

// NewClassifier builds the classification policy from the stock rule table
// plus any configured extras.
func NewClassifier(cfg *config.Config) (*classify.Classifier, error) {
	rules := classify.DefaultRules()
	for _, pattern := range cfg.Classifier.ExtraContains {
		rules = append(rules, classify.Rule{Kind: classify.KindContains, Pattern: pattern})
	}
	for _, pattern := range cfg.Classifier.ExtraPrefix {
		rules = append(rules, classify.Rule{Kind: classify.KindPrefix, Pattern: pattern})
	}
	for _, pattern := range cfg.Classifier.ExtraRegex {
		rules = append(rules, classify.Rule{Kind: classify.KindRegex, Pattern: pattern})
	}
	classifier, err := classify.New(rules)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "build classifier", "", err)
	}
	return classifier, nil
}

// Run executes one full extraction. On a fatal mid-run failure the raw
// transcript captured so far is still persisted and the returned Result
// carries Partial.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	chat := strings.TrimSpace(p.cfg.Chat.Name)
	if chat == "" {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "run", "no target chat configured", nil)
	}
	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "run", "prepare directories", err)
	}

	unlock, err := p.acquireSessionLock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	start := p.clock()
	run := &archive.Run{
		ID:              uuid.NewString(),
		ChatName:        chat,
		CyclesRequested: p.cfg.Scroll.Cycles,
		StartedAt:       start.UTC(),
	}
	p.recordBegin(ctx, run)

	result := &Result{RunID: run.ID, ChatName: chat}
	p.logger.Info("run started",
		logging.String(logging.FieldRunID, run.ID),
		logging.String(logging.FieldChat, chat),
		logging.Int("cycles", p.cfg.Scroll.Cycles),
	)

	session, err := p.factory(ctx, p.cfg, p.logger)
	if err != nil {
		return result, p.fail(ctx, run, result, start, err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			p.logger.Warn("session close failed", logging.Error(closeErr))
		}
	}()

	if err := session.WaitForLogin(ctx); err != nil {
		return result, p.fail(ctx, run, result, start, err)
	}
	if err := session.OpenChat(ctx, chat); err != nil {
		return result, p.fail(ctx, run, result, start, err)
	}

	loader, err := scrollload.New(session, scrollload.Options{
		Cycles: p.cfg.Scroll.Cycles,
		Settle: p.cfg.SettleDelay(),
		Logger: p.logger,
	})
	if err != nil {
		return result, p.fail(ctx, run, result, start, err)
	}

	captured, completed, loadErr := loader.Run(ctx)
	result.Records = captured.Len()
	result.CyclesCompleted = completed

	if persistErr := p.persist(captured, result); persistErr != nil {
		if loadErr != nil {
			persistErr = errors.Join(loadErr, persistErr)
		}
		return result, p.fail(ctx, run, result, start, persistErr)
	}

	duration := p.clock().Sub(start)
	if loadErr != nil {
		result.Partial = true
		p.finishRun(ctx, run, result, archive.StatusPartial, loadErr)
		if notifyErr := p.notifier.NotifyRunPartial(ctx, chat, result.Records, loadErr); notifyErr != nil {
			p.logger.Warn("partial-run notification failed", logging.Error(notifyErr))
		}
		p.logger.Warn("run aborted with partial output",
			logging.String(logging.FieldRunID, run.ID),
			logging.Int("records", result.Records),
			logging.Int("cycles_completed", completed),
			logging.Error(loadErr),
		)
		return result, loadErr
	}

	p.finishRun(ctx, run, result, archive.StatusCompleted, nil)
	if notifyErr := p.notifier.NotifyRunCompleted(ctx, chat, result.Records, result.Kept, duration); notifyErr != nil {
		p.logger.Warn("completion notification failed", logging.Error(notifyErr))
	}
	p.logger.Info("run completed",
		logging.String(logging.FieldRunID, run.ID),
		logging.Int("records", result.Records),
		logging.Int("kept", result.Kept),
		logging.Duration("duration", duration),
	)
	return result, nil
}

// persist writes the raw transcript and, when enabled, the filtered pass.
func (p *Pipeline) persist(captured *transcript.Transcript, result *Result) error {
	rawPath := p.cfg.RawOutputPath()
	if err := transcript.WriteFile(rawPath, captured); err != nil {
		return services.Wrap(services.ErrPersistence, "pipeline", "write raw transcript", rawPath, err)
	}
	result.RawPath = rawPath
	p.logger.Info("raw transcript written",
		logging.String("path", rawPath),
		logging.Int("records", captured.Len()),
	)

	if !p.cfg.Classifier.Enabled {
		result.Kept = result.Records
		return nil
	}

	kept := Filter(p.classifier, captured)
	filteredPath := DeriveFilteredPath(rawPath, p.cfg.Output.FilteredSuffix, p.clock())
	if err := transcript.WriteFile(filteredPath, kept); err != nil {
		return services.Wrap(services.ErrPersistence, "pipeline", "write filtered transcript", filteredPath, err)
	}
	result.Kept = kept.Len()
	result.FilteredPath = filteredPath
	p.logger.Info("filtered transcript written",
		logging.String("path", filteredPath),
		logging.Int("kept", kept.Len()),
		logging.Int("dropped", captured.Len()-kept.Len()),
	)
	return nil
}

func (p *Pipeline) fail(ctx context.Context, run *archive.Run, result *Result, start time.Time, err error) error {
	status := archive.StatusFailed
	if result.RawPath != "" {
		status = archive.StatusPartial
		result.Partial = true
	}
	p.finishRun(ctx, run, result, status, err)
	if notifyErr := p.notifier.NotifyRunFailed(ctx, run.ChatName, err); notifyErr != nil {
		p.logger.Warn("failure notification failed", logging.Error(notifyErr))
	}
	p.logger.Error("run failed",
		logging.String(logging.FieldRunID, run.ID),
		logging.Duration("duration", p.clock().Sub(start)),
		logging.Error(err),
	)
	return err
}

// Ledger failures never abort a run; the transcript matters more than the
// bookkeeping.
func (p *Pipeline) recordBegin(ctx context.Context, run *archive.Run) {
	if p.store == nil {
		return
	}
	if err := p.store.Begin(ctx, run); err != nil {
		p.logger.Warn("run ledger insert failed", logging.Error(err))
	}
}

func (p *Pipeline) finishRun(ctx context.Context, run *archive.Run, result *Result, status archive.Status, cause error) {
	if p.store == nil {
		return
	}
	run.Status = status
	run.CyclesCompleted = result.CyclesCompleted
	run.RecordCount = result.Records
	run.KeptCount = result.Kept
	run.RawPath = result.RawPath
	run.FilteredPath = result.FilteredPath
	if cause != nil {
		run.ErrorMessage = cause.Error()
	}
	finished := p.clock().UTC()
	run.FinishedAt = &finished
	if err := p.store.Finish(ctx, run); err != nil {
		p.logger.Warn("run ledger update failed", logging.Error(err))
	}
}

// acquireSessionLock guards the browser profile against concurrent runs.
func (p *Pipeline) acquireSessionLock() (func(), error) {
	lockPath := filepath.Join(p.cfg.Session.DataDir, "session.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "session lock", lockPath, err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "session lock",
			fmt.Sprintf("another run holds %s", lockPath), nil)
	}
	return func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			p.logger.Warn("session unlock failed", logging.Error(unlockErr))
		}
	}, nil
}
