package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages run ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at the given path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Begin inserts a new run in the running state. StartedAt defaults to now
// when unset.
func (s *Store) Begin(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if run.ID == "" {
		return errors.New("run id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	run.Status = StatusRunning

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, chat_name, status, cycles_requested, cycles_completed,
            record_count, kept_count, raw_path, filtered_path, error_message,
            started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.ChatName,
		run.Status,
		run.CyclesRequested,
		run.CyclesCompleted,
		run.RecordCount,
		run.KeptCount,
		nullableString(run.RawPath),
		nullableString(run.FilteredPath),
		nullableString(run.ErrorMessage),
		run.StartedAt.Format(time.RFC3339Nano),
		nil,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Finish persists the terminal state of a run. FinishedAt defaults to now
// when unset.
func (s *Store) Finish(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if run.FinishedAt == nil {
		now := time.Now().UTC()
		run.FinishedAt = &now
	}
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs
         SET status = ?, cycles_completed = ?, record_count = ?, kept_count = ?,
             raw_path = ?, filtered_path = ?, error_message = ?, finished_at = ?
         WHERE id = ?`,
		run.Status,
		run.CyclesCompleted,
		run.RecordCount,
		run.KeptCount,
		nullableString(run.RawPath),
		nullableString(run.FilteredPath),
		nullableString(run.ErrorMessage),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// GetByID fetches a run by identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// List returns runs ordered most recent first, capped at limit when
// positive.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

const runColumns = "id, chat_name, status, cycles_requested, cycles_completed, record_count, kept_count, raw_path, filtered_path, error_message, started_at, finished_at"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id           string
		chatName     string
		statusStr    string
		cyclesReq    int
		cyclesDone   int
		recordCount  int
		keptCount    int
		rawPath      sql.NullString
		filteredPath sql.NullString
		errorMessage sql.NullString
		startedRaw   string
		finishedRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&chatName,
		&statusStr,
		&cyclesReq,
		&cyclesDone,
		&recordCount,
		&keptCount,
		&rawPath,
		&filteredPath,
		&errorMessage,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	run := &Run{
		ID:              id,
		ChatName:        chatName,
		Status:          Status(statusStr),
		CyclesRequested: cyclesReq,
		CyclesCompleted: cyclesDone,
		RecordCount:     recordCount,
		KeptCount:       keptCount,
		RawPath:         rawPath.String,
		FilteredPath:    filteredPath.String,
		ErrorMessage:    errorMessage.String,
	}
	if started, err := time.Parse(time.RFC3339Nano, startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := time.Parse(time.RFC3339Nano, finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
