package evalstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run summarizes one evaluation pass over a labeled dataset.
type Run struct {
	ID          string
	StartedAt   time.Time
	Dataset     string
	Sensitivity string
	Enhanced    bool
	Total       int
	Correct     int
	FalsePos    int // clean texts flagged as gibberish
	FalseNeg    int // gibberish texts passed as clean
	DurationMs  int64
}

// Accuracy returns the fraction of correctly classified samples.
func (r Run) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// Miss records one misclassified sample within a run.
type Miss struct {
	RunID  string
	Text   string
	Want   bool // true when the sample is labeled gibberish
	Got    bool
	Reason string
}

// SaveRun stores a run and its misses in one transaction. A blank run
// ID gets a fresh UUID; a zero StartedAt gets the current time.
func (s *Store) SaveRun(ctx context.Context, run *Run, misses []Miss) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO eval_run (id, started_at, dataset, sensitivity, enhanced,
			total, correct, false_pos, false_neg, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.Dataset, run.Sensitivity, run.Enhanced,
		run.Total, run.Correct, run.FalsePos, run.FalseNeg, run.DurationMs)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, m := range misses {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO eval_miss (run_id, text, want_gibberish, got_gibberish, reason)
			VALUES (?, ?, ?, ?, ?)`,
			run.ID, m.Text, m.Want, m.Got, m.Reason)
		if err != nil {
			return fmt.Errorf("insert miss: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns returns runs newest first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, started_at, dataset, sensitivity, enhanced,
		total, correct, false_pos, false_neg, duration_ms
		FROM eval_run ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Dataset, &r.Sensitivity,
			&r.Enhanced, &r.Total, &r.Correct, &r.FalsePos, &r.FalseNeg,
			&r.DurationMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Misses returns the misclassified samples of a run in insertion order.
func (s *Store) Misses(ctx context.Context, runID string) ([]Miss, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, text, want_gibberish, got_gibberish, reason
		FROM eval_miss WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query misses: %w", err)
	}
	defer rows.Close()

	var misses []Miss
	for rows.Next() {
		var m Miss
		if err := rows.Scan(&m.RunID, &m.Text, &m.Want, &m.Got, &m.Reason); err != nil {
			return nil, fmt.Errorf("scan miss: %w", err)
		}
		misses = append(misses, m)
	}
	return misses, rows.Err()
}
