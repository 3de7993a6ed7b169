package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// runRepo implements RunRepo with plain SQL.
type runRepo struct {
	db *sql.DB
}

func (r *runRepo) Save(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, num_examples, output, format, seed, catalog)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UnixMilli(),
		run.FinishedAt.UnixMilli(),
		run.NumExamples,
		run.Output,
		run.Format,
		run.Seed,
		run.Catalog,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, tc := range run.Templates {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_templates (run_id, template, count) VALUES (?, ?, ?)`,
			run.ID, tc.Template, tc.Count,
		)
		if err != nil {
			return fmt.Errorf("insert template count %q: %w", tc.Template, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const runColumns = `id, started_at, finished_at, num_examples, output, format, seed, catalog`

func (r *runRepo) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (r *runRepo) Get(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR substr(id, 1, ?) = ? LIMIT 2`,
		id, len(id), id,
	)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
	default:
		for _, m := range matches {
			if m.ID == id {
				matches = []*Run{m}
				break
			}
		}
		if len(matches) > 1 {
			return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
		}
	}

	run := matches[0]
	run.Templates, err = r.templateCounts(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (r *runRepo) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, id LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return int(n), nil
}

func (r *runRepo) templateCounts(ctx context.Context, runID string) ([]TemplateCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT template, count FROM run_templates WHERE run_id = ? ORDER BY template`, runID)
	if err != nil {
		return nil, fmt.Errorf("query template counts: %w", err)
	}
	defer rows.Close()

	var counts []TemplateCount
	for rows.Next() {
		var tc TemplateCount
		if err := rows.Scan(&tc.Template, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan template count: %w", err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template counts: %w", err)
	}
	return counts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var startedMs, finishedMs int64
	err := s.Scan(&run.ID, &startedMs, &finishedMs, &run.NumExamples,
		&run.Output, &run.Format, &run.Seed, &run.Catalog)
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = time.UnixMilli(startedMs).UTC()
	run.FinishedAt = time.UnixMilli(finishedMs).UTC()
	return &run, nil
}
