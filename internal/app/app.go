// Package app wires the generate pipeline together: catalog, generator,
// dataset writer, metrics and run history.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/querygen/internal/catalog"
	"github.com/abhisek/querygen/internal/config"
	"github.com/abhisek/querygen/internal/datagen"
	"github.com/abhisek/querygen/internal/dataset"
	"github.com/abhisek/querygen/internal/metrics"
	"github.com/abhisek/querygen/internal/report"
	"github.com/abhisek/querygen/internal/store"
)

// Options configures a single generate run.
type Options struct {
	Config *config.Config
	Logger *zap.Logger

	// Stdout receives the progress line and the summary. Nil discards them.
	Stdout io.Writer

	// Metrics is optional; a fresh recorder is used when nil.
	Metrics *metrics.Recorder

	// Runs records history. Nil disables it.
	Runs store.RunRepo

	// Rand overrides the seeded random source. Used by tests.
	Rand datagen.Rand

	Now func() time.Time
}

// Result describes a finished run.
type Result struct {
	// RunID is empty when history is disabled or could not be saved.
	RunID    string
	Output   string
	Format   dataset.Format
	Seed     int64
	Total    int
	Tally    []dataset.TemplateCount
	Duration time.Duration
	Catalog  *catalog.Catalog
}

// Summary converts the result into the console summary.
func (r *Result) Summary() report.Summary {
	categories := map[string]string{}
	if r.Catalog != nil {
		categories = r.Catalog.Categories()
	}
	rows := make([]report.Row, 0, len(r.Tally))
	for _, tc := range r.Tally {
		rows = append(rows, report.Row{
			Template: tc.Template,
			Category: categories[tc.Template],
			Count:    tc.Count,
		})
	}
	return report.Summary{
		RunID:    r.RunID,
		Output:   r.Output,
		Format:   string(r.Format),
		Total:    r.Total,
		Seed:     r.Seed,
		Duration: r.Duration,
		Rows:     rows,
	}
}

// Run generates cfg.NumExamples records and writes them to cfg.Output.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("app: missing config")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	out := opts.Stdout
	if out == nil {
		out = io.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rec := opts.Metrics
	if rec == nil {
		rec = metrics.New()
	}

	format, err := dataset.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	log = log.With(zap.String("run_id", runID))
	startedAt := now()

	c, err := catalog.LoadOrDefault(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	rnd, seed := opts.Rand, cfg.Seed
	if rnd == nil {
		rnd, seed = datagen.NewRand(cfg.Seed)
	}

	log.Info("generation started",
		zap.Int("num_examples", cfg.NumExamples),
		zap.String("output", cfg.Output),
		zap.String("format", string(format)),
		zap.Int64("seed", seed),
		zap.String("catalog", c.Source),
		zap.Int("templates", len(c.Templates)),
	)
	report.Print(out, report.Progress(cfg.NumExamples))

	records := datagen.New(c, rnd).GenerateDataset(cfg.NumExamples)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generation interrupted: %w", err)
	}

	if err := dataset.WriteFile(cfg.Output, format, records); err != nil {
		return nil, err
	}

	finishedAt := now()
	res := &Result{
		RunID:    runID,
		Output:   cfg.Output,
		Format:   format,
		Seed:     seed,
		Total:    len(records),
		Tally:    dataset.Tally(records),
		Duration: finishedAt.Sub(startedAt),
		Catalog:  c,
	}

	categories := c.Categories()
	for _, tc := range res.Tally {
		rec.ObserveRecords(tc.Template, categories[tc.Template], tc.Count)
	}
	rec.ObserveRun(res.Duration, finishedAt)

	if opts.Runs != nil {
		run := &store.Run{
			ID:          runID,
			StartedAt:   startedAt,
			FinishedAt:  finishedAt,
			NumExamples: len(records),
			Output:      cfg.Output,
			Format:      string(format),
			Seed:        seed,
			Catalog:     c.Source,
		}
		for _, tc := range res.Tally {
			run.Templates = append(run.Templates, store.TemplateCount{Template: tc.Template, Count: tc.Count})
		}
		if err := opts.Runs.Save(ctx, run); err != nil {
			log.Warn("failed to record run history", zap.Error(err))
			res.RunID = ""
		}
	} else {
		res.RunID = ""
	}

	if cfg.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("failed to write metrics textfile",
				zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}

	log.Info("generation finished",
		zap.Int("records", res.Total),
		zap.Duration("elapsed", res.Duration),
	)
	report.Print(out, report.RenderSummary(res.Summary()))
	return res, nil
}
