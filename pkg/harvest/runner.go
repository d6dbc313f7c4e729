// Package harvest sequences fetching, pagination and export for a set of
// scrape targets.
package harvest

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/steneberg/webharvest/pkg/export"
	"github.com/steneberg/webharvest/pkg/paginate"
)

// Prometheus metrics for harvest runs.
var (
	recordsScrapedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webharvest_records_scraped_total",
		Help: "Records scraped by target",
	}, []string{"target"})

	targetRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webharvest_target_runs_total",
		Help: "Target runs by result (ok, failed)",
	}, []string{"target", "result"})
)

// ErrNoTargets is returned when a run is started with nothing to scrape.
var ErrNoTargets = errors.New("no targets configured")

// Summary describes the outcome of one target run.
type Summary struct {
	Target  string
	Records int
	Pages   int
	Output  string
	Elapsed time.Duration
	Err     error
}

// Runner owns the fetch layer and runs targets one after another. A
// target's total failure is isolated: it never prevents the next target's
// export.
type Runner struct {
	fetcher paginate.Fetcher
	logger  zerolog.Logger
}

// NewRunner creates a runner on top of a page fetcher.
func NewRunner(fetcher paginate.Fetcher) *Runner {
	return &Runner{
		fetcher: fetcher,
		logger:  log.With().Str("component", "harvest").Logger(),
	}
}

// Run scrapes a single target and exports its records. Failures are
// captured in the summary, not raised; the caller decides whether a failed
// target matters.
func (r *Runner) Run(ctx context.Context, target Target) Summary {
	start := time.Now()
	logger := r.logger.With().Str("target", target.Name).Logger()
	summary := Summary{Target: target.Name, Output: target.Output}

	fail := func(err error) Summary {
		targetRunsTotal.WithLabelValues(target.Name, "failed").Inc()
		summary.Elapsed = time.Since(start)
		summary.Err = err
		logger.Error().Err(err).Dur("elapsed", summary.Elapsed).Msg("Target failed")
		return summary
	}

	if err := target.Validate(); err != nil {
		return fail(err)
	}

	logger.Info().
		Str("url", target.URL).
		Int("pages", target.Pages).
		Msg("Starting target")

	collector := paginate.NewCollector(r.fetcher, target.Schema, paginate.Config{
		Pages: target.Pages,
		Delay: time.Duration(target.Delay),
	})

	records, err := collector.Collect(ctx, target.URL)
	if err != nil {
		return fail(err)
	}

	if err := export.WriteFile(target.Output, target.Schema.Columns(), records); err != nil {
		return fail(err)
	}

	recordsScrapedTotal.WithLabelValues(target.Name).Add(float64(len(records)))
	targetRunsTotal.WithLabelValues(target.Name, "ok").Inc()

	summary.Records = len(records)
	summary.Elapsed = time.Since(start)
	logger.Info().
		Int("records", summary.Records).
		Str("output", target.Output).
		Dur("elapsed", summary.Elapsed).
		Msg("Target complete")

	return summary
}

// RunAll runs every target in order, continuing past per-target failures.
// It returns one summary per target. The only error is an empty target
// list, which is a configuration mistake and fails fast.
func (r *Runner) RunAll(ctx context.Context, targets []Target) ([]Summary, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	summaries := make([]Summary, 0, len(targets))
	for _, target := range targets {
		summaries = append(summaries, r.Run(ctx, target))
	}

	failed := 0
	for _, s := range summaries {
		if s.Err != nil {
			failed++
		}
	}
	r.logger.Info().
		Int("targets", len(targets)).
		Int("failed", failed).
		Msg("Run complete")

	return summaries, nil
}
