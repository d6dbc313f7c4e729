package paginate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/steneberg/webharvest/pkg/parse"
)

// Prometheus metrics for pagination.
var (
	pagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webharvest_pages_total",
		Help: "Pages visited by outcome (ok, skipped, empty)",
	}, []string{"outcome"})
)

// Fetcher fetches a single page body. *fetch.Client satisfies it; tests
// substitute their own implementation.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Config holds collector configuration.
type Config struct {
	// Pages is the inclusive upper page index; pages run 1..Pages.
	Pages int

	// Delay is an optional fixed pause before each page request after
	// the first. Zero disables it.
	Delay time.Duration
}

// Collector walks a page range, fetching and extracting each page in
// sequence. Pages are visited strictly in order; there is no parallel
// fetching.
type Collector struct {
	fetcher Fetcher
	schema  parse.Schema
	config  Config
}

// NewCollector creates a collector for one page schema.
func NewCollector(fetcher Fetcher, schema parse.Schema, cfg Config) *Collector {
	if cfg.Pages <= 0 {
		cfg.Pages = 1
	}
	return &Collector{
		fetcher: fetcher,
		schema:  schema,
		config:  cfg,
	}
}

// Collect iterates page indices 1..Pages, substituting each index into
// urlTemplate, and aggregates extracted records in page-then-position
// order.
//
// A page that fails to fetch or parse is logged and skipped; partial
// results are acceptable. A page that parses cleanly to zero records ends
// the walk early: that is the page-exhaustion signal, no further pages are
// fetched. Only context cancellation is returned as an error, together
// with whatever was collected so far.
func (c *Collector) Collect(ctx context.Context, urlTemplate string) ([]parse.Record, error) {
	start := time.Now()
	var records []parse.Record
	pagesVisited := 0

	for page := 1; page <= c.config.Pages; page++ {
		if page > 1 && c.config.Delay > 0 {
			select {
			case <-ctx.Done():
				return records, ctx.Err()
			case <-time.After(c.config.Delay):
			}
		} else if err := ctx.Err(); err != nil {
			return records, err
		}

		url := PageURL(urlTemplate, page)
		pagesVisited++

		body, err := c.fetcher.Get(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			pagesTotal.WithLabelValues("skipped").Inc()
			log.Warn().
				Err(err).
				Int("page", page).
				Str("url", url).
				Msg("Page fetch failed, skipping")
			continue
		}

		pageRecords, err := parse.Extract(body, c.schema)
		if err != nil {
			pagesTotal.WithLabelValues("skipped").Inc()
			log.Warn().
				Err(err).
				Int("page", page).
				Str("url", url).
				Msg("Page extraction failed, skipping")
			continue
		}

		if len(pageRecords) == 0 {
			pagesTotal.WithLabelValues("empty").Inc()
			log.Info().
				Int("page", page).
				Str("url", url).
				Msg("Empty page, no more content")
			break
		}

		pagesTotal.WithLabelValues("ok").Inc()
		records = append(records, pageRecords...)
		log.Debug().
			Int("page", page).
			Int("records", len(pageRecords)).
			Msg("Page collected")
	}

	log.Info().
		Int("pages", pagesVisited).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Collection complete")

	return records, nil
}

// PageURL builds the URL for a page index. Templates carry a %d verb for
// the index; a template without one names a single fixed page.
func PageURL(template string, page int) string {
	if strings.Contains(template, "%d") {
		return fmt.Sprintf(template, page)
	}
	return template
}
