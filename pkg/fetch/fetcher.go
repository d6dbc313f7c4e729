// Package fetch provides the HTTP layer for page scraping: a single
// synchronous GET per page with timeout, error classification and request
// metrics.
package fetch

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for fetch operations.
var (
	fetchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webharvest_fetch_requests_total",
		Help: "Total page fetches by host and outcome",
	}, []string{"host", "status"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "webharvest_fetch_duration_seconds",
		Help:    "Page fetch duration in seconds by host",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"host"})

	fetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webharvest_fetch_errors_total",
		Help: "Total fetch errors by class",
	}, []string{"class"})
)

// Config holds the fetcher configuration.
type Config struct {
	// UserAgent identifies the scraper to the target site.
	UserAgent string

	// Timeout bounds each request, connection setup included.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		UserAgent: "Mozilla/5.0 (compatible; webharvest/1.0)",
		Timeout:   15 * time.Second,
	}
}

// Client fetches raw page bodies over HTTP. It keeps no per-response
// state: responses are never cached and failed fetches return no partial
// data.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

// New creates a fetch client. Zero config fields fall back to defaults.
func New(cfg Config) *Client {
	defaults := DefaultConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}

	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetRetryCount(0)

	return &Client{
		http:   httpClient,
		logger: log.With().Str("component", "fetch").Logger(),
	}
}

// Get performs a single GET and returns the raw response body. Any
// transport failure or non-2xx status yields a *FetchError; there is no
// retry, the caller decides whether to continue with further pages.
func (c *Client) Get(ctx context.Context, pageURL string) ([]byte, error) {
	host := hostLabel(pageURL)
	start := time.Now()
	defer func() {
		fetchDuration.WithLabelValues(host).Observe(time.Since(start).Seconds())
	}()

	c.logger.Debug().Str("url", pageURL).Msg("Fetching page")

	resp, err := c.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		fetchErrorsTotal.WithLabelValues(string(ClassNetwork)).Inc()
		fetchRequestsTotal.WithLabelValues(host, "network_error").Inc()
		c.logger.Error().Err(err).Str("url", pageURL).Msg("Request failed")
		return nil, &FetchError{URL: pageURL, Class: ClassNetwork, Err: err}
	}

	status := resp.StatusCode()
	fetchRequestsTotal.WithLabelValues(host, strconv.Itoa(status)).Inc()

	if status < 200 || status > 299 {
		class := classifyStatus(status)
		fetchErrorsTotal.WithLabelValues(string(class)).Inc()
		c.logger.Warn().
			Str("url", pageURL).
			Int("status", status).
			Str("error_class", string(class)).
			Msg("Fetch returned error status")
		return nil, &FetchError{URL: pageURL, StatusCode: status, Class: class}
	}

	c.logger.Debug().
		Str("url", pageURL).
		Int("status", status).
		Int("bytes", len(resp.Body())).
		Dur("duration", time.Since(start)).
		Msg("Page fetched")

	return resp.Body(), nil
}

// hostLabel extracts a low-cardinality host label for metrics.
func hostLabel(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return "invalid"
	}
	return u.Host
}
