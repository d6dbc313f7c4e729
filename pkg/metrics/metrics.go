// Package metrics provides the centralized Prometheus registry reference
// for webharvest. All metrics are defined in their respective packages
// (fetch, paginate, harvest) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by webharvest.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Fetch Metrics (pkg/fetch):
//   - webharvest_fetch_requests_total{host, status} (Counter): Page fetches by host and HTTP status
//     (status "network_error" for transport failures)
//   - webharvest_fetch_duration_seconds{host} (Histogram): Fetch duration by host
//   - webharvest_fetch_errors_total{class} (Counter): Fetch errors by class (network, client, server)
//
// Pagination Metrics (pkg/paginate):
//   - webharvest_pages_total{outcome} (Counter): Pages visited by outcome
//     (ok: records extracted, skipped: fetch/parse failure, empty: page exhaustion)
//
// Harvest Metrics (pkg/harvest):
//   - webharvest_records_scraped_total{target} (Counter): Records scraped by target
//   - webharvest_target_runs_total{target, result} (Counter): Target runs by result (ok, failed)
//
// Example Prometheus Queries:
//
//   # Fetch error rate
//   rate(webharvest_fetch_errors_total[5m])
//
//   # Share of pages skipped
//   sum(rate(webharvest_pages_total{outcome="skipped"}[5m])) /
//   sum(rate(webharvest_pages_total[5m]))
//
//   # P95 fetch latency
//   histogram_quantile(0.95, rate(webharvest_fetch_duration_seconds_bucket[5m]))
//
//   # Failed target runs
//   increase(webharvest_target_runs_total{result="failed"}[1h])
