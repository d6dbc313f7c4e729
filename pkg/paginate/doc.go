// Package paginate drives the fetch/extract cycle across a fixed page
// range.
//
// Listing sites expose their content as numbered pages with a shared
// record structure. This package walks such a range strictly in sequence,
// aggregating records while preserving page order and within-page order.
//
// Example usage:
//
//	collector := paginate.NewCollector(fetcher, schema, paginate.Config{Pages: 3})
//	records, err := collector.Collect(ctx, "http://books.toscrape.com/catalogue/page-%d.html")
//
// The collector:
//   - Substitutes each page index into the URL template
//   - Skips pages that fail to fetch or parse (partial results are fine)
//   - Stops early when a page yields zero records (page exhaustion)
//   - Optionally pauses a fixed delay between page requests
package paginate
