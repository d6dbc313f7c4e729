package harvest

import (
	"fmt"
	"time"

	"github.com/steneberg/webharvest/pkg/parse"
)

// Target is one independent scrape job: a page range sharing a record
// schema, exported to one CSV file. Targets are configuration; they are
// set once and never mutated during a run.
type Target struct {
	// Name labels the target in logs and metrics.
	Name string `yaml:"name"`

	// URL is the page URL template; %d is replaced with the page index.
	// Without %d the same URL names every page, usually with Pages: 1.
	URL string `yaml:"url"`

	// Pages is the number of pages to visit.
	Pages int `yaml:"pages"`

	// Delay pauses between page requests. Optional.
	Delay Duration `yaml:"delay,omitempty"`

	// Output is the CSV file path, overwritten on each run.
	Output string `yaml:"output"`

	// Schema describes the repeated record structure of the pages.
	Schema parse.Schema `yaml:"schema"`
}

// Validate checks a target before running it.
func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("target: name is required")
	}
	if t.URL == "" {
		return fmt.Errorf("target %s: url is required", t.Name)
	}
	if t.Pages <= 0 {
		return fmt.Errorf("target %s: pages must be positive", t.Name)
	}
	if t.Output == "" {
		return fmt.Errorf("target %s: output path is required", t.Name)
	}
	if err := t.Schema.Validate(); err != nil {
		return fmt.Errorf("target %s: %w", t.Name, err)
	}
	return nil
}

// DefaultTargets returns the built-in quote and book listing targets
// against the toscrape.com demo sites.
func DefaultTargets() []Target {
	return []Target{
		{
			Name:   "quotes",
			URL:    "http://quotes.toscrape.com/",
			Pages:  1,
			Output: "quotes.csv",
			Schema: parse.Schema{
				Container: "div.quote",
				Fields: []parse.FieldRule{
					{Name: "text", Selector: "span.text"},
					{Name: "author", Selector: "small.author"},
					{Name: "tags", Selector: "a.tag", All: true},
				},
			},
		},
		{
			Name:   "books",
			URL:    "http://books.toscrape.com/catalogue/page-%d.html",
			Pages:  3,
			Delay:  Duration(1 * time.Second),
			Output: "books.csv",
			Schema: parse.Schema{
				Container: "article.product_pod",
				Fields: []parse.FieldRule{
					{Name: "title", Selector: "h3 a", Attr: "title"},
					{Name: "price", Selector: "p.price_color"},
					{Name: "rating", Selector: "p.star-rating", Attr: "class", TrimPrefix: "star-rating "},
					{Name: "availability", Selector: "p.instock.availability"},
				},
			},
		},
	}
}
