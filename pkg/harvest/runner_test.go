package harvest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/steneberg/webharvest/internal/testutil"
	"github.com/steneberg/webharvest/pkg/fetch"
	"github.com/steneberg/webharvest/pkg/parse"
)

func bookTarget(site *testutil.MockSite, dir string, pages int) Target {
	return Target{
		Name:   "books",
		URL:    site.URL() + "/catalogue/page-%d.html",
		Pages:  pages,
		Output: filepath.Join(dir, "books.csv"),
		Schema: parse.Schema{
			Container: "article.product_pod",
			Fields: []parse.FieldRule{
				{Name: "title", Selector: "h3 a", Attr: "title"},
				{Name: "price", Selector: "p.price_color"},
				{Name: "rating", Selector: "p.star-rating", Attr: "class", TrimPrefix: "star-rating "},
				{Name: "availability", Selector: "p.instock.availability"},
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return rows
}

func TestRun_ThreePageListing(t *testing.T) {
	site := testutil.NewMockSite()
	defer site.Close()

	for page := 1; page <= 3; page++ {
		path := fmt.Sprintf("/catalogue/page-%d.html", page)
		site.SetPage(path, testutil.BooksPage(testutil.SampleBooks(page, 5)))
	}

	dir := t.TempDir()
	runner := NewRunner(fetch.New(fetch.DefaultConfig()))
	summary := runner.Run(context.Background(), bookTarget(site, dir, 3))

	if summary.Err != nil {
		t.Fatalf("Run failed: %v", summary.Err)
	}
	if summary.Records != 15 {
		t.Errorf("Records = %d, want 15", summary.Records)
	}

	rows := readCSV(t, filepath.Join(dir, "books.csv"))
	if len(rows) != 16 {
		t.Fatalf("Expected 1 header + 15 data rows, got %d rows", len(rows))
	}

	header := rows[0]
	want := []string{"title", "price", "rating", "availability"}
	for i := range want {
		if header[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, header[i], want[i])
		}
	}
	if rows[1][0] != "Book 1-1" {
		t.Errorf("First data row title = %q, want %q", rows[1][0], "Book 1-1")
	}
	if rows[15][0] != "Book 3-5" {
		t.Errorf("Last data row title = %q, want %q", rows[15][0], "Book 3-5")
	}
	if rows[1][2] != "One" {
		t.Errorf("First data row rating = %q, want %q", rows[1][2], "One")
	}
}

func TestRun_FailedPageIsSkipped(t *testing.T) {
	site := testutil.NewMockSite()
	defer site.Close()

	site.SetPage("/catalogue/page-1.html", testutil.BooksPage(testutil.SampleBooks(1, 2)))
	site.SetStatus("/catalogue/page-2.html", 500)
	site.SetPage("/catalogue/page-3.html", testutil.BooksPage(testutil.SampleBooks(3, 2)))

	dir := t.TempDir()
	runner := NewRunner(fetch.New(fetch.DefaultConfig()))
	summary := runner.Run(context.Background(), bookTarget(site, dir, 3))

	if summary.Err != nil {
		t.Fatalf("Run failed: %v", summary.Err)
	}
	if summary.Records != 4 {
		t.Errorf("Records = %d, want 4 (pages 1 and 3 only)", summary.Records)
	}
	if site.RequestCount() != 3 {
		t.Errorf("Expected page 3 to be attempted after page 2 failed, got %d requests", site.RequestCount())
	}

	rows := readCSV(t, filepath.Join(dir, "books.csv"))
	titles := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		titles = append(titles, row[0])
	}
	want := []string{"Book 1-1", "Book 1-2", "Book 3-1", "Book 3-2"}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("title %d = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestRun_EmptySiteWritesHeaderOnly(t *testing.T) {
	site := testutil.NewMockSite()
	defer site.Close()

	site.SetPage("/catalogue/page-1.html", "<html><body><p>no listings</p></body></html>")

	dir := t.TempDir()
	runner := NewRunner(fetch.New(fetch.DefaultConfig()))
	summary := runner.Run(context.Background(), bookTarget(site, dir, 3))

	if summary.Err != nil {
		t.Fatalf("Run failed: %v", summary.Err)
	}
	if summary.Records != 0 {
		t.Errorf("Records = %d, want 0", summary.Records)
	}
	if site.RequestCount() != 1 {
		t.Errorf("Pagination should stop after the first empty page, got %d requests", site.RequestCount())
	}

	rows := readCSV(t, filepath.Join(dir, "books.csv"))
	if len(rows) != 1 {
		t.Errorf("Expected header-only file, got %d rows", len(rows))
	}
}

func TestRun_ExportFailureIsReported(t *testing.T) {
	site := testutil.NewMockSite()
	defer site.Close()
	site.SetPage("/catalogue/page-1.html", testutil.BooksPage(testutil.SampleBooks(1, 1)))

	target := bookTarget(site, t.TempDir(), 1)
	target.Output = filepath.Join(target.Output, "not-a-dir", "books.csv")

	runner := NewRunner(fetch.New(fetch.DefaultConfig()))
	summary := runner.Run(context.Background(), target)

	if summary.Err == nil {
		t.Fatal("Expected export error, got nil")
	}
}

func TestRunAll_FailureIsolation(t *testing.T) {
	site := testutil.NewMockSite()
	defer site.Close()

	site.SetPage("/quotes/", testutil.QuotesPage([]testutil.Quote{
		{Text: "“q1”", Author: "A", Tags: []string{"t1", "t2"}},
	}))
	site.SetPage("/catalogue/page-1.html", testutil.BooksPage(testutil.SampleBooks(1, 3)))

	dir := t.TempDir()
	broken := bookTarget(site, dir, 1)
	broken.Name = "broken"
	broken.Output = filepath.Join(dir, "missing", "sub", "dir", "broken.csv")

	quotes := Target{
		Name:   "quotes",
		URL:    site.URL() + "/quotes/",
		Pages:  1,
		Output: filepath.Join(dir, "quotes.csv"),
		Schema: parse.Schema{
			Container: "div.quote",
			Fields: []parse.FieldRule{
				{Name: "text", Selector: "span.text"},
				{Name: "author", Selector: "small.author"},
				{Name: "tags", Selector: "a.tag", All: true},
			},
		},
	}

	runner := NewRunner(fetch.New(fetch.DefaultConfig()))
	summaries, err := runner.RunAll(context.Background(), []Target{broken, quotes})
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Err == nil {
		t.Error("Broken target should have failed")
	}
	if summaries[1].Err != nil {
		t.Errorf("Quotes target should have succeeded, got %v", summaries[1].Err)
	}

	rows := readCSV(t, filepath.Join(dir, "quotes.csv"))
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 quote, got %d rows", len(rows))
	}
	if rows[1][2] != "t1, t2" {
		t.Errorf("tags cell = %q, want %q", rows[1][2], "t1, t2")
	}
}

func TestRunAll_NoTargets(t *testing.T) {
	runner := NewRunner(fetch.New(fetch.DefaultConfig()))

	if _, err := runner.RunAll(context.Background(), nil); err != ErrNoTargets {
		t.Errorf("Expected ErrNoTargets, got %v", err)
	}
}

func TestTarget_Validate(t *testing.T) {
	valid := DefaultTargets()[0]

	tests := []struct {
		name   string
		mutate func(*Target)
	}{
		{name: "missing name", mutate: func(t *Target) { t.Name = "" }},
		{name: "missing url", mutate: func(t *Target) { t.URL = "" }},
		{name: "zero pages", mutate: func(t *Target) { t.Pages = 0 }},
		{name: "missing output", mutate: func(t *Target) { t.Output = "" }},
		{name: "bad schema", mutate: func(t *Target) { t.Schema.Container = "" }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Default target should validate: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := valid
			tt.mutate(&target)
			if err := target.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestDefaultTargets(t *testing.T) {
	targets := DefaultTargets()
	if len(targets) != 2 {
		t.Fatalf("Expected 2 built-in targets, got %d", len(targets))
	}
	for _, target := range targets {
		if err := target.Validate(); err != nil {
			t.Errorf("Target %s invalid: %v", target.Name, err)
		}
	}
}
