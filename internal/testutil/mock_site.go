// Package testutil provides HTTP fixtures for scraper tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockSite is a configurable static site served from an httptest server.
type MockSite struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	// Tracking
	requests          []string
	lastRequestHeader http.Header
}

// NewMockSite creates a mock site. Unconfigured paths return 404.
func NewMockSite() *MockSite {
	site := &MockSite{
		handlers: make(map[string]http.HandlerFunc),
	}

	site.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site.mu.Lock()
		site.requests = append(site.requests, r.URL.Path)
		site.lastRequestHeader = r.Header.Clone()
		site.mu.Unlock()

		site.mu.RLock()
		handler, exists := site.handlers[r.URL.Path]
		site.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		http.NotFound(w, r)
	}))

	return site
}

// URL returns the site's base URL, without a trailing slash.
func (m *MockSite) URL() string {
	return m.server.URL
}

// Close shuts down the server.
func (m *MockSite) Close() {
	m.server.Close()
}

// Reset clears request tracking.
func (m *MockSite) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.lastRequestHeader = nil
}

// SetHandler installs a custom handler for a path.
func (m *MockSite) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetPage serves a static HTML body for a path.
func (m *MockSite) SetPage(path, html string) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	})
}

// SetStatus makes a path answer with a bare status code.
func (m *MockSite) SetStatus(path string, status int) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

// SetDelay makes a path sleep before serving its body, to trigger client
// timeouts.
func (m *MockSite) SetDelay(path string, delay time.Duration, html string) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.Write([]byte(html))
	})
}

// Requests returns the requested paths in order.
func (m *MockSite) Requests() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.requests...)
}

// RequestCount returns the number of requests served.
func (m *MockSite) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// LastRequestHeader returns the headers of the most recent request.
func (m *MockSite) LastRequestHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRequestHeader
}

// Quote is the payload for a rendered quote listing.
type Quote struct {
	Text   string
	Author string
	Tags   []string
}

// QuotesPage renders a quotes.toscrape.com style listing.
func QuotesPage(quotes []Quote) string {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	for _, q := range quotes {
		b.WriteString(`<div class="quote">` + "\n")
		fmt.Fprintf(&b, `<span class="text">%s</span>`+"\n", q.Text)
		fmt.Fprintf(&b, `<span>by <small class="author">%s</small></span>`+"\n", q.Author)
		b.WriteString(`<div class="tags">` + "\n")
		for _, tag := range q.Tags {
			fmt.Fprintf(&b, `<a class="tag" href="/tag/%s/">%s</a>`+"\n", tag, tag)
		}
		b.WriteString("</div>\n</div>\n")
	}
	b.WriteString("</body></html>")
	return b.String()
}

// Book is the payload for a rendered book listing.
type Book struct {
	Title        string
	Price        string
	Rating       string
	Availability string
}

// BooksPage renders a books.toscrape.com style listing.
func BooksPage(books []Book) string {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	for _, book := range books {
		b.WriteString(`<article class="product_pod">` + "\n")
		fmt.Fprintf(&b, `<h3><a href="book.html" title="%s">%s</a></h3>`+"\n", book.Title, book.Title)
		fmt.Fprintf(&b, `<p class="star-rating %s"></p>`+"\n", book.Rating)
		fmt.Fprintf(&b, `<p class="price_color">%s</p>`+"\n", book.Price)
		fmt.Fprintf(&b, `<p class="instock availability">`+"\n\t%s\n</p>\n", book.Availability)
		b.WriteString("</article>\n")
	}
	b.WriteString("</body></html>")
	return b.String()
}

// SampleBooks generates n distinct books for a page index.
func SampleBooks(page, n int) []Book {
	ratings := []string{"One", "Two", "Three", "Four", "Five"}
	books := make([]Book, n)
	for i := range books {
		books[i] = Book{
			Title:        fmt.Sprintf("Book %d-%d", page, i+1),
			Price:        fmt.Sprintf("£%d.99", 10+i),
			Rating:       ratings[i%len(ratings)],
			Availability: "In stock",
		}
	}
	return books
}
