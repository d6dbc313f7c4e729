package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGet_Success(t *testing.T) {
	const body = "<html><body>ok</body></html>"

	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(body))
	}))
	defer server.Close()

	client := New(DefaultConfig())
	got, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != body {
		t.Errorf("Body = %q, want %q", got, body)
	}
	if gotUserAgent != DefaultConfig().UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUserAgent, DefaultConfig().UserAgent)
	}
}

func TestGet_ErrorStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantClass Class
	}{
		{name: "not found", status: http.StatusNotFound, wantClass: ClassClient},
		{name: "forbidden", status: http.StatusForbidden, wantClass: ClassClient},
		{name: "server error", status: http.StatusInternalServerError, wantClass: ClassServer},
		{name: "bad gateway", status: http.StatusBadGateway, wantClass: ClassServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("partial error body"))
			}))
			defer server.Close()

			client := New(DefaultConfig())
			body, err := client.Get(context.Background(), server.URL)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if body != nil {
				t.Error("No body should be returned on error")
			}

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("Expected *FetchError, got %T", err)
			}
			if fetchErr.Class != tt.wantClass {
				t.Errorf("Class = %q, want %q", fetchErr.Class, tt.wantClass)
			}
			if fetchErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, tt.status)
			}
			if fetchErr.URL != server.URL {
				t.Errorf("URL = %q, want %q", fetchErr.URL, server.URL)
			}
		})
	}
}

func TestGet_ConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on.
	server := httptest.NewServer(http.NotFoundHandler())
	deadURL := server.URL
	server.Close()

	client := New(DefaultConfig())
	_, err := client.Get(context.Background(), deadURL)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *FetchError, got %T", err)
	}
	if fetchErr.Class != ClassNetwork {
		t.Errorf("Class = %q, want %q", fetchErr.Class, ClassNetwork)
	}
	if fetchErr.Unwrap() == nil {
		t.Error("Network errors should wrap the transport error")
	}
}

func TestGet_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("too late"))
	}))
	defer server.Close()

	client := New(Config{Timeout: 20 * time.Millisecond})
	_, err := client.Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *FetchError, got %T", err)
	}
	if fetchErr.Class != ClassNetwork {
		t.Errorf("Class = %q, want %q", fetchErr.Class, ClassNetwork)
	}
}

func TestGet_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(DefaultConfig())
	if _, err := client.Get(ctx, server.URL); err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}
}

func TestNew_Defaults(t *testing.T) {
	client := New(Config{})
	if client == nil {
		t.Fatal("Client is nil")
	}
	// A zero config must not leave the client without a request timeout.
	if got := client.http.GetClient().Timeout; got != DefaultConfig().Timeout {
		t.Errorf("Timeout = %v, want %v", got, DefaultConfig().Timeout)
	}
}
