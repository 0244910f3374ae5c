package cdx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// cdxResponse is a realistic CDX row set: a header row followed by
// single-column URL rows.
const cdxResponse = `[["original"],
["http://example.com/"],
["http://example.com/app.js"],
["http://example.com/api/v1/users"],
["http://example.com/"],
["http://example.com/app.js"]]`

// TestClientFetchURLs tests the happy path against a stub index server.
func TestClientFetchURLs(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(cdxResponse)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	urls, err := client.FetchURLs(context.Background(), "example.com", QueryOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	t.Run("skips header and deduplicates", func(t *testing.T) {
		want := []string{
			"http://example.com/",
			"http://example.com/app.js",
			"http://example.com/api/v1/users",
		}
		if len(urls) != len(want) {
			t.Fatalf("got %d URLs, expected %d: %v", len(urls), len(want), urls)
		}
		for i := range want {
			if urls[i] != want[i] {
				t.Errorf("position %d: got %q, expected %q", i, urls[i], want[i])
			}
		}
	})

	t.Run("queries the cdx search endpoint", func(t *testing.T) {
		if gotPath != "/cdx/search/cdx" {
			t.Errorf("got path %q, expected /cdx/search/cdx", gotPath)
		}
	})

	t.Run("requests collapsed original URLs as json", func(t *testing.T) {
		for _, param := range []string{
			"url=example.com%2F%2A", "output=json", "fl=original", "collapse=urlkey",
		} {
			if !containsParam(gotQuery, param) {
				t.Errorf("query %q missing %q", gotQuery, param)
			}
		}
	})

	t.Run("sends identifying User-Agent", func(t *testing.T) {
		if gotUserAgent != DefaultUserAgent {
			t.Errorf("got User-Agent %q, expected %q", gotUserAgent, DefaultUserAgent)
		}
	})
}

// containsParam reports whether the encoded query contains the given
// key=value pair as a complete parameter.
func containsParam(query, param string) bool {
	for start := 0; start <= len(query)-len(param); start++ {
		if query[start:start+len(param)] != param {
			continue
		}
		atStart := start == 0 || query[start-1] == '&'
		end := start + len(param)
		atEnd := end == len(query) || query[end] == '&'
		if atStart && atEnd {
			return true
		}
	}
	return false
}

// TestClientFetchURLsQueryOptions tests limit and date-range parameters.
func TestClientFetchURLsQueryOptions(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if _, err := w.Write([]byte(cdxResponse)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.FetchURLs(context.Background(), "example.com", QueryOptions{
		Limit: 500,
		From:  "2020",
		To:    "2023",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, param := range []string{"limit=500", "from=2020", "to=2023"} {
		if !containsParam(gotQuery, param) {
			t.Errorf("query %q missing %q", gotQuery, param)
		}
	}
}

// TestClientFetchURLsErrors tests the closed error-kind mapping.
func TestClientFetchURLsErrors(t *testing.T) {
	t.Parallel()

	t.Run("non-json body returns ErrDecode", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if _, err := w.Write([]byte("<html>blocked</html>")); err != nil {
				t.Errorf("write response: %v", err)
			}
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		if _, err := client.FetchURLs(context.Background(), "example.com", QueryOptions{}); !errors.Is(err, ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
	})

	t.Run("malformed row returns ErrDecode", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if _, err := w.Write([]byte(`[["original"],[]]`)); err != nil {
				t.Errorf("write response: %v", err)
			}
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		if _, err := client.FetchURLs(context.Background(), "example.com", QueryOptions{}); !errors.Is(err, ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
	})

	t.Run("header-only response returns ErrEmptyResult", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if _, err := w.Write([]byte(`[["original"]]`)); err != nil {
				t.Errorf("write response: %v", err)
			}
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		if _, err := client.FetchURLs(context.Background(), "example.com", QueryOptions{}); !errors.Is(err, ErrEmptyResult) {
			t.Errorf("expected ErrEmptyResult, got %v", err)
		}
	})

	t.Run("empty array returns ErrEmptyResult", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if _, err := w.Write([]byte(`[]`)); err != nil {
				t.Errorf("write response: %v", err)
			}
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		if _, err := client.FetchURLs(context.Background(), "example.com", QueryOptions{}); !errors.Is(err, ErrEmptyResult) {
			t.Errorf("expected ErrEmptyResult, got %v", err)
		}
	})

	t.Run("http error status returns ErrTransport", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		if _, err := client.FetchURLs(context.Background(), "example.com", QueryOptions{}); !errors.Is(err, ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", err)
		}
	})

	t.Run("unreachable host returns ErrTransport", func(t *testing.T) {
		t.Parallel()
		// A closed server gives a connection error immediately.
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		client := NewClient(WithBaseURL(server.URL), WithTimeout(2*time.Second))
		if _, err := client.FetchURLs(context.Background(), "example.com", QueryOptions{}); !errors.Is(err, ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", err)
		}
	})

	t.Run("cancelled context returns ErrTransport", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if _, err := w.Write([]byte(cdxResponse)); err != nil {
				t.Errorf("write response: %v", err)
			}
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := NewClient(WithBaseURL(server.URL))
		if _, err := client.FetchURLs(ctx, "example.com", QueryOptions{}); !errors.Is(err, ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", err)
		}
	})
}
