package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		apiKey:     "test-api-key",
		httpClient: server.Client(),
		baseURL:    server.URL,
		delays:     []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond},
		cache:      make(map[string][]Article),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestLatest(t *testing.T) {
	published := time.Date(2026, 1, 9, 7, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     int
		response   any
		wantTitles []string
		wantErr    error
	}{
		{
			name:   "articles returned",
			status: http.StatusOK,
			response: everythingResponse{
				Status: "ok",
				Articles: []Article{
					{Title: "Markets rally", Source: Source{Name: "Reuters"}, URL: "https://example.com/a", PublishedAt: published},
					{Title: "Storm season ends", Source: Source{Name: "BBC"}, URL: "https://example.com/b", PublishedAt: published},
				},
			},
			wantTitles: []string{"Markets rally", "Storm season ends"},
		},
		{
			name:       "no articles returns empty slice",
			status:     http.StatusOK,
			response:   everythingResponse{Status: "ok"},
			wantTitles: []string{},
		},
		{
			name:     "invalid API key",
			status:   http.StatusUnauthorized,
			response: apiError{Status: "error", Code: "apiKeyInvalid", Message: "Your API key is invalid"},
			wantErr:  ErrInvalidAPIKey,
		},
		{
			name:     "invalid API key in body",
			status:   http.StatusOK,
			response: apiError{Status: "error", Code: "apiKeyMissing", Message: "missing"},
			wantErr:  ErrInvalidAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v2/everything" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("language") != "en" || q.Get("q") != "news" || q.Get("sortBy") != "publishedAt" || q.Get("pageSize") != "5" {
					t.Errorf("unexpected query: %s", r.URL.RawQuery)
				}
				if q.Get("apiKey") != "test-api-key" {
					t.Errorf("apiKey = %q", q.Get("apiKey"))
				}
				writeJSON(w, tt.status, tt.response)
			}))
			defer server.Close()

			articles, err := newTestClient(server).Latest(context.Background(), "en", 0)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Latest() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr == nil {
				if articles == nil {
					t.Fatal("Latest() returned nil slice")
				}
				if len(articles) != len(tt.wantTitles) {
					t.Fatalf("Latest() got %d articles, want %d", len(articles), len(tt.wantTitles))
				}
				for i, a := range articles {
					if a.Title != tt.wantTitles[i] {
						t.Errorf("article[%d].Title = %s, want %s", i, a.Title, tt.wantTitles[i])
					}
				}
			}
		})
	}
}

func TestLatest_OtherAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, apiError{Status: "error", Code: "parameterInvalid", Message: "bad language"})
	}))
	defer server.Close()

	_, err := newTestClient(server).Latest(context.Background(), "xx", 5)
	if err == nil {
		t.Fatal("Latest() error = nil, want API error")
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrInvalidAPIKey) {
		t.Errorf("Latest() error = %v, want a plain API error", err)
	}
}

func TestLatest_Caching(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		writeJSON(w, http.StatusOK, everythingResponse{Status: "ok", Articles: []Article{{Title: "One"}}})
	}))
	defer server.Close()

	client := newTestClient(server)

	for range 2 {
		articles, err := client.Latest(context.Background(), "de", 3)
		if err != nil {
			t.Fatalf("Latest() error = %v", err)
		}
		if len(articles) != 1 {
			t.Fatalf("Latest() got %d articles, want 1", len(articles))
		}
	}

	if count := requestCount.Load(); count != 1 {
		t.Errorf("Expected 1 request, got %d", count)
	}

	// A different page size is a different cache entry.
	if _, err := client.Latest(context.Background(), "de", 4); err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if count := requestCount.Load(); count != 2 {
		t.Errorf("Expected 2 requests, got %d", count)
	}
}

func TestLatest_RateLimitRetry(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := requestCount.Add(1)

		// Fail first 2 requests with rate limit, succeed on 3rd
		if count < 3 {
			writeJSON(w, http.StatusTooManyRequests, apiError{Status: "error", Code: "rateLimited", Message: "slow down"})
			return
		}
		writeJSON(w, http.StatusOK, everythingResponse{Status: "ok", Articles: []Article{{Title: "Finally"}}})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	articles, err := newTestClient(server).Latest(ctx, "en", 5)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "Finally" {
		t.Errorf("Latest() got unexpected articles: %v", articles)
	}
	if count := requestCount.Load(); count != 3 {
		t.Errorf("Expected 3 requests, got %d", count)
	}
}

func TestLatest_RateLimitExhausted(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		writeJSON(w, http.StatusOK, apiError{Status: "error", Code: "rateLimited", Message: "slow down"})
	}))
	defer server.Close()

	_, err := newTestClient(server).Latest(context.Background(), "en", 5)

	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Latest() error = %v, want ErrRateLimited", err)
	}

	// Should have made 4 requests (1 initial + 3 retries)
	if count := requestCount.Load(); count != 4 {
		t.Errorf("Expected 4 requests, got %d", count)
	}
}

func TestLatest_ContextCanceledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, apiError{Status: "error", Code: "rateLimited"})
	}))
	defer server.Close()

	client := newTestClient(server)
	client.delays = []time.Duration{time.Hour}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.Latest(ctx, "en", 5); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Latest() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient(&Config{APIKey: "test-key"})

	if client.apiKey != "test-key" {
		t.Errorf("NewClient() apiKey = %s, want test-key", client.apiKey)
	}
	if client.httpClient == nil {
		t.Error("NewClient() httpClient is nil")
	}
	if client.cache == nil {
		t.Error("NewClient() cache is nil")
	}
	if client.baseURL != DefaultBaseURL {
		t.Errorf("NewClient() baseURL = %s, want %s", client.baseURL, DefaultBaseURL)
	}

	client = NewClient(&Config{APIKey: "k", BaseURL: "http://localhost:9999/"})
	if client.baseURL != "http://localhost:9999" {
		t.Errorf("NewClient() baseURL = %s, want trailing slash trimmed", client.baseURL)
	}
}
