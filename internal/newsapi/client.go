package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the public NewsAPI host.
	DefaultBaseURL = "https://newsapi.org"
	userAgent      = "world-theme-player/1.0"

	// DefaultPageSize is the number of articles requested per language.
	DefaultPageSize = 5
)

// NewsAPI error codes.
const (
	errCodeInvalidAPIKey = "apiKeyInvalid"
	errCodeMissingAPIKey = "apiKeyMissing"
	errCodeRateLimited   = "rateLimited"
)

// Sentinel errors.
var (
	// ErrRateLimited is returned when the API rate limit is exceeded after retries.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidAPIKey is returned when the API key is rejected.
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// Client is a NewsAPI client with caching and rate-limit retries.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	delays     []time.Duration

	// In-memory cache: key = "{language}:{pageSize}"
	cache   map[string][]Article
	cacheMu sync.RWMutex
}

// NewClient creates a new NewsAPI client from the provided configuration.
func NewClient(cfg *Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimSuffix(base, "/"),
		delays:  []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		cache:   make(map[string][]Article),
	}
}

// Latest fetches the most recent articles in a language, newest first.
// Results are cached in memory. Returns an empty slice (not nil) if there
// are no articles.
func (c *Client) Latest(ctx context.Context, language string, pageSize int) ([]Article, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	cacheKey := language + ":" + strconv.Itoa(pageSize)

	c.cacheMu.RLock()
	if cached, ok := c.cache[cacheKey]; ok {
		c.cacheMu.RUnlock()
		return cached, nil
	}
	c.cacheMu.RUnlock()

	params := url.Values{
		"q":        {"news"},
		"language": {language},
		"sortBy":   {"publishedAt"},
		"pageSize": {strconv.Itoa(pageSize)},
		"apiKey":   {c.apiKey},
	}

	body, err := c.doRequest(ctx, "/v2/everything", params)
	if err != nil {
		return nil, fmt.Errorf("fetching %s articles: %w", language, err)
	}

	var resp everythingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing articles response: %w", err)
	}

	articles := resp.Articles
	if articles == nil {
		articles = []Article{}
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = articles
	c.cacheMu.Unlock()

	return articles, nil
}

// doRequest performs an HTTP GET request with retry on rate limit.
// Retries once per configured delay (1s, 2s, 4s by default).
func (c *Client) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= len(c.delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.delays[attempt-1]):
			}
		}

		body, err := c.doSingleRequest(ctx, reqURL)
		if err == nil {
			return body, nil
		}

		if errors.Is(err, ErrRateLimited) {
			lastErr = err
			continue
		}

		return nil, err
	}

	return nil, lastErr
}

// doSingleRequest performs a single HTTP request.
func (c *Client) doSingleRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusUnauthorized:
		return nil, ErrInvalidAPIKey
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Status == "error" {
		switch apiErr.Code {
		case errCodeRateLimited:
			return nil, ErrRateLimited
		case errCodeInvalidAPIKey, errCodeMissingAPIKey:
			return nil, ErrInvalidAPIKey
		default:
			return nil, fmt.Errorf("API error %s: %s", apiErr.Code, apiErr.Message)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
