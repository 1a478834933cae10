// Package headlines gathers the day's news headlines across languages.
package headlines

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/justestif/go-world-theme-player/internal/newsapi"
)

// Default concurrency for batch processing.
const DefaultConcurrency = 5

// removedTitle marks articles NewsAPI has withdrawn.
const removedTitle = "[Removed]"

// Headline is one article reduced to what the analyzer reads.
type Headline struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	Language    string    `json:"language"`
}

// String renders the headline as a bullet line, e.g.
// "- Markets rally (Source: Reuters)".
func (h Headline) String() string {
	source := h.Source
	if source == "" {
		source = "Unknown"
	}
	return fmt.Sprintf("- %s (Source: %s)", h.Title, source)
}

// LanguageResult holds the headlines fetched for one language.
type LanguageResult struct {
	Language  string
	Headlines []Headline
	Error     error // Non-nil if fetching failed
}

// ArticleFetcher abstracts the NewsAPI client for testing.
type ArticleFetcher interface {
	Latest(ctx context.Context, language string, pageSize int) ([]newsapi.Article, error)
}

// Service fetches headlines for several languages concurrently.
type Service struct {
	fetcher     ArticleFetcher
	concurrency int
	pageSize    int
}

// Option configures a Service.
type Option func(*Service)

// WithConcurrency sets the number of concurrent fetch operations.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithPageSize sets the number of articles requested per language.
func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewService creates a new headline service.
func NewService(fetcher ArticleFetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		concurrency: DefaultConcurrency,
		pageSize:    newsapi.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch fetches headlines for multiple languages concurrently.
// Results are returned in the same order as the input languages.
// Individual fetch errors are captured in LanguageResult.Error rather than failing the batch.
func (s *Service) Fetch(ctx context.Context, languages []string) ([]LanguageResult, error) {
	if len(languages) == 0 {
		return []LanguageResult{}, nil
	}

	results := make([]LanguageResult, len(languages))

	type workItem struct {
		index    int
		language string
	}
	workCh := make(chan workItem, len(languages))

	for i, lang := range languages {
		workCh <- workItem{index: i, language: lang}
	}
	close(workCh)

	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workCh {
				select {
				case <-ctx.Done():
					results[work.index] = LanguageResult{
						Language:  work.language,
						Headlines: []Headline{},
						Error:     ctx.Err(),
					}
					continue
				default:
				}

				articles, err := s.fetcher.Latest(ctx, work.language, s.pageSize)
				result := LanguageResult{
					Language:  work.language,
					Headlines: []Headline{},
					Error:     err,
				}
				if err == nil {
					result.Headlines = fromArticles(work.language, articles)
				}

				results[work.index] = result
			}
		}()
	}

	wg.Wait()

	if ctx.Err() != nil {
		return results, ctx.Err()
	}

	return results, nil
}

func fromArticles(language string, articles []newsapi.Article) []Headline {
	out := make([]Headline, 0, len(articles))
	for _, a := range articles {
		title := strings.TrimSpace(a.Title)
		if title == "" || title == removedTitle {
			continue
		}
		out = append(out, Headline{
			Title:       title,
			Source:      strings.TrimSpace(a.Source.Name),
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Language:    language,
		})
	}
	return out
}

// Flatten merges per-language results in order, skipping failed languages
// and articles whose URL was already seen.
func Flatten(results []LanguageResult) []Headline {
	seen := make(map[string]struct{})
	out := []Headline{}
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		for _, h := range r.Headlines {
			if h.URL != "" {
				if _, dup := seen[h.URL]; dup {
					continue
				}
				seen[h.URL] = struct{}{}
			}
			out = append(out, h)
		}
	}
	return out
}

// Format renders headlines as bullet lines for the analyzer.
func Format(hs []Headline) []string {
	lines := make([]string, len(hs))
	for i, h := range hs {
		lines[i] = h.String()
	}
	return lines
}
