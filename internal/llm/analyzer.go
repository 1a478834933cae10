package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/justestif/go-world-theme-player/internal/analysis"
)

const (
	maxOutputTokens = 500
	temperature     = 0.3
)

const instructions = `You are a world news mood analyzer. Analyze the news headlines you are given and extract structured emotional dimensions.

Field definitions:
- emotional_valence: overall emotional tone. -1 = very negative (crisis, tragedy), 0 = neutral, +1 = very positive (celebration, breakthrough)
- tension_level: amount of conflict or uncertainty. 0 = calm/stable, 1 = high tension/conflict
- hope_factor: presence of hope or optimism. 0 = hopeless/dire, 1 = very hopeful/optimistic
- energy_level: overall intensity. "low" = quiet/reflective, "medium" = normal activity, "high" = intense/urgent
- dominant_themes: up to 5 key themes (e.g. "conflict", "economy", "science", "environment", "politics")
- summary: one sentence capturing the day's overall mood

Be nuanced: most days are mixed, not purely positive or negative.`

// Analyzer asks a language model for the mood of a set of headlines.
type Analyzer struct {
	client      *openai.Client
	model       string
	logger      *slog.Logger
	requestOpts []option.RequestOption
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the analyzer's logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRequestOptions adds options applied to every API request.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(a *Analyzer) {
		a.requestOpts = append(a.requestOpts, opts...)
	}
}

// NewAnalyzer creates an analyzer from cfg.
func NewAnalyzer(cfg *Config, opts ...Option) *Analyzer {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(clientOpts...)

	a := &Analyzer{
		client: &client,
		model:  model,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze returns the mood of the given headline lines. The model output
// goes through the same tolerant decoding and clamping as any other
// untrusted analysis.
func (a *Analyzer) Analyze(ctx context.Context, headlines []string) (analysis.NewsAnalysis, error) {
	if len(headlines) == 0 {
		return analysis.NewsAnalysis{}, fmt.Errorf("no headlines to analyze: %w", analysis.ErrNoAnalysis)
	}

	a.logger.Info("analyzing headlines", "count", len(headlines), "model", a.model)

	params := responses.ResponseNewParams{
		Model:           a.model,
		MaxOutputTokens: openai.Int(maxOutputTokens),
		Temperature:     openai.Float(temperature),
		Instructions:    openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(UserPrompt(headlines), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "NewsMood",
					Schema:      moodSchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Structured mood of the day's news"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params, a.requestOpts...)
	if err != nil {
		return analysis.NewsAnalysis{}, fmt.Errorf("requesting analysis: %w", err)
	}

	out := resp.OutputText()
	result, err := analysis.Decode([]byte(out))
	if err != nil {
		if errors.Is(err, analysis.ErrNoAnalysis) {
			a.logger.Error("model returned no analysis", "output", truncate(out, 200))
		}
		return analysis.NewsAnalysis{}, fmt.Errorf("decoding analysis: %w", err)
	}

	a.logger.Info("analysis parsed",
		"valence", result.Valence,
		"tension", result.Tension,
		"hope", result.Hope,
		"energy", result.Energy,
		"themes", result.Themes,
	)
	return result, nil
}

// UserPrompt is the message sent with the headlines.
func UserPrompt(headlines []string) string {
	var b strings.Builder
	b.WriteString("Analyze these news headlines and provide a structured mood assessment:\n\n")
	for _, h := range headlines {
		b.WriteString(h)
		b.WriteByte('\n')
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
