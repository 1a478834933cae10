package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/option"

	"github.com/justestif/go-world-theme-player/internal/analysis"
	"github.com/justestif/go-world-theme-player/internal/archetype"
)

// responseWithText builds a minimal Responses API payload.
func responseWithText(text string) map[string]any {
	return map[string]any{
		"id":         "resp_test",
		"object":     "response",
		"created_at": 1767945600,
		"model":      "gpt-4o-mini",
		"status":     "completed",
		"output": []any{
			map[string]any{
				"type":   "message",
				"id":     "msg_test",
				"status": "completed",
				"role":   "assistant",
				"content": []any{
					map[string]any{"type": "output_text", "text": text, "annotations": []any{}},
				},
			},
		},
	}
}

func newTestAnalyzer(server *httptest.Server) *Analyzer {
	return NewAnalyzer(
		&Config{APIKey: "test-key", Model: "test-model", BaseURL: server.URL + "/v1/"},
		WithRequestOptions(option.WithMaxRetries(0)),
	)
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    analysis.NewsAnalysis
		wantErr error
	}{
		{
			name:   "well-formed output",
			output: `{"emotional_valence":0.3,"tension_level":0.5,"hope_factor":0.6,"energy_level":"medium","dominant_themes":["economy","science"],"summary":"A mixed day."}`,
			want:   analysis.New(0.3, 0.5, 0.6, "medium", []string{"economy", "science"}, "A mixed day."),
		},
		{
			name:   "out of range values are clamped",
			output: `{"emotional_valence":-3,"tension_level":1.7,"hope_factor":-0.2,"energy_level":"EXTREME","dominant_themes":["a","b","c","d","e","f"],"summary":"Chaos."}`,
			want:   analysis.New(-1, 1, 0, "medium", []string{"a", "b", "c", "d", "e"}, "Chaos."),
		},
		{
			name:   "json wrapped in prose",
			output: "Here you go:\n{\"emotional_valence\":0.1,\"tension_level\":0.2,\"hope_factor\":0.3,\"energy_level\":\"low\",\"dominant_themes\":[],\"summary\":\"Quiet.\"}\nThanks!",
			want:   analysis.New(0.1, 0.2, 0.3, "low", nil, "Quiet."),
		},
		{
			name:    "no json at all",
			output:  "I cannot help with that.",
			wantErr: analysis.ErrNoAnalysis,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/responses" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(responseWithText(tt.output))
			}))
			defer server.Close()

			got, err := newTestAnalyzer(server).Analyze(context.Background(), []string{"- Markets rally (Source: Reuters)"})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Analyze() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}

			if got.Valence != tt.want.Valence || got.Tension != tt.want.Tension || got.Hope != tt.want.Hope {
				t.Errorf("Analyze() numbers = %+v, want %+v", got, tt.want)
			}
			if got.Energy != tt.want.Energy {
				t.Errorf("Analyze() energy = %q, want %q", got.Energy, tt.want.Energy)
			}
			if len(got.Themes) != len(tt.want.Themes) {
				t.Errorf("Analyze() themes = %v, want %v", got.Themes, tt.want.Themes)
			}
			if got.Summary != tt.want.Summary {
				t.Errorf("Analyze() summary = %q, want %q", got.Summary, tt.want.Summary)
			}
		})
	}
}

func TestAnalyze_RequestShape(t *testing.T) {
	var body map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(responseWithText(`{"emotional_valence":0,"tension_level":0.5,"hope_factor":0.5,"energy_level":"medium","dominant_themes":[],"summary":""}`))
	}))
	defer server.Close()

	got, err := newTestAnalyzer(server).Analyze(context.Background(), []string{"- Headline one (Source: AP)", "- Headline two (Source: BBC)"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.Energy != archetype.EnergyMedium {
		t.Errorf("Energy = %q", got.Energy)
	}

	if body["model"] != "test-model" {
		t.Errorf("model = %v, want test-model", body["model"])
	}
	text, _ := body["text"].(map[string]any)
	format, _ := text["format"].(map[string]any)
	if format["type"] != "json_schema" || format["strict"] != true {
		t.Errorf("text.format = %v, want strict json_schema", format)
	}

	raw, _ := json.Marshal(body["input"])
	if !strings.Contains(string(raw), "Headline two (Source: BBC)") {
		t.Errorf("input does not carry the headlines: %s", raw)
	}
}

func TestAnalyze_NoHeadlines(t *testing.T) {
	a := NewAnalyzer(&Config{APIKey: "unused"})

	_, err := a.Analyze(context.Background(), nil)
	if !errors.Is(err, analysis.ErrNoAnalysis) {
		t.Errorf("Analyze(nil) error = %v, want ErrNoAnalysis", err)
	}
}

func TestAnalyze_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error","code":"invalid_api_key"}}`)
	}))
	defer server.Close()

	if _, err := newTestAnalyzer(server).Analyze(context.Background(), []string{"- x (Source: y)"}); err == nil {
		t.Error("Analyze() error = nil, want API error")
	}
}

func TestUserPrompt(t *testing.T) {
	got := UserPrompt([]string{"- A (Source: X)", "- B (Source: Y)"})

	if !strings.HasPrefix(got, "Analyze these news headlines") {
		t.Errorf("UserPrompt() = %q", got)
	}
	if !strings.Contains(got, "- A (Source: X)\n- B (Source: Y)\n") {
		t.Errorf("UserPrompt() missing headline lines: %q", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := LoadConfig(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("LoadConfig() error = %v, want ErrMissingAPIKey", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIKey != "sk-test" || cfg.Model != DefaultModel {
		t.Errorf("LoadConfig() = %+v", cfg)
	}
}
