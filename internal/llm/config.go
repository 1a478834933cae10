// Package llm turns news headlines into a mood analysis using the OpenAI
// Responses API with a strict JSON schema.
package llm

import (
	"errors"
	"os"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// ErrMissingAPIKey is returned when OPENAI_API_KEY is not set.
var ErrMissingAPIKey = errors.New("missing OPENAI_API_KEY environment variable")

// Config holds OpenAI configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // empty means the public API
}

// LoadConfig reads OpenAI configuration from environment variables.
// Returns ErrMissingAPIKey if OPENAI_API_KEY is not set.
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Config{APIKey: apiKey, Model: DefaultModel}, nil
}
