// Package musicgen generates audio for a prompt with MusicGen on Replicate.
package musicgen

import (
	"errors"
	"os"
	"strings"
	"time"
)

// ErrMissingAPIToken is returned when REPLICATE_API_TOKEN is not set.
var ErrMissingAPIToken = errors.New("missing REPLICATE_API_TOKEN environment variable")

// Defaults applied by NewClient.
const (
	DefaultBaseURL      = "https://api.replicate.com"
	DefaultDuration     = 30 * time.Second
	DefaultPollInterval = 2 * time.Second
	DefaultOutputDir    = "music_generated"
)

// Config holds Replicate configuration.
type Config struct {
	APIToken     string
	BaseURL      string
	PollInterval time.Duration
	OutputDir    string
}

// LoadConfig reads Replicate configuration from environment variables.
// Surrounding whitespace and quotes are stripped from the token.
// Returns ErrMissingAPIToken if REPLICATE_API_TOKEN is not set.
func LoadConfig() (*Config, error) {
	token := CleanToken(os.Getenv("REPLICATE_API_TOKEN"))
	if token == "" {
		return nil, ErrMissingAPIToken
	}
	return &Config{APIToken: token}, nil
}

// CleanToken strips whitespace and quotes copied along with a token.
func CleanToken(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}
