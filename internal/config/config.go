// Package config loads world-theme-player settings from a TOML file with
// environment overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains output locations.
type Paths struct {
	ResultsDir string `toml:"results_dir"`
	MusicDir   string `toml:"music_dir"`
	LogFile    string `toml:"log_file"`
}

// News contains headline fetching configuration.
type News struct {
	APIKey              string   `toml:"api_key"`
	BaseURL             string   `toml:"base_url"`
	Languages           []string `toml:"languages"`
	ArticlesPerLanguage int      `toml:"articles_per_language"`
	Concurrency         int      `toml:"concurrency"`
}

// LLM contains sentiment analysis settings.
type LLM struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// MusicGen contains audio generation settings.
type MusicGen struct {
	Enabled             bool   `toml:"enabled"`
	APIToken            string `toml:"api_token"`
	BaseURL             string `toml:"base_url"`
	DurationSeconds     int    `toml:"duration_seconds"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds"`
}

// Server contains dashboard settings.
type Server struct {
	Addr string `toml:"addr"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the complete application configuration.
type Config struct {
	Paths    Paths    `toml:"paths"`
	News     News     `toml:"news"`
	LLM      LLM      `toml:"llm"`
	MusicGen MusicGen `toml:"musicgen"`
	Server   Server   `toml:"server"`
	Logging  Logging  `toml:"logging"`
}

// Duration returns the configured clip length.
func (m MusicGen) Duration() time.Duration {
	return time.Duration(m.DurationSeconds) * time.Second
}

// PollInterval returns the prediction polling interval.
func (m MusicGen) PollInterval() time.Duration {
	return time.Duration(m.PollIntervalSeconds) * time.Second
}

// Sample returns the commented sample configuration file.
func Sample() string {
	return sampleConfig
}

// DefaultConfigPath returns ~/.config/world-theme-player/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config dir: %w", err)
	}
	return filepath.Join(dir, "world-theme-player", "config.toml"), nil
}

// Load reads the configuration at path, applies environment overrides,
// normalizes and validates it. An empty path uses DefaultConfigPath and
// tolerates a missing file; an explicit path must exist.
// Returns the config, the resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s not found", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	def, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(def); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return def, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return def, true, nil
}

// Environment variables that override file values when set.
const (
	EnvNewsAPIKey     = "NEWS_API_KEY"
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvReplicateToken = "REPLICATE_API_TOKEN"
	EnvResultsDir     = "WORLD_THEME_RESULTS_DIR"
	EnvServerAddr     = "WORLD_THEME_ADDR"
)

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	override(&c.News.APIKey, EnvNewsAPIKey)
	override(&c.LLM.APIKey, EnvOpenAIAPIKey)
	override(&c.MusicGen.APIToken, EnvReplicateToken)
	override(&c.Paths.ResultsDir, EnvResultsDir)
	override(&c.Server.Addr, EnvServerAddr)
}

// ExpandPath resolves a leading ~ and cleans path. Empty stays empty.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", path, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}
