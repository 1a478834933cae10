package config

import (
	"fmt"
	"slices"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeNews()
	c.normalizeLogging()
	c.News.APIKey = strings.TrimSpace(c.News.APIKey)
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.MusicGen.APIToken = strings.Trim(strings.TrimSpace(c.MusicGen.APIToken), `"'`)
	if strings.TrimSpace(c.LLM.Model) == "" {
		c.LLM.Model = DefaultModel
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ResultsDir, err = ExpandPath(c.Paths.ResultsDir); err != nil {
		return fmt.Errorf("paths.results_dir: %w", err)
	}
	if c.Paths.MusicDir, err = ExpandPath(c.Paths.MusicDir); err != nil {
		return fmt.Errorf("paths.music_dir: %w", err)
	}
	if c.Paths.LogFile, err = ExpandPath(c.Paths.LogFile); err != nil {
		return fmt.Errorf("paths.log_file: %w", err)
	}
	if c.Paths.ResultsDir == "" {
		c.Paths.ResultsDir = DefaultResultsDir
	}
	if c.Paths.MusicDir == "" {
		c.Paths.MusicDir = DefaultMusicDir
	}
	return nil
}

// normalizeNews lowercases languages and drops blanks and repeats.
func (c *Config) normalizeNews() {
	langs := make([]string, 0, len(c.News.Languages))
	for _, l := range c.News.Languages {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" && !slices.Contains(langs, l) {
			langs = append(langs, l)
		}
	}
	c.News.Languages = langs
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "auto"
	}
}
