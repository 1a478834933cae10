package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateNews(); err != nil {
		return err
	}
	if err := c.validateMusicGen(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}
	return nil
}

func (c *Config) validateNews() error {
	if len(c.News.Languages) == 0 {
		return errors.New("news.languages must list at least one language")
	}
	if c.News.ArticlesPerLanguage <= 0 || c.News.ArticlesPerLanguage > 100 {
		return errors.New("news.articles_per_language must be between 1 and 100")
	}
	if c.News.Concurrency <= 0 {
		return errors.New("news.concurrency must be positive")
	}
	return nil
}

func (c *Config) validateMusicGen() error {
	if c.MusicGen.DurationSeconds <= 0 || c.MusicGen.DurationSeconds > 300 {
		return errors.New("musicgen.duration_seconds must be between 1 and 300")
	}
	if c.MusicGen.PollIntervalSeconds <= 0 {
		return errors.New("musicgen.poll_interval_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want auto, console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
