package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/justestif/go-world-theme-player/internal/analysis"
	"github.com/justestif/go-world-theme-player/internal/daily"
)

// parseDate reads a YYYY-MM-DD flag value. Empty means today.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return daily.Today(), nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
	}
	return daily.Day(t), nil
}

// readAnalysis decodes a sentiment analysis from path, or from stdin when
// path is "-".
func readAnalysis(cmd *cobra.Command, path string) (analysis.NewsAnalysis, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return analysis.NewsAnalysis{}, fmt.Errorf("read analysis: %w", err)
	}

	a, err := analysis.Decode(data)
	if err != nil {
		return analysis.NewsAnalysis{}, fmt.Errorf("decode analysis %s: %w", path, err)
	}
	return a, nil
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
