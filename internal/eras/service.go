// Package eras detects mood eras over the archive of pipeline runs.
package eras

import (
	"context"
	"fmt"
	"time"

	"github.com/justestif/go-world-theme-player/internal/clustering"
	"github.com/justestif/go-world-theme-player/internal/results"
)

// RunSource provides archived runs, oldest first.
type RunSource interface {
	History() ([]results.Run, error)
}

// Mode selects the clustering features.
type Mode string

// Clustering modes.
const (
	ByMood   Mode = "mood"
	ByThemes Mode = "themes"
)

// ParseMode converts s to a Mode. An empty string means ByMood.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ByMood:
		return ByMood, nil
	case ByThemes:
		return ByThemes, nil
	}
	return "", fmt.Errorf("unknown era mode %q (want mood or themes)", s)
}

// Service handles era detection over the results archive.
type Service struct {
	runs RunSource
}

// New creates a new era service.
func New(runs RunSource) *Service {
	return &Service{runs: runs}
}

// DetectResult contains the outcome of era detection.
type DetectResult struct {
	Mode         Mode              `json:"mode"`
	Eras         []clustering.Era  `json:"eras"`
	Outliers     []clustering.Day  `json:"outliers"`
	OutlierCount int               `json:"outlier_count"`
	TotalDays    int               `json:"total_days"`
	Config       clustering.Config `json:"config"`
}

// Detect clusters every archived day. An empty archive yields an empty
// result, not an error.
func (s *Service) Detect(ctx context.Context, mode Mode, cfg clustering.Config) (*DetectResult, error) {
	days, err := s.Days(ctx)
	if err != nil {
		return nil, err
	}

	var eras []clustering.Era
	var outliers []clustering.Day
	switch mode {
	case ByThemes:
		tc := clustering.DefaultThemeConfig()
		tc.Config = cfg
		eras, outliers, err = clustering.DetectThemeEras(days, tc)
	case ByMood, "":
		mode = ByMood
		eras, outliers, err = clustering.DetectMoodEras(days, cfg)
	default:
		return nil, fmt.Errorf("unknown era mode %q", mode)
	}
	if err != nil {
		return nil, fmt.Errorf("detecting %s eras: %w", mode, err)
	}

	if eras == nil {
		eras = []clustering.Era{}
	}
	if outliers == nil {
		outliers = []clustering.Day{}
	}
	return &DetectResult{
		Mode:         mode,
		Eras:         eras,
		Outliers:     outliers,
		OutlierCount: len(outliers),
		TotalDays:    len(days),
		Config:       cfg,
	}, nil
}

// Days converts the archive into clustering input, oldest first.
// Runs with an unparseable date are skipped.
func (s *Service) Days(ctx context.Context) ([]clustering.Day, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runs, err := s.runs.History()
	if err != nil {
		return nil, fmt.Errorf("loading run history: %w", err)
	}

	days := make([]clustering.Day, 0, len(runs))
	for _, run := range runs {
		if day, ok := toDay(run); ok {
			days = append(days, day)
		}
	}
	return days, nil
}

// toDay converts a results.Run to a clustering.Day.
func toDay(run results.Run) (clustering.Day, bool) {
	date, err := time.Parse(results.DateLayout, run.Date)
	if err != nil {
		return clustering.Day{}, false
	}
	a := run.Analysis
	return clustering.Day{
		Date:    date,
		Valence: a.Valence,
		Tension: a.Tension,
		Hope:    a.Hope,
		Energy:  a.Energy,
		Themes:  a.Themes,
		Primary: run.Selection.Primary,
	}, true
}
