// Package pipeline runs the daily news-to-music cycle: fetch headlines,
// analyze their mood, select archetypes, build the prompt, draw the charts,
// save the run and optionally generate audio.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/justestif/go-world-theme-player/internal/analysis"
	"github.com/justestif/go-world-theme-player/internal/headlines"
	"github.com/justestif/go-world-theme-player/internal/musicgen"
	"github.com/justestif/go-world-theme-player/internal/prompt"
	"github.com/justestif/go-world-theme-player/internal/results"
	"github.com/justestif/go-world-theme-player/internal/selector"
	"github.com/justestif/go-world-theme-player/internal/viz"
)

// HeadlineFetcher fetches headlines for several languages.
type HeadlineFetcher interface {
	Fetch(ctx context.Context, languages []string) ([]headlines.LanguageResult, error)
}

// Analyzer turns formatted headlines into a news mood.
type Analyzer interface {
	Analyze(ctx context.Context, headlines []string) (analysis.NewsAnalysis, error)
}

// MusicGenerator renders a prompt to audio.
type MusicGenerator interface {
	Generate(ctx context.Context, prompt string, duration time.Duration) (musicgen.Result, error)
}

// RunStore persists runs.
type RunStore interface {
	Save(run results.Run) error
	VisualizationDir(date string) string
}

// Composition is the output of the pure stages.
type Composition struct {
	Analysis  analysis.NewsAnalysis `json:"analysis"`
	Selection selector.Selection    `json:"selection"`
	Prompt    prompt.Result         `json:"prompt"`
}

// Compose selects archetypes for a and builds the day's prompt. It does no
// I/O and is deterministic for a given analysis and date.
func Compose(a analysis.NewsAnalysis, date time.Time) Composition {
	sel := selector.Select(a)
	return Composition{
		Analysis:  a,
		Selection: sel,
		Prompt:    prompt.Build(prompt.FromSelection(sel, a.Themes, date)),
	}
}

// Runner executes full pipeline runs.
type Runner struct {
	headlines HeadlineFetcher
	analyzer  Analyzer
	store     RunStore
	music     MusicGenerator
	duration  time.Duration
	languages []string
	logger    *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithMusic enables audio generation after the run is saved.
func WithMusic(g MusicGenerator, duration time.Duration) Option {
	return func(r *Runner) {
		r.music = g
		r.duration = duration
	}
}

// WithLanguages sets the news languages to sample.
func WithLanguages(langs ...string) Option {
	return func(r *Runner) {
		if len(langs) > 0 {
			r.languages = langs
		}
	}
}

// WithLogger sets the logger for stage progress.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// DefaultLanguages are sampled when none are configured.
var DefaultLanguages = []string{"en"}

// NewRunner creates a Runner.
func NewRunner(fetcher HeadlineFetcher, analyzer Analyzer, store RunStore, opts ...Option) *Runner {
	r := &Runner{
		headlines: fetcher,
		analyzer:  analyzer,
		store:     store,
		languages: DefaultLanguages,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the pipeline for date. It fails only when no analysis can be
// produced or the run cannot be saved; chart and music failures are logged
// and recorded on the run.
func (r *Runner) Run(ctx context.Context, date time.Time) (results.Run, error) {
	run := results.NewRun(date)
	log := r.logger.With("run_id", run.ID.String(), "date", run.Date)
	start := time.Now()
	log.Info("pipeline started", "languages", r.languages)

	fetched, err := r.headlines.Fetch(ctx, r.languages)
	if err != nil {
		return results.Run{}, fmt.Errorf("fetching headlines: %w", err)
	}
	for _, lr := range fetched {
		if lr.Error != nil {
			log.Warn("headline fetch failed", "language", lr.Language, "error", lr.Error)
		}
	}
	run.Headlines = headlines.Flatten(fetched)
	log.Info("headlines fetched", "count", len(run.Headlines))
	if len(run.Headlines) == 0 {
		return results.Run{}, fmt.Errorf("no headlines fetched: %w", analysis.ErrNoAnalysis)
	}

	a, err := r.analyzer.Analyze(ctx, headlines.Format(run.Headlines))
	if err != nil {
		return results.Run{}, fmt.Errorf("analyzing headlines: %w", err)
	}
	log.Info("news analyzed",
		"valence", a.Valence, "tension", a.Tension, "hope", a.Hope,
		"energy", a.Energy, "themes", a.Themes)

	comp := Compose(a, date)
	run.Analysis = comp.Analysis
	run.Selection = comp.Selection
	run.Prompt = comp.Prompt
	secondary := "none"
	if comp.Selection.Secondary != nil {
		secondary = comp.Selection.Secondary.String()
	}
	log.Info("prompt built",
		"primary", comp.Selection.Primary.String(), "secondary", secondary,
		"intensity", comp.Selection.Intensity, "prompt", comp.Prompt.Prompt)

	paths, err := viz.WriteAll(ctx, r.store.VisualizationDir(run.Date), viz.Input{
		Analysis:   comp.Analysis,
		Selection:  comp.Selection,
		Components: comp.Prompt.Components,
		Date:       run.Date,
	})
	if err != nil {
		log.Warn("rendering visualizations failed", "error", err)
	}
	for _, p := range paths {
		run.Visualizations = append(run.Visualizations, filepath.Base(p))
	}

	if err := r.store.Save(run); err != nil {
		return results.Run{}, fmt.Errorf("saving run: %w", err)
	}
	log.Info("run saved")

	if r.music != nil {
		r.generate(ctx, log, &run)
	}

	log.Info("pipeline finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return run, nil
}

// generate adds audio to a saved run. Failures are recorded, not returned.
func (r *Runner) generate(ctx context.Context, log *slog.Logger, run *results.Run) {
	res, err := r.music.Generate(ctx, run.Prompt.Prompt, r.duration)
	if err != nil {
		if errors.Is(err, musicgen.ErrCanceled) {
			log.Warn("music generation canceled", "error", err)
		} else {
			log.Error("music generation failed", "error", err)
		}
		run.AudioError = err.Error()
	} else {
		run.Audio = &res
		log.Info("music generated", "file", res.Filename)
	}

	if err := r.store.Save(*run); err != nil {
		log.Error("saving run with audio failed", "error", err)
	}
}
