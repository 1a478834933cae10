// Package results persists pipeline runs as flat JSON files: the latest run,
// a per-date archive and the chosen prompt text.
package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/justestif/go-world-theme-player/internal/analysis"
	"github.com/justestif/go-world-theme-player/internal/headlines"
	"github.com/justestif/go-world-theme-player/internal/musicgen"
	"github.com/justestif/go-world-theme-player/internal/prompt"
	"github.com/justestif/go-world-theme-player/internal/selector"
)

const (
	// DefaultDir is the results directory used when none is configured.
	DefaultDir = "generation_results"

	latestFileName = "pipeline_results.json"
	promptFileName = "prompt.txt"
	historyDirName = "history"
	vizDirName     = "visualizations"
	lockFileName   = ".lock"
)

// DateLayout is the layout of Run.Date and archive file names.
const DateLayout = time.DateOnly

// ErrNoResults is returned when no run has been saved yet.
var ErrNoResults = errors.New("no pipeline results found")

// Run is one pipeline execution.
type Run struct {
	ID             uuid.UUID             `json:"id"`
	Timestamp      time.Time             `json:"timestamp"`
	Date           string                `json:"date"`
	Headlines      []headlines.Headline  `json:"headlines,omitempty"`
	Analysis       analysis.NewsAnalysis `json:"analysis"`
	Selection      selector.Selection    `json:"selection"`
	Prompt         prompt.Result         `json:"prompt"`
	Visualizations []string              `json:"visualizations,omitempty"`
	Audio          *musicgen.Result      `json:"audio,omitempty"`
	AudioError     string                `json:"audio_error,omitempty"`
}

// NewRun starts a run record for date with a fresh ID.
func NewRun(date time.Time) Run {
	return Run{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Date:      date.Format(DateLayout),
	}
}

// Store reads and writes runs under a directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. An empty dir uses DefaultDir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// PromptPath returns the path of the plain-text prompt file.
func (s *Store) PromptPath() string {
	return filepath.Join(s.dir, promptFileName)
}

// VisualizationDir returns the directory holding the charts for date.
func (s *Store) VisualizationDir(date string) string {
	return filepath.Join(s.dir, vizDirName, date)
}

// Save writes run as the latest result, archives it under its date and
// updates prompt.txt. Concurrent writers in other processes are serialized
// with a file lock.
func (s *Store) Save(run Run) error {
	if run.Date == "" {
		return errors.New("cannot save run without a date")
	}
	if _, err := time.Parse(DateLayout, run.Date); err != nil {
		return fmt.Errorf("invalid run date %q: %w", run.Date, err)
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	if err := os.MkdirAll(filepath.Join(s.dir, historyDirName), 0o755); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}

	lock := flock.New(filepath.Join(s.dir, lockFileName))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking results directory: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run: %w", err)
	}

	if err := writeFile(filepath.Join(s.dir, latestFileName), data); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(s.dir, historyDirName, run.Date+".json"), data); err != nil {
		return err
	}
	if run.Prompt.Prompt != "" {
		if err := writeFile(s.PromptPath(), []byte(run.Prompt.Prompt+"\n")); err != nil {
			return err
		}
	}
	return nil
}

// Latest returns the most recently saved run.
// Returns ErrNoResults if nothing has been saved.
func (s *Store) Latest() (Run, error) {
	return readRun(filepath.Join(s.dir, latestFileName))
}

// Load returns the archived run for date.
// Returns ErrNoResults if that date has no run.
func (s *Store) Load(date string) (Run, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Run{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return readRun(filepath.Join(s.dir, historyDirName, date+".json"))
}

// History returns every archived run ordered by date, oldest first.
// Unreadable archive files are skipped.
func (s *Store) History() ([]Run, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, historyDirName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Run{}, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	runs := make([]Run, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		if _, err := time.Parse(DateLayout, strings.TrimSuffix(name, ".json")); err != nil {
			continue
		}
		run, err := readRun(filepath.Join(s.dir, historyDirName, name))
		if err != nil {
			continue
		}
		runs = append(runs, run)
	}

	slices.SortFunc(runs, func(a, b Run) int { return strings.Compare(a.Date, b.Date) })
	return runs, nil
}

func readRun(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Run{}, ErrNoResults
		}
		return Run{}, fmt.Errorf("reading results file: %w", err)
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, fmt.Errorf("parsing results file %s: %w", filepath.Base(path), err)
	}
	return run, nil
}

// writeFile replaces path atomically.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
