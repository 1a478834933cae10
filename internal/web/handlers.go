package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/justestif/go-world-theme-player/internal/clustering"
	"github.com/justestif/go-world-theme-player/internal/eras"
	"github.com/justestif/go-world-theme-player/internal/results"
	"github.com/justestif/go-world-theme-player/internal/viz"
)

// ResultsReader is the read side of the results store.
type ResultsReader interface {
	Latest() (results.Run, error)
	Load(date string) (results.Run, error)
	History() ([]results.Run, error)
	VisualizationDir(date string) string
}

// EraDetector clusters the archive into eras.
type EraDetector interface {
	Detect(ctx context.Context, mode eras.Mode, cfg clustering.Config) (*eras.DetectResult, error)
}

// Handlers contains HTTP handlers for the dashboard.
type Handlers struct {
	templates *Templates
	results   ResultsReader
	eras      EraDetector
	musicDir  string
	logFile   string
	logger    *slog.Logger
	streams   context.Context
	now       func() time.Time
}

var noResultsFlash = &FlashMessage{
	Type:    "info",
	Message: "No pipeline results yet. Run `world-theme-player run` to generate today's theme.",
}

// Home shows the headlines behind the latest run (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	data := HomePageData{
		PageData: PageData{Title: "World Theme Player", CurrentPath: r.URL.Path},
	}

	run, ok := h.latest(w)
	if !ok {
		return
	}
	if run == nil {
		data.Flash = noResultsFlash
	} else {
		data.Run = run
		data.Groups = groupHeadlines(run)
	}

	h.render(w, "home", data)
}

// Pipeline shows the latest run in detail (GET /pipeline).
func (h *Handlers) Pipeline(w http.ResponseWriter, r *http.Request) {
	data := PipelinePageData{
		PageData: PageData{Title: "Pipeline", CurrentPath: r.URL.Path},
	}

	run, ok := h.latest(w)
	if !ok {
		return
	}
	if run == nil {
		data.Flash = noResultsFlash
	} else {
		data.Run = run
		data.Secondary = "none"
		if run.Selection.Secondary != nil {
			data.Secondary = run.Selection.Secondary.Title()
		}
		for _, c := range viz.Charts() {
			data.Charts = append(data.Charts, ChartLink{
				Title: chartTitles[c],
				URL:   "/viz/" + run.Date + "/" + c.Filename(),
			})
		}
	}

	files, err := results.AudioFiles(h.musicDir)
	if err != nil {
		h.logger.Error("listing audio files", "error", err)
	}
	data.AudioFiles = AudioFilesData{Files: files, Count: len(files)}

	h.render(w, "pipeline", data)
}

// AudioFilesPartial renders just the audio list for periodic refresh.
func (h *Handlers) AudioFilesPartial(w http.ResponseWriter, r *http.Request) {
	files, err := results.AudioFiles(h.musicDir)
	if err != nil {
		h.logger.Error("listing audio files", "error", err)
		http.Error(w, "Failed to list audio files", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.RenderPartial(w, "audio_list", AudioFilesData{Files: files, Count: len(files)}); err != nil {
		h.logger.Error("rendering partial", "partial", "audio_list", "error", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// Eras shows mood eras over the archive (GET /eras?by=mood|themes).
func (h *Handlers) Eras(w http.ResponseWriter, r *http.Request) {
	data := ErasPageData{
		PageData: PageData{Title: "Eras", CurrentPath: r.URL.Path},
	}

	mode, cfg, err := eraParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data.Mode = string(mode)

	if h.eras == nil {
		data.Flash = &FlashMessage{Type: "warning", Message: "Era detection is not configured."}
		h.render(w, "eras", data)
		return
	}

	res, err := h.eras.Detect(r.Context(), mode, cfg)
	if err != nil {
		h.logger.Error("detecting eras", "error", err)
		data.Flash = &FlashMessage{Type: "error", Message: "Failed to detect eras."}
		h.render(w, "eras", data)
		return
	}

	data.OutlierCount = res.OutlierCount
	data.TotalDays = res.TotalDays
	for _, e := range res.Eras {
		data.Eras = append(data.Eras, EraData{
			Name:        e.Name,
			Mood:        e.Mood,
			Description: e.Description,
			TopThemes:   e.TopThemes,
			Dominant:    e.Dominant,
			Centroid:    e.Centroid,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			DayCount:    len(e.Days),
		})
	}
	if res.TotalDays == 0 {
		data.Flash = &FlashMessage{Type: "info", Message: "No archived runs to cluster yet."}
	}

	h.render(w, "eras", data)
}

// Logs shows the live log viewer (GET /logs).
func (h *Handlers) Logs(w http.ResponseWriter, r *http.Request) {
	data := LogsPageData{
		PageData: PageData{Title: "Logs", CurrentPath: r.URL.Path},
		LogFile:  h.logFile,
	}
	if h.logFile == "" {
		data.Flash = &FlashMessage{Type: "warning", Message: "No log file configured. Set paths.log_file to enable streaming."}
	}
	h.render(w, "logs", data)
}

// latest loads the most recent run. A nil run with ok means nothing has
// been saved yet; !ok means an error response was already written.
func (h *Handlers) latest(w http.ResponseWriter) (*results.Run, bool) {
	run, err := h.results.Latest()
	if errors.Is(err, results.ErrNoResults) {
		return nil, true
	}
	if err != nil {
		h.logger.Error("loading latest run", "error", err)
		http.Error(w, "Failed to load pipeline results", http.StatusInternalServerError)
		return nil, false
	}
	return &run, true
}

func (h *Handlers) render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, page, data); err != nil {
		h.logger.Error("rendering page", "page", page, "error", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

var chartTitles = map[viz.Chart]string{
	viz.MoodRadar:      "Mood Radar",
	viz.ArchetypeWheel: "Archetype Wheel",
	viz.PromptDNA:      "Prompt DNA",
}

// groupHeadlines buckets headlines by language in first-seen order.
func groupHeadlines(run *results.Run) []HeadlineGroup {
	var groups []HeadlineGroup
	index := make(map[string]int)
	for _, hl := range run.Headlines {
		i, ok := index[hl.Language]
		if !ok {
			i = len(groups)
			index[hl.Language] = i
			groups = append(groups, HeadlineGroup{Language: hl.Language})
		}
		source := hl.Source
		if source == "" {
			source = "Unknown"
		}
		groups[i].Headlines = append(groups[i].Headlines, HeadlineData{
			Title:  hl.Title,
			Source: source,
			URL:    hl.URL,
		})
	}
	return groups
}
