package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/justestif/go-world-theme-player/internal/analysis"
	"github.com/justestif/go-world-theme-player/internal/archetype"
	"github.com/justestif/go-world-theme-player/internal/clustering"
	"github.com/justestif/go-world-theme-player/internal/daily"
	"github.com/justestif/go-world-theme-player/internal/eras"
	"github.com/justestif/go-world-theme-player/internal/pipeline"
	"github.com/justestif/go-world-theme-player/internal/results"
	"github.com/justestif/go-world-theme-player/internal/viz"
)

const maxPromptBody = 1 << 20

type pipelineResponse struct {
	Pipeline   any                 `json:"pipeline"`
	AudioFiles []results.AudioFile `json:"audio_files"`
	AudioCount int                 `json:"audio_count"`
}

// APIPipeline returns the latest run and the audio library (GET /api/pipeline).
func (h *Handlers) APIPipeline(w http.ResponseWriter, r *http.Request) {
	resp := pipelineResponse{Pipeline: errorBody("No pipeline results found")}

	run, err := h.results.Latest()
	switch {
	case err == nil:
		resp.Pipeline = run
	case !errors.Is(err, results.ErrNoResults):
		h.logger.Error("loading latest run", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load pipeline results")
		return
	}

	files, err := results.AudioFiles(h.musicDir)
	if err != nil {
		h.logger.Error("listing audio files", "error", err)
		files = []results.AudioFile{}
	}
	resp.AudioFiles = files
	resp.AudioCount = len(files)

	writeJSON(w, http.StatusOK, resp)
}

type historyEntry struct {
	ID        uuid.UUID           `json:"id"`
	Date      string              `json:"date"`
	Timestamp time.Time           `json:"timestamp"`
	Primary   archetype.Name      `json:"primary_archetype"`
	Secondary *archetype.Name     `json:"secondary_archetype"`
	Intensity archetype.Intensity `json:"intensity_level"`
	Valence   float64             `json:"valence"`
	Tension   float64             `json:"tension"`
	Hope      float64             `json:"hope"`
	Prompt    string              `json:"prompt"`
	HasAudio  bool                `json:"has_audio"`
}

// APIHistory summarizes every archived run, oldest first (GET /api/history).
func (h *Handlers) APIHistory(w http.ResponseWriter, r *http.Request) {
	runs, err := h.results.History()
	if err != nil {
		h.logger.Error("loading history", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	entries := make([]historyEntry, 0, len(runs))
	for _, run := range runs {
		entries = append(entries, historyEntry{
			ID:        run.ID,
			Date:      run.Date,
			Timestamp: run.Timestamp,
			Primary:   run.Selection.Primary,
			Secondary: run.Selection.Secondary,
			Intensity: run.Selection.Intensity,
			Valence:   run.Analysis.Valence,
			Tension:   run.Analysis.Tension,
			Hope:      run.Analysis.Hope,
			Prompt:    run.Prompt.Prompt,
			HasAudio:  run.Audio != nil,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": entries, "count": len(entries)})
}

// APIEras clusters the archive (GET /api/eras?by=mood|themes&k=3&min=3).
func (h *Handlers) APIEras(w http.ResponseWriter, r *http.Request) {
	mode, cfg, err := eraParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.eras == nil {
		writeError(w, http.StatusServiceUnavailable, "Era detection is not configured")
		return
	}

	res, err := h.eras.Detect(r.Context(), mode, cfg)
	if err != nil {
		h.logger.Error("detecting eras", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to detect eras")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// APIAudioFiles lists generated tracks (GET /api/audio-files).
func (h *Handlers) APIAudioFiles(w http.ResponseWriter, r *http.Request) {
	files, err := results.AudioFiles(h.musicDir)
	if err != nil {
		h.logger.Error("listing audio files", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list audio files")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"files":     files,
		"count":     len(files),
		"timestamp": h.now().Format(time.RFC3339),
	})
}

// APIPrompt composes a prompt from a posted analysis (POST /api/prompt).
// The body is an analysis object with an optional "date" (YYYY-MM-DD);
// today is used when it is absent.
func (h *Handlers) APIPrompt(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPromptBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}

	a, err := analysis.Decode(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid analysis: %v", err))
		return
	}

	date := daily.Day(h.now())
	var req struct {
		Date json.RawMessage `json:"date"`
	}
	if json.Unmarshal(body, &req) == nil && len(req.Date) > 0 && string(req.Date) != "null" {
		var s string
		if err := json.Unmarshal(req.Date, &s); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid date %s: want a YYYY-MM-DD string", req.Date))
			return
		}
		if s != "" {
			parsed, err := time.Parse(results.DateLayout, s)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid date %q: want YYYY-MM-DD", s))
				return
			}
			date = parsed
		}
	}

	writeJSON(w, http.StatusOK, pipeline.Compose(a, date))
}

// Visualization serves a chart for an archived run (GET /viz/{date}/{name}).
// Charts missing on disk are rendered from the archived run.
func (h *Handlers) Visualization(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(results.DateLayout, date); err != nil {
		writeError(w, http.StatusNotFound, "Visualization not found")
		return
	}
	chart, ok := viz.ParseChart(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "Visualization not found")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")

	path := filepath.Join(h.results.VisualizationDir(date), chart.Filename())
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		http.ServeFile(w, r, path)
		return
	}

	run, err := h.results.Load(date)
	if err != nil {
		if !errors.Is(err, results.ErrNoResults) {
			h.logger.Error("loading run for chart", "date", date, "error", err)
		}
		w.Header().Del("Content-Type")
		writeError(w, http.StatusNotFound, "Visualization not found")
		return
	}

	svg, err := viz.Render(chart, viz.Input{
		Analysis:   run.Analysis,
		Selection:  run.Selection,
		Components: run.Prompt.Components,
		Date:       run.Date,
	})
	if err != nil {
		h.logger.Error("rendering chart", "chart", chart, "error", err)
		w.Header().Del("Content-Type")
		writeError(w, http.StatusInternalServerError, "Failed to render visualization")
		return
	}
	_, _ = w.Write(svg)
}

// Audio serves a generated .wav file (GET /audio/{filename}).
func (h *Handlers) Audio(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if !validAudioName(name) {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	path := filepath.Join(h.musicDir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	http.ServeFile(w, r, path)
}

// Healthz reports liveness (GET /healthz).
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// validAudioName accepts a bare .wav file name and nothing that could
// leave the music directory.
func validAudioName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".wav")
}

// eraParams reads ?by=, ?k= and ?min= over the default clustering config.
func eraParams(r *http.Request) (eras.Mode, clustering.Config, error) {
	q := r.URL.Query()
	cfg := clustering.DefaultConfig()

	mode, err := eras.ParseMode(q.Get("by"))
	if err != nil {
		return "", cfg, err
	}

	for _, p := range []struct {
		key string
		dst *int
	}{
		{"k", &cfg.NumClusters},
		{"min", &cfg.MinClusterSize},
	} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return "", cfg, fmt.Errorf("invalid %s %q: want a positive integer", p.key, v)
		}
		*p.dst = n
	}

	return mode, cfg, nil
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody(msg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
