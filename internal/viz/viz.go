// Package viz renders the pipeline's SVG charts: a mood radar of the news
// analysis, a wheel of archetype scores and a prompt DNA breakdown.
package viz

import (
	"bytes"
	"context"
	"embed"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/sync/errgroup"

	"github.com/justestif/go-world-theme-player/internal/analysis"
	"github.com/justestif/go-world-theme-player/internal/prompt"
	"github.com/justestif/go-world-theme-player/internal/selector"
)

//go:embed templates/*.svg.tmpl
var templatesFS embed.FS

var templates = template.Must(template.New("viz").Funcs(template.FuncMap{
	"esc": escape,
	"f1":  func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"add": func(a, b float64) float64 { return a + b },
}).ParseFS(templatesFS, "templates/*.svg.tmpl"))

// Chart identifies one visualization.
type Chart string

// Charts rendered for every run.
const (
	MoodRadar      Chart = "mood_radar"
	ArchetypeWheel Chart = "archetype_wheel"
	PromptDNA      Chart = "prompt_dna"
)

// Charts returns every chart in render order.
func Charts() []Chart {
	return []Chart{MoodRadar, ArchetypeWheel, PromptDNA}
}

// Filename is the chart's file name inside a visualization directory.
func (c Chart) Filename() string {
	return string(c) + ".svg"
}

// ParseChart accepts a chart name with or without the .svg extension.
func ParseChart(s string) (Chart, bool) {
	c := Chart(strings.TrimSuffix(s, ".svg"))
	switch c {
	case MoodRadar, ArchetypeWheel, PromptDNA:
		return c, true
	}
	return "", false
}

// Input is everything the charts draw from.
type Input struct {
	Analysis   analysis.NewsAnalysis
	Selection  selector.Selection
	Components prompt.Components
	Date       string // shown in chart titles when set
}

// Render produces the SVG document for one chart.
func Render(c Chart, in Input) ([]byte, error) {
	var view any
	switch c {
	case MoodRadar:
		view = radarView(in.Analysis, in.Date)
	case ArchetypeWheel:
		view = wheelView(in.Selection, in.Date)
	case PromptDNA:
		view = dnaView(in.Components, in.Date)
	default:
		return nil, fmt.Errorf("unknown chart %q", c)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, c.Filename()+".tmpl", view); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", c, err)
	}
	return buf.Bytes(), nil
}

// WriteAll renders every chart into dir and returns the written paths in
// chart order.
func WriteAll(ctx context.Context, dir string, in Input) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating visualization dir: %w", err)
	}

	charts := Charts()
	paths := make([]string, len(charts))

	g, ctx := errgroup.WithContext(ctx)
	for i, c := range charts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			svg, err := Render(c, in)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, c.Filename())
			if err := os.WriteFile(path, svg, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", c, err)
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func escape(s string) string {
	var b strings.Builder
	// Writes to a strings.Builder never fail.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func titled(base, date string) string {
	if date == "" {
		return base
	}
	return base + " · " + date
}
