package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/justestif/go-world-theme-player/internal/archetype"
	"github.com/justestif/go-world-theme-player/internal/clustering"
	"github.com/justestif/go-world-theme-player/internal/results"
	"github.com/justestif/go-world-theme-player/internal/viz"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	partials  map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates loads layouts, partials and pages from templatesFS.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		partials:  make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template inside the base layout.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a partial without the layout.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	tmpl, ok := t.partials[partial]
	if !ok {
		return fmt.Errorf("partial %q not found", partial)
	}
	return tmpl.Execute(w, data)
}

func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}
	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}
	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	common := append(layouts, partials...)

	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		files := append([]string{page}, common...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		t.templates[name] = tmpl
	}

	// Each partial file defines a template named after itself.
	for _, partial := range partials {
		name := strings.TrimSuffix(filepath.Base(partial), ".html")

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, partial)
		if err != nil {
			return fmt.Errorf("parsing partial %s: %w", name, err)
		}
		t.partials[name] = tmpl
	}

	return nil
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// moodColor maps tension to hue (cool blue to warm red) and
		// valence to lightness.
		"moodColor": func(valence, tension float64) template.CSS {
			hue := 220 - tension*210
			lightness := 45 + valence*15
			return template.CSS(fmt.Sprintf("hsl(%.0f, 65%%, %.0f%%)", hue, lightness)) //nolint:gosec // numeric only
		},
		"archetypeColor": func(n archetype.Name) string {
			return viz.ArchetypeColor(n)
		},
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
		// formatDateRange formats a date range as "Jan 2 - Feb 3, 2006"
		"formatDateRange": func(start, end time.Time) string {
			if start.Year() == end.Year() && start.Month() == end.Month() {
				return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("2, 2006"))
			}
			if start.Year() == end.Year() {
				return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
			}
			return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v*100)
		},
		"signed": func(v float64) string {
			return fmt.Sprintf("%+.2f", v)
		},
		"fixed": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"join": strings.Join,
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	Flash       *FlashMessage
	CurrentPath string
}

// FlashMessage represents a notification banner.
type FlashMessage struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// HomePageData is the news overview.
type HomePageData struct {
	PageData
	Run    *results.Run
	Groups []HeadlineGroup
}

// HeadlineGroup is the headlines fetched for one language.
type HeadlineGroup struct {
	Language  string
	Headlines []HeadlineData
}

// HeadlineData is one headline row.
type HeadlineData struct {
	Title  string
	Source string
	URL    string
}

// PipelinePageData is the latest run in detail.
type PipelinePageData struct {
	PageData
	Run        *results.Run
	Secondary  string
	Charts     []ChartLink
	AudioFiles AudioFilesData
}

// ChartLink points at one rendered visualization.
type ChartLink struct {
	Title string
	URL   string
}

// AudioFilesData feeds the audio list partial.
type AudioFilesData struct {
	Files []results.AudioFile
	Count int
}

// ErasPageData contains data for the eras page template.
type ErasPageData struct {
	PageData
	Mode         string
	Eras         []EraData
	OutlierCount int
	TotalDays    int
}

// EraData contains data for a single era in templates.
type EraData struct {
	Name        string
	Mood        string
	Description string
	TopThemes   []string
	Dominant    archetype.Name
	Centroid    clustering.Centroid
	StartDate   time.Time
	EndDate     time.Time
	DayCount    int
}

// LogsPageData contains data for the log viewer.
type LogsPageData struct {
	PageData
	LogFile string
}
