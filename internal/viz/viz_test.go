package viz

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/justestif/go-world-theme-player/internal/analysis"
	"github.com/justestif/go-world-theme-player/internal/archetype"
	"github.com/justestif/go-world-theme-player/internal/prompt"
	"github.com/justestif/go-world-theme-player/internal/selector"
)

func sampleInput() Input {
	a := analysis.New(0.7, 0.2, 0.8, "medium", []string{"science", "space"}, "Launch day")
	sel := selector.Select(a)
	p := prompt.Build(prompt.FromSelection(sel, a.Themes, time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)))
	return Input{Analysis: a, Selection: sel, Components: p.Components, Date: "2026-01-09"}
}

// wellFormed fails the test unless doc parses as XML.
func wellFormed(t *testing.T, doc []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			t.Fatalf("SVG is not well-formed XML: %v\n%s", err, doc)
		}
	}
}

func TestRender_AllChartsWellFormed(t *testing.T) {
	in := sampleInput()

	for _, c := range Charts() {
		t.Run(string(c), func(t *testing.T) {
			svg, err := Render(c, in)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			wellFormed(t, svg)
			if !strings.Contains(string(svg), "2026-01-09") {
				t.Error("date missing from chart title")
			}
		})
	}
}

func TestRender_UnknownChart(t *testing.T) {
	if _, err := Render("pie", sampleInput()); err == nil {
		t.Error("Render() with unknown chart succeeded")
	}
}

func TestRender_EscapesText(t *testing.T) {
	in := sampleInput()
	in.Components.Genre = `drone & <noise>`
	in.Date = `"today"`

	svg, err := Render(PromptDNA, in)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	wellFormed(t, svg)
	if strings.Contains(string(svg), "<noise>") {
		t.Error("genre was not escaped")
	}
}

func TestMoodRadar_Content(t *testing.T) {
	in := sampleInput()

	svg, err := Render(MoodRadar, in)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"Hope", "Tension", "Valence", "Energy", "+0.70", "MEDIUM", "Overall: Optimistic, Calm"} {
		if !strings.Contains(string(svg), want) {
			t.Errorf("radar missing %q", want)
		}
	}
}

func TestArchetypeWheel_HighlightsSelection(t *testing.T) {
	in := sampleInput()

	svg, err := Render(ArchetypeWheel, in)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	s := string(svg)

	if got := strings.Count(s, "<path "); got != 6 {
		t.Errorf("wheel has %d segments, want 6", got)
	}
	if !strings.Contains(s, `fill="#34d399" fill-opacity="0.9"`) {
		t.Error("primary tranquil optimism segment not highlighted")
	}
	if !strings.Contains(s, ">Secondary</text>") {
		t.Error("secondary legend missing")
	}
}

func TestArchetypeWheel_NoSecondaryLegend(t *testing.T) {
	a := analysis.New(1, 1, 0, "low", nil, "")
	in := Input{Analysis: a, Selection: selector.Select(a)}

	svg, err := Render(ArchetypeWheel, in)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(string(svg), ">Secondary</text>") {
		t.Error("secondary legend drawn without a secondary")
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		valence, tension float64
		want             string
	}{
		{0.5, 0.2, "Optimistic, Calm"},
		{-0.5, 0.7, "Somber, Tense"},
		{0, 0.45, "Balanced"},
		{0.3, 0.3, "Balanced"},
	}

	for _, tt := range tests {
		a := analysis.New(tt.valence, tt.tension, 0.5, "medium", nil, "")
		if got := Overall(a); got != tt.want {
			t.Errorf("Overall(%v, %v) = %q, want %q", tt.valence, tt.tension, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in          string
		limit, keep int
		want        string
	}{
		{"short", 20, 20, "short"},
		{"atmospheric synthesizer pads", 20, 20, "atmospheric synthesi..."},
		{strings.Repeat("é", 61), 60, 57, strings.Repeat("é", 57) + "..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit, tt.keep); got != tt.want {
			t.Errorf("truncate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseChart(t *testing.T) {
	for _, c := range Charts() {
		if got, ok := ParseChart(c.Filename()); !ok || got != c {
			t.Errorf("ParseChart(%q) = %q, %v", c.Filename(), got, ok)
		}
	}
	if _, ok := ParseChart("../etc/passwd"); ok {
		t.Error("ParseChart accepted an arbitrary name")
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "visualizations", "2026-01-09")

	paths, err := WriteAll(context.Background(), dir, sampleInput())
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if len(paths) != len(Charts()) {
		t.Fatalf("WriteAll() wrote %d files, want %d", len(paths), len(Charts()))
	}
	for i, c := range Charts() {
		if filepath.Base(paths[i]) != c.Filename() {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], c.Filename())
		}
		data, err := os.ReadFile(paths[i])
		if err != nil {
			t.Fatalf("reading %s: %v", paths[i], err)
		}
		wellFormed(t, data)
	}
}

func TestWriteAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := WriteAll(ctx, t.TempDir(), sampleInput()); err == nil {
		t.Error("WriteAll() with canceled context succeeded")
	}
}

func TestArchetypeColor(t *testing.T) {
	for _, n := range archetype.All() {
		if ArchetypeColor(n) == DefaultPalette.Neutral {
			t.Errorf("%s has no color", n)
		}
	}
}
