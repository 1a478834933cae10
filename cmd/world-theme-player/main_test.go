package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/justestif/go-world-theme-player/internal/analysis"
	"github.com/justestif/go-world-theme-player/internal/archetype"
	"github.com/justestif/go-world-theme-player/internal/config"
	"github.com/justestif/go-world-theme-player/internal/newsapi"
	"github.com/justestif/go-world-theme-player/internal/pipeline"
	"github.com/justestif/go-world-theme-player/internal/results"
	"github.com/justestif/go-world-theme-player/internal/texture"
)

const analysisJSON = `{
  "emotional_valence": -0.4,
  "tension_level": 0.7,
  "hope_factor": 0.3,
  "energy_level": "high",
  "dominant_themes": ["conflict", "economy"],
  "summary": "Markets slide as talks stall"
}`

// isolate runs the CLI against a throwaway home and results directory.
func isolate(t *testing.T) (home, resultsDir string) {
	t.Helper()
	home = t.TempDir()
	resultsDir = filepath.Join(home, "results")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv(config.EnvNewsAPIKey, "")
	t.Setenv(config.EnvOpenAIAPIKey, "")
	t.Setenv(config.EnvReplicateToken, "")
	t.Setenv(config.EnvServerAddr, "")
	t.Setenv(config.EnvResultsDir, resultsDir)
	return home, resultsDir
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeAnalysis(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analysis.json")
	if err := os.WriteFile(path, []byte(analysisJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPromptCommand(t *testing.T) {
	isolate(t)
	path := writeAnalysis(t)

	a, err := analysis.Decode([]byte(analysisJSON))
	if err != nil {
		t.Fatal(err)
	}
	want := pipeline.Compose(a, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)).Prompt

	tests := []struct {
		format string
		want   string
	}{
		{"default", want.Prompt},
		{"minimal", want.Minimal},
		{"natural", want.Natural},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := runCLI(t, "", "prompt", "--analysis", path, "--date", "2026-02-14", "--format", tt.format)
			if err != nil {
				t.Fatalf("prompt error = %v", err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("prompt = %q, want %q", strings.TrimSpace(out), tt.want)
			}
		})
	}
}

func TestPromptCommand_JSONFromStdin(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, analysisJSON, "prompt", "-a", "-", "--date", "2026-02-14", "-f", "json")
	if err != nil {
		t.Fatalf("prompt error = %v", err)
	}

	var got pipeline.Composition
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Prompt.Components.DateSeed != "2026-02-14" {
		t.Errorf("date seed = %q", got.Prompt.Components.DateSeed)
	}
	if got.Selection.Primary != got.Prompt.Components.PrimaryArchetype {
		t.Errorf("selection primary %s differs from prompt primary %s",
			got.Selection.Primary, got.Prompt.Components.PrimaryArchetype)
	}
}

func TestPromptCommand_Errors(t *testing.T) {
	isolate(t)
	path := writeAnalysis(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing analysis flag", []string{"prompt"}, "analysis"},
		{"unknown format", []string{"prompt", "-a", path, "-f", "yaml"}, "unknown format"},
		{"bad date", []string{"prompt", "-a", path, "--date", "14/02/2026"}, "invalid date"},
		{"missing file", []string{"prompt", "-a", filepath.Join(t.TempDir(), "nope.json")}, "read analysis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestArchetypesCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "archetypes")
	if err != nil {
		t.Fatalf("archetypes error = %v", err)
	}
	for _, n := range archetype.All() {
		row := tableRow(out, archetype.Describe(n).Title)
		if row == "" {
			t.Errorf("catalog missing %s", n)
			continue
		}
		if want := blendTitles(archetype.CompatibleWith(n)); !strings.Contains(row, want) {
			t.Errorf("%s row = %q, want blend candidates %q", n, row, want)
		}
	}

	out, err = runCLI(t, "", "archetypes", "--analysis", writeAnalysis(t))
	if err != nil {
		t.Fatalf("archetypes --analysis error = %v", err)
	}
	for _, want := range []string{"primary", "Intensity: high", "valence -0.40"} {
		if !strings.Contains(out, want) {
			t.Errorf("scores output missing %q:\n%s", want, out)
		}
	}
}

func TestThemesCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "themes")
	if err != nil {
		t.Fatalf("themes error = %v", err)
	}
	for _, theme := range texture.Themes() {
		row := tableRow(out, theme)
		if row == "" {
			t.Errorf("themes table missing %q", theme)
			continue
		}
		tex := texture.Lookup(theme)
		want := strings.Join([]string{tex.Timbre[0], tex.Timbre[1], tex.Movement[0], tex.Harmonic[0]}, ", ")
		if !strings.Contains(row, want) {
			t.Errorf("%s row = %q, want prompt words %q", theme, row, want)
		}
	}
}

// tableRow returns the rendered row whose first cell is first.
func tableRow(out, first string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "│ "+first+" ") {
			return line
		}
	}
	return ""
}

func TestConfigInit(t *testing.T) {
	home, _ := isolate(t)
	target := filepath.Join(home, "cfg", "config.toml")

	out, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(out, target) {
		t.Errorf("output = %q, want target path", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != config.Sample() {
		t.Error("written file differs from the sample config")
	}

	if _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Error("second init without --overwrite succeeded")
	}
	if _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Errorf("init --overwrite error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate error = %v", err)
	}
	if !strings.Contains(out, "Configuration valid (defaults)") {
		t.Errorf("output = %q", out)
	}

	if _, err := runCLI(t, "", "--log-format", "xml", "config", "validate"); err == nil {
		t.Error("invalid --log-format accepted")
	}
}

func TestErasCommand(t *testing.T) {
	_, resultsDir := isolate(t)

	out, err := runCLI(t, "", "eras")
	if err != nil {
		t.Fatalf("eras error = %v", err)
	}
	if !strings.Contains(out, "No archived runs") {
		t.Errorf("empty archive output = %q", out)
	}

	store := results.NewStore(resultsDir)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 8 {
		date := start.AddDate(0, 0, i)
		a := analysis.New(0.6, 0.2, 0.8, "low", []string{"science"}, "")
		if i >= 4 {
			a = analysis.New(-0.6, 0.8, 0.2, "high", []string{"conflict"}, "")
		}
		comp := pipeline.Compose(a, date)
		run := results.NewRun(date)
		run.Analysis, run.Selection, run.Prompt = comp.Analysis, comp.Selection, comp.Prompt
		if err := store.Save(run); err != nil {
			t.Fatal(err)
		}
	}

	out, err = runCLI(t, "", "eras", "--k", "2", "--min", "2")
	if err != nil {
		t.Fatalf("eras error = %v", err)
	}
	for _, want := range []string{"Found ", "from 8 days"} {
		if !strings.Contains(out, want) {
			t.Errorf("eras output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "", "eras", "--json", "--by", "themes", "--k", "2", "--min", "2")
	if err != nil {
		t.Fatalf("eras --json error = %v", err)
	}
	var res struct {
		Mode      string `json:"mode"`
		TotalDays int    `json:"total_days"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if res.Mode != "themes" || res.TotalDays != 8 {
		t.Errorf("result = %+v", res)
	}

	if _, err := runCLI(t, "", "eras", "--by", "genre"); err == nil {
		t.Error("unknown --by accepted")
	}
}

func TestRunCommand_RequiresAPIKeys(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "", "run", "--no-music")
	if !errors.Is(err, newsapi.ErrMissingAPIKey) {
		t.Errorf("run error = %v, want ErrMissingAPIKey", err)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2026-02-14", "2026-02-14", false},
		{" 2026-02-14 ", "2026-02-14", false},
		{"2026-2-14", "", true},
		{"tomorrow", "", true},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDate(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got.Format(time.DateOnly) != tt.want {
			t.Errorf("parseDate(%q) = %s, want %s", tt.in, got.Format(time.DateOnly), tt.want)
		}
	}

	if got, err := parseDate(""); err != nil || got.IsZero() {
		t.Errorf("parseDate(\"\") = %v, %v", got, err)
	}
}
