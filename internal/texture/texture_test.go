package texture

import (
	"reflect"
	"slices"
	"testing"
	"time"
)

var day = time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		theme string
		want  string
	}{
		{name: "canonical", theme: "conflict", want: "conflict"},
		{name: "case and whitespace", theme: "  Economy ", want: "economy"},
		{name: "alias", theme: "military", want: "conflict"},
		{name: "multi-word alias", theme: "Machine Learning", want: "ai"},
		{name: "uppercase canonical", theme: "AI", want: "ai"},
		{name: "unknown", theme: "knitting", want: "general"},
		{name: "empty", theme: "", want: "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.theme); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.theme, got, tt.want)
			}
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	for _, key := range Themes() {
		if got := Resolve(Resolve(key)); got != key {
			t.Errorf("Resolve(Resolve(%q)) = %q", key, got)
		}
	}
	for alias, canonical := range Aliases() {
		if got := Resolve(Resolve(alias)); got != canonical {
			t.Errorf("Resolve(Resolve(%q)) = %q, want %q", alias, got, canonical)
		}
	}
}

func TestAliases_PointAtKnownThemes(t *testing.T) {
	themes := Themes()
	for alias, canonical := range Aliases() {
		if !slices.Contains(themes, canonical) {
			t.Errorf("alias %q points at unknown theme %q", alias, canonical)
		}
	}
}

func TestBlendThemes_Deterministic(t *testing.T) {
	a := BlendThemes([]string{"conflict", "economy"}, day)
	b := BlendThemes([]string{"conflict", "economy"}, day)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("BlendThemes() not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestBlendThemes_Caps(t *testing.T) {
	b := BlendThemes([]string{"conflict", "economy", "science"}, day)

	if len(b.Timbre) != MaxTimbre {
		t.Errorf("Timbre = %v, want %d words", b.Timbre, MaxTimbre)
	}
	if len(b.Movement) != MaxMovement {
		t.Errorf("Movement = %v, want %d words", b.Movement, MaxMovement)
	}
	if len(b.Harmonic) != MaxHarmonic {
		t.Errorf("Harmonic = %v, want %d words", b.Harmonic, MaxHarmonic)
	}
	if !reflect.DeepEqual(b.SourceThemes, []string{"conflict", "economy", "science"}) {
		t.Errorf("SourceThemes = %v", b.SourceThemes)
	}
}

func TestBlendThemes_WordsComeFromThemes(t *testing.T) {
	b := BlendThemes([]string{"ocean", "space"}, day)

	pool := append(Lookup("ocean").Timbre, Lookup("space").Timbre...)
	for _, w := range b.Timbre {
		if !slices.Contains(pool, w) {
			t.Errorf("timbre word %q not from ocean or space", w)
		}
	}
	if b.Timbre[0] == b.Timbre[1] {
		t.Errorf("Timbre has duplicates: %v", b.Timbre)
	}
}

func TestBlendThemes_EmptyUsesGeneral(t *testing.T) {
	empty := BlendThemes(nil, day)
	general := BlendThemes([]string{"general"}, day)

	if !reflect.DeepEqual(empty, general) {
		t.Errorf("BlendThemes(nil) = %+v, want %+v", empty, general)
	}
	if !reflect.DeepEqual(empty.SourceThemes, []string{"general"}) {
		t.Errorf("SourceThemes = %v", empty.SourceThemes)
	}
}

func TestBlendThemes_AliasesCollapse(t *testing.T) {
	b := BlendThemes([]string{"military", "crisis", "conflict"}, day)

	if !reflect.DeepEqual(b.SourceThemes, []string{"conflict"}) {
		t.Errorf("SourceThemes = %v, want [conflict]", b.SourceThemes)
	}
	if !reflect.DeepEqual(b, BlendThemes([]string{"conflict"}, day)) {
		t.Error("aliases of one theme blend differently from the theme itself")
	}
}

func TestBlendThemes_OnlyFiveThemes(t *testing.T) {
	b := BlendThemes([]string{"war", "peace", "politics", "tragedy", "celebration", "sports"}, day)

	if slices.Contains(b.SourceThemes, "sports") {
		t.Errorf("sixth theme was used: %v", b.SourceThemes)
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	tex := Lookup("war")
	tex.Timbre[0] = "changed"

	if Lookup("war").Timbre[0] != "distant" {
		t.Error("Lookup() exposed the shared table")
	}
}

func TestBlend_Fragments(t *testing.T) {
	b := Blend{
		Timbre:   []string{"a", "b"},
		Movement: []string{"c", "d"},
		Harmonic: []string{"e"},
	}
	want := []string{"a", "b", "c", "e"}
	if got := b.Fragments(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fragments() = %v, want %v", got, want)
	}
}
