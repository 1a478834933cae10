// Package texture maps news themes onto descriptive vocabulary that colors a
// music prompt, and blends several themes into one reproducible word set.
package texture

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/justestif/go-world-theme-player/internal/daily"
)

// Caps applied to a blend.
const (
	MaxThemes   = 5
	MaxTimbre   = 2
	MaxMovement = 2
	MaxHarmonic = 1
)

// Texture is the vocabulary for one theme.
type Texture struct {
	Timbre   []string `json:"timbre"`
	Movement []string `json:"movement"`
	Harmonic []string `json:"harmonic"`
}

// Blend is the merged vocabulary for a day's themes.
type Blend struct {
	Timbre       []string `json:"timbre_words"`
	Movement     []string `json:"movement_words"`
	Harmonic     []string `json:"harmonic_words"`
	SourceThemes []string `json:"source_themes"`
}

// Fragments returns prompt-ready words: up to two timbre words, then the
// first movement and harmonic words.
func (b Blend) Fragments() []string {
	var out []string
	out = append(out, b.Timbre[:min(2, len(b.Timbre))]...)
	if len(b.Movement) > 0 {
		out = append(out, b.Movement[0])
	}
	if len(b.Harmonic) > 0 {
		out = append(out, b.Harmonic[0])
	}
	return out
}

// Resolve maps a free-text theme to a canonical key. Unknown themes resolve
// to GeneralTheme.
func Resolve(theme string) string {
	key := strings.ToLower(strings.TrimSpace(theme))
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	if _, ok := textures[key]; ok {
		return key
	}
	return GeneralTheme
}

// Lookup returns the texture for a theme after resolution.
func Lookup(theme string) Texture {
	t := textures[Resolve(theme)]
	return Texture{
		Timbre:   slices.Clone(t.Timbre),
		Movement: slices.Clone(t.Movement),
		Harmonic: slices.Clone(t.Harmonic),
	}
}

// Themes returns the canonical theme keys, sorted.
func Themes() []string {
	return slices.Sorted(maps.Keys(textures))
}

// Aliases returns a copy of the synonym table.
func Aliases() map[string]string {
	return maps.Clone(aliases)
}

// BlendThemes merges the textures of up to MaxThemes themes. Word lists are
// deduplicated in first-seen order, shuffled with the date's generator in
// the order timbre, movement, harmonic, then capped. Themes that resolve to
// the same key collapse in SourceThemes. An empty theme list
// blends GeneralTheme.
func BlendThemes(themes []string, date time.Time) Blend {
	if len(themes) == 0 {
		themes = []string{GeneralTheme}
	}
	themes = themes[:min(len(themes), MaxThemes)]

	var timbre, movement, harmonic []string
	resolved := make([]string, 0, len(themes))
	for _, theme := range themes {
		key := Resolve(theme)
		resolved = append(resolved, key)

		t := textures[key]
		timbre = append(timbre, t.Timbre...)
		movement = append(movement, t.Movement...)
		harmonic = append(harmonic, t.Harmonic...)
	}

	rng := daily.NewRand(daily.Seed(date))
	timbre = dedupe(timbre)
	daily.Shuffle(rng, timbre)
	movement = dedupe(movement)
	daily.Shuffle(rng, movement)
	harmonic = dedupe(harmonic)
	daily.Shuffle(rng, harmonic)

	return Blend{
		Timbre:       timbre[:min(len(timbre), MaxTimbre)],
		Movement:     movement[:min(len(movement), MaxMovement)],
		Harmonic:     harmonic[:min(len(harmonic), MaxHarmonic)],
		SourceThemes: dedupe(resolved),
	}
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
