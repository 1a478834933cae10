package prompt

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/justestif/go-world-theme-player/internal/archetype"
	"github.com/justestif/go-world-theme-player/internal/daily"
)

// Components is the structured breakdown behind a prompt.
type Components struct {
	Genre              string              `json:"genre"`
	Instruments        []string            `json:"base_instruments"`
	Moods              []string            `json:"base_moods"`
	BaseTempo          int                 `json:"base_tempo"`
	TextureTimbre      []string            `json:"texture_timbre"`
	TextureMovement    []string            `json:"texture_movement"`
	TextureHarmonic    []string            `json:"texture_harmonic"`
	FinalTempo         int                 `json:"tempo_final"`
	InstrumentVariant  int                 `json:"instrument_variant"`
	TextureEmphasis    daily.Emphasis      `json:"texture_emphasis"`
	PrimaryArchetype   archetype.Name      `json:"primary_archetype"`
	SecondaryArchetype *archetype.Name     `json:"secondary_archetype"`
	BlendRatio         *float64            `json:"blend_ratio"`
	Intensity          archetype.Intensity `json:"intensity_level"`
	SourceThemes       []string            `json:"source_themes"`
	DateSeed           string              `json:"date_seed"`
}

// Result holds the three renderings of one set of components.
type Result struct {
	Prompt     string     `json:"prompt"`
	Minimal    string     `json:"prompt_minimal"`
	Natural    string     `json:"prompt_natural"`
	Components Components `json:"components"`
}

// Style names a rendering.
type Style string

// Rendering styles.
const (
	StyleDefault Style = "default"
	StyleMinimal Style = "minimal"
	StyleNatural Style = "natural"
)

// Get returns the rendering for style, falling back to the default prompt.
func (r Result) Get(style Style) string {
	switch style {
	case StyleMinimal:
		return r.Minimal
	case StyleNatural:
		return r.Natural
	default:
		return r.Prompt
	}
}

// TempoDescriptor names a tempo band.
func TempoDescriptor(bpm int) string {
	switch {
	case bpm < 55:
		return "very slow"
	case bpm < 65:
		return "slow"
	case bpm < 75:
		return "moderate"
	case bpm < 90:
		return "medium"
	default:
		return "flowing"
	}
}

// renderDefault: "Genre, with a, b and c, m1 and m2, m3, slow 62 BPM, stereo, spacious".
func renderDefault(c Components) string {
	parts := []string{capitalize(c.Genre)}

	if len(c.Instruments) > 0 {
		parts = append(parts, "with "+joinAnd(c.Instruments))
	}

	if len(c.Moods) > 0 {
		unique := dedupeMoods(c.Moods)
		phrase := strings.Join(unique[:min(2, len(unique))], " and ")
		if len(unique) > 2 {
			phrase += ", " + unique[2]
		}
		parts = append(parts, phrase)
	}

	parts = append(parts, fmt.Sprintf("%s %d BPM", TempoDescriptor(c.FinalTempo), c.FinalTempo))

	technical := []string{"stereo"}
	if strings.Contains(strings.ToLower(c.Genre), "ambient") {
		technical = append(technical, "spacious")
	}
	parts = append(parts, strings.Join(technical, ", "))

	return strings.Join(parts, ", ")
}

// renderMinimal keeps only the essential keywords.
func renderMinimal(c Components) string {
	elements := []string{c.Genre, first(c.Instruments), first(c.Moods)}
	if len(c.TextureTimbre) > 0 {
		elements = append(elements, c.TextureTimbre[0])
	}
	elements = append(elements, fmt.Sprintf("%d BPM", c.FinalTempo), "stereo")

	kept := elements[:0]
	for _, e := range elements {
		if e != "" {
			kept = append(kept, e)
		}
	}
	return strings.Join(kept, ", ")
}

// renderNatural reads as a sentence.
func renderNatural(c Components) string {
	moodPhrase := "atmospheric"
	if len(c.Moods) > 0 {
		moodPhrase = strings.Join(c.Moods[:min(2, len(c.Moods))], " and ")
	}

	instPhrase := "synthesizers"
	if len(c.Instruments) > 0 {
		instPhrase = strings.Join(c.Instruments[:min(2, len(c.Instruments))], " and ")
	}

	var texturePhrase string
	switch {
	case len(c.TextureTimbre) > 0:
		texturePhrase = fmt.Sprintf(" with %s textures", c.TextureTimbre[0])
	case len(c.TextureMovement) > 0:
		texturePhrase = ", " + c.TextureMovement[0]
	}

	return fmt.Sprintf("A %s piece of %s music%s, featuring %s, at a %s %d BPM tempo",
		moodPhrase, c.Genre, texturePhrase, instPhrase, TempoDescriptor(c.FinalTempo), c.FinalTempo)
}

// joinAnd renders "a", "a and b" or "a, b and c".
func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// dedupeMoods drops moods that contain, or are contained in, an earlier one.
func dedupeMoods(moods []string) []string {
	var unique []string
	for _, mood := range moods {
		lm := strings.ToLower(mood)
		dup := false
		for _, kept := range unique {
			lk := strings.ToLower(kept)
			if strings.Contains(lk, lm) || strings.Contains(lm, lk) {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, mood)
		}
	}
	return unique
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func first(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[0]
}
