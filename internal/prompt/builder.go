// Package prompt assembles music-generation prompts from an archetype
// selection, a theme texture blend and the day's variation.
//
// A prompt is built in three layers. Structure comes from the archetype
// descriptors, color from the texture blend, and variety from the daily
// variation. The finished components are rendered three ways.
package prompt

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/justestif/go-world-theme-player/internal/archetype"
	"github.com/justestif/go-world-theme-player/internal/daily"
	"github.com/justestif/go-world-theme-player/internal/selector"
	"github.com/justestif/go-world-theme-player/internal/texture"
)

// Limits on the structure layer.
const (
	maxInstruments = 3
	maxMoods       = 4
)

type intensityConfig struct {
	adjectives  []string
	tempoAdjust int
}

var intensities = map[archetype.Intensity]intensityConfig{
	archetype.IntensityLow:    {adjectives: []string{"soft", "gentle", "subtle", "delicate", "light"}, tempoAdjust: -3},
	archetype.IntensityMedium: {adjectives: []string{"warm", "flowing", "smooth", "balanced"}, tempoAdjust: 0},
	archetype.IntensityHigh:   {adjectives: []string{"deep", "rich", "layered", "evolving", "expansive"}, tempoAdjust: 3},
}

// leadAdjectives mark a first instrument that is already described.
var leadAdjectives = []string{
	"soft", "gentle", "warm", "deep", "ethereal",
	"atmospheric", "expressive", "subtle", "flowing",
}

// supportAdjectives mark a second instrument that is already described,
// alongside the day's timbre words.
var supportAdjectives = []string{"soft", "gentle", "warm", "deep"}

// Input is everything the builder needs.
type Input struct {
	Primary    archetype.Name
	Secondary  *archetype.Name
	BlendRatio *float64
	Intensity  archetype.Intensity
	Themes     []string
	Date       time.Time // zero means today
}

// FromSelection builds the input for a selection.
func FromSelection(sel selector.Selection, themes []string, date time.Time) Input {
	return Input{
		Primary:    sel.Primary,
		Secondary:  sel.Secondary,
		BlendRatio: sel.BlendRatio,
		Intensity:  sel.Intensity,
		Themes:     themes,
		Date:       date,
	}
}

// Build produces the prompt renderings and their components.
func Build(in Input) Result {
	date := in.Date
	if date.IsZero() {
		date = daily.Today()
	}

	primary := archetype.Describe(in.Primary)
	var secondary *archetype.Descriptor
	if in.Secondary != nil {
		d := archetype.Describe(*in.Secondary)
		secondary = &d
	}

	variation := daily.FromDate(date)
	blend := texture.Blend{Timbre: []string{}, Movement: []string{}, Harmonic: []string{}, SourceThemes: []string{}}
	if len(in.Themes) > 0 {
		blend = texture.BlendThemes(in.Themes, date)
	}
	level := archetype.ParseIntensity(string(in.Intensity))
	intensity := intensities[level]

	// Structure.
	instruments := slices.Clone(primary.Instruments[:2])
	if secondary != nil {
		for _, inst := range secondary.Instruments {
			if !slices.Contains(instruments, inst) {
				instruments = append(instruments, inst)
				break
			}
		}
	}
	instruments = instruments[:min(len(instruments), maxInstruments)]

	if len(instruments) > 1 && variation.InstrumentRotation > 0 {
		r := variation.InstrumentRotation % len(instruments)
		instruments = slices.Concat(instruments[r:], instruments[:r])
	}

	moods := []string{primary.MoodMusical[0], primary.MoodEmotional[0]}
	if secondary != nil {
		for _, mood := range secondary.MoodEmotional {
			if !slices.Contains(moods, mood) {
				moods = append(moods, mood)
				break
			}
		}
	}
	daily.Shuffle(daily.NewRand(variation.MoodShuffleSeed), moods)

	baseTempo := primary.BPM
	if secondary != nil && in.BlendRatio != nil && *in.BlendRatio > 0 {
		br := *in.BlendRatio
		baseTempo = int(math.Round(float64(primary.BPM)*br + float64(secondary.BPM)*(1-br)))
	}
	finalTempo := baseTempo + intensity.tempoAdjust + variation.TempoNudge

	// Color.
	switch variation.TextureEmphasis {
	case daily.EmphasisMovement:
		if len(blend.Movement) > 0 && !slices.Contains(moods, blend.Movement[0]) {
			moods = append(moods, blend.Movement[0])
		}
	case daily.EmphasisHarmonic:
		if len(blend.Harmonic) > 0 && !slices.Contains(moods, blend.Harmonic[0]) {
			moods = append(moods, blend.Harmonic[0])
		}
	}

	// Variety.
	if len(instruments) > 0 && !hasPrefix(instruments[0], leadAdjectives) {
		adj := intensity.adjectives[variation.InstrumentRotation%len(intensity.adjectives)]
		instruments[0] = adj + " " + instruments[0]
	}
	if len(instruments) > 1 && len(blend.Timbre) > 0 {
		known := append(slices.Clone(blend.Timbre), supportAdjectives...)
		if !hasPrefix(instruments[1], known) {
			instruments[1] = blend.Timbre[0] + " " + instruments[1]
		}
	}

	c := Components{
		Genre:              primary.Genre,
		Instruments:        instruments,
		Moods:              moods[:min(len(moods), maxMoods)],
		BaseTempo:          baseTempo,
		TextureTimbre:      blend.Timbre,
		TextureMovement:    blend.Movement,
		TextureHarmonic:    blend.Harmonic,
		FinalTempo:         finalTempo,
		InstrumentVariant:  variation.InstrumentRotation,
		TextureEmphasis:    variation.TextureEmphasis,
		PrimaryArchetype:   in.Primary,
		SecondaryArchetype: in.Secondary,
		BlendRatio:         in.BlendRatio,
		Intensity:          level,
		SourceThemes:       blend.SourceThemes,
		DateSeed:           daily.Format(date),
	}

	return Result{
		Prompt:     renderDefault(c),
		Minimal:    renderMinimal(c),
		Natural:    renderNatural(c),
		Components: c,
	}
}

func hasPrefix(phrase string, adjectives []string) bool {
	lower := strings.ToLower(phrase)
	for _, adj := range adjectives {
		if strings.HasPrefix(lower, adj) {
			return true
		}
	}
	return false
}
