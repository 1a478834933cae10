// Package archetype holds the fixed catalog of mood archetypes used to turn a
// news mood into a music description.
package archetype

import (
	"fmt"
	"slices"
)

// Name identifies one of the six archetypes.
type Name int

// Declaration order is catalog order and breaks score ties.
const (
	TranquilOptimism Name = iota
	ReflectiveCalm
	GentleTension
	MelancholicBeauty
	CautiousHope
	SereneResilience

	numArchetypes
)

var names = [numArchetypes]string{
	TranquilOptimism:  "tranquil_optimism",
	ReflectiveCalm:    "reflective_calm",
	GentleTension:     "gentle_tension",
	MelancholicBeauty: "melancholic_beauty",
	CautiousHope:      "cautious_hope",
	SereneResilience:  "serene_resilience",
}

// All returns every archetype in catalog order.
func All() []Name {
	all := make([]Name, numArchetypes)
	for i := range all {
		all[i] = Name(i)
	}
	return all
}

// Valid reports whether n is one of the catalog archetypes.
func (n Name) Valid() bool {
	return n >= 0 && n < numArchetypes
}

// String returns the snake_case identifier, e.g. "tranquil_optimism".
func (n Name) String() string {
	if !n.Valid() {
		return fmt.Sprintf("archetype(%d)", int(n))
	}
	return names[n]
}

// Title returns a display name, e.g. "Tranquil Optimism".
func (n Name) Title() string {
	return descriptors[n.mustIndex()].Title
}

// Parse looks up an archetype by its snake_case identifier.
func Parse(s string) (Name, error) {
	for i, name := range names {
		if name == s {
			return Name(i), nil
		}
	}
	return 0, fmt.Errorf("unknown archetype %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (n Name) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("invalid archetype %d", int(n))
	}
	return []byte(names[n]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// mustIndex panics on a name outside the catalog. The set is closed, so
// reaching the panic means a caller built a Name by hand.
func (n Name) mustIndex() int {
	if !n.Valid() {
		panic(fmt.Sprintf("archetype: no catalog entry for %d", int(n)))
	}
	return int(n)
}

// Energy is a categorical energy level.
type Energy string

// Energy levels in ascending order.
const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// EnergyOrder is the ordered sequence used for energy distance.
var EnergyOrder = []Energy{EnergyLow, EnergyMedium, EnergyHigh}

// Scale places e on a 0..1 axis for charts and clustering.
// Unknown levels sit at 0.5.
func (e Energy) Scale() float64 {
	switch e {
	case EnergyLow:
		return 0.33
	case EnergyMedium:
		return 0.66
	case EnergyHigh:
		return 1.0
	default:
		return 0.5
	}
}

// Range is a target center with a tolerance for one mood dimension.
type Range struct {
	Center    float64
	Tolerance float64
}

// Profile is the ideal mood for an archetype.
type Profile struct {
	Valence         Range
	Tension         Range
	Hope            Range
	PreferredEnergy []Energy
}

// Descriptor is the musical description of an archetype.
type Descriptor struct {
	Name          Name
	Title         string
	Genre         string
	Instruments   []string
	MoodMusical   []string
	MoodEmotional []string
	Tempo         string
	BPM           int
	Technical     []string
}

// Describe returns the music descriptor for n.
// The returned slices are copies; the catalog itself is never mutated.
func Describe(n Name) Descriptor {
	d := descriptors[n.mustIndex()]
	d.Instruments = slices.Clone(d.Instruments)
	d.MoodMusical = slices.Clone(d.MoodMusical)
	d.MoodEmotional = slices.Clone(d.MoodEmotional)
	d.Technical = slices.Clone(d.Technical)
	return d
}

// ProfileOf returns the ideal mood profile for n.
func ProfileOf(n Name) Profile {
	p := profiles[n.mustIndex()]
	p.PreferredEnergy = slices.Clone(p.PreferredEnergy)
	return p
}

// Compatible reports whether candidate may be blended as a secondary of
// primary. The graph is directional.
func Compatible(primary, candidate Name) bool {
	return slices.Contains(compatibility[primary.mustIndex()], candidate)
}

// CompatibleWith returns primary's blend candidates in preference order.
func CompatibleWith(primary Name) []Name {
	return slices.Clone(compatibility[primary.mustIndex()])
}

// Intensity is a coarse tension classification.
type Intensity string

// Intensity levels.
const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// IntensityLevel classifies a tension value.
func IntensityLevel(tension float64) Intensity {
	switch {
	case tension < 0.3:
		return IntensityLow
	case tension < 0.6:
		return IntensityMedium
	default:
		return IntensityHigh
	}
}

// ParseIntensity converts s to an Intensity, defaulting to medium.
func ParseIntensity(s string) Intensity {
	switch Intensity(s) {
	case IntensityLow, IntensityHigh:
		return Intensity(s)
	default:
		return IntensityMedium
	}
}
