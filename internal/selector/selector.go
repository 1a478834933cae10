// Package selector ranks the archetype catalog against a news analysis and
// picks a primary archetype with an optional blend partner.
package selector

import (
	"math"
	"slices"

	"github.com/justestif/go-world-theme-player/internal/analysis"
	"github.com/justestif/go-world-theme-player/internal/archetype"
)

// Component weights of the overall score.
const (
	WeightValence = 0.30
	WeightTension = 0.25
	WeightHope    = 0.30
	WeightEnergy  = 0.15
)

// Secondary selection thresholds.
const (
	SecondaryRatio    = 0.70 // minimum share of the primary score
	SecondaryMinScore = 0.50
)

// Energy match values.
const (
	energyExact    = 1.0
	energyAdjacent = 0.6
	energyFar      = 0.3
	energyUnknown  = 0.5
)

// Components holds the per-dimension matches behind a score.
type Components struct {
	Valence float64 `json:"valence"`
	Tension float64 `json:"tension"`
	Hope    float64 `json:"hope"`
	Energy  float64 `json:"energy"`
}

// Score is how well an analysis matches one archetype.
type Score struct {
	Archetype  archetype.Name
	Score      float64
	Components Components
}

// Selection is the outcome of ranking the catalog.
type Selection struct {
	Primary        archetype.Name
	PrimaryScore   float64
	Secondary      *archetype.Name
	SecondaryScore *float64
	Intensity      archetype.Intensity
	BlendRatio     *float64
	Scores         []Score // ranked, best first
}

// DimensionMatch returns the Gaussian similarity of value to center.
// A zero tolerance uses the raw distance.
func DimensionMatch(value, center, tolerance float64) float64 {
	distance := math.Abs(value - center)
	if tolerance > 0 {
		distance /= tolerance
	}
	return clamp01(math.Exp(-(distance * distance)))
}

// EnergyMatch scores energy against an archetype's preferred levels.
func EnergyMatch(energy archetype.Energy, preferred []archetype.Energy) float64 {
	if slices.Contains(preferred, energy) {
		return energyExact
	}

	idx := slices.Index(archetype.EnergyOrder, energy)
	if idx == -1 {
		return energyUnknown
	}

	minDistance := -1
	for _, p := range preferred {
		pi := slices.Index(archetype.EnergyOrder, p)
		if pi == -1 {
			continue
		}
		d := idx - pi
		if d < 0 {
			d = -d
		}
		if minDistance == -1 || d < minDistance {
			minDistance = d
		}
	}

	switch minDistance {
	case 1:
		return energyAdjacent
	case 2:
		return energyFar
	default:
		return energyUnknown
	}
}

// ScoreArchetype scores a single archetype.
func ScoreArchetype(a analysis.NewsAnalysis, name archetype.Name) Score {
	p := archetype.ProfileOf(name)

	c := Components{
		Valence: DimensionMatch(a.Valence, p.Valence.Center, p.Valence.Tolerance),
		Tension: DimensionMatch(a.Tension, p.Tension.Center, p.Tension.Tolerance),
		Hope:    DimensionMatch(a.Hope, p.Hope.Center, p.Hope.Tolerance),
		Energy:  EnergyMatch(a.Energy, p.PreferredEnergy),
	}

	total := WeightValence*c.Valence +
		WeightTension*c.Tension +
		WeightHope*c.Hope +
		WeightEnergy*c.Energy

	return Score{
		Archetype:  name,
		Score:      clamp01(total),
		Components: c,
	}
}

// ScoreAll scores every archetype, best first. Equal scores keep catalog order.
func ScoreAll(a analysis.NewsAnalysis) []Score {
	all := archetype.All()
	scores := make([]Score, 0, len(all))
	for _, name := range all {
		scores = append(scores, ScoreArchetype(a, name))
	}

	slices.SortStableFunc(scores, func(x, y Score) int {
		switch {
		case x.Score > y.Score:
			return -1
		case x.Score < y.Score:
			return 1
		default:
			return 0
		}
	})
	return scores
}

// Select picks the primary archetype and, when one qualifies, the first
// compatible secondary in rank order.
func Select(a analysis.NewsAnalysis) Selection {
	scores := ScoreAll(a)
	primary := scores[0]

	sel := Selection{
		Primary:      primary.Archetype,
		PrimaryScore: primary.Score,
		Intensity:    archetype.IntensityLevel(a.Tension),
		Scores:       scores,
	}

	for _, candidate := range scores[1:] {
		if !archetype.Compatible(primary.Archetype, candidate.Archetype) {
			continue
		}

		var ratio float64
		if primary.Score > 0 {
			ratio = candidate.Score / primary.Score
		}
		if ratio < SecondaryRatio || candidate.Score < SecondaryMinScore {
			continue
		}

		secondary := candidate.Archetype
		secondaryScore := candidate.Score
		blend := 1.0
		if total := primary.Score + candidate.Score; total > 0 {
			blend = primary.Score / total
		}
		blend = round(blend, 2)

		sel.Secondary = &secondary
		sel.SecondaryScore = &secondaryScore
		sel.BlendRatio = &blend
		break
	}

	return sel
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
