package selector

import (
	"encoding/json"
	"fmt"

	"github.com/justestif/go-world-theme-player/internal/archetype"
)

// Scores and components are rounded to three places on the wire.
const wirePlaces = 3

type selectionJSON struct {
	Primary        archetype.Name      `json:"primary"`
	PrimaryScore   float64             `json:"primary_score"`
	Secondary      *archetype.Name     `json:"secondary"`
	SecondaryScore *float64            `json:"secondary_score"`
	Intensity      archetype.Intensity `json:"intensity_level"`
	BlendRatio     *float64            `json:"blend_ratio"`
	AllScores      []scoreJSON         `json:"all_scores"`
}

type scoreJSON struct {
	Archetype  archetype.Name `json:"archetype"`
	Score      float64        `json:"score"`
	Components Components     `json:"components"`
}

// MarshalJSON writes the selection in its persisted shape.
func (s Selection) MarshalJSON() ([]byte, error) {
	out := selectionJSON{
		Primary:      s.Primary,
		PrimaryScore: round(s.PrimaryScore, wirePlaces),
		Secondary:    s.Secondary,
		Intensity:    s.Intensity,
		BlendRatio:   s.BlendRatio,
		AllScores:    make([]scoreJSON, len(s.Scores)),
	}
	if s.SecondaryScore != nil {
		v := round(*s.SecondaryScore, wirePlaces)
		out.SecondaryScore = &v
	}
	for i, sc := range s.Scores {
		out.AllScores[i] = scoreJSON{
			Archetype: sc.Archetype,
			Score:     round(sc.Score, wirePlaces),
			Components: Components{
				Valence: round(sc.Components.Valence, wirePlaces),
				Tension: round(sc.Components.Tension, wirePlaces),
				Hope:    round(sc.Components.Hope, wirePlaces),
				Energy:  round(sc.Components.Energy, wirePlaces),
			},
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a persisted selection.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var in selectionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decoding selection: %w", err)
	}

	*s = Selection{
		Primary:        in.Primary,
		PrimaryScore:   in.PrimaryScore,
		Secondary:      in.Secondary,
		SecondaryScore: in.SecondaryScore,
		Intensity:      archetype.ParseIntensity(string(in.Intensity)),
		BlendRatio:     in.BlendRatio,
		Scores:         make([]Score, len(in.AllScores)),
	}
	for i, sc := range in.AllScores {
		s.Scores[i] = Score{Archetype: sc.Archetype, Score: sc.Score, Components: sc.Components}
	}
	return nil
}
