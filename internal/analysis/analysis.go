// Package analysis defines the news mood record that drives archetype
// selection and decodes it from untrusted sentiment output.
package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/justestif/go-world-theme-player/internal/archetype"
)

// MaxThemes is the number of dominant themes kept from the input.
const MaxThemes = 5

// Defaults applied when a field is missing or unparseable.
const (
	DefaultValence = 0.0
	DefaultTension = 0.5
	DefaultHope    = 0.5
	DefaultEnergy  = archetype.EnergyMedium
)

// ErrNoAnalysis is returned when the input holds no analysis at all.
var ErrNoAnalysis = errors.New("no news analysis available")

// NewsAnalysis is the mood of a day's news. Values are always in range;
// construct it with New or Decode.
type NewsAnalysis struct {
	Valence float64          `json:"emotional_valence"`
	Tension float64          `json:"tension_level"`
	Hope    float64          `json:"hope_factor"`
	Energy  archetype.Energy `json:"energy_level"`
	Themes  []string         `json:"dominant_themes"`
	Summary string           `json:"summary"`
}

// New builds a NewsAnalysis, clamping numbers into range, coercing an
// unknown energy level to medium and trimming the theme list.
func New(valence, tension, hope float64, energy string, themes []string, summary string) NewsAnalysis {
	return NewsAnalysis{
		Valence: clamp(valence, -1, 1, DefaultValence),
		Tension: clamp(tension, 0, 1, DefaultTension),
		Hope:    clamp(hope, 0, 1, DefaultHope),
		Energy:  ParseEnergy(energy),
		Themes:  cleanThemes(themes),
		Summary: strings.TrimSpace(summary),
	}
}

// ParseEnergy maps s to a known energy level, case-insensitively.
// Anything else becomes medium.
func ParseEnergy(s string) archetype.Energy {
	switch e := archetype.Energy(strings.ToLower(strings.TrimSpace(s))); e {
	case archetype.EnergyLow, archetype.EnergyMedium, archetype.EnergyHigh:
		return e
	default:
		return DefaultEnergy
	}
}

// Raw is the loosely typed wire shape produced by a sentiment model.
// Numbers may arrive as JSON numbers or numeric strings, text fields as
// any scalar and themes as a list or a comma-separated string.
type Raw struct {
	Valence *Number   `json:"emotional_valence"`
	Tension *Number   `json:"tension_level"`
	Hope    *Number   `json:"hope_factor"`
	Energy  Text      `json:"energy_level"`
	Themes  ThemeList `json:"dominant_themes"`
	Summary Text      `json:"summary"`
}

// Normalize converts r into a NewsAnalysis, filling defaults for missing fields.
func (r Raw) Normalize() NewsAnalysis {
	return New(
		r.Valence.orDefault(DefaultValence),
		r.Tension.orDefault(DefaultTension),
		r.Hope.orDefault(DefaultHope),
		string(r.Energy),
		r.Themes,
		string(r.Summary),
	)
}

// Decode parses sentiment JSON. Surrounding text is tolerated as long as it
// contains one JSON object. A missing or null payload returns ErrNoAnalysis.
func Decode(data []byte) (NewsAnalysis, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return NewsAnalysis{}, ErrNoAnalysis
	}

	var raw Raw
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		start := bytes.IndexByte(trimmed, '{')
		end := bytes.LastIndexByte(trimmed, '}')
		if start == -1 || end <= start {
			return NewsAnalysis{}, fmt.Errorf("%w: no JSON object in input", ErrNoAnalysis)
		}
		raw = Raw{}
		if err := json.Unmarshal(trimmed[start:end+1], &raw); err != nil {
			return NewsAnalysis{}, fmt.Errorf("parsing analysis: %w", err)
		}
	}

	return raw.Normalize(), nil
}

// UnmarshalJSON decodes through Raw so values read from disk or an HTTP
// body are normalized the same way as model output.
func (a *NewsAnalysis) UnmarshalJSON(data []byte) error {
	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = raw.Normalize()
	return nil
}

// Number accepts a JSON number or a numeric string.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*n = Number(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = Number(math.NaN())
		return nil
	}
	*n = Number(f)
	return nil
}

// Text accepts any JSON value. Strings and other scalars keep their text;
// objects, arrays and null become empty.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text(scalarText(data))
	return nil
}

// ThemeList accepts a list of themes or one comma-separated string.
// Non-string list elements are dropped.
type ThemeList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *ThemeList) UnmarshalJSON(data []byte) error {
	var s string
	if json.Unmarshal(data, &s) == nil {
		*l = strings.Split(s, ",")
		return nil
	}

	var items []json.RawMessage
	if json.Unmarshal(data, &items) != nil {
		*l = nil
		return nil
	}
	out := make(ThemeList, 0, len(items))
	for _, item := range items {
		var theme string
		if bytes.HasPrefix(item, []byte(`"`)) && json.Unmarshal(item, &theme) == nil {
			out = append(out, theme)
		}
	}
	*l = out
	return nil
}

func scalarText(data []byte) string {
	data = bytes.TrimSpace(data)
	var s string
	if json.Unmarshal(data, &s) == nil {
		return s
	}
	if len(data) == 0 || data[0] == '{' || data[0] == '[' || bytes.Equal(data, []byte("null")) {
		return ""
	}
	return string(data)
}

func (n *Number) orDefault(def float64) float64 {
	if n == nil {
		return def
	}
	return float64(*n)
}

// clamp bounds v to [lo, hi]; NaN becomes def.
func clamp(v, lo, hi, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return math.Max(lo, math.Min(hi, v))
}

func cleanThemes(themes []string) []string {
	out := make([]string, 0, min(len(themes), MaxThemes))
	for _, t := range themes {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == MaxThemes {
			break
		}
	}
	return out
}
