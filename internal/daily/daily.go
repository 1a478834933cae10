// Package daily derives reproducible per-day randomness from a calendar date.
//
// Every date maps to one 32-bit seed: the MD5 digest of the lowercase
// ISO-8601 date ("2006-01-02"), first four bytes read big-endian. The texture
// blender and the daily variation both draw from generators built on it.
package daily

import (
	"crypto/md5"
	"encoding/binary"
	"math/rand/v2"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used for seeding.
const DateLayout = "2006-01-02"

// Emphasis selects which texture family colors the prompt.
type Emphasis string

// Texture emphasis choices.
const (
	EmphasisTimbre   Emphasis = "timbre"
	EmphasisMovement Emphasis = "movement"
	EmphasisHarmonic Emphasis = "harmonic"
)

var emphases = []Emphasis{EmphasisTimbre, EmphasisMovement, EmphasisHarmonic}

// Tempo nudge bounds, inclusive. Biased slightly toward faster.
const (
	MinTempoNudge = -2
	MaxTempoNudge = 3
)

// MaxInstrumentRotation is the largest rotation index, inclusive.
const MaxInstrumentRotation = 2

// Variation is the bundle of small per-day adjustments.
type Variation struct {
	InstrumentRotation int      `json:"instrument_rotation"`
	MoodShuffleSeed    uint32   `json:"mood_shuffle_seed"`
	TextureEmphasis    Emphasis `json:"texture_emphasis"`
	TempoNudge         int      `json:"tempo_nudge"`
}

// Day returns midnight UTC of t's calendar date in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar date.
func Today() time.Time {
	return Day(time.Now())
}

// Format renders the ISO date used as seed input and file key.
func Format(date time.Time) string {
	return strings.ToLower(date.Format(DateLayout))
}

// Seed returns the seed for date.
func Seed(date time.Time) uint32 {
	sum := md5.Sum([]byte(Format(date)))
	return binary.BigEndian.Uint32(sum[:4])
}

// NewRand returns a generator seeded from seed.
func NewRand(seed uint32) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// FromDate derives the variation for date. The draws happen in a fixed order
// from one generator: rotation, emphasis, nudge.
func FromDate(date time.Time) Variation {
	seed := Seed(date)
	rng := NewRand(seed)

	return Variation{
		InstrumentRotation: rng.IntN(MaxInstrumentRotation + 1),
		MoodShuffleSeed:    seed,
		TextureEmphasis:    emphases[rng.IntN(len(emphases))],
		TempoNudge:         MinTempoNudge + rng.IntN(MaxTempoNudge-MinTempoNudge+1),
	}
}

// Shuffle permutes items in place with rng.
func Shuffle[T any](rng *rand.Rand, items []T) {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
