package clustering

// Quadrant thresholds on the centroid.
const (
	positiveValence = 0.0
	tenseThreshold  = 0.5
	hopefulHope     = 0.6
)

// moodName names a centroid by its valence/tension quadrant.
//
// Quadrants:
//   - Positive valence + low tension  = "Hopeful Calm"
//   - Positive valence + high tension = "Restless Optimism"
//   - Negative valence + low tension  = "Quiet Melancholy"
//   - Negative valence + high tension = "Anxious Gloom"
//
// Hope above 0.6 on a negative quadrant appends "(Hopeful)".
func moodName(c Centroid) string {
	positive := c.Valence > positiveValence
	tense := c.Tension > tenseThreshold

	var base string
	switch {
	case positive && !tense:
		base = "Hopeful Calm"
	case positive && tense:
		base = "Restless Optimism"
	case !positive && !tense:
		base = "Quiet Melancholy"
	default:
		base = "Anxious Gloom"
	}

	if !positive && c.Hope > hopefulHope {
		return base + " (Hopeful)"
	}
	return base
}

func describeMood(c Centroid) string {
	positive := c.Valence > positiveValence
	tense := c.Tension > tenseThreshold

	switch {
	case positive && !tense:
		return "Good news at an easy pace"
	case positive && tense:
		return "Upbeat headlines with an edge of unease"
	case !positive && !tense:
		return "Somber but settled news cycle"
	default:
		return "Heavy, high-stakes headlines"
	}
}
