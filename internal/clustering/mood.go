package clustering

import (
	"github.com/muesli/clusters"
)

// DetectMoodEras groups days by mood similarity using k-means clustering.
// Each day is a point of normalized valence, tension, hope and energy.
// Returns the eras, most recent first, and the outlier days that don't fit
// any era. On a clustering error every day is returned as an outlier along
// with the error.
func DetectMoodEras(days []Day, cfg Config) ([]Era, []Day, error) {
	if len(days) == 0 {
		return nil, nil, nil
	}
	cfg = cfg.withDefaults()

	groups, outliers, err := partition(pointers(days), moodCoordinates, cfg)
	if err != nil {
		return nil, outliers, err
	}

	eras := make([]Era, 0, len(groups))
	for _, g := range groups {
		era := newEra(g)
		era.Name = formatEraName(era.Mood+" ("+era.Dominant.Title()+")", era.StartDate, era.EndDate)
		eras = append(eras, era)
	}
	sortEras(eras)

	return eras, outliers, nil
}

// moodCoordinates maps a day into the unit hypercube.
func moodCoordinates(d *Day) clusters.Coordinates {
	return clusters.Coordinates{
		(d.Valence + 1) / 2,
		d.Tension,
		d.Hope,
		d.Energy.Scale(),
	}
}
