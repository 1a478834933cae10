// Package clustering groups archived daily news moods into eras with k-means.
package clustering

import (
	"fmt"
	"slices"
	"time"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-world-theme-player/internal/archetype"
)

// Day is one archived day's mood.
type Day struct {
	Date    time.Time        `json:"date"`
	Valence float64          `json:"valence"` // -1..1
	Tension float64          `json:"tension"`
	Hope    float64          `json:"hope"`
	Energy  archetype.Energy `json:"energy"`
	Themes  []string         `json:"themes,omitempty"`
	Primary archetype.Name   `json:"primary"`
}

// Centroid is the mean mood of an era. Energy is on the 0..1 scale of
// archetype.Energy.Scale.
type Centroid struct {
	Valence float64 `json:"valence"`
	Tension float64 `json:"tension"`
	Hope    float64 `json:"hope"`
	Energy  float64 `json:"energy"`
}

// Era is a run of days that clustered together.
type Era struct {
	Name        string         `json:"name"` // "Quiet Melancholy (Melancholic Beauty): Jan 2, 2026 - Jan 9, 2026"
	Mood        string         `json:"mood"`
	Description string         `json:"description"`
	TopThemes   []string       `json:"top_themes,omitempty"`
	Dominant    archetype.Name `json:"dominant_archetype"`
	Centroid    Centroid       `json:"centroid"`
	Days        []Day          `json:"days"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
}

// Config holds clustering parameters.
type Config struct {
	NumClusters    int `json:"num_clusters"`     // Number of clusters to create (default: 3)
	MinClusterSize int `json:"min_cluster_size"` // Minimum days per era (smaller clusters become outliers)
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumClusters:    3,
		MinClusterSize: 3,
	}
}

func (c Config) withDefaults() Config {
	if c.NumClusters <= 0 {
		c.NumClusters = DefaultConfig().NumClusters
	}
	if c.MinClusterSize < 0 {
		c.MinClusterSize = 0
	}
	return c
}

// dayObservation wraps a Day to implement clusters.Observation.
type dayObservation struct {
	day    *Day
	coords clusters.Coordinates
}

func (o dayObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o dayObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// partition runs k-means over days using coords as the feature vector and
// returns each cluster's days sorted by date plus the days in clusters
// smaller than cfg.MinClusterSize.
// Fewer days than clusters makes every day an outlier.
func partition(days []*Day, coords func(*Day) clusters.Coordinates, cfg Config) ([][]Day, []Day, error) {
	if len(days) < cfg.NumClusters {
		return nil, derefAll(days), nil
	}

	obs := make(clusters.Observations, len(days))
	for i, d := range days {
		obs[i] = dayObservation{day: d, coords: coords(d)}
	}

	result, err := kmeans.New().Partition(obs, cfg.NumClusters)
	if err != nil {
		return nil, derefAll(days), fmt.Errorf("k-means clustering: %w", err)
	}

	var groups [][]Day
	var outliers []Day
	for _, cluster := range result {
		var members []Day
		for _, o := range cluster.Observations {
			if do, ok := o.(dayObservation); ok {
				members = append(members, *do.day)
			}
		}
		if len(members) == 0 {
			continue
		}
		if len(members) < cfg.MinClusterSize {
			outliers = append(outliers, members...)
			continue
		}
		slices.SortFunc(members, func(a, b Day) int { return a.Date.Compare(b.Date) })
		groups = append(groups, members)
	}

	slices.SortFunc(outliers, func(a, b Day) int { return a.Date.Compare(b.Date) })
	return groups, outliers, nil
}

// newEra builds the shared parts of an era from its date-sorted days.
func newEra(days []Day) Era {
	c := meanOf(days)
	return Era{
		Mood:        moodName(c),
		Description: describeMood(c),
		Dominant:    dominant(days),
		Centroid:    c,
		Days:        days,
		StartDate:   days[0].Date,
		EndDate:     days[len(days)-1].Date,
	}
}

// sortEras orders eras by start date, most recent first.
func sortEras(eras []Era) {
	slices.SortFunc(eras, func(a, b Era) int {
		return b.StartDate.Compare(a.StartDate)
	})
}

func meanOf(days []Day) Centroid {
	var c Centroid
	if len(days) == 0 {
		return c
	}
	for _, d := range days {
		c.Valence += d.Valence
		c.Tension += d.Tension
		c.Hope += d.Hope
		c.Energy += d.Energy.Scale()
	}
	n := float64(len(days))
	c.Valence /= n
	c.Tension /= n
	c.Hope /= n
	c.Energy /= n
	return c
}

// dominant returns the most frequent primary archetype; ties go to catalog
// order.
func dominant(days []Day) archetype.Name {
	counts := make(map[archetype.Name]int)
	for _, d := range days {
		counts[d.Primary]++
	}
	best, bestCount := archetype.Name(0), -1
	for _, n := range archetype.All() {
		if counts[n] > bestCount {
			best, bestCount = n, counts[n]
		}
	}
	return best
}

// formatEraName combines a label with a date range.
func formatEraName(label string, start, end time.Time) string {
	const dateFormat = "Jan 2, 2006"
	startStr := start.Format(dateFormat)
	endStr := end.Format(dateFormat)

	if startStr == endStr {
		return fmt.Sprintf("%s: %s", label, startStr)
	}
	return fmt.Sprintf("%s: %s - %s", label, startStr, endStr)
}

func derefAll(days []*Day) []Day {
	out := make([]Day, len(days))
	for i, d := range days {
		out[i] = *d
	}
	return out
}

func pointers(days []Day) []*Day {
	out := make([]*Day, len(days))
	for i := range days {
		out[i] = &days[i]
	}
	return out
}
