package clustering

import (
	"cmp"
	"slices"
	"strings"

	"github.com/muesli/clusters"
)

// ThemeConfig holds theme-based clustering parameters.
type ThemeConfig struct {
	Config
	MaxThemes int // Maximum themes to use in vectors (default: 30)
}

// DefaultThemeConfig returns the recommended default configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		Config:    DefaultConfig(),
		MaxThemes: 30,
	}
}

// DetectThemeEras groups days by the news themes they share.
// Returns the eras, most recent first, and the outlier days. Days without
// themes are always outliers.
func DetectThemeEras(days []Day, cfg ThemeConfig) ([]Era, []Day, error) {
	if len(days) == 0 {
		return nil, nil, nil
	}
	cfg.Config = cfg.Config.withDefaults()
	if cfg.MaxThemes <= 0 {
		cfg.MaxThemes = DefaultThemeConfig().MaxThemes
	}

	var withThemes []*Day
	var noThemes []Day
	for i := range days {
		if len(days[i].Themes) > 0 {
			withThemes = append(withThemes, &days[i])
		} else {
			noThemes = append(noThemes, days[i])
		}
	}

	vocabulary := buildThemeVocabulary(withThemes, cfg.MaxThemes)
	if len(vocabulary) == 0 {
		return nil, append(derefAll(withThemes), noThemes...), nil
	}

	index := make(map[string]int, len(vocabulary))
	for i, theme := range vocabulary {
		index[theme] = i
	}
	coords := func(d *Day) clusters.Coordinates {
		return themeVector(d, index)
	}

	groups, outliers, err := partition(withThemes, coords, cfg.Config)
	outliers = append(outliers, noThemes...)
	if err != nil {
		return nil, outliers, err
	}

	eras := make([]Era, 0, len(groups))
	for _, g := range groups {
		era := newEra(g)
		era.TopThemes = topThemes(g, index, vocabulary, 3)
		era.Name = themeEraName(era)
		eras = append(eras, era)
	}
	sortEras(eras)

	return eras, outliers, nil
}

type themeCount struct {
	name  string
	count int
}

// buildThemeVocabulary returns the maxThemes most common lowercase themes.
// Ties are broken alphabetically.
func buildThemeVocabulary(days []*Day, maxThemes int) []string {
	counts := make(map[string]int)
	for _, d := range days {
		for _, theme := range d.Themes {
			if name := normalizeTheme(theme); name != "" {
				counts[name]++
			}
		}
	}

	themeCounts := make([]themeCount, 0, len(counts))
	for name, count := range counts {
		themeCounts = append(themeCounts, themeCount{name: name, count: count})
	}
	slices.SortFunc(themeCounts, func(a, b themeCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})

	n := min(maxThemes, len(themeCounts))
	vocabulary := make([]string, n)
	for i := range n {
		vocabulary[i] = themeCounts[i].name
	}
	return vocabulary
}

// themeVector marks each vocabulary theme present on the day. Earlier
// themes in the day's list weigh more: 1, 0.8, 0.6, ...
func themeVector(d *Day, index map[string]int) clusters.Coordinates {
	vector := make(clusters.Coordinates, len(index))
	for rank, theme := range d.Themes {
		if i, ok := index[normalizeTheme(theme)]; ok {
			vector[i] = max(vector[i], max(1-0.2*float64(rank), 0.2))
		}
	}
	return vector
}

// topThemes returns the n themes with the highest mean weight in days.
func topThemes(days []Day, index map[string]int, vocabulary []string, n int) []string {
	weights := make([]float64, len(vocabulary))
	for i := range days {
		for j, w := range themeVector(&days[i], index) {
			weights[j] += w
		}
	}

	order := make([]int, len(vocabulary))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(weights[b], weights[a])
	})

	result := make([]string, 0, n)
	for _, i := range order {
		if len(result) == n || weights[i] == 0 {
			break
		}
		result = append(result, vocabulary[i])
	}
	return result
}

func themeEraName(era Era) string {
	label := "Mixed"
	if len(era.TopThemes) > 0 {
		label = strings.Join(era.TopThemes, " & ")
	}
	return formatEraName(label, era.StartDate, era.EndDate)
}

func normalizeTheme(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
