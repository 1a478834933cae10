package clustering

import (
	"strings"
	"testing"

	"github.com/justestif/go-world-theme-player/internal/archetype"
)

func TestFormatEraSummary(t *testing.T) {
	makeEra := func(days ...Day) Era {
		era := newEra(days)
		era.Name = formatEraName(era.Mood, era.StartDate, era.EndDate)
		return era
	}
	calm := func(i int) Day {
		return makeDay(i, 0.7, 0.2, 0.8, archetype.EnergyMedium, archetype.TranquilOptimism)
	}

	tests := []struct {
		name           string
		eras           []Era
		outliers       []Day
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "empty eras no outliers",
			wantContains:   []string{"No eras found from 0 days"},
			wantNotContain: []string{"outliers"},
		},
		{
			name:     "empty eras with outliers",
			outliers: []Day{calm(0)},
			wantContains: []string{
				"No eras found from 1 day",
				"(1 outliers skipped)",
			},
		},
		{
			name: "single era with 3 days",
			eras: []Era{makeEra(calm(0), calm(1), calm(2))},
			wantContains: []string{
				"Found 1 era from 3 days",
				"Era 1: 2026-01-01 to 2026-01-03 (3 days)",
				"Hopeful Calm, mostly Tranquil Optimism",
				"• 2026-01-01 Tranquil Optimism (valence +0.70, tension 0.20)",
			},
			wantNotContain: []string{"more"},
		},
		{
			name:     "era with more than 3 days",
			eras:     []Era{makeEra(calm(0), calm(1), calm(2), calm(3), calm(4))},
			outliers: []Day{calm(9), calm(10)},
			wantContains: []string{
				"Found 1 era from 7 days (2 outliers skipped)",
				"... and 2 more",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatEraSummary(tt.eras, tt.outliers)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("summary missing %q\n%s", want, got)
				}
			}
			for _, bad := range tt.wantNotContain {
				if strings.Contains(got, bad) {
					t.Errorf("summary unexpectedly contains %q\n%s", bad, got)
				}
			}
		})
	}
}
