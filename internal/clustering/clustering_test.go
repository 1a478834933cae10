package clustering

import (
	"testing"
	"time"

	"github.com/justestif/go-world-theme-player/internal/archetype"
)

var baseDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func makeDay(offset int, valence, tension, hope float64, energy archetype.Energy, primary archetype.Name, themes ...string) Day {
	return Day{
		Date:    baseDate.AddDate(0, 0, offset),
		Valence: valence,
		Tension: tension,
		Hope:    hope,
		Energy:  energy,
		Primary: primary,
		Themes:  themes,
	}
}

func TestMeanOf(t *testing.T) {
	days := []Day{
		makeDay(0, 0.5, 0.2, 0.8, archetype.EnergyLow, archetype.TranquilOptimism),
		makeDay(1, -0.5, 0.4, 0.4, archetype.EnergyHigh, archetype.GentleTension),
	}

	got := meanOf(days)
	want := Centroid{Valence: 0, Tension: 0.3, Hope: 0.6, Energy: (0.33 + 1.0) / 2}
	if !near(got.Valence, want.Valence) || !near(got.Tension, want.Tension) ||
		!near(got.Hope, want.Hope) || !near(got.Energy, want.Energy) {
		t.Errorf("meanOf() = %+v, want %+v", got, want)
	}

	if got := meanOf(nil); got != (Centroid{}) {
		t.Errorf("meanOf(nil) = %+v, want zero", got)
	}
}

func TestDominant(t *testing.T) {
	tests := []struct {
		name      string
		primaries []archetype.Name
		want      archetype.Name
	}{
		{"majority", []archetype.Name{archetype.GentleTension, archetype.CautiousHope, archetype.GentleTension}, archetype.GentleTension},
		{"tie goes to catalog order", []archetype.Name{archetype.CautiousHope, archetype.ReflectiveCalm}, archetype.ReflectiveCalm},
		{"single", []archetype.Name{archetype.SereneResilience}, archetype.SereneResilience},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := make([]Day, len(tt.primaries))
			for i, p := range tt.primaries {
				days[i] = Day{Primary: p}
			}
			if got := dominant(days); got != tt.want {
				t.Errorf("dominant() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFormatEraName(t *testing.T) {
	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want string
	}{
		{"range", start.AddDate(0, 0, 7), "Hopeful Calm: Jan 2, 2026 - Jan 9, 2026"},
		{"same day", start, "Hopeful Calm: Jan 2, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatEraName("Hopeful Calm", start, tt.end); got != tt.want {
				t.Errorf("formatEraName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	got := Config{NumClusters: 0, MinClusterSize: -2}.withDefaults()
	if got.NumClusters != DefaultConfig().NumClusters {
		t.Errorf("NumClusters = %d, want default", got.NumClusters)
	}
	if got.MinClusterSize != 0 {
		t.Errorf("MinClusterSize = %d, want 0", got.MinClusterSize)
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
