package clustering

import (
	"fmt"
	"strings"
)

const (
	sampleDayCount = 3
	dateFormat     = "2006-01-02"
)

// FormatEraSummary returns a human-readable summary of detected eras.
// Shows date range, day count, and the first 3 days of each era.
// Outliers are summarized by count only.
func FormatEraSummary(eras []Era, outliers []Day) string {
	var sb strings.Builder

	totalDays := len(outliers)
	for _, era := range eras {
		totalDays += len(era.Days)
	}

	if len(eras) == 0 {
		fmt.Fprintf(&sb, "No eras found from %d %s", totalDays, plural(totalDays, "day", "days"))
		if len(outliers) > 0 {
			fmt.Fprintf(&sb, " (%d outliers skipped)", len(outliers))
		}
		sb.WriteString("\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Found %d %s from %d days", len(eras), plural(len(eras), "era", "eras"), totalDays)
	if len(outliers) > 0 {
		fmt.Fprintf(&sb, " (%d outliers skipped)", len(outliers))
	}
	sb.WriteString("\n")

	for i, era := range eras {
		sb.WriteString("\n")
		sb.WriteString(formatEra(i+1, era))
	}

	return sb.String()
}

// formatEra formats a single era with its sample days.
func formatEra(num int, era Era) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Era %d: %s to %s (%d %s)\n",
		num, era.StartDate.Format(dateFormat), era.EndDate.Format(dateFormat),
		len(era.Days), plural(len(era.Days), "day", "days"))
	fmt.Fprintf(&sb, "  %s, mostly %s\n", era.Mood, era.Dominant.Title())

	for _, d := range era.Days[:min(sampleDayCount, len(era.Days))] {
		fmt.Fprintf(&sb, "  • %s %s (valence %+.2f, tension %.2f)\n",
			d.Date.Format(dateFormat), d.Primary.Title(), d.Valence, d.Tension)
	}

	if remaining := len(era.Days) - sampleDayCount; remaining > 0 {
		fmt.Fprintf(&sb, "  ... and %d more\n", remaining)
	}

	return sb.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
