package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justestif/go-world-theme-player/internal/archetype"
	"github.com/justestif/go-world-theme-player/internal/selector"
	"github.com/justestif/go-world-theme-player/internal/texture"
)

func newArchetypesCommand() *cobra.Command {
	var analysisPath string

	cmd := &cobra.Command{
		Use:         "archetypes",
		Short:       "List the archetype catalog, or score an analysis against it",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if analysisPath == "" {
				fmt.Fprintln(out, catalogTable())
				return nil
			}

			a, err := readAnalysis(cmd, analysisPath)
			if err != nil {
				return err
			}
			sel := selector.Select(a)

			fmt.Fprintf(out, "Analysis: valence %+.2f, tension %.2f, hope %.2f, energy %s\n",
				a.Valence, a.Tension, a.Hope, a.Energy)
			fmt.Fprintln(out, scoresTable(sel))
			return nil
		},
	}

	cmd.Flags().StringVarP(&analysisPath, "analysis", "a", "", "Score this sentiment analysis JSON file (- for stdin)")
	return cmd
}

func catalogTable() string {
	rows := make([][]string, 0, len(archetype.All()))
	for _, n := range archetype.All() {
		d := archetype.Describe(n)
		p := archetype.ProfileOf(n)
		energies := make([]string, len(p.PreferredEnergy))
		for i, e := range p.PreferredEnergy {
			energies[i] = string(e)
		}
		rows = append(rows, []string{
			d.Title,
			d.Genre,
			fmt.Sprintf("%d", d.BPM),
			formatRange(p.Valence),
			formatRange(p.Tension),
			formatRange(p.Hope),
			strings.Join(energies, ", "),
			blendTitles(archetype.CompatibleWith(n)),
		})
	}
	return renderTable(
		[]string{"Archetype", "Genre", "BPM", "Valence", "Tension", "Hope", "Energy", "Blends with"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft},
	)
}

func blendTitles(names []archetype.Name) string {
	titles := make([]string, len(names))
	for i, n := range names {
		titles[i] = n.Title()
	}
	return strings.Join(titles, ", ")
}

func formatRange(r archetype.Range) string {
	return fmt.Sprintf("%.2f ±%.2f", r.Center, r.Tolerance)
}

func scoresTable(sel selector.Selection) string {
	rows := make([][]string, 0, len(sel.Scores))
	for i, s := range sel.Scores {
		role := ""
		switch {
		case s.Archetype == sel.Primary:
			role = "primary"
		case sel.Secondary != nil && s.Archetype == *sel.Secondary:
			role = "secondary"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			s.Archetype.Title(),
			formatScore(s.Score),
			formatScore(s.Components.Valence),
			formatScore(s.Components.Tension),
			formatScore(s.Components.Hope),
			formatScore(s.Components.Energy),
			role,
		})
	}

	table := renderTable(
		[]string{"#", "Archetype", "Score", "Valence", "Tension", "Hope", "Energy", "Role"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	)

	blend := "no blend"
	if sel.BlendRatio != nil {
		blend = fmt.Sprintf("blend ratio %.2f", *sel.BlendRatio)
	}
	return fmt.Sprintf("%s\nIntensity: %s, %s", table, sel.Intensity, blend)
}

func newThemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "themes",
		Short:       "List the canonical news themes and their aliases",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), themesTable())
			return nil
		},
	}
}

func themesTable() string {
	byTheme := make(map[string][]string)
	for alias, canonical := range texture.Aliases() {
		byTheme[canonical] = append(byTheme[canonical], alias)
	}

	rows := make([][]string, 0, len(texture.Themes()))
	for _, theme := range texture.Themes() {
		aliases := byTheme[theme]
		slices.Sort(aliases)
		t := texture.Lookup(theme)
		words := texture.Blend{Timbre: t.Timbre, Movement: t.Movement, Harmonic: t.Harmonic}.Fragments()
		rows = append(rows, []string{
			theme,
			strings.Join(aliases, ", "),
			strings.Join(t.Timbre, ", "),
			strings.Join(words, ", "),
		})
	}

	return renderTable([]string{"Theme", "Aliases", "Timbre", "Prompt words"}, rows, nil)
}
