package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justestif/go-world-theme-player/internal/clustering"
	"github.com/justestif/go-world-theme-player/internal/eras"
	"github.com/justestif/go-world-theme-player/internal/results"
)

func newErasCommand(ctx *commandContext) *cobra.Command {
	var by string
	var k, minSize int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "eras",
		Short: "Group archived runs into mood eras",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			mode, err := eras.ParseMode(by)
			if err != nil {
				return err
			}

			clusterCfg := clustering.DefaultConfig()
			if k > 0 {
				clusterCfg.NumClusters = k
			}
			if minSize > 0 {
				clusterCfg.MinClusterSize = minSize
			}

			svc := eras.New(results.NewStore(cfg.Paths.ResultsDir))
			res, err := svc.Detect(cmd.Context(), mode, clusterCfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			if res.TotalDays == 0 {
				fmt.Fprintf(out, "No archived runs in %s yet. Run `world-theme-player run` first.\n", cfg.Paths.ResultsDir)
				return nil
			}

			fmt.Fprintln(out, erasTable(res.Eras))
			fmt.Fprint(out, clustering.FormatEraSummary(res.Eras, res.Outliers))
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", string(eras.ByMood), "Cluster by mood or themes")
	cmd.Flags().IntVar(&k, "k", 0, "Number of clusters (default 3)")
	cmd.Flags().IntVar(&minSize, "min", 0, "Minimum days per era (default 3)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func erasTable(list []clustering.Era) string {
	rows := make([][]string, 0, len(list))
	for i, e := range list {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Mood,
			e.Dominant.Title(),
			e.StartDate.Format("2006-01-02"),
			e.EndDate.Format("2006-01-02"),
			fmt.Sprintf("%d", len(e.Days)),
		})
	}
	return renderTable(
		[]string{"#", "Mood", "Dominant", "From", "To", "Days"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}
