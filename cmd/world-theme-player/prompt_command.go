package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justestif/go-world-theme-player/internal/pipeline"
	"github.com/justestif/go-world-theme-player/internal/prompt"
)

func newPromptCommand() *cobra.Command {
	var analysisPath string
	var dateFlag string
	var format string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Build a music prompt from a saved sentiment analysis",
		Long: `Build a music prompt from a sentiment analysis JSON file without calling
any external service. Use "-" to read the analysis from stdin.`,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}
			a, err := readAnalysis(cmd, analysisPath)
			if err != nil {
				return err
			}

			comp := pipeline.Compose(a, date)
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(comp)
			case string(prompt.StyleDefault), string(prompt.StyleMinimal), string(prompt.StyleNatural):
				_, err := fmt.Fprintln(out, comp.Prompt.Get(prompt.Style(format)))
				return err
			default:
				return fmt.Errorf("unknown format %q (want default, minimal, natural or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&analysisPath, "analysis", "a", "", "Sentiment analysis JSON file (- for stdin)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date seed (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&format, "format", "f", "default", "Output format: default, minimal, natural or json")
	_ = cmd.MarkFlagRequired("analysis")
	return cmd
}
