package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/justestif/go-world-theme-player/internal/config"
	"github.com/justestif/go-world-theme-player/internal/headlines"
	"github.com/justestif/go-world-theme-player/internal/llm"
	"github.com/justestif/go-world-theme-player/internal/musicgen"
	"github.com/justestif/go-world-theme-player/internal/newsapi"
	"github.com/justestif/go-world-theme-player/internal/pipeline"
	"github.com/justestif/go-world-theme-player/internal/results"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dateFlag string
	var noMusic bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch headlines, analyze the mood and build today's music prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			runner, err := newRunner(cfg, !noMusic, logger)
			if err != nil {
				return err
			}

			run, err := runner.Run(cmd.Context(), date)
			if err != nil {
				return err
			}

			printRun(cmd.OutOrStdout(), run, cfg.Paths.ResultsDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date to run for (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&noMusic, "no-music", false, "Skip audio generation")
	return cmd
}

// newRunner wires the adapters from cfg. Music generation is attached only
// when enabled and a Replicate token is configured.
func newRunner(cfg *config.Config, music bool, logger *slog.Logger) (*pipeline.Runner, error) {
	if cfg.News.APIKey == "" {
		return nil, fmt.Errorf("%w (or set news.api_key)", newsapi.ErrMissingAPIKey)
	}
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("%w (or set llm.api_key)", llm.ErrMissingAPIKey)
	}

	news := newsapi.NewClient(&newsapi.Config{
		APIKey:  cfg.News.APIKey,
		BaseURL: cfg.News.BaseURL,
	})
	fetcher := headlines.NewService(news,
		headlines.WithConcurrency(cfg.News.Concurrency),
		headlines.WithPageSize(cfg.News.ArticlesPerLanguage),
	)
	analyzer := llm.NewAnalyzer(&llm.Config{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
	}, llm.WithLogger(logger))
	store := results.NewStore(cfg.Paths.ResultsDir)

	opts := []pipeline.Option{
		pipeline.WithLanguages(cfg.News.Languages...),
		pipeline.WithLogger(logger),
	}

	if music && cfg.MusicGen.Enabled {
		token := musicgen.CleanToken(cfg.MusicGen.APIToken)
		if token == "" {
			return nil, errors.Join(musicgen.ErrMissingAPIToken,
				errors.New("set musicgen.api_token, export REPLICATE_API_TOKEN or pass --no-music"))
		}
		gen := musicgen.NewClient(&musicgen.Config{
			APIToken:     token,
			BaseURL:      cfg.MusicGen.BaseURL,
			PollInterval: cfg.MusicGen.PollInterval(),
			OutputDir:    cfg.Paths.MusicDir,
		}, musicgen.WithLogger(logger))
		opts = append(opts, pipeline.WithMusic(gen, cfg.MusicGen.Duration()))
	}

	return pipeline.NewRunner(fetcher, analyzer, store, opts...), nil
}

func printRun(out io.Writer, run results.Run, dir string) {
	secondary := "none"
	if s := run.Selection.Secondary; s != nil {
		secondary = fmt.Sprintf("%s (%.2f)", s.Title(), *run.Selection.SecondaryScore)
	}

	fmt.Fprintf(out, "Date:       %s\n", run.Date)
	fmt.Fprintf(out, "Headlines:  %d\n", len(run.Headlines))
	fmt.Fprintf(out, "Primary:    %s (%.2f)\n", run.Selection.Primary.Title(), run.Selection.PrimaryScore)
	fmt.Fprintf(out, "Secondary:  %s\n", secondary)
	fmt.Fprintf(out, "Intensity:  %s\n", run.Selection.Intensity)
	fmt.Fprintf(out, "Prompt:     %s\n", run.Prompt.Prompt)
	fmt.Fprintf(out, "Results:    %s\n", dir)
	switch {
	case run.Audio != nil:
		fmt.Fprintf(out, "Audio:      %s\n", run.Audio.Path)
	case run.AudioError != "":
		fmt.Fprintf(out, "Audio:      failed: %s\n", run.AudioError)
	}
}
