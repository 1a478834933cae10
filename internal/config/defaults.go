package config

// Default values.
const (
	DefaultResultsDir          = "generation_results"
	DefaultMusicDir            = "music_generated"
	DefaultArticlesPerLanguage = 5
	DefaultNewsConcurrency     = 5
	DefaultModel               = "gpt-4o-mini"
	DefaultDurationSeconds     = 30
	DefaultPollSeconds         = 2
	DefaultAddr                = ":8080"
)

// DefaultLanguages are the news languages sampled each day.
var DefaultLanguages = []string{"en", "es", "fr", "de", "it", "pt"}

// Default returns a configuration populated with default values.
func Default() Config {
	return Config{
		Paths: Paths{
			ResultsDir: DefaultResultsDir,
			MusicDir:   DefaultMusicDir,
		},
		News: News{
			Languages:           append([]string(nil), DefaultLanguages...),
			ArticlesPerLanguage: DefaultArticlesPerLanguage,
			Concurrency:         DefaultNewsConcurrency,
		},
		LLM: LLM{
			Model: DefaultModel,
		},
		MusicGen: MusicGen{
			Enabled:             true,
			DurationSeconds:     DefaultDurationSeconds,
			PollIntervalSeconds: DefaultPollSeconds,
		},
		Server: Server{
			Addr: DefaultAddr,
		},
		Logging: Logging{
			Level:  "info",
			Format: "auto",
		},
	}
}
