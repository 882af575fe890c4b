package config

const (
	defaultCacheRoot        = "~/.cache/ytmeta"
	defaultPluginsRoot      = "~/.local/share/ytmeta/plugins"
	defaultLogDir           = "~/.local/share/ytmeta/logs"
	defaultIdentifierScheme = string(SchemeYTDLP)
	defaultSearchLimit      = 10
	defaultYtDlpBinary      = "yt-dlp"
	defaultYtDlpTimeout     = 120
	defaultAIBaseURL        = "https://api.openai.com/v1"
	defaultAIModel          = "gpt-4o-mini"
	defaultAITimeout        = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheRoot:   defaultCacheRoot,
			PluginsRoot: defaultPluginsRoot,
			LogDir:      defaultLogDir,
		},
		Lookup: Lookup{
			IdentifierScheme:           defaultIdentifierScheme,
			EnableTitleLookup:          true,
			SearchResultLimit:          defaultSearchLimit,
			EnableAutoEpisodeIndexing:  true,
			PreferUploaderAsSeriesName: true,
		},
		YtDlp: YtDlp{
			Binary:         defaultYtDlpBinary,
			TimeoutSeconds: defaultYtDlpTimeout,
		},
		AI: AI{
			Enabled:            false,
			DescriptionCleanup: false,
			BaseURL:            defaultAIBaseURL,
			Model:              defaultAIModel,
			TimeoutSeconds:     defaultAITimeout,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
