package config

const (
	defaultConfigPath     = "~/.config/mediascout/config.toml"
	projectConfigName     = "mediascout.toml"
	defaultLogDir         = "~/.local/share/mediascout/logs"
	defaultExportDir      = "~/.local/share/mediascout/exports"
	defaultTMDBBaseURL    = "https://api.themoviedb.org/3"
	defaultTMDBLanguage   = "en-US"
	defaultDelaySeconds   = 1
	defaultTimeoutSeconds = 10
	defaultConcurrency    = 1
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLogMaxSizeMB   = 10
	defaultLogMaxBackups  = 5
	defaultRetentionDays  = 30
)

// Default returns a Config populated with repository defaults. Trackers are
// left empty; normalization falls back to the catalog.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			ExportDir: defaultExportDir,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Search: Search{
			DelaySeconds:   defaultDelaySeconds,
			TimeoutSeconds: defaultTimeoutSeconds,
			Concurrency:    defaultConcurrency,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			RetentionDays: defaultRetentionDays,
		},
	}
}
