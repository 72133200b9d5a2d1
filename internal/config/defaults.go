package config

const (
	defaultDataDir            = "~/.local/share/showlink"
	defaultLogDir             = "~/.local/share/showlink/logs"
	defaultTVDBBaseURL        = "https://api.thetvdb.com"
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBLanguage       = "en-US"
	defaultTVmazeBaseURL      = "https://api.tvmaze.com"
	defaultTraktBaseURL       = "https://api.trakt.tv"
	defaultHTTPTimeoutSeconds = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		TVDB: TVDB{
			BaseURL: defaultTVDBBaseURL,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		TVmaze: TVmaze{
			Enabled: true,
			BaseURL: defaultTVmazeBaseURL,
		},
		Trakt: Trakt{
			Enabled: false,
			BaseURL: defaultTraktBaseURL,
		},
		HTTP: HTTP{
			TimeoutSeconds: defaultHTTPTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
