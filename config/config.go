package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5250"`
	}

	// Viewport synchronization configuration
	Viewport struct {
		// Debounce window for viewport/filter triggered fetches (in milliseconds)
		DebounceMs int `env:"VIEWPORT_DEBOUNCE_MS" envDefault:"300"`

		// Maximum number of features returned per fetch
		FeatureLimit int `env:"VIEWPORT_FEATURE_LIMIT" envDefault:"500"`

		// Maximum camera-settle polling attempts after a fly-to
		SettleMaxAttempts int `env:"VIEWPORT_SETTLE_MAX_ATTEMPTS" envDefault:"10"`

		// Delay between camera-settle polls (in milliseconds)
		SettleDelayMs int `env:"VIEWPORT_SETTLE_DELAY_MS" envDefault:"250"`
	}

	// Statistics configuration
	Stats struct {
		// Delay before rescanning the rendered dataset (in milliseconds)
		RescanDelayMs int `env:"STATS_RESCAN_DELAY_MS" envDefault:"300"`
	}

	// Suggestion search configuration
	Search struct {
		// Debounce window for keystroke-triggered searches (in milliseconds)
		DebounceMs int `env:"SEARCH_DEBOUNCE_MS" envDefault:"200"`

		// Time-to-live of a cached result list (in minutes)
		CacheTTLMinutes int `env:"SEARCH_CACHE_TTL_MINUTES" envDefault:"30"`

		// Maximum number of cached result lists
		CacheMaxEntries int `env:"SEARCH_CACHE_MAX_ENTRIES" envDefault:"100"`

		// Maximum number of suggestions returned per query
		MaxResults int `env:"SEARCH_MAX_RESULTS" envDefault:"30"`
	}

	// Upstream endpoints
	Upstream struct {
		MutationsURL string `env:"UPSTREAM_MUTATIONS_URL" envDefault:"https://api.immoxperts.fr/api/mutations"`
		StatsURL     string `env:"UPSTREAM_STATS_URL" envDefault:"https://api.immoxperts.fr/api/stats"`
		ParcelsURL   string `env:"UPSTREAM_PARCELS_URL" envDefault:"https://api.immoxperts.fr/api/parcelles"`
		GeocodeURL   string `env:"UPSTREAM_GEOCODE_URL" envDefault:"https://api-adresse.data.gouv.fr"`
	}

	// Database configuration
	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/immoxperts.db"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
