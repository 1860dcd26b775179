// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer file and env overrides on top via Load.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// FeedBaseURL points at the upstream players/standings API. Empty
	// means bundled data only.
	FeedBaseURL string `koanf:"feed_base_url"`

	// PollIntervalSeconds sets the standings refresh cadence.
	PollIntervalSeconds int `koanf:"poll_interval_seconds"`

	// StorageBackend selects persistence: memory, file, or sqlite.
	StorageBackend string `koanf:"storage_backend"`

	// StoragePath is the file or database path for persistent backends.
	StoragePath string `koanf:"storage_path"`

	// MaxSavedRankings bounds the named-save list per builder.
	MaxSavedRankings int `koanf:"max_saved_rankings"`

	// PreloadConcurrency bounds the logo preload fan-out.
	PreloadConcurrency int `koanf:"preload_concurrency"`

	// BrandURL is the footer line stamped on exported images.
	BrandURL string `koanf:"brand_url"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		FeedBaseURL:         "",
		PollIntervalSeconds: 60,
		StorageBackend:      "file",
		StoragePath:         "gridiron.json",
		MaxSavedRankings:    10,
		PreloadConcurrency:  8,
		BrandURL:            "gridiron.example.com",
	}
}
