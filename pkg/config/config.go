// Package config provides configuration management for Leafdex.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults.
//
// # Design Principles
//
//   - Default config (from New()) is always valid - no validation needed
//   - All mutations go through Option functions - the only way to
//     modify Config
//   - Invalid options are rejected with gn.Warn() - config remains in
//     a valid state
//   - ToOptions() converts persistent fields (those in config.yaml)
//
// # Environment Variables
//
// Use the LEAFDEX_ prefix with underscores for nesting:
//
//	LEAFDEX_DATABASE_HOST=localhost
//	LEAFDEX_CLASSIFIER_URL=https://classifier.internal
//	LEAFDEX_LOG_LEVEL=info
package config

import (
	"runtime"
	"time"
)

// Config represents the complete Leafdex configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Classifier configures the external image classifier.
	Classifier ClassifierConfig `mapstructure:"classifier" yaml:"classifier"`

	// Storage configures the external object storage for images.
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// Auth configures the external token verification endpoint.
	Auth AuthConfig `mapstructure:"auth" yaml:"auth"`

	// Game holds the reward-engine tunables.
	Game GameConfig `mapstructure:"game" yaml:"game"`

	// Server holds the HTTP listener settings.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations (catalog seeding). Defaults to the CPU count.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories
	// reside. Set by the CLI during init; no default.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode: "disable", "require", "verify-ca" or "verify-full".
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of records per bulk insert during
	// catalog seeding.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ClassifierConfig points at the external image classifier service.
type ClassifierConfig struct {
	URL    string `mapstructure:"url" yaml:"url"`
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	Model  string `mapstructure:"model" yaml:"model"`

	// MinConfidence is the identification confidence below which a
	// discovery submission is rejected.
	MinConfidence float64 `mapstructure:"min_confidence" yaml:"min_confidence"`

	// TimeoutSec bounds one classifier call.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// StorageConfig points at the external image storage service.
type StorageConfig struct {
	URL        string `mapstructure:"url" yaml:"url"`
	PrivateKey string `mapstructure:"private_key" yaml:"private_key"`

	// Folder is the path prefix for discovery uploads.
	Folder string `mapstructure:"folder" yaml:"folder"`

	// TimeoutSec bounds one upload.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// AuthConfig points at the external bearer-token introspection
// endpoint. The returned user id is trusted completely.
type AuthConfig struct {
	URL        string `mapstructure:"url" yaml:"url"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// GameConfig holds reward-engine tunables.
type GameConfig struct {
	// GeofenceTolerance is the coordinate-degree radius inside which
	// a repeat discovery of the same species by the same user counts
	// as a duplicate. 0.0002 degrees is roughly 22 meters.
	GeofenceTolerance float64 `mapstructure:"geofence_tolerance" yaml:"geofence_tolerance"`

	// Timezone names the calendar that decides streak day
	// boundaries, e.g. "UTC" or "Asia/Kolkata".
	Timezone string `mapstructure:"timezone" yaml:"timezone"`

	// TxTimeoutSec bounds one store transaction so a slow store does
	// not hold locks indefinitely.
	TxTimeoutSec int `mapstructure:"tx_timeout_sec" yaml:"tx_timeout_sec"`

	// ScreenThreshold is the screenOrPhoto confidence at or above
	// which a submission is rejected as a photo of a screen.
	ScreenThreshold float64 `mapstructure:"screen_threshold" yaml:"screen_threshold"`
}

// TxTimeout returns the transaction bound as a duration.
func (g GameConfig) TxTimeout() time.Duration {
	return time.Duration(g.TxTimeoutSec) * time.Second
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Level: "debug", "info", "warn" or "error".
	Level string `mapstructure:"level" yaml:"level"`

	// Format: "json" or "text".
	Format string `mapstructure:"format" yaml:"format"`

	// Destination: "file", "stdout" or "stderr".
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with valid defaults.
func New() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "leafdex",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Classifier: ClassifierConfig{
			URL:           "http://localhost:8700",
			Model:         "botanist-lite",
			MinConfidence: 0.6,
			TimeoutSec:    30,
		},
		Storage: StorageConfig{
			URL:        "http://localhost:8800",
			Folder:     "/leafdex/discoveries",
			TimeoutSec: 30,
		},
		Auth: AuthConfig{
			URL:        "http://localhost:8900",
			TimeoutSec: 10,
		},
		Game: GameConfig{
			GeofenceTolerance: 0.0002,
			Timezone:          "UTC",
			TxTimeoutSec:      20,
			ScreenThreshold:   0.8,
		},
		Server: ServerConfig{
			Port: 5000,
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "json",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}
}
