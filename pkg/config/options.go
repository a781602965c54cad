package config

import (
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	valid := map[string]bool{
		"disable": true, "require": true,
		"verify-ca": true, "verify-full": true,
	}
	return func(c *Config) {
		if !valid[s] {
			gn.Warn("Invalid Database SSLMode '%s', keeping '%s'",
				s, c.Database.SSLMode)
			return
		}
		c.Database.SSLMode = s
	}
}

// OptDatabaseBatchSize sets the number of records per bulk insert.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptClassifierURL sets the image classifier base URL.
func OptClassifierURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Classifier URL", s) {
			c.Classifier.URL = s
		}
	}
}

// OptClassifierAPIKey sets the classifier API key.
func OptClassifierAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		// Empty means no authentication, which is valid.
		c.Classifier.APIKey = s
	}
}

// OptClassifierModel sets the classifier model identifier.
func OptClassifierModel(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Classifier Model", s) {
			c.Classifier.Model = s
		}
	}
}

// OptClassifierMinConfidence sets the identification confidence
// threshold. Valid range (0, 1].
func OptClassifierMinConfidence(f float64) Option {
	return func(c *Config) {
		if f <= 0 || f > 1 {
			gn.Warn("Invalid Classifier MinConfidence %v, keeping %v",
				f, c.Classifier.MinConfidence)
			return
		}
		c.Classifier.MinConfidence = f
	}
}

// OptClassifierTimeoutSec bounds one classifier call, in seconds.
func OptClassifierTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Classifier Timeout", i) {
			c.Classifier.TimeoutSec = i
		}
	}
}

// OptStorageURL sets the object storage base URL.
func OptStorageURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Storage URL", s) {
			c.Storage.URL = s
		}
	}
}

// OptStoragePrivateKey sets the object storage credential.
func OptStoragePrivateKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Storage.PrivateKey = s
	}
}

// OptStorageFolder sets the upload path prefix.
func OptStorageFolder(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Storage Folder", s) {
			c.Storage.Folder = s
		}
	}
}

// OptStorageTimeoutSec bounds one upload, in seconds.
func OptStorageTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Storage Timeout", i) {
			c.Storage.TimeoutSec = i
		}
	}
}

// OptAuthURL sets the token introspection endpoint.
func OptAuthURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Auth URL", s) {
			c.Auth.URL = s
		}
	}
}

// OptAuthTimeoutSec bounds one token verification, in seconds.
func OptAuthTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Auth Timeout", i) {
			c.Auth.TimeoutSec = i
		}
	}
}

// OptGameGeofenceTolerance sets the duplicate-discovery radius in
// coordinate degrees.
func OptGameGeofenceTolerance(f float64) Option {
	return func(c *Config) {
		if f <= 0 {
			gn.Warn("Invalid Geofence Tolerance %v, keeping %v",
				f, c.Game.GeofenceTolerance)
			return
		}
		c.Game.GeofenceTolerance = f
	}
}

// OptGameTimezone sets the calendar timezone for streak day
// boundaries. The value must resolve via time.LoadLocation.
func OptGameTimezone(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s == "" {
			return
		}
		if _, err := time.LoadLocation(s); err != nil {
			gn.Warn("Unknown Game Timezone '%s', keeping '%s'",
				s, c.Game.Timezone)
			return
		}
		c.Game.Timezone = s
	}
}

// OptGameTxTimeoutSec bounds one store transaction, in seconds.
func OptGameTxTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Transaction Timeout", i) {
			c.Game.TxTimeoutSec = i
		}
	}
}

// OptGameScreenThreshold sets the screenOrPhoto rejection threshold.
// Valid range (0, 1].
func OptGameScreenThreshold(f float64) Option {
	return func(c *Config) {
		if f <= 0 || f > 1 {
			gn.Warn("Invalid Screen Threshold %v, keeping %v",
				f, c.Game.ScreenThreshold)
			return
		}
		c.Game.ScreenThreshold = f
	}
}

// OptServerPort sets the HTTP listener port.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptLogLevel sets the logging level.
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("Log Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the logging format.
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("Log Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets the logging destination.
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("Log Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory. Runtime-only field.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}

func isValidString(name, s string) bool {
	if s == "" {
		gn.Warn("Invalid %s: empty value ignored", name)
		return false
	}
	return true
}

func isValidInt(name string, i int) bool {
	if i <= 0 {
		gn.Warn("Invalid %s: %d must be positive", name, i)
		return false
	}
	return true
}
