package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/leafdex/leafdex/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "leafdex"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "leafdex"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "leafdex", "logs"),
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, v.fn(tempHome), v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	// Database defaults
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "leafdex", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10_000, cfg.Database.BatchSize)

	// Game defaults
	assert.Equal(t, 0.0002, cfg.Game.GeofenceTolerance)
	assert.Equal(t, "UTC", cfg.Game.Timezone)
	assert.Equal(t, 20, cfg.Game.TxTimeoutSec)
	assert.Equal(t, 0.8, cfg.Game.ScreenThreshold)

	// Classifier defaults
	assert.Equal(t, 0.6, cfg.Classifier.MinConfidence)

	// Log defaults
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestUpdate(t *testing.T) {
	cfg := config.New()

	cfg.Update([]config.Option{
		config.OptDatabaseHost("db.internal"),
		config.OptGameTimezone("Asia/Kolkata"),
		config.OptGameGeofenceTolerance(0.0005),
		config.OptServerPort(8080),
	})

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "Asia/Kolkata", cfg.Game.Timezone)
	assert.Equal(t, 0.0005, cfg.Game.GeofenceTolerance)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestUpdate_RejectsInvalid(t *testing.T) {
	cfg := config.New()

	cfg.Update([]config.Option{
		config.OptDatabaseHost(""),
		config.OptDatabasePort(-1),
		config.OptGameTimezone("Mars/Olympus"),
		config.OptClassifierMinConfidence(1.5),
		config.OptGameScreenThreshold(0),
		config.OptDatabaseSSLMode("maybe"),
	})

	// All invalid values are ignored; defaults survive.
	def := config.New()
	assert.Equal(t, def.Database.Host, cfg.Database.Host)
	assert.Equal(t, def.Database.Port, cfg.Database.Port)
	assert.Equal(t, def.Game.Timezone, cfg.Game.Timezone)
	assert.Equal(t, def.Classifier.MinConfidence, cfg.Classifier.MinConfidence)
	assert.Equal(t, def.Game.ScreenThreshold, cfg.Game.ScreenThreshold)
	assert.Equal(t, def.Database.SSLMode, cfg.Database.SSLMode)
}

func TestToOptionsRoundTrip(t *testing.T) {
	orig := config.New()
	orig.Update([]config.Option{
		config.OptDatabaseHost("db.internal"),
		config.OptClassifierURL("https://classifier.internal"),
		config.OptGameTxTimeoutSec(5),
		config.OptLogLevel("debug"),
	})

	clone := config.New()
	clone.Update(orig.ToOptions())

	// HomeDir is runtime-only and not round-tripped.
	orig.HomeDir = ""
	assert.Equal(t, orig, clone)
}
