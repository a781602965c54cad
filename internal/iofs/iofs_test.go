package iofs_test

import (
	"os"
	"testing"

	"github.com/leafdex/leafdex/internal/iofs"
	"github.com/leafdex/leafdex/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	err := iofs.EnsureDirs(home)
	require.NoError(t, err)

	for _, dir := range []string{
		config.ConfigDir(home),
		config.CacheDir(home),
		config.LogDir(home),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	// Idempotent.
	assert.NoError(t, iofs.EnsureDirs(home))
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	err := iofs.EnsureConfigFile(home)
	require.NoError(t, err)

	path := config.ConfigFilePath(home)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "geofence_tolerance")

	// An existing file is left alone.
	custom := []byte("database:\n  host: custom\n")
	require.NoError(t, os.WriteFile(path, custom, 0644))
	require.NoError(t, iofs.EnsureConfigFile(home))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, data)
}

// The embedded default config must stay in sync with config.New().
func TestEmbeddedConfigMatchesDefaults(t *testing.T) {
	var fromYAML config.Config
	err := yaml.Unmarshal([]byte(iofs.ConfigYAML), &fromYAML)
	require.NoError(t, err)

	def := config.New()
	assert.Equal(t, def.Database, fromYAML.Database)
	assert.Equal(t, def.Game, fromYAML.Game)
	assert.Equal(t, def.Classifier, fromYAML.Classifier)
	assert.Equal(t, def.Storage, fromYAML.Storage)
	assert.Equal(t, def.Auth, fromYAML.Auth)
	assert.Equal(t, def.Server, fromYAML.Server)
	assert.Equal(t, def.Log, fromYAML.Log)
}
