package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DefaultMaxFiles, cfg.MaxFiles)
	assert.Equal(t, DefaultMaxFileSize, cfg.MaxFileSize)
	assert.Equal(t, "frontend/dist", cfg.StaticDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_FILES", "3")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("STATIC_DIR", "/srv/app")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 3, cfg.MaxFiles)
	assert.Equal(t, 1024, cfg.MaxFileSize)
	assert.Equal(t, "/srv/app", cfg.StaticDir)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("port: 3000\nmax_files: 5\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 5, cfg.MaxFiles)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultMaxFileSize, cfg.MaxFileSize)
}

func TestLoadEnvBeatsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 3000\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "4000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("MAX_FILES", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
