package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("creates default when missing", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "visualizer.config")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		_, err = os.Stat(path)
		assert.NoError(t, err)
		assert.Equal(t, 8089, cfg.Server.Port)
		assert.Equal(t, filepath.Join(dir, "data", "paths"), cfg.GetPathsDir())
		assert.Equal(t, filepath.Join(dir, "data", "settings.yaml"), cfg.Simulation.SettingsFile)
	})

	t.Run("reads saved file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "visualizer.config")

		cfg := DefaultConfig()
		cfg.Server.Port = 9000
		cfg.Simulation.MaxConcurrentReads = 3
		cfg.Storage.PathsDirectory = "/srv/paths"
		require.NoError(t, cfg.Save(path))

		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 9000, loaded.Server.Port)
		assert.Equal(t, 3, loaded.Simulation.MaxConcurrentReads)
		assert.Equal(t, "/srv/paths", loaded.GetPathsDir())
		assert.Equal(t, "0.0.0.0:9000", loaded.GetServerAddr())
	})

	t.Run("environment overrides", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "visualizer.config")
		data := filepath.Join(dir, "elsewhere")

		t.Setenv("PORT", "7777")
		t.Setenv("DATA_DIR", data)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 7777, cfg.Server.Port)
		assert.Equal(t, data, cfg.GetDataDir())
		assert.Equal(t, filepath.Join(data, "macros"), cfg.Storage.MacrosDirectory)
	})

	t.Run("invalid xml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "visualizer.config")
		require.NoError(t, os.WriteFile(path, []byte("<PedroPathVisualizer>"), 0644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.resolvePaths(dir)

	require.NoError(t, cfg.EnsureDirectories())
	for _, d := range []string{cfg.GetDataDir(), cfg.GetPathsDir(), cfg.Storage.MacrosDirectory} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestGetLogLevel(t *testing.T) {
	cases := map[string]log.Lvl{
		"":        log.INFO,
		"info":    log.INFO,
		"DEBUG":   log.DEBUG,
		" warn ":  log.WARN,
		"warning": log.WARN,
		"error":   log.ERROR,
		"off":     log.OFF,
		"verbose": log.INFO,
	}
	for in, want := range cases {
		cfg := DefaultConfig()
		cfg.Advanced.LogLevel = in
		assert.Equal(t, want, cfg.GetLogLevel(), in)
	}
}
