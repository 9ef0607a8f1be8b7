// ABOUTME: Tests for configuration loading
// ABOUTME: Covers defaults, file merging, .env handling, env overrides and validation
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"TOUCHBASE_HTTP_PORT",
	"TOUCHBASE_TIMEZONE",
	"TOUCHBASE_RECENT_LIMIT",
	"TOUCHBASE_DEFAULT_PERIODICITY",
	"TOUCHBASE_LOG_LEVEL",
	"TOUCHBASE_LOG_FORMAT",
}

// isolate runs the test in an empty directory with no touchbase variables set.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	// Explicit files must exist, so point at an empty JSON object.
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, ":8080", cfg.HTTPAddr())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"http_port":`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"http_port": 9000, "recent_limit": 3, "timezone": "UTC"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, 3, cfg.RecentLimit)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 14, cfg.DefaultPeriodicity, "unset fields keep their defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"http_port": 9000}`)

	t.Setenv("TOUCHBASE_HTTP_PORT", "9100")
	t.Setenv("TOUCHBASE_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{}`)
	writeFile(t, filepath.Join(dir, ".env"), "TOUCHBASE_DEFAULT_PERIODICITY=30\nTOUCHBASE_RECENT_LIMIT=2\n")

	// Real environment variables beat .env entries.
	t.Setenv("TOUCHBASE_RECENT_LIMIT", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.DefaultPeriodicity)
	assert.Equal(t, 7, cfg.RecentLimit)

	// godotenv.Load exports into the process environment.
	t.Cleanup(func() { _ = os.Unsetenv("TOUCHBASE_DEFAULT_PERIODICITY") })
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{}`)

	t.Setenv("TOUCHBASE_HTTP_PORT", "not-a-number")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.HTTPPort = 0 }},
		{"port too high", func(c *Config) { c.HTTPPort = 70000 }},
		{"recent limit", func(c *Config) { c.RecentLimit = 0 }},
		{"periodicity", func(c *Config) { c.DefaultPeriodicity = -3 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"log format", func(c *Config) { c.LogFormat = "xml" }},
		{"timezone", func(c *Config) { c.Timezone = "Mars/Olympus_Mons" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "WARN"

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, level)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.json")

	cfg := DefaultConfig()
	cfg.HTTPPort = 9200
	cfg.Timezone = "UTC"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
