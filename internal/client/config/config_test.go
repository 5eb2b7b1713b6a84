package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, 30*time.Second, c.UnreadPollInterval)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, StoreDriverSQLite, c.StoreDriver)
	assert.NotEmpty(t, c.StateDir)
	assert.Equal(t, filepath.Join(c.StateDir, "state.db"), c.DatabasePath())
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseFile_TOML(t *testing.T) {
	path := writeFile(t, "hustle.toml", `
base_url = "http://localhost:9000/api/v1"
unread_poll_interval = "10s"
store_driver = "redis"
rate_limit = 0.0
`)
	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseFile(cfg, []string{"--config", path}))

	assert.Equal(t, "http://localhost:9000/api/v1", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.UnreadPollInterval)
	assert.Equal(t, StoreDriverRedis, cfg.StoreDriver)
	assert.Equal(t, float64(0), cfg.RateLimit)
	// untouched keys keep their defaults
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestParseFile_JSON(t *testing.T) {
	path := writeFile(t, "hustle.json", `{"base_url":"http://json/api","request_timeout":"3s","redis_db":2}`)
	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseFile(cfg, []string{"-c", path}))

	assert.Equal(t, "http://json/api", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestParseFile_Errors(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, parseFile(cfg, []string{"-c", filepath.Join(t.TempDir(), "missing.json")}))

	bad := writeFile(t, "bad.json", `{ nope`)
	assert.Error(t, parseFile(cfg, []string{"-c", bad}))

	badToml := writeFile(t, "bad.toml", `base_url = `)
	assert.Error(t, parseFile(cfg, []string{"-c", badToml}))

	assert.NoError(t, parseFile(cfg, []string{"login"}))
}

func TestParseEnv(t *testing.T) {
	env := map[string]string{
		"HUSTLE_BASE_URL":             "http://env/api",
		"HUSTLE_UNREAD_POLL_INTERVAL": "5s",
		"HUSTLE_RATE_LIMIT":           "2.5",
		"HUSTLE_REDIS_DB":             "nope",
	}
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, func(k string) string { return env[k] })

	assert.Equal(t, "http://env/api", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.UnreadPollInterval)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeFile(t, "p.toml", `base_url = "http://file/api"`)
	t.Setenv("HUSTLE_BASE_URL", "http://env/api")

	cfg, err := LoadConfig([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "http://env/api", cfg.BaseURL)

	cfg, err = LoadConfig([]string{"--config", path, "-a", "http://flag/api"})
	require.NoError(t, err)
	assert.Equal(t, "http://flag/api", cfg.BaseURL)
}
