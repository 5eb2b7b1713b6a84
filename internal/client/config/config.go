package config

import (
	"os"
	"path/filepath"
	"time"
)

const DefaultBaseURL = "https://daily-hustle-backend-fb9c10f98583.herokuapp.com/api/v1"

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"
)

// Config holds runtime settings for the client.
type Config struct {
	BaseURL            string
	RequestTimeout     time.Duration
	UnreadPollInterval time.Duration
	StateDir           string
	StoreDriver        string
	RedisAddr          string
	RedisDB            int
	RateLimit          float64
	LogLevel           string
	MetricsAddr        string
	OAuthCallbackAddr  string
}

// LoadDefaults populates c with defaults suitable for the public backend.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.RequestTimeout = 15 * time.Second
	c.UnreadPollInterval = 30 * time.Second
	c.StateDir = defaultStateDir()
	c.StoreDriver = StoreDriverSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.RateLimit = 10
	c.LogLevel = "info"
	c.MetricsAddr = ""
	c.OAuthCallbackAddr = "127.0.0.1:8765"
}

// DatabasePath is the SQLite file backing the local state.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.StateDir, "state.db")
}

// SecretPath is the per-device secret used to seal persisted values.
func (c *Config) SecretPath() string {
	return filepath.Join(c.StateDir, "device.key")
}

// LoadConfig builds a Config from defaults, the optional config file,
// environment and flags, in that order. args are the process arguments
// without the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	parseEnv(cfg, os.Getenv)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "dailyhustle")
	}
	return ".dailyhustle"
}
