package config

import (
	"strconv"
	"time"
)

// parseEnv overlays cfg with HUSTLE_* variables. Malformed numeric values
// are ignored and the previous value kept.
func parseEnv(cfg *Config, getenv func(string) string) {
	cfg.BaseURL = getString(getenv, "HUSTLE_BASE_URL", cfg.BaseURL)
	cfg.StateDir = getString(getenv, "HUSTLE_STATE_DIR", cfg.StateDir)
	cfg.StoreDriver = getString(getenv, "HUSTLE_STORE_DRIVER", cfg.StoreDriver)
	cfg.RedisAddr = getString(getenv, "HUSTLE_REDIS_ADDR", cfg.RedisAddr)
	cfg.LogLevel = getString(getenv, "HUSTLE_LOG_LEVEL", cfg.LogLevel)
	cfg.MetricsAddr = getString(getenv, "HUSTLE_METRICS_ADDR", cfg.MetricsAddr)
	cfg.OAuthCallbackAddr = getString(getenv, "HUSTLE_OAUTH_CALLBACK_ADDR", cfg.OAuthCallbackAddr)
	cfg.RequestTimeout = getDuration(getenv, "HUSTLE_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.UnreadPollInterval = getDuration(getenv, "HUSTLE_UNREAD_POLL_INTERVAL", cfg.UnreadPollInterval)

	if v := getenv("HUSTLE_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimit = f
		}
	}
	if v := getenv("HUSTLE_REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = i
		}
	}
}

func getString(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(getenv func(string) string, key string, fallback time.Duration) time.Duration {
	v := getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
