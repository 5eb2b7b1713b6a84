package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dailyhustle/hustle/internal/flagx"
	"github.com/dailyhustle/hustle/internal/timex"
)

// fileConfig is the on-disk DTO. Pointer fields tell "absent" from "zero",
// so a partial file only overrides what it names.
type fileConfig struct {
	BaseURL            *string         `json:"base_url" toml:"base_url"`
	RequestTimeout     *timex.Duration `json:"request_timeout" toml:"request_timeout"`
	UnreadPollInterval *timex.Duration `json:"unread_poll_interval" toml:"unread_poll_interval"`
	StateDir           *string         `json:"state_dir" toml:"state_dir"`
	StoreDriver        *string         `json:"store_driver" toml:"store_driver"`
	RedisAddr          *string         `json:"redis_addr" toml:"redis_addr"`
	RedisDB            *int            `json:"redis_db" toml:"redis_db"`
	RateLimit          *float64        `json:"rate_limit" toml:"rate_limit"`
	LogLevel           *string         `json:"log_level" toml:"log_level"`
	MetricsAddr        *string         `json:"metrics_addr" toml:"metrics_addr"`
	OAuthCallbackAddr  *string         `json:"oauth_callback_addr" toml:"oauth_callback_addr"`
}

// parseFile overlays cfg with the file named by -c / -config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if strings.HasSuffix(strings.ToLower(path), ".toml") {
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return fmt.Errorf("decode toml config %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("decode json config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.UnreadPollInterval != nil {
		cfg.UnreadPollInterval = fc.UnreadPollInterval.Duration
	}
	if fc.StateDir != nil {
		cfg.StateDir = *fc.StateDir
	}
	if fc.StoreDriver != nil {
		cfg.StoreDriver = *fc.StoreDriver
	}
	if fc.RedisAddr != nil {
		cfg.RedisAddr = *fc.RedisAddr
	}
	if fc.RedisDB != nil {
		cfg.RedisDB = *fc.RedisDB
	}
	if fc.RateLimit != nil {
		cfg.RateLimit = *fc.RateLimit
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.MetricsAddr != nil {
		cfg.MetricsAddr = *fc.MetricsAddr
	}
	if fc.OAuthCallbackAddr != nil {
		cfg.OAuthCallbackAddr = *fc.OAuthCallbackAddr
	}
}
