// Package config loads runtime configuration for the Daily Hustle client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c / -config. Files ending in
//     ".toml" are decoded as TOML, anything else as JSON.
//  3. HUSTLE_* environment variables.
//  4. Command-line flags -a (API base URL) and -i (unread poll seconds).
//
// Later sources override earlier ones.
//
// # File schema
//
// Durations accept Go duration strings or integer nanoseconds:
//
//	base_url = "https://api.example.com/api/v1"
//	request_timeout = "15s"
//	unread_poll_interval = "30s"
//	store_driver = "sqlite"   # or "redis"
//	redis_addr = "127.0.0.1:6379"
//	rate_limit = 10           # requests per second, 0 disables pacing
//	log_level = "info"
//	metrics_addr = ""         # e.g. "127.0.0.1:9464" to expose /metrics
//	oauth_callback_addr = "127.0.0.1:8765"
package config
