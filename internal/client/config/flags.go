package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dailyhustle/hustle/internal/flagx"
)

// parseFlags applies the short global flags:
//
//	-a string   API base URL
//	-i int      unread-notification poll interval (seconds)
//
// Only these flags are looked at; everything else belongs to the command tree.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-a", "-i"})

	fs := flag.NewFlagSet("hustle", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "API base URL")
	poll := fs.Int("i", int(cfg.UnreadPollInterval.Seconds()), "unread poll interval (in seconds)")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *poll <= 0 {
		return fmt.Errorf("parse flags: poll interval must be positive, got %d", *poll)
	}
	cfg.UnreadPollInterval = time.Duration(*poll) * time.Second
	return nil
}
