package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *Config
		wantErr bool
	}{
		{
			name: "base url and interval",
			args: []string{"tasks", "-a", "http://flag/api", "-i", "12"},
			want: &Config{BaseURL: "http://flag/api", UnreadPollInterval: 12 * time.Second},
		},
		{
			name:    "non numeric interval",
			args:    []string{"-i", "abc"},
			wantErr: true,
		},
		{
			name: "long forms and cobra flags are left alone",
			args: []string{"wallet", "withdraw", "--account", "b1", "-a=http://eq/api"},
			want: &Config{BaseURL: "http://eq/api", UnreadPollInterval: 30 * time.Second},
		},
		{
			name:    "zero interval",
			args:    []string{"-i", "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{UnreadPollInterval: 30 * time.Second}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, cfg))
		})
	}
}
