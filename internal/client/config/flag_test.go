package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "Test1 OK",
			args: []string{"cmd", "-a", "http://127.0.0.1:9090/v1", "-d", "local.db", "-i", "10", "-s", "120", "-p", "5"},
			expected: &Config{
				APIBaseURL:          "http://127.0.0.1:9090/v1",
				DatabasePath:        "local.db",
				OnlineCheckInterval: 10 * time.Second,
				SyncInterval:        120 * time.Second,
				PageSize:            5,
			},
		},
		{
			name:        "Test2 incorrect check interval",
			args:        []string{"cmd", "-a", "http://127.0.0.1:9090/v1", "-i", "abc"},
			expectPanic: true,
			expected:    &Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
