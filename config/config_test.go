package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name   string
		body   string
		assert func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty file falls back to defaults",
			body: "{}\n",
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 10.0, cfg.Server.RateLimitPerSec)
				assert.Equal(t, 5, cfg.Server.RateLimitBurst)
				assert.Equal(t, 30*time.Second, cfg.Server.CacheTTL)
				assert.Equal(t, DriverMemory, cfg.Storage.Driver)
				assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
				assert.Equal(t, "warn", cfg.Database.LogLevel)
				assert.False(t, cfg.Admin.Enabled())
			},
		},
		{
			name: "explicit values are kept",
			body: `
server:
  port: 3000
  cache_ttl_seconds: 5
storage:
  driver: postgres
  fallback_to_memory: true
database:
  dsn: "host=localhost user=dorm"
  connect_timeout_seconds: 2
admin:
  username: warden
  password: secret
`,
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3000, cfg.Server.Port)
				assert.Equal(t, 5*time.Second, cfg.Server.CacheTTL)
				assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
				assert.True(t, cfg.Storage.FallbackToMemory)
				assert.Equal(t, "host=localhost user=dorm", cfg.Database.DSN)
				assert.Equal(t, 2*time.Second, cfg.Database.ConnectTimeout)
				assert.True(t, cfg.Admin.Enabled())
			},
		},
		{
			name: "unknown driver degrades to memory",
			body: "storage:\n  driver: mongodb\n",
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DriverMemory, cfg.Storage.Driver)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tc.body))
			require.NoError(t, err)
			tc.assert(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
