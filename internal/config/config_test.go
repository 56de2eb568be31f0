package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, domain.DefaultThresholds(), cfg.Scoring.Thresholds())
	assert.Equal(t, domain.Settings{MaximumVotesPerUserPerDay: 10}, cfg.Voting.DefaultSettings())
	assert.Equal(t, uint64(50), cfg.Voting.MaxRetries)
	assert.Equal(t, "postgres://postgres:@localhost:5432/linkscore?sslmode=disable", cfg.Database.DSN())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9090
database:
  driver: memory
cache:
  driver: lru
  ttl: 30s
scoring:
  good_threshold: 25
voting:
  default_max_votes_per_user_per_day: 15
  retry_initial_interval: 50ms
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("RANDOMIZE_SCORES", "true")
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.AdminToken)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, CacheLRU, cfg.Cache.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 25, cfg.Scoring.GoodThreshold)
	assert.Equal(t, -10, cfg.Scoring.BadThreshold)
	assert.True(t, cfg.Scoring.Randomize)
	assert.Equal(t, 15, cfg.Voting.DefaultMaxVotesPerUserPerDay)
	assert.Equal(t, 50*time.Millisecond, cfg.Voting.RetryInitialInterval)
}

func TestLoadFixedClock(t *testing.T) {
	t.Setenv("USE_SYSTEM_TIME", "false")
	t.Setenv("FIXED_TIME", "2024-03-01T12:00:00Z")

	cfg, err := Load("")
	require.NoError(t, err)

	fixed, err := cfg.Clock.Fixed()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), fixed)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("RANDOMIZE_SCORES", "maybe")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown database driver", func(c *Config) { c.Database.Driver = "dynamodb" }},
		{"unknown cache driver", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"non-positive quota", func(c *Config) { c.Voting.DefaultMaxVotesPerUserPerDay = 0 }},
		{"good not above bad", func(c *Config) { c.Scoring.GoodThreshold = -10 }},
		{"negative band", func(c *Config) { c.Scoring.ControversialBalanceBand = -1 }},
		{"fixed clock without time", func(c *Config) { c.Clock.UseSystemTime = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
