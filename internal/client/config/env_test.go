package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("STORY_API_BASE_URL", "http://env.example/v1")
	t.Setenv("STORY_DATABASE_PATH", "env.db")
	t.Setenv("STORY_SESSION_PATH", "env.token")
	t.Setenv("STORY_ONLINE_CHECK_SECS", "7")
	t.Setenv("STORY_SYNC_SECS", "90")
	t.Setenv("STORY_PAGE_SIZE", "4")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://env.example/v1", cfg.APIBaseURL)
	assert.Equal(t, "env.db", cfg.DatabasePath)
	assert.Equal(t, "env.token", cfg.SessionPath)
	assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, 90*time.Second, cfg.SyncInterval)
	assert.Equal(t, 4, cfg.PageSize)
}

func Test_parseEnv_IgnoresUnparseableValues(t *testing.T) {
	t.Setenv("STORY_ONLINE_CHECK_SECS", "soon")
	t.Setenv("STORY_PAGE_SIZE", "-1")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, 10, cfg.PageSize)
}
