package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables. An
// optional .env file in the working directory is loaded first; a missing
// file is not an error.
//
// Recognized variables:
//
//	STORY_API_BASE_URL        base URL of the story API
//	STORY_DATABASE_PATH       path to the local SQLite file
//	STORY_SESSION_PATH        path to the session token file
//	STORY_ONLINE_CHECK_SECS   online check interval in seconds
//	STORY_SYNC_SECS           background sync interval in seconds
//	STORY_PAGE_SIZE           stories per list page
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("STORY_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("STORY_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("STORY_SESSION_PATH"); v != "" {
		cfg.SessionPath = v
	}
	if v := os.Getenv("STORY_ONLINE_CHECK_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.OnlineCheckInterval = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("STORY_SYNC_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.SyncInterval = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("STORY_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
}
