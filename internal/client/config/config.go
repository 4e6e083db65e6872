package config

import "time"

// Config holds runtime settings shared by the CLI and the sync worker.
//
// Fields:
//   - APIBaseURL: base URL of the story API, including the version prefix.
//   - DatabasePath: path to the local SQLite file.
//   - SessionPath: path to the persisted session token file.
//   - OnlineCheckInterval: how often the CLI probes API reachability.
//   - SyncInterval: how often the background worker drains the queue.
//   - PageSize: stories requested per list page.
type Config struct {
	APIBaseURL          string
	DatabasePath        string
	SessionPath         string
	OnlineCheckInterval time.Duration
	SyncInterval        time.Duration
	PageSize            int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://story-api.dicoding.dev/v1"
	c.DatabasePath = "stories.db"
	c.SessionPath = "session.token"
	c.OnlineCheckInterval = 3 * time.Second
	c.SyncInterval = time.Minute
	c.PageSize = 10
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including an optional .env file), a JSON file (if present)
// and command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
