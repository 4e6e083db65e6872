// Package config loads runtime configuration for the story CLI and the
// background sync worker.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file loaded first
//     (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the story API
//	-d string   path to the local SQLite database file
//	-t string   path to the session token file
//	-i int      online status check interval (seconds)
//	-s int      background sync interval (seconds)
//	-p int      stories per list page
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://story-api.dicoding.dev/v1",
//	  "database_path": "stories.db",
//	  "session_path": "session.token",
//	  "online_check_interval": "3s",
//	  "sync_interval": "1m",
//	  "page_size": 10
//	}
package config
