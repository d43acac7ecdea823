// Package config handles loading and parsing StreaMaski's TOML
// configuration file.
//
// # Overview
//
// StreaMaski works without any configuration: every field has a default,
// and a missing config file is not an error. The file exists to override
// the playlist relay, logging, and status-check tunables.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/streamaski/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty/zero, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/streamaski/config.toml
//   - Relay: https://eu.luminous.dev
//   - Log directory: ~/.local/share/streamaski
//   - Log file: <log_dir>/streamaski.log
//   - Log level: info
//   - Status check timeout: 10 seconds
//   - Status cache TTL: 60 seconds
//   - Concurrent status checks: 5
//
// # TOML Format
//
// Example config.toml:
//
//	relay_url = "https://eu.luminous.dev"
//	log_dir = "~/.local/share/streamaski"
//	log_level = "debug"
//	status_timeout_seconds = 10
//	status_cache_seconds = 60
//	max_status_checks = 5
//	streamlink_path = "/usr/local/bin/streamlink"
//
// All fields are optional. Tilde expansion is performed automatically on
// paths; streamlink_path, when set, short-circuits the usual candidate
// probe.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors
// (except os.ErrNotExist, which triggers defaults), and TOML parsing
// errors. Field values that are empty or non-positive fall back to their
// defaults individually.
package config
