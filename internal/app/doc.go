// Package app is the composition root for StreaMaski.
//
// # Overview
//
// Run wires together configuration, logging, settings, the live-status
// checker, the streamlink locator, the playback supervisor, the quick-swap
// registry, and the controller, then hands everything to the TUI and
// blocks until the user exits or the context is cancelled.
//
// # Startup Sequence
//
//  1. Load configuration from ~/.config/streamaski/config.toml
//  2. Open the log file under the configured log directory
//  3. Load persisted settings (last stream, quick-swap list)
//  4. Build the HTTP client and live-status checker
//  5. Start streamlink discovery in the background
//  6. Construct the supervisor, registry, and controller
//  7. Run the TUI (blocks)
//  8. Stop any stream still playing
//
// # Error Handling
//
// Errors before the UI starts are fatal and returned from Run: an
// unreadable config file, an unwritable log directory, an unreadable
// settings file. A missing streamlink executable is NOT fatal at startup;
// it surfaces as a user-facing message on the first attempt to play.
//
// # Dependencies
//
//   - config: TOML configuration
//   - settings: persisted JSON state
//   - twitch: URL validation and live-status checks
//   - streamlink: executable discovery and argv construction
//   - supervisor: child process lifecycle
//   - favorites: quick-swap slots
//   - control: UI-facing operations and event fan-in
//   - ui: Bubble Tea terminal interface
package app
