// Package twitch handles Twitch channel identity and live-status lookups.
//
// # Overview
//
// The package has two halves:
//
//   - URL handling: Validate, ExtractHandle, Normalize and the Channel value
//     type. These are pure functions over the canonical channel URL form
//     https://www.twitch.tv/<handle>; small bounded caches make repeated
//     validation cheap but are never observable in results.
//
//   - Status polling: Checker answers "is this channel broadcasting right
//     now?" by fetching the public channel page and scanning it for known
//     live/offline markers. Results are cached for a short window and the
//     outbound request rate is limited.
//
// # Classification policy
//
// A 200 response that matches no marker is reported as Offline, not Unknown.
// Only non-200 responses and network failures yield Unknown. Callers rely on
// this: an Unknown answer means "could not check", an Offline answer means
// "checked, not live".
//
// # Concurrency
//
// Validate/ExtractHandle/Normalize and all Checker methods are safe for
// concurrent use. CheckMultiple fans out across a small worker pool; the
// per-channel callback may fire from multiple goroutines but fires exactly
// once per distinct input channel.
package twitch
