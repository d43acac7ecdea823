// Package streamlink locates the streamlink executable and builds playback
// invocations.
//
// # Discovery
//
// Discover probes an ordered candidate list: the bare command name (PATH
// lookup) first, then the known install directories for the platform, then
// user-profile paths with ~ expanded. Each candidate is probed by running
// it with --version under a short timeout and a hidden window; the first
// one that responds wins. The result - including "nothing found" - is
// cached, and IsAvailable re-probes only if discovery never ran.
//
// Absence of the tool is a boolean, never an error: callers surface it to
// the user as an installation hint.
//
// # Invocation contract
//
// BuildCommand produces argv in a fixed order the supervisor relies on:
//
//	streamlink --twitch-proxy-playlist=<relay> <channel URL> <quality>
//
// The relay URL routes playlist fetches through an ad-stripping proxy.
package streamlink
