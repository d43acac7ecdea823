// Package settings persists the small runtime settings document.
//
// The document is flat JSON at <user config dir>/streamaski/settings.json:
//
//	{
//	  "last_url": "https://www.twitch.tv/somebody",
//	  "last_quality": "best",
//	  "quick_swap_streams": ["https://www.twitch.tv/somebody"],
//	  "app_version": "3.0.0"
//	}
//
// Loading is forgiving: fields with the wrong type fall back to their
// defaults individually, and a document that is not JSON at all is renamed
// aside with a .backup suffix so the user's data survives for inspection
// while the session proceeds on defaults. Every setter writes the whole
// document synchronously before returning.
package settings
