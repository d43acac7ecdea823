package supervisor

import "strings"

// errorMappings translate known streamlink failure text into short
// user-facing messages. Order matters: the first match wins.
var errorMappings = []struct {
	pattern string
	message string
}{
	{"No playable streams found", "Stream not found or offline"},
	{"Unable to open URL", "Unable to connect to stream"},
	{"Authentication failed", "Stream requires authentication"},
	{"Network is unreachable", "Network connection error"},
	{"Connection timed out", "Connection timeout - try again"},
	{"404 Client Error", "Stream not found or offline"},
	{"403 Client Error", "Stream is subscriber-only or restricted"},
	{"500 Server Error", "Twitch server error - try again later"},
}

// friendlyMessage maps captured tool output onto the message table.
// Unmatched output passes through verbatim so nothing is silently
// swallowed; empty output gets a generic fallback.
func friendlyMessage(stderr, stdout []byte) string {
	var b strings.Builder
	if s := strings.TrimSpace(string(stderr)); s != "" {
		b.WriteString(s)
	}
	if s := strings.TrimSpace(string(stdout)); s != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s)
	}
	combined := b.String()
	if combined == "" {
		return "Unknown error occurred"
	}
	for _, m := range errorMappings {
		if strings.Contains(combined, m.pattern) {
			return m.message
		}
	}
	return combined
}
