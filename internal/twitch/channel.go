package twitch

import "strings"

// Quality identifies one of streamlink's quality tiers.
type Quality string

// Quality tiers in selection order, best first.
const (
	QualityBest    Quality = "best"
	Quality1080p60 Quality = "1080p60"
	Quality1080p   Quality = "1080p"
	Quality720p60  Quality = "720p60"
	Quality720p    Quality = "720p"
	Quality480p    Quality = "480p"
	Quality360p    Quality = "360p"
	QualityWorst   Quality = "worst"
)

// DefaultQuality is used whenever no explicit tier was chosen.
const DefaultQuality = QualityBest

// QualityOptions lists the selectable tiers in display order.
var QualityOptions = []Quality{
	QualityBest,
	Quality1080p60,
	Quality1080p,
	Quality720p60,
	Quality720p,
	Quality480p,
	Quality360p,
	QualityWorst,
}

// IsValid reports whether q names a known tier.
func (q Quality) IsValid() bool {
	for _, opt := range QualityOptions {
		if q == opt {
			return true
		}
	}
	return false
}

// Channel is a canonicalized reference to a Twitch channel. Two Channels
// with the same handle compare equal regardless of the input casing they
// were parsed from.
type Channel struct {
	handle string // always lowercase
}

// ParseChannel builds a Channel from a user-supplied URL. It accepts the
// same inputs Validate accepts.
func ParseChannel(raw string) (Channel, error) {
	handle, err := parseHandle(raw)
	if err != nil {
		return Channel{}, err
	}
	return Channel{handle: strings.ToLower(handle)}, nil
}

// Handle returns the lowercase channel handle.
func (c Channel) Handle() string { return c.handle }

// DisplayName returns the handle with the conventional leading capital.
func (c Channel) DisplayName() string { return capitalize(c.handle) }

// URL returns the canonical channel page URL.
func (c Channel) URL() string {
	return canonicalPrefix + c.handle
}

// IsZero reports whether c refers to no channel.
func (c Channel) IsZero() bool { return c.handle == "" }

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	// Handles are ASCII word characters only, so byte-wise casing is safe.
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
