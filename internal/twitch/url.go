package twitch

import (
	"errors"
	"strings"
	"sync"

	"github.com/grafana/regexp"
)

const canonicalPrefix = "https://www.twitch.tv/"

// channelURLPattern matches a Twitch channel page URL: optional www, a
// handle of 3-25 word characters, optional trailing slash, any casing.
var channelURLPattern = regexp.MustCompile(`(?i)^https?://(?:www\.)?twitch\.tv/(\w{3,25})/?$`)

// Validation failure messages shown to the user.
const (
	msgEmptyURL      = "Please enter a Twitch stream URL"
	msgNotTwitch     = "URL must be from Twitch (twitch.tv)"
	msgNoScheme      = "URL must start with http:// or https://"
	msgInvalidFormat = "Invalid Twitch URL format.\nExample: https://www.twitch.tv/streamer_name"
)

const (
	validateCacheSize = 100
	handleCacheSize   = 50
)

type validation struct {
	ok     bool
	reason string
}

var (
	validateCache = newBoundedCache[validation](validateCacheSize)
	handleCache   = newBoundedCache[string](handleCacheSize)
)

// Validate reports whether raw is an acceptable Twitch channel URL. On
// failure the second return value carries a user-facing reason.
func Validate(raw string) (bool, string) {
	if raw == "" {
		return false, msgEmptyURL
	}
	trimmed := strings.TrimSpace(raw)
	if v, ok := validateCache.get(trimmed); ok {
		return v.ok, v.reason
	}

	v := validation{ok: true}
	if !channelURLPattern.MatchString(trimmed) {
		v.ok = false
		switch {
		case !strings.Contains(strings.ToLower(trimmed), "twitch.tv"):
			v.reason = msgNotTwitch
		case !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://"):
			v.reason = msgNoScheme
		default:
			v.reason = msgInvalidFormat
		}
	}
	validateCache.put(trimmed, v)
	return v.ok, v.reason
}

// ExtractHandle returns the capitalized handle from a channel URL, or the
// empty string when raw is not a valid channel URL.
func ExtractHandle(raw string) string {
	if raw == "" {
		return ""
	}
	if h, ok := handleCache.get(raw); ok {
		return h
	}
	var handle string
	if m := channelURLPattern.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
		handle = capitalize(m[1])
	}
	handleCache.put(raw, handle)
	return handle
}

// Normalize rewrites raw into the canonical lowercase channel URL. Inputs
// that do not look like a channel URL pass through unchanged; callers must
// re-validate before trusting the result.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	if m := channelURLPattern.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
		return canonicalPrefix + strings.ToLower(m[1])
	}
	return raw
}

func parseHandle(raw string) (string, error) {
	m := channelURLPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		_, reason := Validate(raw)
		return "", errors.New(reason)
	}
	return m[1], nil
}

// boundedCache is a small insertion-ordered cache: when full, the oldest
// inserted entry is dropped. It exists purely to make repeated validation
// of the same strings cheap.
type boundedCache[V any] struct {
	mu      sync.Mutex
	max     int
	entries map[string]V
	order   []string
}

func newBoundedCache[V any](max int) *boundedCache[V] {
	return &boundedCache[V]{
		max:     max,
		entries: make(map[string]V, max),
	}
}

func (c *boundedCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *boundedCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		c.entries[key] = value
		return
	}
	for len(c.entries) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = value
	c.order = append(c.order, key)
}

func (c *boundedCache[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
