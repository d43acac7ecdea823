package twitch

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantOK     bool
		wantReason string
	}{
		{"plain handle", "https://www.twitch.tv/xqc", true, ""},
		{"no www", "https://twitch.tv/xqc", true, ""},
		{"http scheme", "http://www.twitch.tv/xqc", true, ""},
		{"trailing slash", "https://www.twitch.tv/xqc/", true, ""},
		{"mixed case host", "HTTPS://WWW.Twitch.TV/XqC", true, ""},
		{"underscore handle", "https://www.twitch.tv/some_streamer", true, ""},
		{"max length handle", "https://www.twitch.tv/" + strings.Repeat("a", 25), true, ""},
		{"empty", "", false, msgEmptyURL},
		{"not twitch", "https://www.youtube.com/xqc", false, msgNotTwitch},
		{"missing scheme", "www.twitch.tv/xqc", false, msgNoScheme},
		{"two char handle", "https://www.twitch.tv/ab", false, msgInvalidFormat},
		{"too long handle", "https://www.twitch.tv/" + strings.Repeat("a", 26), false, msgInvalidFormat},
		{"extra path", "https://www.twitch.tv/xqc/videos", false, msgInvalidFormat},
		{"illegal character", "https://www.twitch.tv/x-qc", false, msgInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Validate(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Validate(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if reason != tt.wantReason {
				t.Fatalf("Validate(%q) reason = %q, want %q", tt.raw, reason, tt.wantReason)
			}
		})
	}
}

func TestValidate_CaseInsensitiveHandles(t *testing.T) {
	for _, raw := range []string{
		"https://www.twitch.tv/xqc",
		"https://www.twitch.tv/XQC",
		"https://www.twitch.tv/xQc",
	} {
		if ok, reason := Validate(raw); !ok {
			t.Errorf("Validate(%q) = false (%q), want true", raw, reason)
		}
	}
}

func TestExtractHandle(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.twitch.tv/xqc", "Xqc"},
		{"https://www.twitch.tv/XQC", "Xqc"},
		{"https://twitch.tv/Some_Streamer/", "Some_streamer"},
		{"https://www.twitch.tv/ab", ""},
		{"not a url", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractHandle(tt.raw); got != tt.want {
			t.Errorf("ExtractHandle(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.twitch.tv/XQC", "https://www.twitch.tv/xqc"},
		{"http://twitch.tv/Streamer_1/", "https://www.twitch.tv/streamer_1"},
		{"  https://www.twitch.tv/xqc  ", "https://www.twitch.tv/xqc"},
		// Non-matching input passes through untouched.
		{"https://example.com/xqc", "https://example.com/xqc"},
		{"garbage", "garbage"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"https://www.twitch.tv/XQC",
		"http://twitch.tv/somebody/",
		"https://www.twitch.tv/a_b_c",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestParseChannel(t *testing.T) {
	ch, err := ParseChannel("https://www.twitch.tv/XqC")
	if err != nil {
		t.Fatalf("ParseChannel: %v", err)
	}
	if ch.Handle() != "xqc" {
		t.Errorf("Handle = %q, want %q", ch.Handle(), "xqc")
	}
	if ch.DisplayName() != "Xqc" {
		t.Errorf("DisplayName = %q, want %q", ch.DisplayName(), "Xqc")
	}
	if ch.URL() != "https://www.twitch.tv/xqc" {
		t.Errorf("URL = %q", ch.URL())
	}

	other, err := ParseChannel("https://twitch.tv/XQC/")
	if err != nil {
		t.Fatalf("ParseChannel: %v", err)
	}
	if ch != other {
		t.Errorf("channels with same handle should be equal: %v vs %v", ch, other)
	}

	if _, err := ParseChannel("https://example.com/xqc"); err == nil {
		t.Error("ParseChannel accepted a non-Twitch URL")
	}
}

func TestQuality(t *testing.T) {
	if !DefaultQuality.IsValid() {
		t.Error("DefaultQuality should be valid")
	}
	if Quality("1440p").IsValid() {
		t.Error("unknown tier reported valid")
	}
	if QualityOptions[0] != QualityBest || QualityOptions[len(QualityOptions)-1] != QualityWorst {
		t.Error("QualityOptions order changed")
	}
}

func TestBoundedCache_EvictsOldest(t *testing.T) {
	c := newBoundedCache[int](3)
	c.put("a", 1)
	c.put("b", 2)
	c.put("c", 3)
	c.put("d", 4) // evicts "a"

	if c.len() != 3 {
		t.Fatalf("len = %d, want 3", c.len())
	}
	if _, ok := c.get("a"); ok {
		t.Error("oldest entry survived eviction")
	}
	if v, ok := c.get("d"); !ok || v != 4 {
		t.Errorf("get(d) = %d, %v", v, ok)
	}
	// Overwriting an existing key must not evict.
	c.put("b", 20)
	if _, ok := c.get("c"); !ok {
		t.Error("overwrite evicted an unrelated entry")
	}
}
