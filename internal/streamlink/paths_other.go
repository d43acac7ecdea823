//go:build !windows

package streamlink

// defaultCandidates returns the probe order for unix-likes: PATH lookup,
// the common package-manager locations, then pip --user installs.
func defaultCandidates() []string {
	return []string{
		"streamlink",
		"/usr/local/bin/streamlink",
		"/usr/bin/streamlink",
		"/opt/homebrew/bin/streamlink",
		"~/.local/bin/streamlink",
	}
}
