//go:build windows

package streamlink

// defaultCandidates returns the probe order for Windows: PATH lookup,
// system-wide install dirs, then per-user installs.
func defaultCandidates() []string {
	return []string{
		"streamlink",
		`C:\Program Files\Streamlink\bin\streamlink.exe`,
		`C:\Program Files (x86)\Streamlink\bin\streamlink.exe`,
		"streamlink.exe",
		`~\AppData\Local\Programs\Streamlink\bin\streamlink.exe`,
		`~\AppData\Roaming\Python\Scripts\streamlink.exe`,
	}
}
