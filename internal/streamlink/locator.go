package streamlink

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/MaskiCoding/StreaMaski/internal/procutil"
	"github.com/MaskiCoding/StreaMaski/internal/twitch"
)

const (
	defaultProbeTimeout = 5 * time.Second
	versionFlag         = "--version"
)

// Locator finds a usable streamlink executable and remembers the answer.
type Locator struct {
	mu         sync.Mutex
	path       string
	probed     bool
	available  bool
	relayURL   string
	candidates []string

	probeTimeout time.Duration
	log          zerolog.Logger
}

// NewLocator builds a Locator that will pass relayURL as the proxy
// playlist source on every invocation. Discovery does not run yet; call
// Discover (typically from a background goroutine) or let the first
// IsAvailable trigger it.
func NewLocator(relayURL string, logger zerolog.Logger) *Locator {
	return &Locator{
		path:         "streamlink",
		relayURL:     relayURL,
		candidates:   defaultCandidates(),
		probeTimeout: defaultProbeTimeout,
		log:          logger,
	}
}

// Override puts path at the front of the candidate list, ahead of the
// platform defaults. It must be called before discovery runs.
func (l *Locator) Override(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	l.mu.Lock()
	l.candidates = append([]string{path}, l.candidates...)
	l.mu.Unlock()
}

// Discover probes the candidate list in order and caches the outcome.
// Safe to call more than once; later calls re-probe.
func (l *Locator) Discover() {
	l.mu.Lock()
	candidates := expandCandidates(l.candidates)
	l.mu.Unlock()

	for _, candidate := range candidates {
		if l.probe(candidate) {
			l.mu.Lock()
			l.path = candidate
			l.available = true
			l.probed = true
			l.mu.Unlock()
			l.log.Info().Str("path", candidate).Msg("streamlink located")
			return
		}
	}
	l.mu.Lock()
	l.available = false
	l.probed = true
	l.mu.Unlock()
	l.log.Warn().Msg("streamlink not found on this system")
}

// IsAvailable reports whether a working executable is known. If discovery
// never ran it runs now, so the first caller pays the probe cost.
func (l *Locator) IsAvailable() bool {
	l.mu.Lock()
	probed := l.probed
	available := l.available
	l.mu.Unlock()
	if probed {
		return available
	}
	l.Discover()

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.available
}

// Path returns the executable path discovery settled on.
func (l *Locator) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// BuildCommand assembles the playback argv. Order is part of the child
// process contract: executable, proxy flag, channel URL, quality token.
func (l *Locator) BuildCommand(ch twitch.Channel, quality twitch.Quality) []string {
	l.mu.Lock()
	path := l.path
	l.mu.Unlock()
	return []string{
		path,
		"--twitch-proxy-playlist=" + l.relayURL,
		ch.URL(),
		string(quality),
	}
}

// probe runs "<path> --version" hidden and bounded; a clean exit means the
// candidate works.
func (l *Locator) probe(path string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), l.probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, versionFlag)
	procutil.Prepare(cmd)
	if err := cmd.Run(); err != nil {
		l.log.Debug().Str("candidate", path).Err(err).Msg("probe failed")
		return false
	}
	return true
}

// expandCandidates resolves ~ prefixes against the user home directory,
// dropping candidates that cannot be resolved.
func expandCandidates(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(c, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				continue
			}
			c = filepath.Join(home, strings.TrimPrefix(c, "~"))
		}
		out = append(out, c)
	}
	return out
}
