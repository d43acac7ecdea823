package streamlink

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/MaskiCoding/StreaMaski/internal/twitch"
)

func TestBuildCommand_Order(t *testing.T) {
	l := NewLocator("https://relay.example.com", zerolog.Nop())

	ch, err := twitch.ParseChannel("https://www.twitch.tv/XQC")
	if err != nil {
		t.Fatalf("ParseChannel: %v", err)
	}

	argv := l.BuildCommand(ch, twitch.Quality720p)
	want := []string{
		"streamlink",
		"--twitch-proxy-playlist=https://relay.example.com",
		"https://www.twitch.tv/xqc",
		"720p",
	}
	if len(argv) != len(want) {
		t.Fatalf("argv = %v, want %v", argv, want)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, argv[i], want[i])
		}
	}
}

func TestExpandCandidates(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	got := expandCandidates([]string{"streamlink", "~/.local/bin/streamlink"})
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0] != "streamlink" {
		t.Errorf("plain candidate changed: %q", got[0])
	}
	if !strings.HasPrefix(got[1], home) {
		t.Errorf("tilde candidate %q not under home %q", got[1], home)
	}
	if strings.Contains(got[1], "~") {
		t.Errorf("tilde survived expansion: %q", got[1])
	}
}

func TestDiscover_FindsWorkingCandidate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell-script stand-in")
	}

	dir := t.TempDir()
	fake := filepath.Join(dir, "streamlink")
	script := "#!/bin/sh\nexit 0\n"
	if err := os.WriteFile(fake, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}

	l := NewLocator("https://relay.example.com", zerolog.Nop())
	l.candidates = []string{filepath.Join(dir, "missing"), fake}
	l.Discover()

	if !l.IsAvailable() {
		t.Fatal("IsAvailable = false with a working candidate")
	}
	if l.Path() != fake {
		t.Errorf("Path = %q, want %q", l.Path(), fake)
	}
}

func TestDiscover_NothingFound(t *testing.T) {
	dir := t.TempDir()
	l := NewLocator("https://relay.example.com", zerolog.Nop())
	l.candidates = []string{filepath.Join(dir, "absent")}
	l.probeTimeout = time.Second
	l.Discover()

	if l.IsAvailable() {
		t.Fatal("IsAvailable = true with no candidates present")
	}
}

func TestOverride_ProbedFirst(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell-script stand-in")
	}

	dir := t.TempDir()
	override := filepath.Join(dir, "custom-streamlink")
	if err := os.WriteFile(override, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}

	l := NewLocator("https://relay.example.com", zerolog.Nop())
	l.candidates = []string{filepath.Join(dir, "absent")}
	l.Override(override)
	l.Override("   ") // ignored
	l.Discover()

	if l.Path() != override {
		t.Errorf("Path = %q, want override %q", l.Path(), override)
	}
}

func TestIsAvailable_ProbesLazily(t *testing.T) {
	dir := t.TempDir()
	l := NewLocator("https://relay.example.com", zerolog.Nop())
	l.candidates = []string{filepath.Join(dir, "absent")}
	l.probeTimeout = time.Second

	// Never Discovered explicitly; first IsAvailable must settle it.
	if l.IsAvailable() {
		t.Fatal("IsAvailable = true, want false")
	}
	if !l.probed {
		t.Error("lazy probe did not mark the locator as probed")
	}
}
