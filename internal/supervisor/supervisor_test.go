package supervisor

import (
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/MaskiCoding/StreaMaski/internal/twitch"
)

// fakeLocator satisfies ToolLocator with a caller-chosen argv, letting
// tests supervise ordinary shell commands instead of streamlink.
type fakeLocator struct {
	available bool
	argv      []string
}

func (f *fakeLocator) IsAvailable() bool { return f.available }

func (f *fakeLocator) BuildCommand(ch twitch.Channel, q twitch.Quality) []string {
	if f.argv != nil {
		return f.argv
	}
	return []string{"streamlink", "--twitch-proxy-playlist=https://relay.example.com", ch.URL(), string(q)}
}

type recorder struct {
	started chan struct{}
	stopped chan struct{}
	errors  chan string
}

func newRecorder() *recorder {
	return &recorder{
		started: make(chan struct{}, 4),
		stopped: make(chan struct{}, 4),
		errors:  make(chan string, 4),
	}
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		Started: func(twitch.Channel, twitch.Quality) { r.started <- struct{}{} },
		Stopped: func() { r.stopped <- struct{}{} },
		Errored: func(msg string) { r.errors <- msg },
	}
}

func waitFor[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(10 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func testChannel(t *testing.T) twitch.Channel {
	t.Helper()
	ch, err := twitch.ParseChannel("https://www.twitch.tv/somebody")
	if err != nil {
		t.Fatalf("ParseChannel: %v", err)
	}
	return ch
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("supervises unix shell commands")
	}
}

func TestStart_ToolUnavailable(t *testing.T) {
	rec := newRecorder()
	s := New(&fakeLocator{available: false}, zerolog.Nop(), Options{})
	s.Notify(rec.callbacks())

	if s.Start(testChannel(t), twitch.QualityBest) {
		t.Fatal("Start succeeded without the tool")
	}
	msg := waitFor(t, rec.errors, "error event")
	if msg != msgToolMissing {
		t.Errorf("error = %q, want %q", msg, msgToolMissing)
	}
	if got := s.State(); got != StateStopped {
		t.Errorf("state = %v, want stopped", got)
	}
}

func TestStart_SecondCallRejected(t *testing.T) {
	skipOnWindows(t)

	rec := newRecorder()
	s := New(&fakeLocator{available: true, argv: []string{"sleep", "30"}}, zerolog.Nop(), Options{})
	s.Notify(rec.callbacks())

	if !s.Start(testChannel(t), twitch.QualityBest) {
		t.Fatal("first Start failed")
	}
	waitFor(t, rec.started, "started event")

	if s.Start(testChannel(t), twitch.QualityBest) {
		t.Error("second Start accepted while running")
	}
	select {
	case <-rec.started:
		t.Error("second started event emitted")
	default:
	}

	s.Stop()
	waitFor(t, rec.stopped, "stopped event")
}

func TestStart_BackToBackWithoutAwaitingStop(t *testing.T) {
	skipOnWindows(t)

	rec := newRecorder()
	s := New(&fakeLocator{available: true, argv: []string{"sleep", "30"}}, zerolog.Nop(), Options{})
	s.Notify(rec.callbacks())

	first := s.Start(testChannel(t), twitch.QualityBest)
	second := s.Start(testChannel(t), twitch.QualityBest)
	if !first {
		t.Error("first Start = false")
	}
	if second {
		t.Error("second Start = true, want false")
	}

	waitFor(t, rec.started, "started event")
	s.Stop()
	waitFor(t, rec.stopped, "stopped event")
}

func TestStop_GracefulTermination(t *testing.T) {
	skipOnWindows(t)

	rec := newRecorder()
	s := New(&fakeLocator{available: true, argv: []string{"sleep", "30"}}, zerolog.Nop(), Options{})
	s.Notify(rec.callbacks())

	s.Start(testChannel(t), twitch.QualityBest)
	waitFor(t, rec.started, "started event")

	s.Stop()
	waitFor(t, rec.stopped, "stopped event")

	if got := s.State(); got != StateStopped {
		t.Errorf("state = %v, want stopped", got)
	}
	s.mu.Lock()
	handle := s.cmd
	s.mu.Unlock()
	if handle != nil {
		t.Error("process handle not cleared after stop")
	}

	// User-initiated stop produces no error event even though the child
	// died from a signal.
	select {
	case msg := <-rec.errors:
		t.Errorf("unexpected error event: %q", msg)
	default:
	}
}

func TestStop_EscalatesWhenChildIgnoresTerm(t *testing.T) {
	skipOnWindows(t)

	rec := newRecorder()
	argv := []string{"sh", "-c", `trap "" TERM; while true; do sleep 1; done`}
	s := New(&fakeLocator{available: true, argv: argv}, zerolog.Nop(), Options{StopGrace: 200 * time.Millisecond})
	s.Notify(rec.callbacks())

	s.Start(testChannel(t), twitch.QualityBest)
	waitFor(t, rec.started, "started event")

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Stop did not finish after escalation")
	}
	waitFor(t, rec.stopped, "stopped event")
	if got := s.State(); got != StateStopped {
		t.Errorf("state = %v, want stopped", got)
	}
}

func TestAbnormalExit_EmitsFriendlyError(t *testing.T) {
	skipOnWindows(t)

	rec := newRecorder()
	argv := []string{"sh", "-c", `echo "error: No playable streams found" >&2; exit 1`}
	s := New(&fakeLocator{available: true, argv: argv}, zerolog.Nop(), Options{})
	s.Notify(rec.callbacks())

	s.Start(testChannel(t), twitch.QualityBest)
	waitFor(t, rec.started, "started event")

	msg := waitFor(t, rec.errors, "error event")
	if want := "Stream failed: Stream not found or offline"; msg != want {
		t.Errorf("error = %q, want %q", msg, want)
	}
	waitFor(t, rec.stopped, "stopped event")
	if got := s.State(); got != StateStopped {
		t.Errorf("state = %v, want stopped", got)
	}
}

func TestSpawnFailure_EmitsErrorAndStops(t *testing.T) {
	rec := newRecorder()
	argv := []string{"/nonexistent/definitely-not-a-tool"}
	s := New(&fakeLocator{available: true, argv: argv}, zerolog.Nop(), Options{})
	s.Notify(rec.callbacks())

	if !s.Start(testChannel(t), twitch.QualityBest) {
		t.Fatal("Start returned false; spawn result should arrive via events")
	}
	waitFor(t, rec.errors, "error event")
	waitFor(t, rec.stopped, "stopped event")
	if got := s.State(); got != StateStopped {
		t.Errorf("state = %v, want stopped", got)
	}
}

func TestSwitch_StopsThenStarts(t *testing.T) {
	skipOnWindows(t)

	rec := newRecorder()
	s := New(&fakeLocator{available: true, argv: []string{"sleep", "30"}}, zerolog.Nop(), Options{SettleDelay: 50 * time.Millisecond})
	s.Notify(rec.callbacks())

	s.Start(testChannel(t), twitch.QualityBest)
	waitFor(t, rec.started, "first started event")

	if !s.Switch(testChannel(t), twitch.Quality720p) {
		t.Fatal("Switch failed")
	}
	waitFor(t, rec.stopped, "stopped event from switch")
	waitFor(t, rec.started, "second started event")

	s.Stop()
	waitFor(t, rec.stopped, "final stopped event")
}

func TestStop_NoopWhenIdle(t *testing.T) {
	rec := newRecorder()
	s := New(&fakeLocator{available: true}, zerolog.Nop(), Options{})
	s.Notify(rec.callbacks())

	s.Stop()
	select {
	case <-rec.stopped:
		t.Error("stopped event emitted by idle Stop")
	default:
	}
}

func TestExtractInvocation(t *testing.T) {
	tests := []struct {
		name        string
		argv        []string
		wantHandle  string
		wantQuality twitch.Quality
	}{
		{
			name:        "canonical order",
			argv:        []string{"streamlink", "--twitch-proxy-playlist=https://relay.example.com", "https://www.twitch.tv/xqc", "720p"},
			wantHandle:  "xqc",
			wantQuality: twitch.Quality720p,
		},
		{
			name:        "flag after url",
			argv:        []string{"streamlink", "https://www.twitch.tv/xqc", "--twitch-proxy-playlist=https://relay.example.com", "best"},
			wantHandle:  "xqc",
			wantQuality: twitch.QualityBest,
		},
		{
			name:        "invalid trailing quality falls back",
			argv:        []string{"streamlink", "https://www.twitch.tv/xqc"},
			wantHandle:  "xqc",
			wantQuality: twitch.DefaultQuality,
		},
		{
			name:        "no url present",
			argv:        []string{"streamlink", "best"},
			wantHandle:  "",
			wantQuality: twitch.QualityBest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, q := extractInvocation(tt.argv)
			if ch.Handle() != tt.wantHandle {
				t.Errorf("handle = %q, want %q", ch.Handle(), tt.wantHandle)
			}
			if q != tt.wantQuality {
				t.Errorf("quality = %v, want %v", q, tt.wantQuality)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	pairs := map[State]string{
		StateStopped:  "stopped",
		StateStarting: "starting",
		StateRunning:  "running",
		StateStopping: "stopping",
		StateError:    "error",
	}
	for state, want := range pairs {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
