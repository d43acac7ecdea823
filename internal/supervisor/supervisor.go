package supervisor

import (
	"bytes"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/MaskiCoding/StreaMaski/internal/procutil"
	"github.com/MaskiCoding/StreaMaski/internal/twitch"
)

// State names a position in the session lifecycle.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateError
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateError:
		return "error"
	default:
		return "stopped"
	}
}

// ToolLocator is the slice of the streamlink locator the supervisor needs.
type ToolLocator interface {
	IsAvailable() bool
	BuildCommand(ch twitch.Channel, quality twitch.Quality) []string
}

// Callbacks carries one subscriber slot per lifecycle event. Nil slots are
// skipped.
type Callbacks struct {
	Started func(ch twitch.Channel, quality twitch.Quality)
	Stopped func()
	Errored func(message string)
}

// Options tune supervisor timing. Zero values select the defaults.
type Options struct {
	StopGrace   time.Duration // graceful-stop wait before force kill
	SettleDelay time.Duration // pause between stop and start on Switch
}

const (
	defaultStopGrace   = 3 * time.Second
	defaultSettleDelay = 500 * time.Millisecond
	msgToolMissing     = "Streamlink not found. Please install Streamlink."
)

// Supervisor runs at most one playback child process at a time.
type Supervisor struct {
	locator ToolLocator
	log     zerolog.Logger

	stopGrace   time.Duration
	settleDelay time.Duration

	mu            sync.Mutex
	state         State
	cmd           *exec.Cmd
	exited        chan struct{} // closed by the monitor once cleanup ran
	stoppedByUser bool
	cb            Callbacks
}

// New builds an idle Supervisor. Subscribe with Notify before starting
// sessions.
func New(locator ToolLocator, logger zerolog.Logger, opts Options) *Supervisor {
	grace := opts.StopGrace
	if grace <= 0 {
		grace = defaultStopGrace
	}
	settle := opts.SettleDelay
	if settle <= 0 {
		settle = defaultSettleDelay
	}
	return &Supervisor{
		locator:     locator,
		log:         logger,
		stopGrace:   grace,
		settleDelay: settle,
		state:       StateStopped,
	}
}

// Notify registers the event subscribers. Call before the first Start.
func (s *Supervisor) Notify(cb Callbacks) {
	s.mu.Lock()
	s.cb = cb
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsRunning reports whether a session is confirmed running.
func (s *Supervisor) IsRunning() bool {
	return s.State() == StateRunning
}

// Start begins a new session. It returns false without side effects when a
// session is already underway, and false with an Errored event when the
// playback tool is missing. On true the spawn continues asynchronously;
// the outcome arrives via Started or Errored, and eventually Stopped.
func (s *Supervisor) Start(ch twitch.Channel, quality twitch.Quality) bool {
	s.mu.Lock()
	if s.state != StateStopped {
		s.mu.Unlock()
		s.log.Debug().Stringer("state", s.State()).Msg("start rejected, session in progress")
		return false
	}
	s.mu.Unlock()

	// Availability probe may block (first lazy discovery), so it runs
	// outside the lock.
	if !s.locator.IsAvailable() {
		s.emitErrored(msgToolMissing)
		return false
	}

	s.mu.Lock()
	if s.state != StateStopped {
		s.mu.Unlock()
		return false
	}
	s.state = StateStarting
	s.stoppedByUser = false
	s.exited = make(chan struct{})
	s.mu.Unlock()

	argv := s.locator.BuildCommand(ch, quality)
	go s.run(argv)
	return true
}

// Switch stops any current session, lets the OS settle, and starts a new
// one. The settle delay gives the previous player process time to release
// exclusive resources; it is a pragmatic pause, not a guarantee.
func (s *Supervisor) Switch(ch twitch.Channel, quality twitch.Quality) bool {
	if s.IsRunning() {
		s.Stop()
		time.Sleep(s.settleDelay)
	}
	return s.Start(ch, quality)
}

// Stop terminates the running session and blocks until the machine is back
// at Stopped. A no-op unless a session is confirmed running.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if s.state != StateRunning || s.cmd == nil {
		s.mu.Unlock()
		return
	}
	s.state = StateStopping
	s.stoppedByUser = true
	cmd := s.cmd
	exited := s.exited
	s.mu.Unlock()

	s.log.Info().Msg("stopping stream")
	procutil.Terminate(cmd, exited, s.stopGrace)
	procutil.CloseMediaPlayers()
}

// run is the monitor: it spawns the child, watches it, classifies the
// exit, and always funnels the machine back to Stopped.
func (s *Supervisor) run(argv []string) {
	defer s.cleanup()

	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	procutil.Prepare(cmd)

	if err := cmd.Start(); err != nil {
		s.setState(StateError)
		s.log.Error().Err(err).Str("tool", argv[0]).Msg("spawn failed")
		s.emitErrored("Failed to start stream: " + err.Error())
		return
	}

	s.mu.Lock()
	s.cmd = cmd
	s.state = StateRunning
	exited := s.exited
	s.mu.Unlock()

	ch, quality := extractInvocation(argv)
	s.log.Info().Str("channel", ch.Handle()).Str("quality", string(quality)).Int("pid", cmd.Process.Pid).Msg("stream started")
	s.emitStarted(ch, quality)

	err := cmd.Wait()
	close(exited)

	s.mu.Lock()
	stopped := s.stoppedByUser
	s.mu.Unlock()

	if err != nil && !stopped {
		s.setState(StateError)
		msg := friendlyMessage(stderr.Bytes(), stdout.Bytes())
		s.log.Warn().Err(err).Str("channel", ch.Handle()).Msg("stream exited abnormally")
		s.emitErrored("Stream failed: " + msg)
	}
}

// cleanup is the single funnel back to Stopped. It must succeed no matter
// which branch the monitor took.
func (s *Supervisor) cleanup() {
	s.mu.Lock()
	s.state = StateStopped
	s.cmd = nil
	s.stoppedByUser = false
	exited := s.exited
	s.exited = nil
	s.mu.Unlock()

	// A spawn failure never closed the channel; close it here so any
	// concurrent Stop cannot hang.
	if exited != nil {
		select {
		case <-exited:
		default:
			close(exited)
		}
	}
	s.emitStopped()
}

func (s *Supervisor) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Supervisor) callbacks() Callbacks {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cb
}

func (s *Supervisor) emitStarted(ch twitch.Channel, quality twitch.Quality) {
	if cb := s.callbacks(); cb.Started != nil {
		cb.Started(ch, quality)
	}
}

func (s *Supervisor) emitStopped() {
	if cb := s.callbacks(); cb.Stopped != nil {
		cb.Stopped()
	}
}

func (s *Supervisor) emitErrored(message string) {
	if cb := s.callbacks(); cb.Errored != nil {
		cb.Errored(message)
	}
}

// extractInvocation recovers the channel and quality from a built argv for
// event reporting. It scans for the first URL-shaped token rather than
// trusting positions, so a reordered command line cannot misreport.
func extractInvocation(argv []string) (twitch.Channel, twitch.Quality) {
	var ch twitch.Channel
	for _, tok := range argv[1:] {
		if !strings.HasPrefix(tok, "http://") && !strings.HasPrefix(tok, "https://") {
			continue
		}
		parsed, err := twitch.ParseChannel(tok)
		if err != nil {
			continue
		}
		ch = parsed
		break
	}

	quality := twitch.DefaultQuality
	if len(argv) > 1 {
		if q := twitch.Quality(argv[len(argv)-1]); q.IsValid() {
			quality = q
		}
	}
	return ch, quality
}
