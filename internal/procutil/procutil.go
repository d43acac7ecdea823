package procutil

import (
	"os/exec"
	"time"
)

// Prepare configures cmd before Start so the whole child tree can be
// signalled later. On unix the child becomes a process-group leader; on
// Windows the process runs without a console window.
func Prepare(cmd *exec.Cmd) {
	prepare(cmd)
}

// Terminate runs the stop ladder against a started command: request
// graceful termination, wait up to grace for the monitor to observe the
// exit (signalled by closing exited), then force-kill and wait again.
// It never returns before the process is gone. Safe to call with a nil
// command or a command that never started.
func Terminate(cmd *exec.Cmd, exited <-chan struct{}, grace time.Duration) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	// Graceful first. Errors here usually mean the process is already
	// gone, which is fine.
	_ = interrupt(cmd)

	select {
	case <-exited:
		return
	case <-time.After(grace):
	}

	_ = kill(cmd)
	<-exited
}

// CloseMediaPlayers kills known external media players the playback tool
// spawns as children. Only meaningful on Windows, where the players outlive
// the tool; a no-op elsewhere. Failures are ignored: the sweep is
// best-effort cleanup, never a correctness requirement.
func CloseMediaPlayers() {
	closeMediaPlayers()
}
