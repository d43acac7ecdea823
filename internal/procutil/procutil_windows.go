//go:build windows

package procutil

import (
	"context"
	"os/exec"
	"syscall"
	"time"
)

const createNoWindow = 0x08000000

// mediaPlayers are executables the playback tool may leave running after
// it exits; they are detached from the tool's process on Windows.
var mediaPlayers = []string{"vlc.exe", "wmplayer.exe", "mpv.exe"}

func prepare(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.HideWindow = true
	cmd.SysProcAttr.CreationFlags |= createNoWindow
}

// interrupt is a no-op: Windows has no reliable equivalent of SIGTERM for
// console-less children, so the ladder proceeds straight to the timeout.
func interrupt(cmd *exec.Cmd) error {
	return nil
}

func kill(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

func closeMediaPlayers() {
	for _, player := range mediaPlayers {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		sweep := exec.CommandContext(ctx, "taskkill", "/F", "/IM", player)
		prepare(sweep)
		_ = sweep.Run()
		cancel()
	}
}
