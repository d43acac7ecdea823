// Package procutil holds the platform-specific pieces of child process
// management: spawning in a new process group (unix) or with a hidden
// window (Windows), the graceful-terminate / force-kill ladder, and the
// best-effort sweep of external media players the playback tool may have
// left behind on Windows.
package procutil
