// Package supervisor owns the lifecycle of the single playback child
// process.
//
// # State machine
//
// Stopped -> Starting -> Running -> Stopping -> Stopped, with Error
// reachable from Starting and Running on abnormal exit. Every path funnels
// back to Stopped through one cleanup routine, so the machine can never
// wedge in an intermediate state. At most one session is live: Start is
// rejected unless the current state is Stopped.
//
// # Threads
//
// Start returns immediately; the spawn and the wait both happen on a
// monitor goroutine so the caller (the UI) is never blocked. Stop runs on
// the caller's goroutine and blocks until the process is gone - first a
// graceful termination request, then after a bounded grace period a forced
// kill. The process handle is owned exclusively by this package.
//
// # Events
//
// Lifecycle notifications go out through Callbacks, one typed slot per
// event kind: Started once the child is confirmed running, Errored with a
// user-facing message, Stopped whenever the machine returns to rest.
// Callbacks fire on supervisor goroutines; subscribers must not call back
// into the Supervisor from them.
package supervisor
