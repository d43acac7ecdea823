// Package favorites keeps the four quick-swap slots and their live
// status. A Registry holds up to Capacity channels in insertion order,
// persists the list through a Persister on every mutation, and refreshes
// slot statuses concurrently through a StatusChecker. CheckAll marks every
// slot as checking synchronously before the concurrent fetches begin, so
// the UI never shows a stale dot during a refresh.
package favorites
