// Package control sits between the UI and the rest of the application.
// The Controller exposes the operations the interface invokes (start,
// switch, stop, quick-swap management, status refresh) and fans everything
// asynchronous back through a single buffered event channel, so the UI
// loop only ever selects on one source. Operations validate input and
// persist the last-watched stream as a side effect.
package control
