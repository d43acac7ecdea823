// Package ui renders the StreaMaski terminal interface with Bubble Tea.
//
// The layout is a single screen: a header with the live badge, the stream
// URL field, a quality selector, the four quick-swap slots with their
// status dots, a message line, and a key-hint footer. The URL field is
// modal: while focused it consumes keystrokes, and esc drops back to
// browse mode where single-letter bindings apply.
//
// Everything asynchronous arrives as messages. A long-lived command
// blocks on the controller's event channel and re-arms itself after each
// delivery, and a ticker refreshes quick-swap live statuses. Supervisor
// calls that can block on process teardown run inside commands so the
// event loop never stalls.
package ui
