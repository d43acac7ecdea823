package ui

import tea "github.com/charmbracelet/bubbletea"

// Run starts the Bubble Tea program and blocks until the user quits or
// the context in opts is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
