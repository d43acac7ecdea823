package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings available while the URL field is
// not focused. While typing, only Confirm, Blur, and Quit apply.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Input
	FocusInput key.Binding
	Confirm    key.Binding
	Blur       key.Binding

	// Playback
	StopStream  key.Binding
	QualityNext key.Binding
	QualityPrev key.Binding

	// Quick swap
	LoadSlot    key.Binding
	AddFavorite key.Binding
	RemoveMode  key.Binding
	Refresh     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		FocusInput: key.NewBinding(
			key.WithKeys("i", "/"),
			key.WithHelp("i", "Edit URL"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Watch stream"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave URL field"),
		),

		StopStream: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Stop stream"),
		),
		QualityNext: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→/]", "Next quality"),
		),
		QualityPrev: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←/[", "Previous quality"),
		),

		LoadSlot: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "Play quick swap slot"),
		),
		AddFavorite: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Save URL to quick swap"),
		),
		RemoveMode: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove a quick swap slot"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh live statuses"),
		),
	}
}

// ShortHelp returns key bindings for the footer hint line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusInput, k.Confirm, k.StopStream, k.LoadSlot, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusInput, k.Confirm, k.Blur},
		{k.StopStream, k.QualityNext, k.QualityPrev},
		{k.LoadSlot, k.AddFavorite, k.RemoveMode, k.Refresh},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
