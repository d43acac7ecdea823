package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MaskiCoding/StreaMaski/internal/twitch"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string
	Surface    string
	Overlay    string

	// Text colors
	Text   string
	Muted  string
	Faint  string
	Accent string

	// Semantic colors
	Success string
	Warning string
	Danger  string
	Info    string

	// Live status dot colors
	StatusColors map[twitch.Status]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		LiveBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Success)).
			Bold(true).
			Padding(0, 1),

		IdleBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Faint)).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Overlay)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Overlay)).
			Foreground(lipgloss.Color(t.Text)),

		statusColors: t.StatusColors,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Logo      lipgloss.Style
	LiveBadge lipgloss.Style
	IdleBadge lipgloss.Style
	Panel     lipgloss.Style
	Footer    lipgloss.Style
	Selected  lipgloss.Style

	statusColors map[twitch.Status]string
	muted        string
}

// StatusStyle returns the dot style for a live status.
func (s Styles) StatusStyle(status twitch.Status) lipgloss.Style {
	color := s.statusColors[status]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var themes = map[string]Theme{
	"Rose Pine":      rosePineTheme(),
	"Rose Pine Moon": rosePineMoonTheme(),
	"Rose Pine Dawn": rosePineDawnTheme(),
}

var themeOrder = []string{"Rose Pine", "Rose Pine Moon", "Rose Pine Dawn"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return rosePineTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func rosePineTheme() Theme {
	// Rose Pine palette: https://rosepinetheme.com/palette
	return Theme{
		Name: "Rose Pine",

		Background: "#191724", // base
		Surface:    "#1f1d2e", // surface
		Overlay:    "#403d52", // highlight med

		Text:   "#e0def4", // text
		Muted:  "#908caa", // subtle
		Faint:  "#6e6a86", // muted
		Accent: "#c4a7e7", // iris

		Success: "#9ccfd8", // foam
		Warning: "#f6c177", // gold
		Danger:  "#eb6f92", // love
		Info:    "#31748f", // pine

		StatusColors: map[twitch.Status]string{
			twitch.StatusOnline:   "#9ccfd8", // foam
			twitch.StatusOffline:  "#eb6f92", // love
			twitch.StatusChecking: "#f6c177", // gold
			twitch.StatusUnknown:  "#6e6a86", // muted
		},
	}
}

func rosePineMoonTheme() Theme {
	return Theme{
		Name: "Rose Pine Moon",

		Background: "#232136", // base
		Surface:    "#2a273f", // surface
		Overlay:    "#44415a", // highlight med

		Text:   "#e0def4", // text
		Muted:  "#908caa", // subtle
		Faint:  "#6e6a86", // muted
		Accent: "#c4a7e7", // iris

		Success: "#9ccfd8", // foam
		Warning: "#f6c177", // gold
		Danger:  "#eb6f92", // love
		Info:    "#3e8fb0", // pine

		StatusColors: map[twitch.Status]string{
			twitch.StatusOnline:   "#9ccfd8",
			twitch.StatusOffline:  "#eb6f92",
			twitch.StatusChecking: "#f6c177",
			twitch.StatusUnknown:  "#6e6a86",
		},
	}
}

func rosePineDawnTheme() Theme {
	return Theme{
		Name: "Rose Pine Dawn",

		Background: "#faf4ed", // base
		Surface:    "#fffaf3", // surface
		Overlay:    "#dfdad9", // highlight med

		Text:   "#575279", // text
		Muted:  "#797593", // subtle
		Faint:  "#9893a5", // muted
		Accent: "#907aa9", // iris

		Success: "#56949f", // foam
		Warning: "#ea9d34", // gold
		Danger:  "#b4637a", // love
		Info:    "#286983", // pine

		StatusColors: map[twitch.Status]string{
			twitch.StatusOnline:   "#56949f",
			twitch.StatusOffline:  "#b4637a",
			twitch.StatusChecking: "#ea9d34",
			twitch.StatusUnknown:  "#9893a5",
		},
	}
}
