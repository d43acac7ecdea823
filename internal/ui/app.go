package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MaskiCoding/StreaMaski/internal/control"
	"github.com/MaskiCoding/StreaMaski/internal/favorites"
	"github.com/MaskiCoding/StreaMaski/internal/prefs"
	"github.com/MaskiCoding/StreaMaski/internal/twitch"
)

// Controller is the slice of the application the UI drives.
type Controller interface {
	Start(rawURL string, quality twitch.Quality) error
	Switch(rawURL string, quality twitch.Quality) error
	Stop()
	IsStreaming() bool
	AddFavorite(rawURL string) error
	RemoveFavorite(index int) error
	Favorites() []favorites.Slot
	LoadFavorite(index int, quality twitch.Quality) error
	CheckAllStatuses()
	Events() <-chan control.Event
}

// Options configures the UI.
type Options struct {
	Context        context.Context
	Controller     Controller
	InitialURL     string
	InitialQuality twitch.Quality
	ThemeName      string
	PrefsPath      string
	RefreshEvery   time.Duration
}

const defaultRefreshEvery = time.Minute

type messageKind int

const (
	messageNone messageKind = iota
	messageInfo
	messageSuccess
	messageError
)

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx          context.Context
	ctrl         Controller
	keys         keyMap
	prefsPath    string
	refreshEvery time.Duration

	theme  Theme
	styles Styles
	width  int
	height int
	ready  bool

	input        textinput.Model
	inputFocused bool
	qualityIdx   int

	slots     []favorites.Slot
	streaming bool
	nowCast   string

	message     string
	messageKind messageKind

	removeMode bool
	showHelp   bool
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	refreshEvery := opts.RefreshEvery
	if refreshEvery <= 0 {
		refreshEvery = defaultRefreshEvery
	}

	input := textinput.New()
	input.Placeholder = "https://www.twitch.tv/..."
	input.CharLimit = 120
	input.SetValue(opts.InitialURL)
	input.Focus()

	qualityIdx := 0
	for i, q := range twitch.QualityOptions {
		if q == opts.InitialQuality {
			qualityIdx = i
			break
		}
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(opts.ThemeName)
	return Model{
		ctx:          ctx,
		ctrl:         opts.Controller,
		keys:         DefaultKeyMap(),
		prefsPath:    prefsPath,
		refreshEvery: refreshEvery,
		theme:        theme,
		styles:       theme.Styles(),
		input:        input,
		inputFocused: true,
		qualityIdx:   qualityIdx,
		slots:        opts.Controller.Favorites(),
	}
}

type (
	eventMsg       struct{ event control.Event }
	refreshTickMsg struct{}
	ctxDoneMsg     struct{}
	opFailedMsg    struct{ message string }
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		textinput.Blink,
		m.waitForEvent(),
		m.refreshStatusesCmd(),
		m.refreshTick(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = min(60, max(20, m.width-8))
		return m, nil

	case eventMsg:
		m.applyEvent(msg.event)
		return m, m.waitForEvent()

	case refreshTickMsg:
		return m, tea.Batch(m.refreshStatusesCmd(), m.refreshTick())

	case opFailedMsg:
		m.setMessage(msg.message, messageError)
		return m, nil

	case ctxDoneMsg:
		return m, tea.Quit
	}

	if m.inputFocused {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) applyEvent(ev control.Event) {
	switch ev := ev.(type) {
	case control.StreamStarted:
		m.streaming = true
		m.nowCast = ev.Channel.DisplayName() + " (" + string(ev.Quality) + ")"
		m.setMessage("Now streaming "+ev.Channel.DisplayName(), messageSuccess)

	case control.StreamStopped:
		m.streaming = false
		m.nowCast = ""
		if m.messageKind != messageError {
			m.setMessage("Stream stopped", messageInfo)
		}

	case control.StreamFailed:
		m.streaming = false
		m.nowCast = ""
		m.setMessage(ev.Message, messageError)

	case control.SlotUpdated:
		m.slots = m.ctrl.Favorites()
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	if m.removeMode {
		return m.handleRemoveKey(msg)
	}

	if m.inputFocused {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m, m.playCmd(strings.TrimSpace(m.input.Value()))
		case key.Matches(msg, m.keys.Blur):
			m.inputFocused = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.FocusInput):
		m.inputFocused = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Confirm):
		return m, m.playCmd(strings.TrimSpace(m.input.Value()))

	case key.Matches(msg, m.keys.StopStream):
		return m, m.stopCmd()

	case key.Matches(msg, m.keys.QualityNext):
		m.qualityIdx = (m.qualityIdx + 1) % len(twitch.QualityOptions)
		return m, nil

	case key.Matches(msg, m.keys.QualityPrev):
		m.qualityIdx = (m.qualityIdx - 1 + len(twitch.QualityOptions)) % len(twitch.QualityOptions)
		return m, nil

	case key.Matches(msg, m.keys.LoadSlot):
		return m, m.loadSlotCmd(slotIndex(msg.String()))

	case key.Matches(msg, m.keys.AddFavorite):
		return m.addFavorite()

	case key.Matches(msg, m.keys.RemoveMode):
		if len(m.slots) == 0 {
			m.setMessage("No quick swap slots to remove", messageInfo)
			return m, nil
		}
		m.removeMode = true
		m.setMessage("Press 1-4 to remove a slot, esc to cancel", messageInfo)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.setMessage("Checking live statuses...", messageInfo)
		return m, m.refreshStatusesCmd()
	}

	return m, nil
}

func (m Model) handleRemoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.removeMode = false
	if i := slotIndex(msg.String()); i >= 0 && i < len(m.slots) {
		name := m.slots[i].Channel.DisplayName()
		if err := m.ctrl.RemoveFavorite(i); err != nil {
			m.setMessage(err.Error(), messageError)
			return m, nil
		}
		m.slots = m.ctrl.Favorites()
		m.setMessage("Removed "+name+" from quick swap", messageInfo)
		return m, nil
	}
	m.setMessage("", messageNone)
	return m, nil
}

func (m Model) addFavorite() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	if err := m.ctrl.AddFavorite(raw); err != nil {
		m.setMessage(err.Error(), messageError)
		return m, nil
	}
	m.slots = m.ctrl.Favorites()
	m.setMessage("Saved to quick swap", messageSuccess)
	return m, m.refreshStatusesCmd()
}

func (m *Model) setMessage(text string, kind messageKind) {
	m.message = text
	m.messageKind = kind
}

func (m Model) quality() twitch.Quality {
	return twitch.QualityOptions[m.qualityIdx]
}

// playCmd starts the typed stream, or swaps over if one is playing.
// Supervisor calls can block on process teardown, so they run as commands.
func (m Model) playCmd(raw string) tea.Cmd {
	quality := m.quality()
	swap := m.ctrl.IsStreaming()
	return func() tea.Msg {
		var err error
		if swap {
			err = m.ctrl.Switch(raw, quality)
		} else {
			err = m.ctrl.Start(raw, quality)
		}
		if err != nil {
			return opFailedMsg{err.Error()}
		}
		return nil
	}
}

func (m Model) stopCmd() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Stop()
		return nil
	}
}

func (m Model) loadSlotCmd(index int) tea.Cmd {
	quality := m.quality()
	return func() tea.Msg {
		if err := m.ctrl.LoadFavorite(index, quality); err != nil {
			return opFailedMsg{err.Error()}
		}
		return nil
	}
}

func (m Model) refreshStatusesCmd() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.CheckAllStatuses()
		return nil
	}
}

func (m Model) refreshTick() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.ctrl.Events()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case ev := <-events:
			return eventMsg{event: ev}
		case <-ctx.Done():
			return ctxDoneMsg{}
		}
	}
}

// slotIndex maps a digit key to a quick-swap index, -1 otherwise.
func slotIndex(k string) int {
	if len(k) == 1 && k[0] >= '1' && k[0] <= '4' {
		return int(k[0] - '1')
	}
	return -1
}
