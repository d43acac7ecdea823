package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MaskiCoding/StreaMaski/internal/favorites"
	"github.com/MaskiCoding/StreaMaski/internal/twitch"
)

const statusDot = "●"

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	sections := []string{
		m.renderHeader(),
		m.renderInput(),
		m.renderQuality(),
		m.renderFavorites(),
		m.renderMessage(),
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	logo := m.styles.Logo.Render("StreaMaski")

	badge := m.styles.IdleBadge.Render("idle")
	if m.streaming {
		badge = m.styles.LiveBadge.Render("live") +
			m.styles.Text.Render("  "+m.nowCast)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, logo, "   ", badge)
}

func (m Model) renderInput() string {
	label := "Stream URL"
	if m.inputFocused {
		label = m.styles.AccentText.Render(label)
	} else {
		label = m.styles.MutedText.Render(label)
	}
	return m.styles.Panel.Render(label + "\n" + m.input.View())
}

func (m Model) renderQuality() string {
	parts := make([]string, 0, len(twitch.QualityOptions))
	for i, q := range twitch.QualityOptions {
		token := string(q)
		if i == m.qualityIdx {
			parts = append(parts, m.styles.Selected.Render(" "+token+" "))
		} else {
			parts = append(parts, m.styles.MutedText.Render(" "+token+" "))
		}
	}
	label := m.styles.MutedText.Render("Quality ")
	return label + strings.Join(parts, "")
}

func (m Model) renderFavorites() string {
	var b strings.Builder
	b.WriteString(m.styles.MutedText.Render("Quick swap"))
	b.WriteByte('\n')

	for i := 0; i < favorites.Capacity; i++ {
		b.WriteString(m.renderSlot(i))
		if i < favorites.Capacity-1 {
			b.WriteByte('\n')
		}
	}
	return m.styles.Panel.Render(b.String())
}

func (m Model) renderSlot(i int) string {
	num := m.styles.FaintText.Render(fmt.Sprintf("%d ", i+1))
	if i >= len(m.slots) {
		return num + m.styles.FaintText.Render("(empty)")
	}
	slot := m.slots[i]
	dot := m.styles.StatusStyle(slot.Status).Render(statusDot)
	name := m.styles.Text.Render(slot.Channel.DisplayName())
	note := ""
	if slot.Status == twitch.StatusChecking {
		note = m.styles.WarningText.Render("  checking...")
	}
	return num + dot + " " + name + note
}

func (m Model) renderMessage() string {
	if m.message == "" {
		return ""
	}
	switch m.messageKind {
	case messageSuccess:
		return m.styles.SuccessText.Render(m.message)
	case messageError:
		return m.styles.DangerText.Render(m.message)
	case messageInfo:
		return m.styles.InfoText.Render(m.message)
	default:
		return m.styles.MutedText.Render(m.message)
	}
}

func (m Model) renderFooter() string {
	hints := make([]string, 0, 8)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, m.styles.AccentText.Render(h.Key)+m.styles.FaintText.Render(" "+h.Desc))
	}
	return m.styles.Footer.Render(strings.Join(hints, "  "))
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Logo.Render("StreaMaski keys"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				m.styles.AccentText.Render(fmt.Sprintf("%-8s", h.Key)),
				m.styles.Text.Render(h.Desc)))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.styles.MutedText.Render("Press any key to close"))
	return b.String()
}
