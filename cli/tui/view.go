package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.theme.TitleStyle.Render("rediscmd - type 'help' for commands"),
		m.renderTranscript(),
		m.textInput.View(),
		m.theme.HelpStyle.Render(m.help.View(m.keys)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTranscript renders the newest entries that fit above the prompt
func (m *Model) renderTranscript() string {
	var lines []string
	for _, entry := range m.transcript {
		lines = append(lines, m.theme.CommandStyle.Render("> "+entry.line))

		style := m.theme.ReplyStyle
		if entry.failed {
			style = m.theme.ErrorStyle
		}
		for _, line := range strings.Split(entry.output, "\n") {
			lines = append(lines, style.Render(line))
		}
	}

	// Title, prompt and help bar take one line each.
	visible := max(m.height-3, 1)
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	for len(lines) < visible {
		lines = append([]string{""}, lines...)
	}

	return strings.Join(lines, "\n")
}
