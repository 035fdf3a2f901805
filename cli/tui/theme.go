package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used by the view
type Theme struct {
	TitleStyle   lipgloss.Style
	CommandStyle lipgloss.Style
	ReplyStyle   lipgloss.Style
	ErrorStyle   lipgloss.Style
	HelpStyle    lipgloss.Style
}

func DefaultTheme() *Theme {
	return &Theme{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		CommandStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),
		ReplyStyle: lipgloss.NewStyle().
			PaddingLeft(2),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			PaddingLeft(2),
		HelpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// KeyMap defines the key bindings of the prompt
type KeyMap struct {
	Submit key.Binding
	Prev   key.Binding
	Next   key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Prev, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Prev, k.Next},
		{k.Clear, k.Quit},
	}
}
