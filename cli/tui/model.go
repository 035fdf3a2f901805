package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/rediscmd"
)

// maxTranscript bounds the number of executed commands kept on screen.
const maxTranscript = 200

// transcriptEntry is one executed command line and its rendered reply
type transcriptEntry struct {
	line   string
	output string
	failed bool
}

type commandExecutedMsg struct {
	entry transcriptEntry
}

// Model represents the state of the TUI application
type Model struct {
	ctx   context.Context
	mgr   *rediscmd.Manager
	theme *Theme
	keys  KeyMap
	help  help.Model

	textInput textinput.Model

	transcript []transcriptEntry
	history    []string
	historyPos int

	width  int
	height int
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, mgr *rediscmd.Manager) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter command..."
	ti.Prompt = "> "
	ti.CharLimit = 1024
	ti.Focus()

	return &Model{
		ctx:       ctx,
		mgr:       mgr,
		theme:     DefaultTheme(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		textInput: ti,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case commandExecutedMsg:
		m.transcript = append(m.transcript, msg.entry)
		if len(m.transcript) > maxTranscript {
			m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		line := strings.TrimSpace(m.textInput.Value())
		m.textInput.Reset()
		if line == "" {
			return m, nil
		}
		m.history = append(m.history, line)
		m.historyPos = len(m.history)
		return m, m.executeCommand(line)

	case key.Matches(msg, m.keys.Clear):
		m.transcript = nil
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if m.historyPos > 0 {
			m.historyPos--
			m.textInput.SetValue(m.history[m.historyPos])
			m.textInput.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.historyPos < len(m.history)-1 {
			m.historyPos++
			m.textInput.SetValue(m.history[m.historyPos])
			m.textInput.CursorEnd()
		} else {
			m.historyPos = len(m.history)
			m.textInput.Reset()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) executeCommand(line string) tea.Cmd {
	return func() tea.Msg {
		return commandExecutedMsg{entry: m.run(line)}
	}
}

// run executes a single command line. "help" and "help <command>" are
// answered locally from the registered schemas.
func (m *Model) run(line string) transcriptEntry {
	tokens := parseCommandLine(line)
	entry := transcriptEntry{line: line}

	if len(tokens) > 0 && strings.EqualFold(tokens[0], "help") {
		out, err := m.helpText(tokens[1:])
		if err != nil {
			entry.output = rediscmd.ErrorReply(err)
			entry.failed = true
			return entry
		}
		entry.output = out
		return entry
	}

	reply, err := m.mgr.Execute(m.ctx, tokens...)
	if err != nil {
		entry.output = rediscmd.ErrorReply(err)
		entry.failed = true
		return entry
	}
	entry.output = FormatReply(reply)
	return entry
}

func (m *Model) helpText(names []string) (string, error) {
	var lines []string
	if len(names) == 0 {
		for _, c := range m.mgr.List() {
			lines = append(lines, FormatUsage(c.Schema())+"  "+c.Description())
		}
		return strings.Join(lines, "\n"), nil
	}

	for _, name := range names {
		c, err := m.mgr.Get(name)
		if err != nil {
			return "", err
		}
		lines = append(lines, FormatUsage(c.Schema()), "  "+c.Description())
		for _, arg := range c.Schema().Args() {
			lines = append(lines, "  "+FormatArg(arg))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// parseCommandLine splits a command line into tokens, honoring single and
// double quotes.
func parseCommandLine(line string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoted := false
	quoteChar := rune(0)

	for _, ch := range line {
		switch {
		case ch == '"' || ch == '\'':
			if inQuote {
				if ch == quoteChar {
					inQuote = false
					quoteChar = 0
				} else {
					current.WriteRune(ch)
				}
			} else {
				inQuote = true
				quoted = true
				quoteChar = ch
			}

		case (ch == ' ' || ch == '\t') && !inQuote:
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
				quoted = false
			}

		default:
			current.WriteRune(ch)
		}
	}

	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}

	return args
}
