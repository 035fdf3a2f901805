package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/rediscmd"
	"github.com/mwantia/rediscmd/cmd/builtin"

	"github.com/mwantia/rediscmd/cli/tui"
)

// setupManager creates a command manager with the builtin commands registered.
// The terminal belongs to the TUI, so logs only go to REDISCMD_LOG_FILE.
func setupManager() (*rediscmd.Manager, error) {
	mgr, err := rediscmd.New(
		rediscmd.WithoutTerminalLog(),
		rediscmd.WithEnv(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}

	if err := mgr.Register(&builtin.HelloFooCommand{}); err != nil {
		return nil, fmt.Errorf("failed to register builtin: %w", err)
	}

	return mgr, nil
}

func main() {
	ctx := context.Background()

	mgr, err := setupManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(ctx, mgr)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}
