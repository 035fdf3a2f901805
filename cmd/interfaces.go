package cmd

import (
	"context"
)

// Reply is the result of a command as handed back to the host protocol.
// Handlers return string, int64, uint64, float64, nil or []Reply.
type Reply any

// Command represents an executable command with a declared argument schema.
type Command interface {
	// Schema returns the argument schema; its name is the command name
	Schema() *Schema

	// Description returns human-readable help text
	Description() string

	// Execute runs the command with already parsed and validated arguments
	Execute(ctx context.Context, args Args) (Reply, error)
}
