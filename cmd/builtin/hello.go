package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/rediscmd/cmd"
)

var helloFooSchema = cmd.MustSchema("hello.foo",
	cmd.Required("input", cmd.TypeString,
		cmd.WithDescription("value echoed back n times")),
	cmd.Optional("optional", cmd.TypeString, cmd.StringValue("baz"),
		cmd.WithDescription("value appended after the echoes")),
	cmd.Named("n", cmd.TypeUint, cmd.UintValue(1),
		cmd.WithDescription("number of echoes")),
)

// maxEchoes bounds the reply size of hello.foo.
const maxEchoes = 1 << 16

// HelloFooCommand echoes its input n times followed by the optional value.
type HelloFooCommand struct {
}

// Schema returns the argument schema
func (h *HelloFooCommand) Schema() *cmd.Schema {
	return helloFooSchema
}

// Description returns human-readable help text
func (h *HelloFooCommand) Description() string {
	return "Echoes input n times, then the optional value"
}

// Execute runs the command with parsed arguments
func (h *HelloFooCommand) Execute(ctx context.Context, args cmd.Args) (cmd.Reply, error) {
	input, err := args.String("input")
	if err != nil {
		return nil, err
	}
	opt, err := args.String("optional")
	if err != nil {
		return nil, err
	}
	n, err := args.Uint("n")
	if err != nil {
		return nil, err
	}
	if n > maxEchoes {
		return nil, fmt.Errorf("n must not exceed %d", maxEchoes)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reply := make([]cmd.Reply, 0, n+1)
	for i := uint64(0); i < n; i++ {
		reply = append(reply, input)
	}
	reply = append(reply, opt)

	return reply, nil
}
