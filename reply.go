package rediscmd

import (
	"errors"
	"fmt"

	"github.com/mwantia/rediscmd/cmd"
)

// ErrorReply renders err as the error string sent back to a protocol client.
// It returns "" for a nil error.
func ErrorReply(err error) string {
	if err == nil {
		return ""
	}

	var pe *cmd.ParseError
	if errors.As(err, &pe) {
		if errors.Is(pe, cmd.ErrWrongArity) {
			return fmt.Sprintf("ERR wrong number of arguments for '%s' command", pe.Command)
		}
		return pe.Error()
	}

	var de *DispatchError
	if errors.As(err, &de) && errors.Is(de, ErrUnknownCommand) {
		return fmt.Sprintf("ERR unknown command '%s'", de.Command)
	}

	if errors.Is(err, ErrNoCommand) {
		return "ERR no command specified"
	}

	return "ERR " + err.Error()
}
