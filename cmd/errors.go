package cmd

import (
	"errors"
	"fmt"
)

// Parse error kinds. Every *ParseError unwraps to exactly one of these.
var (
	ErrWrongArity         = errors.New("wrong number of arguments")
	ErrNameMismatch       = errors.New("command name mismatch")
	ErrUnexpectedArgument = errors.New("unexpected argument")
	ErrMissingRequired    = errors.New("missing required argument")
	ErrInvalidNumber      = errors.New("invalid number")
)

var (
	// ErrTypeMismatch is returned by Value accessors asked for the wrong variant.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrMissingArgument is returned by Args getters for a name not in the result.
	ErrMissingArgument = errors.New("argument not present")

	ErrInvalidSchema = errors.New("invalid command schema")
	ErrSchemaSealed  = errors.New("command schema is sealed")
)

// ParseError describes why a token list was rejected by a Schema.
type ParseError struct {
	Kind error

	Command  string // Schema name
	Token    string // Offending token, if any
	Arg      string // Argument the failure belongs to, if any
	Type     Type   // Target type of an invalid number
	Expected string // Expected command name on a mismatch
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrNameMismatch:
		return fmt.Sprintf("Expected %s, got %s", e.Expected, e.Token)
	case ErrUnexpectedArgument:
		return fmt.Sprintf("Unexpected arg %s", e.Token)
	case ErrMissingRequired:
		return fmt.Sprintf("Missing required arg %s", e.Arg)
	case ErrInvalidNumber:
		return fmt.Sprintf("Invalid %s value '%s' for arg %s", e.Type, e.Token, e.Arg)
	case ErrWrongArity:
		if e.Arg != "" {
			return fmt.Sprintf("wrong number of arguments for arg %s", e.Arg)
		}
		return ErrWrongArity.Error()
	default:
		return fmt.Sprintf("%v", e.Kind)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// TypeError is returned when a Value holds a different variant than requested.
type TypeError struct {
	Want Kind
	Got  Kind

	Vector bool // Set when the mismatch was found on a vector element
	Index  int
}

func (e *TypeError) Error() string {
	if e.Vector {
		return fmt.Sprintf("type mismatch at element %d: want %s, got %s", e.Index, e.Want, e.Got)
	}
	return fmt.Sprintf("type mismatch: want %s, got %s", e.Want, e.Got)
}

func (e *TypeError) Unwrap() error {
	return ErrTypeMismatch
}

func schemaError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSchema, fmt.Sprintf(format, args...))
}
