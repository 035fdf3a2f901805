package rediscmd

import "errors"

// Standard manager errors.
var (
	// Registration errors
	ErrNilCommand        = errors.New("rediscmd: command cannot be nil")
	ErrAlreadyRegistered = errors.New("rediscmd: command already registered")

	// Dispatch errors
	ErrNoCommand      = errors.New("rediscmd: no command specified")
	ErrUnknownCommand = errors.New("rediscmd: unknown command")

	ErrInvalidOption = errors.New("rediscmd: invalid option")
)
