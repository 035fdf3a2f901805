package rediscmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mwantia/rediscmd/log"
)

const (
	EnvLogLevel = "REDISCMD_LOG_LEVEL"
	EnvLogFile  = "REDISCMD_LOG_FILE"
	EnvLogJSON  = "REDISCMD_LOG_JSON"
)

type ManagerOptions struct {
	LogLevel      log.LogLevel
	LogFile       string
	LogJSON       bool
	LogWriter     io.Writer
	NoTerminalLog bool
	Logger        *log.Logger
}

type ManagerOption func(*ManagerOptions) error

func newDefaultManagerOptions() *ManagerOptions {
	return &ManagerOptions{
		LogLevel: log.Info,
	}
}

// logger builds the logger described by the options unless one was given.
func (o *ManagerOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger.Named("rediscmd")
	}

	var l *log.Logger
	if o.LogWriter != nil {
		l = log.NewWriterLogger("rediscmd", o.LogLevel, o.LogWriter)
	} else {
		l = log.NewLogger("rediscmd", o.LogLevel, o.LogFile, o.NoTerminalLog)
	}
	l.JSON = o.LogJSON
	return l
}

func WithLogLevel(logLevel log.LogLevel) ManagerOption {
	return func(opts *ManagerOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithoutTerminalLog() ManagerOption {
	return func(opts *ManagerOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) ManagerOption {
	return func(opts *ManagerOptions) error {
		opts.LogFile = logFile
		return nil
	}
}

func WithLogJSON() ManagerOption {
	return func(opts *ManagerOptions) error {
		opts.LogJSON = true
		return nil
	}
}

// WithLogWriter sends log output to w instead of stdout and the log file.
func WithLogWriter(w io.Writer) ManagerOption {
	return func(opts *ManagerOptions) error {
		if w == nil {
			return fmt.Errorf("%w: nil log writer", ErrInvalidOption)
		}
		opts.LogWriter = w
		return nil
	}
}

// WithLogger reuses an existing logger; the manager logs under a sub-name.
func WithLogger(logger *log.Logger) ManagerOption {
	return func(opts *ManagerOptions) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", ErrInvalidOption)
		}
		opts.Logger = logger
		return nil
	}
}

// WithEnv applies REDISCMD_LOG_LEVEL, REDISCMD_LOG_FILE and REDISCMD_LOG_JSON
// when they are set. Options listed after it still win.
func WithEnv() ManagerOption {
	return func(opts *ManagerOptions) error {
		if raw, ok := os.LookupEnv(EnvLogLevel); ok && raw != "" {
			level, err := log.ParseLevel(raw)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidOption, EnvLogLevel, err)
			}
			opts.LogLevel = level
		}
		if raw, ok := os.LookupEnv(EnvLogFile); ok && raw != "" {
			opts.LogFile = raw
		}
		if raw, ok := os.LookupEnv(EnvLogJSON); ok && raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidOption, EnvLogJSON, err)
			}
			opts.LogJSON = v
		}
		return nil
	}
}
