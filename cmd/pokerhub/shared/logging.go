package shared

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog with pretty console output.
func SetupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// CommandLogger returns the logger for a command: pretty console output
// by default, structured JSON when jsonOut is set, for running under a
// supervisor that collects log streams.
func CommandLogger(jsonOut, debug bool) zerolog.Logger {
	if !jsonOut {
		return SetupLogger(debug)
	}
	level := "info"
	if debug {
		level = "debug"
	}
	return SetupStructuredLogger(level)
}

// SetupStructuredLogger configures zerolog for structured (JSON) output
// at the named level ("debug", "info", "warn", "error").
func SetupStructuredLogger(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stderr).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
