package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the CLI's console logger on stderr. The default level
// keeps the tool quiet (warnings and errors only); verbose lowers it to
// debug so policy loads and registry swaps become visible.
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
