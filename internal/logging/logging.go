// Package logging configures the process-wide zerolog logger.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// envLevel selects the log level; anything zerolog.ParseLevel accepts.
const envLevel = "RUDDER_CLI_LOG"

// New returns a console logger writing to stderr, so diagnostics never
// mix with the response printed on stdout. The default level is warn.
func New() zerolog.Logger {
	level := zerolog.WarnLevel
	if value := os.Getenv(envLevel); value != "" {
		if parsed, err := zerolog.ParseLevel(value); err == nil {
			level = parsed
		}
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
