package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the application logger.
// Production uses JSON output; development uses the human-readable console writer.
func New(isProduction bool) zerolog.Logger {
	if isProduction {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}
