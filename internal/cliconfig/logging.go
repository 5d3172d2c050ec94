package cliconfig

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/motivation-app/motivation/pkg/log"
)

// Logger returns the CLI logger: zerolog console output on stderr.
func Logger(level zerolog.Level) *log.ZerologLogger {
	return log.NewConsoleLogger(os.Stderr, level)
}
