// Package logging builds the process logger from configuration.
package logging

import (
	"os"

	"github.com/phuslu/log"

	"github.com/elnur383/exchange/internal/config"
)

// New creates a logger for the configured level and format. Format "json"
// writes raw JSON lines to stderr; anything else uses the console writer.
func New(cfg config.LoggingConfig) *log.Logger {
	logger := &log.Logger{
		Level:      parseLevel(cfg.Level),
		TimeFormat: "15:04:05",
	}

	if cfg.Format == "json" {
		logger.Writer = &log.IOWriter{Writer: os.Stderr}
	} else {
		logger.Writer = &log.ConsoleWriter{
			Writer:         os.Stderr,
			EndWithMessage: true,
		}
	}

	return logger
}

func parseLevel(level string) log.Level {
	switch level {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
