package log

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the console logger used by the CLI. Anything but "PRODUCTION" logs at debug level
// unless level overrides it.
func New(environment, level string) zerolog.Logger {
	production := strings.EqualFold(environment, "production") || strings.EqualFold(environment, "prod")
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    production,
	}

	logger := zerolog.New(output).With().
		Timestamp().
		Str("env", environment).
		Logger()

	lvl := zerolog.DebugLevel
	if production {
		lvl = zerolog.InfoLevel
	}
	if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		lvl = parsed
	}
	zerolog.SetGlobalLevel(lvl)

	return logger
}
