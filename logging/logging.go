package logging

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SlavaShishkanu/Order-book-test-task/config"
)

type Logger = zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
}

// NewLogger writes to stderr so that it never mixes with command output
func NewLogger(cfg config.Config) Logger {
	return New(os.Stderr, cfg)
}

// New builds a logger on w tagged with a fresh run id. Unknown levels
// fall back to info.
func New(w io.Writer, cfg config.Config) Logger {
	if cfg.Logging.Pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil || cfg.Logging.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}
