package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/phenrril/lojamobile/internal/config"
)

// Setup configures the global zerolog logger on stdout.
func Setup(cfg *config.Config) zerolog.Logger {
	return SetupTo(cfg, os.Stdout)
}

// SetupTo writes console output in development and JSON lines otherwise.
func SetupTo(cfg *config.Config, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if cfg.IsDev() {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: w != os.Stdout}
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(out).With().Timestamp().Str("service", "lojamobile").Logger().Level(level)
	zlog.Logger = logger
	return logger
}
