package logging

import (
	"os"
	"strings"
	"time"

	"travel-crm/internal/config"

	"github.com/rs/zerolog"
)

// New constructs a zerolog logger from config. Defaults to JSON at info
// level on stdout.
func New(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Logging.Level))); err == nil {
		level = parsed
	}

	output := zerolog.MultiLevelWriter(os.Stdout)
	if strings.ToLower(strings.TrimSpace(cfg.Logging.Format)) == "console" {
		output = zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Logger()
}
