// File: /logger/logger.go

// Package logger builds the zerolog logger shared by the Lambda handlers and
// the local gateway.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"tricycle-api/config"
)

const serviceName = "tricycle-api"

// New returns a logger writing to stdout, where Lambda forwards it to
// CloudWatch. Console format is meant for local runs only.
func New(cfg *config.Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

func NewWithWriter(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("env", cfg.Env).
		Logger()
}
