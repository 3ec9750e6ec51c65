// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultService is attached to every entry when Config.Service is empty.
const DefaultService = "m3uplus"

// Config configures the global logger. The zero value logs JSON lines at
// info level to stdout.
type Config struct {
	Level   string // trace, debug, info, warn or error
	Output  io.Writer
	Service string
	Version string
}

var (
	mu   sync.RWMutex
	base zerolog.Logger
)

// Configure replaces the global logger. The CLI calls it twice: once at
// startup and again after the configuration file is loaded. Loggers derived
// earlier keep their settings.
//
// Unset fields fall back to LOG_LEVEL, LOG_SERVICE and VERSION from the
// environment. An unparsable level means info.
func Configure(cfg Config) {
	w := cfg.Output
	if w == nil {
		w = os.Stdout
	}
	l := zerolog.New(w).Level(levelOf(cfg.Level)).With().
		Timestamp().
		Str("service", firstNonEmpty(cfg.Service, os.Getenv("LOG_SERVICE"), DefaultService)).
		Str("version", firstNonEmpty(cfg.Version, os.Getenv("VERSION"))).
		Logger()

	mu.Lock()
	defer mu.Unlock()
	zerolog.TimeFieldFormat = time.RFC3339
	base = l
}

func levelOf(name string) zerolog.Level {
	if name == "" {
		name = os.Getenv("LOG_LEVEL")
	}
	if lvl, err := zerolog.ParseLevel(name); err == nil && name != "" {
		return lvl
	}
	return zerolog.InfoLevel
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str(FieldComponent, component).Logger()
}

// Derive attaches arbitrary fields to a child logger using the provided builder function.
func Derive(build func(*zerolog.Context)) zerolog.Logger {
	ctx := Base().With()
	if build != nil {
		build(&ctx)
	}
	return ctx.Logger()
}

func init() {
	Configure(Config{})
}
