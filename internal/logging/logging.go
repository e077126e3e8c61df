// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv overrides the default log level when --log-level is not given.
const LevelEnv = "STAFFCTL_LOG_LEVEL"

// DefaultLevel keeps normal command output free of log lines.
const DefaultLevel = slog.LevelWarn

// ParseLevel maps a level name (debug, info, warn, error) onto a slog.Level.
// An empty name yields DefaultLevel.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return DefaultLevel, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", name)
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup installs the default logger on stderr. flagLevel wins over the
// environment; an invalid level is reported and DefaultLevel is used.
func Setup(flagLevel string) error {
	name := flagLevel
	if strings.TrimSpace(name) == "" {
		name = os.Getenv(LevelEnv)
	}
	level, err := ParseLevel(name)
	slog.SetDefault(New(os.Stderr, level))
	return err
}
