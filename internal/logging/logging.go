// Package logging builds the slog loggers handed to every service.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ngmaloney/angler-terminal/internal/config"
)

// ParseLevel maps a config level name to a slog level, defaulting to info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger for the given settings and a function closing its
// writer. With a log file configured output is rotated by lumberjack,
// otherwise it goes to stderr. debug forces the debug level.
func New(cfg config.LogSettings, debug bool) (*slog.Logger, func() error, error) {
	level := ParseLevel(cfg.Level)
	if debug {
		level = slog.LevelDebug
	}

	if cfg.File == "" {
		return slog.New(handler(os.Stderr, cfg.JSON, level)), noClose, nil
	}

	w, err := rotatingWriter(cfg)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(handler(w, cfg.JSON, level)), w.Close, nil
}

// ForTUI returns a logger that never writes to the terminal. Without a log
// file everything is discarded.
func ForTUI(cfg config.LogSettings, debug bool) (*slog.Logger, func() error, error) {
	if cfg.File == "" {
		return Discard(), noClose, nil
	}
	return New(cfg, debug)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rotatingWriter(cfg config.LogSettings) (*lumberjack.Logger, error) {
	// lumberjack doesn't create directories
	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}, nil
}

func handler(w io.Writer, json bool, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func noClose() error { return nil }
