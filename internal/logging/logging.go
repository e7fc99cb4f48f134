// Package logging configures the process-wide slog logger and maps log
// level names onto the levels understood by gorm.
package logging

import (
	"io"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/lepinkainen/humanlog"
	"gorm.io/gorm/logger"
)

// Setup installs a human-readable slog handler writing to w as the default
// logger and returns it. noColor switches to slog's plain text handler.
func Setup(w io.Writer, level string, noColor bool) *slog.Logger {
	lvl := ParseLevel(level)

	var handler slog.Handler
	if noColor {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = humanlog.NewHandler(w, &humanlog.Options{
			Level: lvl,
		})
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// ParseLevel converts a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// GormLogger builds a gorm logger at the named level, writing through w.
func GormLogger(w io.Writer, level string) logger.Interface {
	return logger.New(
		log.New(w, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  GormLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// GormLevel converts a level name to gorm's log level, defaulting to silent.
func GormLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return logger.Error
	case "warn", "warning":
		return logger.Warn
	case "info", "debug":
		return logger.Info
	default:
		return logger.Silent
	}
}
