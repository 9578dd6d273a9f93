// ABOUTME: slog setup for the fleet spares analyzer backend
// ABOUTME: Reads LOG_LEVEL and LOG_FORMAT before any other startup work

package logger

import (
	"log/slog"
	"os"
	"strings"
)

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Init installs the process-wide slog logger. The analyzer logs
// human-readable text by default; LOG_FORMAT=json switches to JSON
// lines for log shippers. Unrecognized LOG_LEVEL values fall back
// to info rather than failing startup.
func Init() {
	level, ok := levels[strings.ToLower(os.Getenv("LOG_LEVEL"))]
	if !ok {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
