package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a *slog.Logger writing JSON to stderr and optionally to logFile,
// which is rotated once it reaches maxSizeMB. It also sets the logger as the
// slog default so package-level slog calls work. lumberjack opens the file
// lazily on first write, so construction cannot fail. The returned cleanup func
// closes the log file if one was opened; callers must defer it.
func New(level, logFile string, maxSizeMB int) (*slog.Logger, func()) {
	return newLogger(os.Stderr, level, logFile, maxSizeMB)
}

func newLogger(stderr io.Writer, level, logFile string, maxSizeMB int) (*slog.Logger, func()) {
	lvl := parseLevel(level)

	writers := []io.Writer{stderr}
	cleanup := func() {}

	if logFile != "" {
		f := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    maxSizeMB,
			MaxBackups: 3,
			Compress:   true,
		}
		writers = append(writers, f)
		cleanup = func() { _ = f.Close() }
	}

	w := io.MultiWriter(writers...)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, cleanup
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
