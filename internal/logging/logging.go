package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls where log entries go and what gets through.
type Config struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string
	// FilePath locates the log file; its directory is created on demand.
	FilePath string
	// MaxSizeMB caps the live log file before rotation kicks in.
	MaxSizeMB int
	// MaxFiles bounds the numbered backups kept after rotation.
	MaxFiles int
	// WriteToStderr additionally echoes entries to stderr. Off by
	// default: stdout and stderr belong to command output.
	WriteToStderr bool
}

// DefaultConfig is file-only logging at info level.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		FilePath:  DefaultLogPath(),
		MaxSizeMB: 10,
		MaxFiles:  5,
	}
}

// VerboseConfig is the --verbose shape: debug level, echoed to stderr.
func VerboseConfig() Config {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	cfg.WriteToStderr = true
	return cfg
}

// Setup builds a JSON slog.Logger writing to the rotating file described
// by cfg, optionally teed to stderr. The returned cleanup flushes and
// closes the file and must run before exit.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	writer, err := NewRotatingWriter(cfg.FilePath, cfg.MaxSizeMB, cfg.MaxFiles)
	if err != nil {
		return nil, nil, err
	}

	var sink io.Writer = writer
	if cfg.WriteToStderr {
		sink = io.MultiWriter(writer, os.Stderr)
	}

	logger := slog.New(slog.NewJSONHandler(sink, &slog.HandlerOptions{
		Level: LevelFromString(cfg.Level),
	}))

	cleanup := func() {
		_ = writer.Sync()
		_ = writer.Close()
	}
	return logger, cleanup, nil
}

// Discard returns a logger that drops everything. Useful as a default
// when callers do not configure logging.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// LevelFromString maps a level name to its slog.Level, defaulting to
// info for anything unrecognized.
func LevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
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
