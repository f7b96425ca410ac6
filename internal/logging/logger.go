package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"mediascout/internal/config"
)

// FileName is the log file written under the configured log directory.
const FileName = "mediascout.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// FilePath receives log output through a size-rotated writer when set.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// Console mirrors log output in console format, usually to stderr.
	Console io.Writer
	// Secrets are masked in every message and attribute.
	Secrets     []string
	Development bool
}

// New constructs a slog logger using the provided options. The returned
// closer releases the log file and is never nil.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nopCloser{}, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)
	addSource := opts.Development || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, nopCloser{}, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}
	if path := strings.TrimSpace(opts.FilePath); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nopCloser{}, fmt.Errorf("ensure log directory: %w", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		closer = rotating
		if format == "json" {
			handlers = append(handlers, newJSONHandler(rotating, levelVar, addSource))
		} else {
			handlers = append(handlers, newPrettyHandler(rotating, levelVar, addSource))
		}
	}
	if opts.Console != nil {
		handlers = append(handlers, newPrettyHandler(opts.Console, levelVar, addSource))
	}

	handler := NewRedactingHandler(newFanoutHandler(handlers...), opts.Secrets...)
	return slog.New(handler), closer, nil
}

// NewFromConfig builds the run logger from configuration. debug forces the
// debug level; console, when non-nil, mirrors output there.
func NewFromConfig(cfg *config.Config, debug bool, console io.Writer) (*slog.Logger, io.Closer, error) {
	if cfg == nil {
		return nil, nopCloser{}, errors.New("logging: nil config")
	}
	level := cfg.Logging.Level
	if debug {
		level = "debug"
	}
	opts := Options{
		Level:      level,
		Format:     cfg.Logging.Format,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.RetentionDays,
		Console:    console,
		Secrets:    cfg.Secrets(),
	}
	if dir := strings.TrimSpace(cfg.Paths.LogDir); dir != "" {
		opts.FilePath = filepath.Join(dir, FileName)
	}
	return New(opts)
}

// ParseLevel maps a configured level name onto slog levels.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log level: unsupported value %q", level)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
