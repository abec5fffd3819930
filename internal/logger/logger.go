// Package logger builds the slog.Logger used by the taskpool command.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Severity names accepted by SetLevel and Config.Level.
const (
	Trace   = "TRACE"
	Debug   = "DEBUG"
	Info    = "INFO"
	Warning = "WARNING"
	Error   = "ERROR"
	Off     = "OFF"
)

// LevelTrace sits below slog.LevelDebug.
const LevelTrace = slog.Level(-8)

// levelOff is above every level in use, so nothing is logged.
const levelOff = slog.Level(12)

// Config selects severity, encoding and destination.
type Config struct {
	Level  string
	Format string // "text" or "json"

	// FilePath sends records to a rotated file instead of stderr.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger is a *slog.Logger whose level can be changed while running.
type Logger struct {
	*slog.Logger

	level  *slog.LevelVar
	closer io.Closer
}

// New builds a Logger writing to stderr or to cfg.FilePath.
func New(cfg Config) (*Logger, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer
	if cfg.FilePath != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		w, closer = lj, lj
	}
	return NewWithWriter(cfg, w, closer)
}

// NewWithWriter builds a Logger on an arbitrary writer. closer may be nil.
func NewWithWriter(cfg Config, w io.Writer, closer io.Closer) (*Logger, error) {
	levelVar := new(slog.LevelVar)
	if err := setLoggingLevel(cfg.Level, levelVar); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:       levelVar,
		ReplaceAttr: replaceLevelName,
	}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("logger: unsupported format %q", cfg.Format)
	}

	return &Logger{Logger: slog.New(h), level: levelVar, closer: closer}, nil
}

// SetLevel changes the severity threshold.
func (l *Logger) SetLevel(level string) error {
	return setLoggingLevel(level, l.level)
}

// Level returns the current threshold.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func setLoggingLevel(level string, programLevel *slog.LevelVar) error {
	switch strings.ToUpper(level) {
	case Trace:
		programLevel.Set(LevelTrace)
	case Debug:
		programLevel.Set(slog.LevelDebug)
	case "", Info:
		programLevel.Set(slog.LevelInfo)
	case Warning:
		programLevel.Set(slog.LevelWarn)
	case Error:
		programLevel.Set(slog.LevelError)
	case Off:
		programLevel.Set(levelOff)
	default:
		return fmt.Errorf("logger: unknown severity %q", level)
	}
	return nil
}

// replaceLevelName prints LevelTrace as TRACE and Warn as WARNING.
func replaceLevelName(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	switch {
	case level < slog.LevelDebug:
		a.Value = slog.StringValue(Trace)
	case level == slog.LevelWarn:
		a.Value = slog.StringValue(Warning)
	}
	return a
}
