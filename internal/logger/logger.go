// Package logger provides structured diagnostic logging for conversion runs.
// Per-file results are user output and are printed by the commands; this
// logger carries everything else (config resolution, timings, skipped entries).
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at info level.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level.
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "mdx2txt",
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to the file at path.
// The returned cleanup func closes the file.
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	cleanup := func() {
		_ = f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return New(io.Discard)
}

// LevelFor maps the verbose and quiet flags to a level.
// Quiet wins over verbose.
func LevelFor(verbose, quiet bool) log.Level {
	switch {
	case quiet:
		return log.ErrorLevel
	case verbose:
		return log.DebugLevel
	default:
		return log.WarnLevel
	}
}

// BatchStarted logs the start of a conversion batch.
func (l *Logger) BatchStarted(sourceDir, targetDir, suffix string) {
	l.Info("conversion started",
		"source", sourceDir,
		"target", targetDir,
		"suffix", suffix)
}

// BatchCompleted logs the end of a conversion batch.
func (l *Logger) BatchCompleted(converted, failed int, duration time.Duration) {
	l.Info("conversion completed",
		"converted", converted,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// FileConverted logs a successful file conversion.
func (l *Logger) FileConverted(source, target string, bytesRead, bytesWritten int, duration time.Duration) {
	l.Debug("file converted",
		"source", source,
		"target", target,
		"bytes_in", bytesRead,
		"bytes_out", bytesWritten,
		"duration", duration.Round(time.Microsecond))
}

// FileFailed logs a failed file conversion. The failure itself is reported
// to the user on stdout, so this stays at debug level.
func (l *Logger) FileFailed(source, target string, err error) {
	l.Debug("file failed",
		"source", source,
		"target", target,
		"error", err)
}

// Skipped logs when an entry is skipped.
func (l *Logger) Skipped(name, reason string) {
	l.Debug("entry skipped",
		"name", name,
		"reason", reason)
}

// ConfigLoaded logs which configuration file was used.
func (l *Logger) ConfigLoaded(path string) {
	if path == "" {
		l.Debug("no config file found")
		return
	}
	l.Debug("config loaded", "path", path)
}
