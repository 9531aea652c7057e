package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/FelipeCJSEP/todo/internal/domain"
	"github.com/charmbracelet/log"
)

// NewConsole returns a slog.Logger for terminal diagnostics.
// Only warnings and errors are shown unless verbose is set.
func NewConsole(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: verbose,
		Prefix:          "todo",
	})
	return slog.New(handler)
}

// Ensure Mirror implements domain.Logger interface.
var _ domain.Logger = (*Mirror)(nil)

// Mirror sends every entry to the activity log and to a console logger.
// The console logger applies its own level.
type Mirror struct {
	file    domain.Logger
	console *slog.Logger
}

// NewMirror creates a Mirror. A nil console only writes the activity log.
func NewMirror(file domain.Logger, console *slog.Logger) *Mirror {
	return &Mirror{file: file, console: console}
}

func (m *Mirror) forward(level slog.Level, taskID int, category, msg string) {
	if m.console == nil {
		return
	}
	attrs := []slog.Attr{slog.String("category", category)}
	if taskID > 0 {
		attrs = append(attrs, slog.Int("task", taskID))
	}
	m.console.LogAttrs(context.Background(), level, msg, attrs...)
}

// Info logs an info message.
func (m *Mirror) Info(taskID int, category, msg string) {
	m.file.Info(taskID, category, msg)
	m.forward(slog.LevelInfo, taskID, category, msg)
}

// Debug logs a debug message.
func (m *Mirror) Debug(taskID int, category, msg string) {
	m.file.Debug(taskID, category, msg)
	m.forward(slog.LevelDebug, taskID, category, msg)
}

// Warn logs a warning message.
func (m *Mirror) Warn(taskID int, category, msg string) {
	m.file.Warn(taskID, category, msg)
	m.forward(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (m *Mirror) Error(taskID int, category, msg string) {
	m.file.Error(taskID, category, msg)
	m.forward(slog.LevelError, taskID, category, msg)
}
