package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

type contextKey string

// RequestIDKey is the context key under which the request ID middleware stores the request ID
const RequestIDKey contextKey = "request_id"

// UserIDKey is the context key under which the auth middleware stores the caller's user ID
const UserIDKey contextKey = "user_id"

// Logger wraps logrus for structured logging with context support
type Logger struct {
	*logrus.Entry
}

// New creates a new logger on top of the standard logrus logger
func New() *Logger {
	return &Logger{
		Entry: logrus.NewEntry(logrus.StandardLogger()),
	}
}

// NewFromLogrus wraps an existing logrus logger
func NewFromLogrus(l *logrus.Logger) *Logger {
	return &Logger{Entry: logrus.NewEntry(l)}
}

// Setup configures the standard logrus logger
func Setup(level, format string) {
	configure(logrus.StandardLogger(), level, format)
	logrus.SetOutput(os.Stdout)
}

func configure(l *logrus.Logger, level, format string) {
	if strings.EqualFold(format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	switch level {
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "info":
		l.SetLevel(logrus.InfoLevel)
	case "warn":
		l.SetLevel(logrus.WarnLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
}

// Component is a logger bound to its own log files
type Component struct {
	*Logger
	files []*os.File
}

// Close releases the component's log files
func (c *Component) Close() error {
	var firstErr error
	for _, f := range c.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.files = nil
	return firstErr
}

// NewComponent creates a logger for one component that writes to stdout and to
// <dir>/<name>.log, mirroring error entries into <dir>/<name>-error.log.
// An empty dir logs to stdout only.
func NewComponent(name, dir, level, format string) (*Component, error) {
	l := logrus.New()
	configure(l, level, format)
	l.SetOutput(os.Stdout)

	component := &Component{}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		combined, err := openLogFile(filepath.Join(dir, name+".log"))
		if err != nil {
			return nil, err
		}
		errorsOnly, err := openLogFile(filepath.Join(dir, name+"-error.log"))
		if err != nil {
			_ = combined.Close()
			return nil, err
		}

		l.SetOutput(io.MultiWriter(os.Stdout, combined))
		l.AddHook(&errorFileHook{writer: errorsOnly, formatter: &logrus.JSONFormatter{}})
		component.files = []*os.File{combined, errorsOnly}
	}

	component.Logger = &Logger{Entry: l.WithField("component", name)}
	return component, nil
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

// errorFileHook writes error and above to a dedicated file
type errorFileHook struct {
	writer    io.Writer
	formatter logrus.Formatter
}

func (h *errorFileHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
}

func (h *errorFileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}

// WithContext creates a logger carrying request and user information from the context
func WithContext(ctx context.Context) *Logger {
	return New().WithContext(ctx)
}

// WithContext adds request and user information from the context to this logger
func (l *Logger) WithContext(ctx context.Context) *Logger {
	entry := l.Entry
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}

	if user, ok := ctx.Value(UserIDKey).(string); ok && user != "" {
		entry = entry.WithField("user", user)
	}

	return &Logger{Entry: entry}
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithField(key, value),
	}
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithFields(fields),
	}
}

// WithError adds an error field to the logger
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Entry: l.Entry.WithError(err),
	}
}
