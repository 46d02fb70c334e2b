package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"vlcrc/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	// Toggled from the UI goroutine while watcher goroutines log.
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus entry so fields can be chained.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

type options struct {
	out  io.Writer
	json bool
	file string
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log output to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithFile appends log output to the file at path. The terminal belongs
// to the UI while it runs, so this is the usual destination.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithJSON switches to JSON formatted entries.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// NewLogger creates a logger writing to stderr unless configured otherwise.
// An unopenable file falls back to the configured writer.
func NewLogger(opts ...Option) *Logger {
	l, _ := newLogger(opts...)
	return l
}

func newLogger(opts ...Option) (*Logger, error) {
	o := &options{out: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l := &Logger{}
	base.SetOutput(o.out)
	var err error
	if o.file != "" {
		var f *os.File
		f, err = os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			base.SetOutput(f)
			l.file = f
		}
	}
	l.entry = logrus.NewEntry(base)
	return l, err
}

// Configure replaces the package logger. The previous logger's file, if
// any, is closed.
func Configure(opts ...Option) error {
	l, err := newLogger(opts...)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	old := logger
	logger = l
	if old != nil && old.file != nil {
		old.file.Close()
	}
	return nil
}

// Close releases the package logger's file, if it has one.
func Close() {
	if logger.file != nil {
		logger.file.Close()
		logger.file = nil
	}
}

// SetDebug enables or disables debug entries globally.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// With returns a logger carrying the given fields in addition to the
// receiver's.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithContext attaches ctx to subsequent entries.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), file: l.file}
}

func (l *Logger) Info(args ...interface{}) {
	l.entry.Info(args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *Logger) Warn(args ...interface{}) {
	l.entry.Warn(args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *Logger) Error(args ...interface{}) {
	l.entry.Error(args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Debug logs only when debug mode is on.
func (l *Logger) Debug(args ...interface{}) {
	if isDebug.Load() {
		l.entry.Debug(args...)
	}
}

// Debugf logs a formatted message only when debug mode is on.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.entry.Debugf(format, args...)
	}
}

func Info(args ...interface{}) {
	logger.Info(args...)
}

func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func Warn(args ...interface{}) {
	logger.Warn(args...)
}

func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

func Error(args ...interface{}) {
	logger.Error(args...)
}

func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

func Debug(args ...interface{}) {
	logger.Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger annotated with err and, for
// application errors, its kind and the error-specific context.
func LogWithError(err error) *Logger {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}

	fields := []Field{F("error", err.Error())}

	var configErr *errors.ConfigError
	var connErr *errors.ConnectionError
	var termErr *errors.TerminalError
	var appErr *errors.ApplicationError
	switch {
	case errors.As(err, &configErr):
		fields = append(fields, F("error_kind", int(configErr.Kind())))
		if configErr.Param() != "" {
			fields = append(fields, F("param", configErr.Param()))
		}
	case errors.As(err, &connErr):
		fields = append(fields,
			F("error_kind", int(connErr.Kind())),
			F("op", connErr.Op()),
			F("address", connErr.Address()))
	case errors.As(err, &termErr):
		fields = append(fields, F("error_kind", int(termErr.Kind())))
	case errors.As(err, &appErr):
		fields = append(fields, F("error_kind", int(appErr.Kind())))
	}
	return logger.With(fields...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}
