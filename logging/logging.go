package logging

import (
	"context"
	"sync/atomic"
)

// ANSI color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorBold   = "\033[1m"
)

// Level represents log levels
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Fields represents structured logging fields
type Fields map[string]any

// Logger defines the interface that the library expects for logging
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)
	Fatal(err error, msg string, fields ...Fields)

	// WithFields returns a logger with preset fields
	WithFields(fields Fields) Logger

	// WithContext returns a logger carrying the fields stored in ctx
	WithContext(ctx context.Context) Logger

	// SetLevel sets the minimum log level
	SetLevel(level Level)
}

type fieldsKey struct{}

// ContextWithFields stores fields in ctx for later WithContext calls
func ContextWithFields(ctx context.Context, fields Fields) context.Context {
	return context.WithValue(ctx, fieldsKey{}, fields)
}

// FieldsFromContext returns the fields stored by ContextWithFields
func FieldsFromContext(ctx context.Context) (Fields, bool) {
	if ctx == nil {
		return nil, false
	}
	fields, ok := ctx.Value(fieldsKey{}).(Fields)
	return fields, ok
}

type loggerHolder struct {
	logger Logger
}

var globalLogger atomic.Pointer[loggerHolder]

func init() {
	globalLogger.Store(&loggerHolder{logger: NewDefaultLogger()})
}

// SetGlobalLogger sets the global logger instance. A nil logger disables
// logging.
func SetGlobalLogger(logger Logger) {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	globalLogger.Store(&loggerHolder{logger: logger})
}

// GetGlobalLogger returns the current global logger
func GetGlobalLogger() Logger {
	return globalLogger.Load().logger
}

// Package-level logging functions that use the global logger
func Debug(msg string, fields ...Fields) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Info(msg string, fields ...Fields) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...Fields) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Error(err error, msg string, fields ...Fields) {
	GetGlobalLogger().Error(err, msg, fields...)
}

func Fatal(err error, msg string, fields ...Fields) {
	GetGlobalLogger().Fatal(err, msg, fields...)
}

func WithFields(fields Fields) Logger {
	return GetGlobalLogger().WithFields(fields)
}

func WithContext(ctx context.Context) Logger {
	return GetGlobalLogger().WithContext(ctx)
}

func SetLevel(level Level) {
	GetGlobalLogger().SetLevel(level)
}
