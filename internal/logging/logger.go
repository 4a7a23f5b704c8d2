// Package logging decouples the application from a concrete logging
// framework. Components depend on Logger and receive it through their
// constructors; tests substitute MockLogger.
package logging

// Logger is the structured logger used throughout the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a child logger carrying err.
	WithError(err error) Logger

	// WithField returns a child logger carrying one extra field.
	WithField(key string, value interface{}) Logger

	// WithFields returns a child logger carrying the given fields.
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

var defaultLogger Logger = NewLogrusAdapter("info", "text")

// GetLogger returns the process-wide fallback logger. It is used by code
// paths that run before the container exists, such as flag parsing.
func GetLogger() Logger {
	return defaultLogger
}

// SetLogger replaces the process-wide fallback logger. A nil logger is ignored.
func SetLogger(l Logger) {
	if l != nil {
		defaultLogger = l
	}
}
