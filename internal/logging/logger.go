// Package logging provides the structured logging abstraction used across
// debtsolver. Components depend on the Logger interface; the CLI and API wire
// in a logrus-backed implementation and tests use MockLogger.
package logging

// Logger defines the interface for structured logging throughout the application.
// Implementations attach fields and error context to every entry.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)

	// Fatalf logs a fatal-level message with formatting and exits the program
	Fatalf(msg string, args ...interface{})
}

// Field represents a key-value pair for structured logging. Fields carry
// context without cluttering the message text.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// GetLogger returns a text logger at info level. It is the fallback for
// components constructed without an explicit logger.
func GetLogger() Logger {
	return NewLogrusAdapter("info", "text")
}
