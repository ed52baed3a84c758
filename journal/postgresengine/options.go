package postgresengine

import (
	"github.com/AntonStoeckl/school-library-lending/journal"
)

// Logger interface for SQL query logging, operational information, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring Engine.
type Option func(*Engine) error

// WithTableName sets the table name for the Engine.
func WithTableName(tableName string) Option {
	return func(e *Engine) error {
		if tableName == "" {
			return journal.ErrEmptyEventsTableName
		}

		e.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Engine.
//
// Debug level: SQL statements with execution timing
// Info level: event counts and durations
// Warn level: non-critical issues like cleanup failures
// Error level: failures that abort the operation.
func WithLogger(logger Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}
