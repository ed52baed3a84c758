package sqliteengine

import (
	"time"

	"github.com/AntonStoeckl/school-library-lending/journal"
)

// Logger is the logging surface the engine writes to.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option configures an Engine.
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
func WithLogger(logger Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithBusyTimeout sets how long a writer waits for a locked database.
func WithBusyTimeout(timeout time.Duration) Option {
	return func(e *Engine) error {
		e.busyTimeout = timeout
		return nil
	}
}
