package shell

import (
	"context"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/journal"
)

// Logger is the structured logging surface used across the application. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// InventoryReader is the read side of the inventory that query handlers work on.
// Every method returns an immutable snapshot and never blocks on writers.
type InventoryReader interface {
	GetBook(id core.BookIDString) (core.Book, error)
	GetStudent(id core.StudentIDString) (core.Student, error)
	ListBooks() []core.Book
	ListStudents() []core.Student
	History() []core.BorrowRecord
}

// EventRecorder accepts domain events for the journal.
// Record must not block: command handlers call it while holding inventory locks.
type EventRecorder interface {
	Record(events ...core.DomainEvent)
}

// QueriesJournal reads events from the journal.
type QueriesJournal interface {
	Query(ctx context.Context, filter journal.Filter) (
		journal.StorableEvents,
		journal.MaxSequenceNumberUint,
		error,
	)
}

// AppendsToJournal writes events to the journal.
type AppendsToJournal interface {
	Append(ctx context.Context, events ...journal.StorableEvent) error
}

// Journal is the full journal surface implemented by the storage engines.
type Journal interface {
	QueriesJournal
	AppendsToJournal
}

// NopRecorder discards all events. It is used when no journal is configured.
type NopRecorder struct{}

// Record implements EventRecorder.
func (NopRecorder) Record(...core.DomainEvent) {}
