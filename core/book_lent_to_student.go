package core

import (
	"time"
)

// BookLentToStudentEventType is the event type identifier.
const BookLentToStudentEventType = "BookLentToStudent"

// BookLentToStudent represents when a copy of a book is lent to a student.
type BookLentToStudent struct {
	EventType  EventTypeString
	RecordID   RecordIDString
	BookID     BookIDString
	StudentID  StudentIDString
	DueAt      time.Time
	OccurredAt OccurredAtTS
}

// BuildBookLentToStudent creates a new BookLentToStudent event from the opened record.
func BuildBookLentToStudent(record BorrowRecord) BookLentToStudent {
	return BookLentToStudent{
		EventType:  BookLentToStudentEventType,
		RecordID:   record.ID,
		BookID:     record.BookID,
		StudentID:  record.StudentID,
		DueAt:      ToOccurredAt(record.DueAt),
		OccurredAt: ToOccurredAt(record.BorrowedAt),
	}
}

// Record returns the active borrow record described by the event.
func (e BookLentToStudent) Record() BorrowRecord {
	return BorrowRecord{
		ID:         e.RecordID,
		BookID:     e.BookID,
		StudentID:  e.StudentID,
		BorrowedAt: e.OccurredAt,
		DueAt:      e.DueAt,
	}
}

// IsEventType returns the event type identifier.
func (e BookLentToStudent) IsEventType() string {
	return BookLentToStudentEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookLentToStudent) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookLentToStudent) IsErrorEvent() bool {
	return false
}
