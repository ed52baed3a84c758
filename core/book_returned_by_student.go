package core

import (
	"time"
)

// BookReturnedByStudentEventType is the event type identifier.
const BookReturnedByStudentEventType = "BookReturnedByStudent"

// BookReturnedByStudent represents when a student brings a borrowed copy back.
type BookReturnedByStudent struct {
	EventType  EventTypeString
	RecordID   RecordIDString
	BookID     BookIDString
	StudentID  StudentIDString
	OccurredAt OccurredAtTS
}

// BuildBookReturnedByStudent creates a new BookReturnedByStudent event.
func BuildBookReturnedByStudent(
	recordID RecordIDString,
	bookID BookIDString,
	studentID StudentIDString,
	occurredAt time.Time,
) BookReturnedByStudent {

	return BookReturnedByStudent{
		EventType:  BookReturnedByStudentEventType,
		RecordID:   recordID,
		BookID:     bookID,
		StudentID:  studentID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReturnedByStudent) IsEventType() string {
	return BookReturnedByStudentEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturnedByStudent) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturnedByStudent) IsErrorEvent() bool {
	return false
}
