package core

import (
	"time"
)

// LendingBookToStudentFailedEventType is the event type identifier.
const LendingBookToStudentFailedEventType = "LendingBookToStudentFailed"

// LendingBookToStudentFailed represents a rejected lend request.
type LendingBookToStudentFailed struct {
	EventType   EventTypeString
	BookID      BookIDString
	StudentID   StudentIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildLendingBookToStudentFailed creates a new LendingBookToStudentFailed event.
func BuildLendingBookToStudentFailed(
	bookID BookIDString,
	studentID StudentIDString,
	failureInfo string,
	occurredAt time.Time,
) LendingBookToStudentFailed {

	return LendingBookToStudentFailed{
		EventType:   LendingBookToStudentFailedEventType,
		BookID:      bookID,
		StudentID:   studentID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LendingBookToStudentFailed) IsEventType() string {
	return LendingBookToStudentFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LendingBookToStudentFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e LendingBookToStudentFailed) IsErrorEvent() bool {
	return true
}
