package core

import (
	"time"
)

// ReturningBookFromStudentFailedEventType is the event type identifier.
const ReturningBookFromStudentFailedEventType = "ReturningBookFromStudentFailed"

// ReturningBookFromStudentFailed represents a rejected return request.
type ReturningBookFromStudentFailed struct {
	EventType   EventTypeString
	BookID      BookIDString
	StudentID   StudentIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildReturningBookFromStudentFailed creates a new ReturningBookFromStudentFailed event.
func BuildReturningBookFromStudentFailed(
	bookID BookIDString,
	studentID StudentIDString,
	failureInfo string,
	occurredAt time.Time,
) ReturningBookFromStudentFailed {

	return ReturningBookFromStudentFailed{
		EventType:   ReturningBookFromStudentFailedEventType,
		BookID:      bookID,
		StudentID:   studentID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReturningBookFromStudentFailed) IsEventType() string {
	return ReturningBookFromStudentFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReturningBookFromStudentFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e ReturningBookFromStudentFailed) IsErrorEvent() bool {
	return true
}
