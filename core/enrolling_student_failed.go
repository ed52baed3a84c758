package core

import (
	"time"
)

// EnrollingStudentFailedEventType is the event type identifier.
const EnrollingStudentFailedEventType = "EnrollingStudentFailed"

// EnrollingStudentFailed represents a rejected enrollment.
type EnrollingStudentFailed struct {
	EventType   EventTypeString
	StudentID   StudentIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildEnrollingStudentFailed creates a new EnrollingStudentFailed event.
func BuildEnrollingStudentFailed(studentID StudentIDString, failureInfo string, occurredAt time.Time) EnrollingStudentFailed {
	return EnrollingStudentFailed{
		EventType:   EnrollingStudentFailedEventType,
		StudentID:   studentID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e EnrollingStudentFailed) IsEventType() string {
	return EnrollingStudentFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e EnrollingStudentFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e EnrollingStudentFailed) IsErrorEvent() bool {
	return true
}
