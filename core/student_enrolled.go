package core

import (
	"time"
)

// StudentEnrolledEventType is the event type identifier.
const StudentEnrolledEventType = "StudentEnrolled"

// StudentEnrolled represents when a student becomes a library member.
type StudentEnrolled struct {
	EventType  EventTypeString
	StudentID  StudentIDString
	Name       string
	Email      string
	ClassLabel string
	OccurredAt OccurredAtTS
}

// BuildStudentEnrolled creates a new StudentEnrolled event.
func BuildStudentEnrolled(student Student, occurredAt time.Time) StudentEnrolled {
	return StudentEnrolled{
		EventType:  StudentEnrolledEventType,
		StudentID:  student.ID,
		Name:       student.Name,
		Email:      student.Email,
		ClassLabel: student.ClassLabel,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// Student returns the member described by the event.
func (e StudentEnrolled) Student() Student {
	return BuildStudent(e.StudentID, e.Name, e.Email, e.ClassLabel)
}

// IsEventType returns the event type identifier.
func (e StudentEnrolled) IsEventType() string {
	return StudentEnrolledEventType
}

// HasOccurredAt returns when this event occurred.
func (e StudentEnrolled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e StudentEnrolled) IsErrorEvent() bool {
	return false
}
