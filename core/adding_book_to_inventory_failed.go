package core

import (
	"time"
)

// AddingBookToInventoryFailedEventType is the event type identifier.
const AddingBookToInventoryFailedEventType = "AddingBookToInventoryFailed"

// AddingBookToInventoryFailed represents a rejected catalog addition.
type AddingBookToInventoryFailed struct {
	EventType   EventTypeString
	BookID      BookIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildAddingBookToInventoryFailed creates a new AddingBookToInventoryFailed event.
func BuildAddingBookToInventoryFailed(bookID BookIDString, failureInfo string, occurredAt time.Time) AddingBookToInventoryFailed {
	return AddingBookToInventoryFailed{
		EventType:   AddingBookToInventoryFailedEventType,
		BookID:      bookID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e AddingBookToInventoryFailed) IsEventType() string {
	return AddingBookToInventoryFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AddingBookToInventoryFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e AddingBookToInventoryFailed) IsErrorEvent() bool {
	return true
}
