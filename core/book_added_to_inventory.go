package core

import (
	"time"
)

// BookAddedToInventoryEventType is the event type identifier.
const BookAddedToInventoryEventType = "BookAddedToInventory"

// BookAddedToInventory represents when a book with its copies is added to the library.
type BookAddedToInventory struct {
	EventType   EventTypeString
	BookID      BookIDString
	Title       string
	Author      string
	ISBN        ISBNString
	TotalCopies int
	OccurredAt  OccurredAtTS
}

// BuildBookAddedToInventory creates a new BookAddedToInventory event.
func BuildBookAddedToInventory(book Book, occurredAt time.Time) BookAddedToInventory {
	return BookAddedToInventory{
		EventType:   BookAddedToInventoryEventType,
		BookID:      book.ID,
		Title:       book.Title,
		Author:      book.Author,
		ISBN:        book.ISBN,
		TotalCopies: book.TotalCopies,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// Book returns the catalog entry described by the event.
func (e BookAddedToInventory) Book() Book {
	return BuildBook(e.BookID, e.Title, e.Author, e.ISBN, e.TotalCopies)
}

// IsEventType returns the event type identifier.
func (e BookAddedToInventory) IsEventType() string {
	return BookAddedToInventoryEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAddedToInventory) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookAddedToInventory) IsErrorEvent() bool {
	return false
}
