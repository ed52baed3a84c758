package core

import (
	"slices"
)

// Book is a catalog entry with a fixed number of physical copies.
//
// AvailableCopies always equals TotalCopies minus the number of Active records.
// Snapshots handed out by the inventory are never mutated in place.
type Book struct {
	ID              BookIDString
	Title           string
	Author          string
	ISBN            ISBNString
	TotalCopies     int
	AvailableCopies int
	Active          []BorrowRecord
}

// BuildBook creates a Book with all copies on the shelf.
func BuildBook(id BookIDString, title string, author string, isbn ISBNString, totalCopies int) Book {
	return Book{
		ID:              id,
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}
}

// Validate checks the static fields of a book.
func (b Book) Validate() error {
	if b.ID == "" || b.Title == "" || b.TotalCopies < 0 {
		return ErrInvalidBook
	}

	return nil
}

// IsBalanced reports whether the copy counters agree with the active records.
func (b Book) IsBalanced() bool {
	return b.AvailableCopies >= 0 &&
		b.AvailableCopies <= b.TotalCopies &&
		b.AvailableCopies == b.TotalCopies-len(b.Active)
}

// ActiveRecordOf returns the active record of the given student, if any.
func (b Book) ActiveRecordOf(studentID StudentIDString) (BorrowRecord, bool) {
	for _, record := range b.Active {
		if record.StudentID == studentID {
			return record, true
		}
	}

	return BorrowRecord{}, false
}

// Clone returns a deep copy, safe to modify.
func (b Book) Clone() Book {
	b.Active = slices.Clone(b.Active)
	return b
}
