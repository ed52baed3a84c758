package borrowedbooks

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

// ProjectBorrowedBooks keeps the books with at least one active record.
//
// Query Logic:
//
//	GIVEN: Book snapshots
//	WHEN: BorrowedBooks query is executed
//	THEN: every book with a copy out, with its active records
func ProjectBorrowedBooks(books []core.Book) BorrowedBooks {
	result := BorrowedBooks{Books: make([]core.Book, 0)}

	for _, book := range books {
		if len(book.Active) == 0 {
			continue
		}

		result.Books = append(result.Books, book)
		result.CopiesOut += len(book.Active)
	}

	result.Count = len(result.Books)

	return result
}
