package batchborrowed

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

// ProjectBatchBorrowed filters the active records of every book down to one batch.
//
// Query Logic:
//
//	GIVEN: Book snapshots and a batch code
//	WHEN: BatchBorrowed query is executed
//	THEN: books with at least one active record of a student in the batch, in book order
//	INCLUDES: only the matching records of each book
//	EXCLUDES: books without matching records, returned records
func ProjectBatchBorrowed(books []core.Book, query Query) BatchBorrowed {
	pattern := core.BatchPattern(query.BatchCode)

	result := BatchBorrowed{
		BatchCode: query.BatchCode,
		ClassName: core.ClassName(query.BatchCode),
		Books:     make([]BookBorrows, 0),
	}

	for _, book := range books {
		var records []core.BorrowRecord

		for _, record := range book.Active {
			if pattern.MatchString(record.StudentID) {
				records = append(records, record)
			}
		}

		if len(records) == 0 {
			continue
		}

		result.Books = append(result.Books, BookBorrows{Book: book, Records: records})
		result.Count += len(records)
	}

	return result
}
