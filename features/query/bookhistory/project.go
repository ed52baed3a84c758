package bookhistory

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/school-library-lending/core"
)

// ProjectBookHistory merges the active and closed records of one book.
//
// Query Logic:
//
//	GIVEN: A book snapshot and the closed record history
//	WHEN: BookHistory query is executed
//	THEN: all records of that book, active and returned
//	DEDUP: a record present in both inputs is shown once, as returned
//	ORDER: borrowed at descending, ties by record id descending
func ProjectBookHistory(book core.Book, history []core.BorrowRecord) BookHistory {
	byID := make(map[core.RecordIDString]core.BorrowRecord)

	for _, record := range book.Active {
		byID[record.ID] = record
	}

	for _, record := range history {
		if record.BookID == book.ID {
			byID[record.ID] = record
		}
	}

	records := make([]core.BorrowRecord, 0, len(byID))
	for _, record := range byID {
		records = append(records, record)
	}

	slices.SortFunc(records, func(a, b core.BorrowRecord) int {
		return cmp.Or(b.BorrowedAt.Compare(a.BorrowedAt), cmp.Compare(b.ID, a.ID))
	})

	return BookHistory{
		Book:    book,
		Records: records,
		Count:   len(records),
	}
}
