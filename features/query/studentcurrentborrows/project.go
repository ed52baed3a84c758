package studentcurrentborrows

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/school-library-lending/core"
)

// ProjectCurrentBorrows collects the student's active records across all books.
//
// Query Logic:
//
//	GIVEN: Book snapshots and a student id
//	WHEN: StudentCurrentBorrows query is executed
//	THEN: every active record of that student joined with title and author
//	ORDER: borrowed at ascending, ties by book id
func ProjectCurrentBorrows(books []core.Book, query Query) CurrentBorrows {
	result := CurrentBorrows{
		StudentID: query.StudentID,
		Borrows:   make([]BorrowInfo, 0),
	}

	for _, book := range books {
		record, ok := book.ActiveRecordOf(query.StudentID)
		if !ok {
			continue
		}

		result.Borrows = append(result.Borrows, BorrowInfo{
			RecordID:   record.ID,
			BookID:     book.ID,
			Title:      book.Title,
			Author:     book.Author,
			BorrowedAt: record.BorrowedAt,
			DueAt:      record.DueAt,
		})
	}

	slices.SortFunc(result.Borrows, func(a, b BorrowInfo) int {
		return cmp.Or(a.BorrowedAt.Compare(b.BorrowedAt), core.CompareBookIDs(a.BookID, b.BookID))
	})

	result.Count = len(result.Borrows)

	return result
}
