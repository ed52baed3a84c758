package overduebooks

import (
	"iter"

	"github.com/AntonStoeckl/school-library-lending/core"
)

// ProjectOverdue yields every active record past its due date, book by book in the given order.
//
// Query Logic:
//
//	GIVEN: Book snapshots and a point in time
//	WHEN: OverdueBooks query is executed
//	THEN: one entry per active record with Now after DueAt
//	INCLUDES: days overdue, floor((Now - DueAt) / 24h) but at least 1
//	EXCLUDES: returned records and records not yet due
func ProjectOverdue(books []core.Book, query Query) iter.Seq[OverdueEntry] {
	return func(yield func(OverdueEntry) bool) {
		for _, book := range books {
			for _, record := range book.Active {
				if !record.IsOverdueAt(query.Now) {
					continue
				}

				entry := OverdueEntry{
					Book:        book,
					Record:      record,
					DaysOverdue: record.DaysOverdueAt(query.Now),
				}

				if !yield(entry) {
					return
				}
			}
		}
	}
}
