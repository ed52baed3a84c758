package usagereport

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/school-library-lending/core"
)

// ProjectUsageReport aggregates all borrows per batch.
//
// Query Logic:
//
//	GIVEN: Book snapshots (with their active records) and the closed record history
//	WHEN: UsageReport query is executed
//	THEN: one section per batch that ever borrowed, with its total and top titles
//	DEDUP: a record present in both inputs counts once
//	ORDER: batches by total desc then id asc; titles by count desc then book id asc
//	EXCLUDES: records of student ids without a batch code
func ProjectUsageReport(books []core.Book, history []core.BorrowRecord, query Query) UsageReport {
	titles := make(map[core.BookIDString]string, len(books))
	seen := make(map[core.RecordIDString]struct{})
	counts := make(map[string]map[core.BookIDString]int)

	count := func(record core.BorrowRecord) {
		if _, ok := seen[record.ID]; ok {
			return
		}
		seen[record.ID] = struct{}{}

		batch, ok := core.BatchOf(record.StudentID)
		if !ok {
			return
		}

		if counts[batch] == nil {
			counts[batch] = make(map[core.BookIDString]int)
		}
		counts[batch][record.BookID]++
	}

	for _, book := range books {
		titles[book.ID] = book.Title
		for _, record := range book.Active {
			count(record)
		}
	}

	for _, record := range history {
		count(record)
	}

	report := UsageReport{Classes: make([]ClassUsage, 0, len(counts))}

	for batch, perBook := range counts {
		class := ClassUsage{
			ClassID:   batch,
			ClassName: core.ClassName(batch),
			TopBooks:  make([]BookUsage, 0, len(perBook)),
		}

		for bookID, n := range perBook {
			class.TotalBorrowed += n
			class.TopBooks = append(class.TopBooks, BookUsage{BookID: bookID, Title: titles[bookID], BorrowCount: n})
		}

		slices.SortFunc(class.TopBooks, func(a, b BookUsage) int {
			return cmp.Or(cmp.Compare(b.BorrowCount, a.BorrowCount), core.CompareBookIDs(a.BookID, b.BookID))
		})

		if query.TopN > 0 && len(class.TopBooks) > query.TopN {
			class.TopBooks = class.TopBooks[:query.TopN]
		}

		report.Classes = append(report.Classes, class)
	}

	slices.SortFunc(report.Classes, func(a, b ClassUsage) int {
		return cmp.Or(cmp.Compare(b.TotalBorrowed, a.TotalBorrowed), cmp.Compare(a.ClassID, b.ClassID))
	})

	report.Count = len(report.Classes)

	return report
}
