package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/school-library-lending/core"
)

func Test_BuildBorrowRecord_DueAfterLoanPeriod(t *testing.T) {
	// arrange
	fakeClock := time.Unix(0, 0).UTC()

	// act
	record := core.BuildBorrowRecord("r-1", "1", "CS25-001", fakeClock, core.DefaultLoanPeriod)

	// assert
	assert.Equal(t, fakeClock.Add(14*24*time.Hour), record.DueAt)
	assert.True(t, record.IsActive())
}

func Test_BorrowRecord_DaysOverdueAt(t *testing.T) {
	due := time.Unix(0, 0).UTC()
	record := core.BorrowRecord{DueAt: due}

	testCases := []struct {
		name     string
		now      time.Time
		overdue  bool
		expected int
	}{
		{name: "one second late counts as one day", now: due.Add(time.Second), overdue: true, expected: 1},
		{name: "25 hours late", now: due.Add(25 * time.Hour), overdue: true, expected: 1},
		{name: "exactly two days late", now: due.Add(48 * time.Hour), overdue: true, expected: 2},
		{name: "ten and a half days late", now: due.Add(252 * time.Hour), overdue: true, expected: 10},
		{name: "exactly at due time", now: due, overdue: false},
		{name: "before due time", now: due.Add(-time.Hour), overdue: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overdue, record.IsOverdueAt(tc.now))

			if tc.overdue {
				assert.Equal(t, tc.expected, record.DaysOverdueAt(tc.now))
			}
		})
	}
}

func Test_BorrowRecord_ClosedRecordIsNeverOverdue(t *testing.T) {
	fakeClock := time.Unix(0, 0).UTC()
	record := core.BuildBorrowRecord("r-1", "1", "CS25-001", fakeClock, time.Hour)

	closed := record.Closed(fakeClock.Add(30 * time.Minute))

	assert.False(t, closed.IsActive())
	assert.False(t, closed.IsOverdueAt(fakeClock.Add(48*time.Hour)))
	assert.True(t, record.IsActive(), "original record must stay untouched")
}

func Test_CompareBookIDs(t *testing.T) {
	assert.Equal(t, -1, core.CompareBookIDs("2", "10"))
	assert.Equal(t, 1, core.CompareBookIDs("10", "2"))
	assert.Equal(t, 0, core.CompareBookIDs("7", "7"))
	assert.Equal(t, -1, core.CompareBookIDs("7", "abc"))
	assert.Equal(t, -1, core.CompareBookIDs("abc", "abd"))
	assert.Equal(t, -1, core.CompareBookIDs("01", "1"))
	assert.Equal(t, 1, core.CompareBookIDs("1", "01"))
	assert.Equal(t, -1, core.CompareBookIDs("01", "2"))
}

func Test_Book_IsBalanced(t *testing.T) {
	book := core.BuildBook("1", "Dune", "Frank Herbert", "", 2)
	assert.True(t, book.IsBalanced())

	book.AvailableCopies = 1
	assert.False(t, book.IsBalanced())

	book.Active = []core.BorrowRecord{{ID: "r-1", StudentID: "CS25-001"}}
	assert.True(t, book.IsBalanced())
}
