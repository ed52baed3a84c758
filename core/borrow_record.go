package core

import (
	"time"
)

// DefaultLoanPeriod is the time between borrowing a book and its due date.
const DefaultLoanPeriod = 14 * 24 * time.Hour

// BorrowRecord links one copy of a book to one student.
// It is active while ReturnedAt is nil. Closed records are kept forever in the history log.
type BorrowRecord struct {
	ID         RecordIDString
	BookID     BookIDString
	StudentID  StudentIDString
	BorrowedAt time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
}

// BuildBorrowRecord opens a new record that is due loanPeriod after borrowedAt.
func BuildBorrowRecord(
	id RecordIDString,
	bookID BookIDString,
	studentID StudentIDString,
	borrowedAt time.Time,
	loanPeriod time.Duration,
) BorrowRecord {

	borrowedAt = ToOccurredAt(borrowedAt)

	return BorrowRecord{
		ID:         id,
		BookID:     bookID,
		StudentID:  studentID,
		BorrowedAt: borrowedAt,
		DueAt:      borrowedAt.Add(loanPeriod),
	}
}

// IsActive reports whether the copy is still out.
func (r BorrowRecord) IsActive() bool {
	return r.ReturnedAt == nil
}

// Closed returns a copy of the record with the return timestamp set.
func (r BorrowRecord) Closed(returnedAt time.Time) BorrowRecord {
	ts := ToOccurredAt(returnedAt)
	r.ReturnedAt = &ts

	return r
}

// IsOverdueAt reports whether an active record is past its due date.
func (r BorrowRecord) IsOverdueAt(now time.Time) bool {
	return r.IsActive() && now.After(r.DueAt)
}

// DaysOverdueAt counts full days past the due date, at least 1 for any overdue record.
func (r BorrowRecord) DaysOverdueAt(now time.Time) int {
	days := int(now.Sub(r.DueAt) / (24 * time.Hour))
	if days < 1 {
		return 1
	}

	return days
}
