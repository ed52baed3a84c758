package lendbook

import (
	"time"

	"github.com/AntonStoeckl/school-library-lending/core"
)

const (
	failureReasonDuplicateBorrow = "student has already borrowed this book"
	failureReasonBorrowLimit     = "student has reached the borrow limit"
	failureReasonOutOfStock      = "no copies available"
)

// Rules are the configurable lending parameters.
type Rules struct {
	LoanPeriod  time.Duration
	BorrowLimit int // 0 means unlimited
}

// Decide implements the business logic to determine whether a copy can be lent.
// This is a pure function: it looks at the current book and student and returns the event to record.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a student with StudentID
//	WHEN: LendBook command is received
//	THEN: BookLentToStudent event, due LoanPeriod after the lend
//	ERROR: "student has already borrowed this book" if the pair already has an active record
//	ERROR: "student has reached the borrow limit" if the student holds BorrowLimit books
//	ERROR: "no copies available" if no copy is on the shelf
func Decide(book core.Book, student core.Student, command Command, rules Rules) core.DecisionResult {
	if _, borrowed := book.ActiveRecordOf(student.ID); borrowed {
		event := core.BuildLendingBookToStudentFailed(book.ID, student.ID, failureReasonDuplicateBorrow, command.OccurredAt)
		return core.ErrorDecision(event, core.ErrDuplicateBorrow)
	}

	if rules.BorrowLimit > 0 && student.BooksOut >= rules.BorrowLimit {
		event := core.BuildLendingBookToStudentFailed(book.ID, student.ID, failureReasonBorrowLimit, command.OccurredAt)
		return core.ErrorDecision(event, core.ErrBorrowLimitReached)
	}

	if book.AvailableCopies <= 0 {
		event := core.BuildLendingBookToStudentFailed(book.ID, student.ID, failureReasonOutOfStock, command.OccurredAt)
		return core.ErrorDecision(event, core.ErrOutOfStock)
	}

	loanPeriod := rules.LoanPeriod
	if loanPeriod <= 0 {
		loanPeriod = core.DefaultLoanPeriod
	}

	record := core.BuildBorrowRecord(command.RecordID, book.ID, student.ID, command.OccurredAt, loanPeriod)

	return core.SuccessDecision(core.BuildBookLentToStudent(record))
}
