package returnbook

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

const (
	failureReasonNoActiveBorrow = "student has not borrowed this book"
)

// Decide implements the business logic to determine whether a copy can be taken back.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a student with StudentID
//	WHEN: ReturnBook command is received
//	THEN: BookReturnedByStudent event for the pair's active record
//	ERROR: "student has not borrowed this book" if the pair has no active record
func Decide(book core.Book, student core.Student, command Command) core.DecisionResult {
	record, borrowed := book.ActiveRecordOf(student.ID)
	if !borrowed {
		event := core.BuildReturningBookFromStudentFailed(book.ID, student.ID, failureReasonNoActiveBorrow, command.OccurredAt)
		return core.ErrorDecision(event, core.ErrNoActiveBorrow)
	}

	returnedAt := command.OccurredAt
	if returnedAt.Before(record.BorrowedAt) {
		returnedAt = record.BorrowedAt
	}

	return core.SuccessDecision(core.BuildBookReturnedByStudent(record.ID, book.ID, student.ID, returnedAt))
}
