package addbook

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

const (
	failureReasonDuplicateBook = "a different book with this id already exists"
)

// Decide determines whether the book can be added.
//
// Business Rules:
//
//	GIVEN: An optional existing book with the same BookID
//	WHEN: AddBook command is received
//	THEN: BookAddedToInventory event
//	ERROR: "a different book with this id already exists" if the existing book differs
//	IDEMPOTENCY: If an identical book exists, no event is generated (no-op)
func Decide(existing *core.Book, command Command) core.DecisionResult {
	if existing != nil {
		if sameCatalogData(*existing, command.Book()) {
			return core.IdempotentDecision()
		}

		event := core.BuildAddingBookToInventoryFailed(command.BookID, failureReasonDuplicateBook, command.OccurredAt)

		return core.ErrorDecision(event, core.ErrDuplicateBook)
	}

	return core.SuccessDecision(core.BuildBookAddedToInventory(command.Book(), command.OccurredAt))
}

func sameCatalogData(a, b core.Book) bool {
	return a.ID == b.ID &&
		a.Title == b.Title &&
		a.Author == b.Author &&
		a.ISBN == b.ISBN &&
		a.TotalCopies == b.TotalCopies
}
