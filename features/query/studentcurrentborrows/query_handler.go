package studentcurrentborrows

import (
	"context"

	"github.com/AntonStoeckl/school-library-lending/shell"
)

// QueryHandler answers current borrow queries from inventory snapshots.
type QueryHandler struct {
	inventory shell.InventoryReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(inventory shell.InventoryReader) QueryHandler {
	return QueryHandler{inventory: inventory}
}

// Handle returns core.ErrUnknownStudent for students that are not enrolled.
func (h QueryHandler) Handle(ctx context.Context, query Query) (CurrentBorrows, error) {
	if err := ctx.Err(); err != nil {
		return CurrentBorrows{}, err
	}

	if _, err := h.inventory.GetStudent(query.StudentID); err != nil {
		return CurrentBorrows{}, err
	}

	return ProjectCurrentBorrows(h.inventory.ListBooks(), query), nil
}
