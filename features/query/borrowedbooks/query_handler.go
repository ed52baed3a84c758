package borrowedbooks

import (
	"context"

	"github.com/AntonStoeckl/school-library-lending/shell"
)

// QueryHandler answers borrowed books queries from inventory snapshots.
type QueryHandler struct {
	inventory shell.InventoryReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(inventory shell.InventoryReader) QueryHandler {
	return QueryHandler{inventory: inventory}
}

// Handle returns the books that have copies out.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (BorrowedBooks, error) {
	if err := ctx.Err(); err != nil {
		return BorrowedBooks{}, err
	}

	return ProjectBorrowedBooks(h.inventory.ListBooks()), nil
}
