package searchbooks

import (
	"context"

	"github.com/AntonStoeckl/school-library-lending/shell"
)

// QueryHandler searches inventory snapshots.
type QueryHandler struct {
	inventory shell.InventoryReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(inventory shell.InventoryReader) QueryHandler {
	return QueryHandler{inventory: inventory}
}

// Handle returns the matching books.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Books, error) {
	if err := ctx.Err(); err != nil {
		return Books{}, err
	}

	return ProjectMatchingBooks(h.inventory.ListBooks(), query), nil
}
