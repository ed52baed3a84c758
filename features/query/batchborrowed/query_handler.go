package batchborrowed

import (
	"context"

	"github.com/AntonStoeckl/school-library-lending/shell"
)

// QueryHandler answers batch queries from inventory snapshots.
type QueryHandler struct {
	inventory shell.InventoryReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(inventory shell.InventoryReader) QueryHandler {
	return QueryHandler{inventory: inventory}
}

// Handle returns the batch's active borrows. An unknown batch yields an empty result.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BatchBorrowed, error) {
	if err := ctx.Err(); err != nil {
		return BatchBorrowed{}, err
	}

	return ProjectBatchBorrowed(h.inventory.ListBooks(), query), nil
}
