package overduebooks

import (
	"context"
	"iter"

	"github.com/AntonStoeckl/school-library-lending/shell"
)

// QueryHandler answers overdue queries from inventory snapshots.
type QueryHandler struct {
	inventory shell.InventoryReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(inventory shell.InventoryReader) QueryHandler {
	return QueryHandler{inventory: inventory}
}

// Handle takes a snapshot of all books and returns the lazy overdue sequence over it.
func (h QueryHandler) Handle(ctx context.Context, query Query) (iter.Seq[OverdueEntry], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return ProjectOverdue(h.inventory.ListBooks(), query), nil
}
