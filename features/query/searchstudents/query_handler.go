package searchstudents

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

// Handle returns the matching students.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Students, error) {
	if err := ctx.Err(); err != nil {
		return Students{}, err
	}

	return ProjectMatchingStudents(h.inventory.ListStudents(), query), nil
}
