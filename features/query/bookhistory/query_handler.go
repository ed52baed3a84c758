package bookhistory

import (
	"context"

	"github.com/AntonStoeckl/school-library-lending/shell"
)

// QueryHandler answers book history queries from inventory snapshots.
type QueryHandler struct {
	inventory shell.InventoryReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(inventory shell.InventoryReader) QueryHandler {
	return QueryHandler{inventory: inventory}
}

// Handle returns core.ErrUnknownBook for books not in the catalog.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookHistory, error) {
	if err := ctx.Err(); err != nil {
		return BookHistory{}, err
	}

	book, err := h.inventory.GetBook(query.BookID)
	if err != nil {
		return BookHistory{}, err
	}

	return ProjectBookHistory(book, h.inventory.History()), nil
}
