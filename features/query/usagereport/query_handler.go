package usagereport

import (
	"context"

	"github.com/AntonStoeckl/school-library-lending/shell"
)

// QueryHandler builds usage reports from inventory snapshots.
type QueryHandler struct {
	inventory shell.InventoryReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(inventory shell.InventoryReader) QueryHandler {
	return QueryHandler{inventory: inventory}
}

// Handle reads the books snapshot before the history, see the package documentation.
func (h QueryHandler) Handle(ctx context.Context, query Query) (UsageReport, error) {
	if err := ctx.Err(); err != nil {
		return UsageReport{}, err
	}

	books := h.inventory.ListBooks()
	history := h.inventory.History()

	report := ProjectUsageReport(books, history, query)

	// Books added after the snapshot may already have closed records.
	for i := range report.Classes {
		for j, usage := range report.Classes[i].TopBooks {
			if usage.Title != "" {
				continue
			}

			if book, err := h.inventory.GetBook(usage.BookID); err == nil {
				report.Classes[i].TopBooks[j].Title = book.Title
			}
		}
	}

	return report, nil
}
