package overduebooks

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

// OverdueEntry is one active borrow past its due date.
type OverdueEntry struct {
	Book        core.Book
	Record      core.BorrowRecord
	DaysOverdue int
}
