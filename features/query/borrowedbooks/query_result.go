package borrowedbooks

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

// BorrowedBooks is the query result, ordered by book id.
// CopiesOut sums the active records over all listed books.
type BorrowedBooks struct {
	Books     []core.Book
	CopiesOut int
	Count     int
}
