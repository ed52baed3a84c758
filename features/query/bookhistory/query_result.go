package bookhistory

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

// BookHistory is the query result. Records are ordered newest borrow first.
type BookHistory struct {
	Book    core.Book
	Records []core.BorrowRecord
	Count   int
}
