package batchborrowed

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

// BookBorrows is one book and the active records of the batch's students on it.
type BookBorrows struct {
	Book    core.Book
	Records []core.BorrowRecord
}

// BatchBorrowed is the query result.
type BatchBorrowed struct {
	BatchCode string
	ClassName string
	Books     []BookBorrows
	Count     int
}
