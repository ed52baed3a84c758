package usagereport

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

// BookUsage is the borrow count of one title within a batch.
type BookUsage struct {
	BookID      core.BookIDString
	Title       string
	BorrowCount int
}

// ClassUsage is the report section of one batch.
type ClassUsage struct {
	ClassID       string
	ClassName     string
	TotalBorrowed int
	TopBooks      []BookUsage
}

// UsageReport is the query result.
type UsageReport struct {
	Classes []ClassUsage
	Count   int
}
