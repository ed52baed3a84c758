package studentcurrentborrows

import (
	"time"

	"github.com/AntonStoeckl/school-library-lending/core"
)

// BorrowInfo is one active record joined with its book.
type BorrowInfo struct {
	RecordID   core.RecordIDString
	BookID     core.BookIDString
	Title      string
	Author     string
	BorrowedAt time.Time
	DueAt      time.Time
}

// CurrentBorrows is the query result.
type CurrentBorrows struct {
	StudentID core.StudentIDString
	Borrows   []BorrowInfo
	Count     int
}
