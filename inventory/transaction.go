package inventory

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/school-library-lending/core"
)

// ErrUnbalancedTransaction is returned when a transaction changes the copy counters
// without opening or closing the matching borrow record, or the other way round.
var ErrUnbalancedTransaction = errors.New("transaction left copy counters and active records out of sync")

// Tx is the exclusive view of one book and one student inside Transact.
// It works on drafts; nothing is visible to readers before Transact commits.
type Tx struct {
	book    core.Book
	student core.Student
	closed  []core.BorrowRecord
	commit  []func()
	logger  Logger
}

// Transact runs fn with exclusive access to the book and the student.
//
// The student is resolved first, then the book, failing with core.ErrUnknownStudent or
// core.ErrUnknownBook. The book lock is always taken before the student lock.
// If fn returns nil, the book, the student and the closed records are published together
// and the OnCommit callbacks run, still under both locks; otherwise all changes are
// discarded and fn's error is returned.
func (s *Store) Transact(bookID core.BookIDString, studentID core.StudentIDString, fn func(tx *Tx) error) error {
	cat := s.catalog.Load()

	studentSlot, ok := cat.students[studentID]
	if !ok {
		return core.ErrUnknownStudent
	}

	bookSlot, ok := cat.books[bookID]
	if !ok {
		return core.ErrUnknownBook
	}

	bookSlot.mu.Lock()
	defer bookSlot.mu.Unlock()

	studentSlot.mu.Lock()
	defer studentSlot.mu.Unlock()

	tx := &Tx{
		book:    bookSlot.state.Load().Clone(),
		student: *studentSlot.state.Load(),
		logger:  s.logger,
	}

	if err := fn(tx); err != nil {
		return err
	}

	if !tx.book.IsBalanced() {
		s.logError(
			logMsgUnbalancedCommit,
			logAttrBookID, tx.book.ID,
			logAttrTotalCopies, tx.book.TotalCopies,
			logAttrAvailable, tx.book.AvailableCopies,
			logAttrActiveRecords, len(tx.book.Active),
		)

		return ErrUnbalancedTransaction
	}

	// history first: a reader that no longer sees a record as active must find it closed
	s.history.append(tx.closed...)
	bookSlot.state.Store(&tx.book)
	studentSlot.state.Store(&tx.student)

	for _, callback := range tx.commit {
		callback()
	}

	return nil
}

// OnCommit registers a callback that runs after a successful commit, before the locks are released.
// Callbacks must not block; they see changes in the same order as every other writer of the book.
func (tx *Tx) OnCommit(callback func()) {
	tx.commit = append(tx.commit, callback)
}

// Book returns the current draft of the book.
func (tx *Tx) Book() core.Book {
	return tx.book.Clone()
}

// Student returns the current draft of the student.
func (tx *Tx) Student() core.Student {
	return tx.student
}

// ActiveRecord returns the student's active record for the book, if any.
func (tx *Tx) ActiveRecord() (core.BorrowRecord, bool) {
	return tx.book.ActiveRecordOf(tx.student.ID)
}

// ReserveCopy takes one copy off the shelf.
func (tx *Tx) ReserveCopy() error {
	if tx.book.AvailableCopies <= 0 {
		return core.ErrOutOfStock
	}

	tx.book.AvailableCopies--

	return nil
}

// ReleaseCopy puts one copy back on the shelf.
func (tx *Tx) ReleaseCopy() error {
	if tx.book.AvailableCopies+1 > tx.book.TotalCopies {
		if tx.logger != nil {
			tx.logger.Error(
				logMsgOverRelease,
				logAttrBookID, tx.book.ID,
				logAttrTotalCopies, tx.book.TotalCopies,
				logAttrAvailable, tx.book.AvailableCopies,
			)
		}

		return core.ErrOverRelease
	}

	tx.book.AvailableCopies++

	return nil
}

// OpenRecord adds the record to the book's active list and counts it for the student.
func (tx *Tx) OpenRecord(record core.BorrowRecord) {
	tx.book.Active = append(tx.book.Active, record)
	tx.student.BooksOut++
}

// CloseRecord ends the student's active record for the book and queues it for the history log.
func (tx *Tx) CloseRecord(returnedAt time.Time) (core.BorrowRecord, error) {
	for i, record := range tx.book.Active {
		if record.StudentID != tx.student.ID {
			continue
		}

		closed := record.Closed(returnedAt)
		tx.book.Active = append(tx.book.Active[:i:i], tx.book.Active[i+1:]...)
		tx.closed = append(tx.closed, closed)
		tx.student.BooksOut--
		tx.student.BooksReturned++

		return closed, nil
	}

	return core.BorrowRecord{}, core.ErrNoActiveBorrow
}
