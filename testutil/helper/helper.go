package helper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/inventory"
)

// FakeClock is the fixed point in time most tests start from.
func FakeClock() time.Time {
	return time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
}

// GivenUniqueID returns a fresh time-ordered identifier.
func GivenUniqueID(t testing.TB) string {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id.String()
}

// GivenBook adds a book with the given number of copies to the store.
func GivenBook(t testing.TB, store *inventory.Store, id core.BookIDString, title string, copies int) core.Book {
	t.Helper()

	book := core.BuildBook(id, title, "Author of "+title, "", copies)
	require.NoError(t, store.AddBook(book, nil), "error in arranging test data")

	return book
}

// GivenStudent enrolls a student with a generated name.
func GivenStudent(t testing.TB, store *inventory.Store, id core.StudentIDString) core.Student {
	t.Helper()

	student := core.BuildStudent(id, "Student "+id, "", "")
	require.NoError(t, store.EnrollStudent(student, nil), "error in arranging test data")

	return student
}

// GivenBookLent opens a borrow record directly on the store, bypassing lending rules.
func GivenBookLent(
	t testing.TB,
	store *inventory.Store,
	bookID core.BookIDString,
	studentID core.StudentIDString,
	borrowedAt time.Time,
) core.BorrowRecord {

	t.Helper()

	record := core.BuildBorrowRecord(GivenUniqueID(t), bookID, studentID, borrowedAt, core.DefaultLoanPeriod)

	err := store.Transact(bookID, studentID, func(tx *inventory.Tx) error {
		if err := tx.ReserveCopy(); err != nil {
			return err
		}

		tx.OpenRecord(record)

		return nil
	})
	require.NoError(t, err, "error in arranging test data")

	return record
}

// GivenBookReturned closes the student's active record for the book.
func GivenBookReturned(
	t testing.TB,
	store *inventory.Store,
	bookID core.BookIDString,
	studentID core.StudentIDString,
	returnedAt time.Time,
) core.BorrowRecord {

	t.Helper()

	var closed core.BorrowRecord

	err := store.Transact(bookID, studentID, func(tx *inventory.Tx) error {
		var closeErr error

		closed, closeErr = tx.CloseRecord(returnedAt)
		if closeErr != nil {
			return closeErr
		}

		return tx.ReleaseCopy()
	})
	require.NoError(t, err, "error in arranging test data")

	return closed
}
