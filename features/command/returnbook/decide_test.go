package returnbook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/features/command/returnbook"
	. "github.com/AntonStoeckl/school-library-lending/testutil/helper" //nolint:revive
)

func givenBookLentTo(studentID core.StudentIDString, at time.Time) core.Book {
	book := core.BuildBook("1", "Dune", "Frank Herbert", "", 1)
	book.Active = []core.BorrowRecord{core.BuildBorrowRecord("r-1", book.ID, studentID, at, core.DefaultLoanPeriod)}
	book.AvailableCopies = 0

	return book
}

func Test_Decide_Success(t *testing.T) {
	// arrange
	student := core.BuildStudent("CS25-001", "Ada", "", "")
	book := givenBookLentTo(student.ID, FakeClock())
	command := returnbook.BuildCommand(student.ID, book.ID, FakeClock().Add(48*time.Hour))

	// act
	result := returnbook.Decide(book, student, command)

	// assert
	require.NoError(t, result.HasError())
	event, ok := result.Event.(core.BookReturnedByStudent)
	require.True(t, ok)
	assert.Equal(t, "r-1", event.RecordID)
	assert.Equal(t, FakeClock().Add(48*time.Hour), event.OccurredAt)
}

func Test_Decide_ReturnNeverPrecedesBorrow(t *testing.T) {
	// arrange
	student := core.BuildStudent("CS25-001", "Ada", "", "")
	book := givenBookLentTo(student.ID, FakeClock())
	command := returnbook.BuildCommand(student.ID, book.ID, FakeClock().Add(-time.Minute))

	// act
	result := returnbook.Decide(book, student, command)

	// assert
	event, ok := result.Event.(core.BookReturnedByStudent)
	require.True(t, ok)
	assert.Equal(t, FakeClock(), event.OccurredAt)
}

func Test_Decide_Error_NoActiveBorrow(t *testing.T) {
	// arrange
	book := givenBookLentTo("CS25-002", FakeClock())
	student := core.BuildStudent("CS25-001", "Ada", "", "")

	// act
	result := returnbook.Decide(book, student, returnbook.BuildCommand(student.ID, book.ID, FakeClock()))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNoActiveBorrow)
	assert.Equal(t, core.ReturningBookFromStudentFailedEventType, result.Event.IsEventType())
}
