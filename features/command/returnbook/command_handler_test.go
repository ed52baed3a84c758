package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/features/command/lendbook"
	"github.com/AntonStoeckl/school-library-lending/features/command/returnbook"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	. "github.com/AntonStoeckl/school-library-lending/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_RoundTripRestoresAvailability(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := inventory.NewStore()
	spy := NewEventRecorderSpy()
	logger, logHandler := NewTestLogger()
	GivenBook(t, store, "1", "Dune", 2)
	GivenStudent(t, store, "CS25-001")
	lent, err := lendbook.NewCommandHandler(store, lendbook.WithRecorder(spy)).
		Handle(ctx, lendbook.BuildCommand("CS25-001", "1", FakeClock()))
	require.NoError(t, err)
	handler := returnbook.NewCommandHandler(store, returnbook.WithRecorder(spy), returnbook.WithLogger(logger))

	// act
	closed, err := handler.Handle(ctx, returnbook.BuildCommand("CS25-001", "1", FakeClock().Add(time.Hour)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, lent.ID, closed.ID)
	require.NotNil(t, closed.ReturnedAt)
	assert.False(t, closed.ReturnedAt.Before(closed.BorrowedAt))

	book, _ := store.GetBook("1")
	assert.Equal(t, 2, book.AvailableCopies)
	assert.Empty(t, book.Active)

	student, _ := store.GetStudent("CS25-001")
	assert.Equal(t, 0, student.BooksOut)
	assert.Equal(t, 1, student.BooksReturned)

	assert.Equal(t, []core.BorrowRecord{closed}, store.History())
	assert.Equal(t, []string{core.BookLentToStudentEventType, core.BookReturnedByStudentEventType}, spy.EventTypes())
	assert.True(t, logHandler.HasInfoLogWithMessage("return book: book returned").WithAttr("record_id", closed.ID).Assert())
}

func Test_CommandHandler_Handle_TwiceFailsWithNoActiveBorrow(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := inventory.NewStore()
	GivenBook(t, store, "1", "Dune", 1)
	GivenStudent(t, store, "CS25-001")
	GivenBookLent(t, store, "1", "CS25-001", FakeClock())
	handler := returnbook.NewCommandHandler(store)

	// act
	_, firstErr := handler.Handle(ctx, returnbook.BuildCommand("CS25-001", "1", FakeClock().Add(time.Hour)))
	_, secondErr := handler.Handle(ctx, returnbook.BuildCommand("CS25-001", "1", FakeClock().Add(2*time.Hour)))

	// assert
	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, core.ErrNoActiveBorrow)
	assert.ErrorIs(t, secondErr, core.ErrConflict)

	book, _ := store.GetBook("1")
	assert.Equal(t, 1, book.AvailableCopies)
	assert.Len(t, store.History(), 1)
}

func Test_CommandHandler_Handle_Errors(t *testing.T) {
	testCases := []struct {
		description string
		studentID   core.StudentIDString
		bookID      core.BookIDString
		expectedErr error
		expectedLog string
	}{
		{"unknown student", "CS25-999", "1", core.ErrUnknownStudent, "return book: rejected"},
		{"unknown book", "CS25-001", "404", core.ErrUnknownBook, "return book: rejected"},
		{"never borrowed", "CS25-001", "1", core.ErrNoActiveBorrow, "return book: rejected"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			store := inventory.NewStore()
			spy := NewEventRecorderSpy()
			logger, logHandler := NewTestLogger()
			GivenBook(t, store, "1", "Dune", 1)
			GivenStudent(t, store, "CS25-001")
			handler := returnbook.NewCommandHandler(store, returnbook.WithRecorder(spy), returnbook.WithLogger(logger))

			// act
			_, err := handler.Handle(context.Background(), returnbook.BuildCommand(tc.studentID, tc.bookID, FakeClock()))

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Equal(t, []string{core.ReturningBookFromStudentFailedEventType}, spy.EventTypes())
			assert.True(t, logHandler.HasWarnLogWithMessage(tc.expectedLog).Assert())
			assert.False(t, core.IsFatal(err))
		})
	}
}

func Test_CommandHandler_Handle_OtherStudentsRecordStaysActive(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := inventory.NewStore()
	GivenBook(t, store, "1", "Dune", 2)
	GivenStudent(t, store, "CS25-001")
	GivenStudent(t, store, "CS25-002")
	GivenBookLent(t, store, "1", "CS25-001", FakeClock())
	other := GivenBookLent(t, store, "1", "CS25-002", FakeClock().Add(time.Minute))

	// act
	_, err := returnbook.NewCommandHandler(store).Handle(ctx, returnbook.BuildCommand("CS25-001", "1", FakeClock().Add(time.Hour)))

	// assert
	require.NoError(t, err)
	book, _ := store.GetBook("1")
	assert.Equal(t, []core.BorrowRecord{other}, book.Active)
	assert.Equal(t, 1, book.AvailableCopies)
}
