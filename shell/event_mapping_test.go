package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/journal"
	"github.com/AntonStoeckl/school-library-lending/shell"
	. "github.com/AntonStoeckl/school-library-lending/testutil/helper" //nolint:revive
)

func Test_DomainEventFrom_RestoresEveryEventType(t *testing.T) {
	// arrange
	at := FakeClock()
	record := core.BuildBorrowRecord("rec-1", "7", "CS25-001", at, core.DefaultLoanPeriod)
	events := core.DomainEvents{
		core.BuildBookAddedToInventory(core.BuildBook("7", "Dune", "Frank Herbert", "9780441013593", 3), at),
		core.BuildStudentEnrolled(core.BuildStudent("CS25-001", "Ada", "ada@school.test", "Batch 2025"), at),
		core.BuildBookLentToStudent(record),
		core.BuildBookReturnedByStudent("rec-1", "7", "CS25-001", at.Add(time.Hour)),
		core.BuildLendingBookToStudentFailed("7", "CS25-001", "out of stock", at),
		core.BuildReturningBookFromStudentFailed("7", "CS25-001", "no active borrow", at),
		core.BuildAddingBookToInventoryFailed("7", "duplicate book", at),
		core.BuildEnrollingStudentFailed("CS25-001", "duplicate student", at),
	}

	for _, event := range events {
		t.Run(event.IsEventType(), func(t *testing.T) {
			// act
			storable, err := shell.StorableEventWithEmptyMetadataFrom(event)
			require.NoError(t, err)
			restored, err := shell.DomainEventFrom(storable)

			// assert
			require.NoError(t, err)
			assert.Equal(t, event, restored)
			assert.Equal(t, event.IsEventType(), storable.EventType)
			assert.True(t, event.HasOccurredAt().Equal(storable.OccurredAt))
		})
	}
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	// arrange
	storable, err := journal.BuildStorableEventWithEmptyMetadata("BookBurned", FakeClock(), []byte(`{}`))
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storable)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_StorableEventFrom_CarriesMetadata(t *testing.T) {
	// arrange
	messageID, causationID, correlationID := uuid.New(), uuid.New(), uuid.New()
	event := core.BuildEnrollingStudentFailed("CS25-001", "duplicate student", FakeClock())

	// act
	storable, err := shell.StorableEventFrom(event, shell.BuildEventMetadata(messageID, causationID, correlationID))
	require.NoError(t, err)
	metadata, err := shell.EventMetadataFrom(storable)

	// assert
	require.NoError(t, err)
	assert.Equal(t, messageID.String(), metadata.MessageID)
	assert.Equal(t, causationID.String(), metadata.CausationID)
	assert.Equal(t, correlationID.String(), metadata.CorrelationID)
}
