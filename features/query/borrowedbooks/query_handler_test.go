package borrowedbooks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/features/query/borrowedbooks"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	. "github.com/AntonStoeckl/school-library-lending/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	store := inventory.NewStore()
	GivenBook(t, store, "1", "Dune", 2)
	GivenBook(t, store, "2", "Emma", 1)
	GivenBook(t, store, "3", "Walden", 1)
	GivenStudent(t, store, "CS25-001")
	GivenStudent(t, store, "CS25-002")
	GivenBookLent(t, store, "1", "CS25-001", FakeClock())
	GivenBookLent(t, store, "1", "CS25-002", FakeClock())
	GivenBookLent(t, store, "3", "CS25-001", FakeClock())
	GivenBookLent(t, store, "2", "CS25-001", FakeClock())
	GivenBookReturned(t, store, "2", "CS25-001", FakeClock().Add(time.Hour))

	// act
	result, err := borrowedbooks.NewQueryHandler(store).Handle(context.Background(), borrowedbooks.BuildQuery())

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "1", result.Books[0].ID)
	assert.Equal(t, 0, result.Books[0].AvailableCopies)
	assert.Equal(t, "3", result.Books[1].ID)
	assert.Equal(t, 3, result.CopiesOut)
}

func Test_QueryHandler_Handle_NothingOut(t *testing.T) {
	// arrange
	store := inventory.NewStore()
	GivenBook(t, store, "1", "Dune", 2)

	// act
	result, err := borrowedbooks.NewQueryHandler(store).Handle(context.Background(), borrowedbooks.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Empty(t, result.Books)
	assert.Equal(t, 0, result.CopiesOut)
}
