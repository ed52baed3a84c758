package usagereport_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/features/query/usagereport"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	. "github.com/AntonStoeckl/school-library-lending/testutil/helper" //nolint:revive
)

func givenLendingActivity(t *testing.T) *inventory.Store {
	t.Helper()

	store := inventory.NewStore()
	GivenBook(t, store, "1", "Dune", 5)
	GivenBook(t, store, "2", "Emma", 5)
	GivenBook(t, store, "10", "Ulysses", 5)

	for _, id := range []string{"CS25-001", "CS25-002", "CS25-003", "CS26-001", "CS26-002", "EE26-001"} {
		GivenStudent(t, store, id)
	}

	// batch 25: Dune twice (one returned, one lent again), Emma once, Ulysses once
	GivenBookLent(t, store, "1", "CS25-001", FakeClock())
	GivenBookReturned(t, store, "1", "CS25-001", FakeClock().Add(time.Hour))
	GivenBookLent(t, store, "1", "CS25-001", FakeClock().Add(2*time.Hour))
	GivenBookLent(t, store, "2", "CS25-002", FakeClock())
	GivenBookLent(t, store, "10", "CS25-003", FakeClock())

	// batch 26: Emma three times, Dune once
	GivenBookLent(t, store, "2", "CS26-001", FakeClock())
	GivenBookLent(t, store, "2", "CS26-002", FakeClock())
	GivenBookReturned(t, store, "2", "CS26-002", FakeClock().Add(time.Hour))
	GivenBookLent(t, store, "2", "EE26-001", FakeClock())
	GivenBookLent(t, store, "1", "EE26-001", FakeClock())

	return store
}

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	store := givenLendingActivity(t)

	// act
	report, err := usagereport.NewQueryHandler(store).Handle(context.Background(), usagereport.BuildQuery(0))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, report.Count)

	assert.Equal(t, "25", report.Classes[0].ClassID)
	assert.Equal(t, "Batch 2025", report.Classes[0].ClassName)
	assert.Equal(t, 4, report.Classes[0].TotalBorrowed)
	assert.Equal(t, []usagereport.BookUsage{
		{BookID: "1", Title: "Dune", BorrowCount: 2},
		{BookID: "2", Title: "Emma", BorrowCount: 1},
		{BookID: "10", Title: "Ulysses", BorrowCount: 1},
	}, report.Classes[0].TopBooks)

	assert.Equal(t, "26", report.Classes[1].ClassID)
	assert.Equal(t, 4, report.Classes[1].TotalBorrowed)
	assert.Equal(t, []usagereport.BookUsage{
		{BookID: "2", Title: "Emma", BorrowCount: 3},
		{BookID: "1", Title: "Dune", BorrowCount: 1},
	}, report.Classes[1].TopBooks)
}

func Test_QueryHandler_Handle_TopN(t *testing.T) {
	testCases := []struct {
		description string
		topN        int
		expected25  int
	}{
		{"zero means all", 0, 3},
		{"negative means all", -1, 3},
		{"limit", 2, 2},
		{"limit above size", 10, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			store := givenLendingActivity(t)

			// act
			report, err := usagereport.NewQueryHandler(store).Handle(context.Background(), usagereport.BuildQuery(tc.topN))

			// assert
			require.NoError(t, err)
			assert.Len(t, report.Classes[0].TopBooks, tc.expected25)
			assert.Equal(t, 4, report.Classes[0].TotalBorrowed)
		})
	}
}
