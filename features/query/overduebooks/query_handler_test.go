package overduebooks_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/features/query/overduebooks"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	. "github.com/AntonStoeckl/school-library-lending/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_DaysOverdue(t *testing.T) {
	borrowedAt := FakeClock()
	due := borrowedAt.Add(core.DefaultLoanPeriod)

	testCases := []struct {
		description  string
		now          time.Time
		expectedDays []int
	}{
		{"exactly at due time is not overdue", due, []int{}},
		{"one second late counts as one day", due.Add(time.Second), []int{1}},
		{"25 hours late is one day", due.Add(25 * time.Hour), []int{1}},
		{"49 hours late is two days", due.Add(49 * time.Hour), []int{2}},
		{"before due is not overdue", borrowedAt.Add(time.Hour), []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			store := inventory.NewStore()
			GivenBook(t, store, "1", "Dune", 1)
			GivenStudent(t, store, "CS25-001")
			GivenBookLent(t, store, "1", "CS25-001", borrowedAt)
			handler := overduebooks.NewQueryHandler(store)

			// act
			entries, err := handler.Handle(context.Background(), overduebooks.BuildQuery(tc.now))

			// assert
			require.NoError(t, err)
			days := []int{}
			for entry := range entries {
				days = append(days, entry.DaysOverdue)
			}
			assert.Equal(t, tc.expectedDays, days)
		})
	}
}

func Test_QueryHandler_Handle_OnlyActiveOverdueRecords(t *testing.T) {
	// arrange
	store := inventory.NewStore()
	GivenBook(t, store, "1", "Dune", 2)
	GivenBook(t, store, "2", "Emma", 1)
	GivenStudent(t, store, "CS25-001")
	GivenStudent(t, store, "CS25-002")
	overdue := GivenBookLent(t, store, "1", "CS25-001", FakeClock())
	GivenBookLent(t, store, "1", "CS25-002", FakeClock())
	GivenBookReturned(t, store, "1", "CS25-002", FakeClock().Add(time.Hour))
	GivenBookLent(t, store, "2", "CS25-002", FakeClock().Add(10*24*time.Hour))
	now := FakeClock().Add(20 * 24 * time.Hour)

	// act
	entries, err := overduebooks.NewQueryHandler(store).Handle(context.Background(), overduebooks.BuildQuery(now))

	// assert
	require.NoError(t, err)
	collected := slices.Collect(entries)
	require.Len(t, collected, 1)
	assert.Equal(t, overdue.ID, collected[0].Record.ID)
	assert.Equal(t, "Dune", collected[0].Book.Title)
	assert.Equal(t, 6, collected[0].DaysOverdue)
}

func Test_QueryHandler_Handle_IsLazyAndStoppable(t *testing.T) {
	// arrange
	store := inventory.NewStore()
	GivenBook(t, store, "1", "Dune", 5)
	for _, id := range []string{"CS25-001", "CS25-002", "CS25-003"} {
		GivenStudent(t, store, id)
		GivenBookLent(t, store, "1", id, FakeClock())
	}
	entries, err := overduebooks.NewQueryHandler(store).Handle(context.Background(), overduebooks.BuildQuery(FakeClock().Add(30*24*time.Hour)))
	require.NoError(t, err)

	// act
	seen := 0
	for range entries {
		seen++
		if seen == 2 {
			break
		}
	}

	// assert
	assert.Equal(t, 2, seen)
}

func Test_QueryHandler_Handle_SnapshotIgnoresLaterReturns(t *testing.T) {
	// arrange
	store := inventory.NewStore()
	GivenBook(t, store, "1", "Dune", 1)
	GivenStudent(t, store, "CS25-001")
	GivenBookLent(t, store, "1", "CS25-001", FakeClock())
	entries, err := overduebooks.NewQueryHandler(store).Handle(context.Background(), overduebooks.BuildQuery(FakeClock().Add(30*24*time.Hour)))
	require.NoError(t, err)

	// act
	GivenBookReturned(t, store, "1", "CS25-001", FakeClock().Add(30*24*time.Hour))

	// assert
	assert.Len(t, slices.Collect(entries), 1)
}
