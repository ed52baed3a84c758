package inventory_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	. "github.com/AntonStoeckl/school-library-lending/testutil/helper" //nolint:revive
)

func Test_Transact_ConcurrentLendsNeverOversell(t *testing.T) {
	// arrange
	const copies = 3
	const students = 40

	store := inventory.NewStore()
	GivenBook(t, store, "1", "Dune", copies)

	for i := range students {
		GivenStudent(t, store, fmt.Sprintf("CS25-%03d", i))
	}

	var successes atomic.Int32
	var outOfStock atomic.Int32
	var wg sync.WaitGroup

	// act
	for i := range students {
		wg.Add(1)

		go func(studentID string) {
			defer wg.Done()

			record := core.BuildBorrowRecord(studentID, "1", studentID, FakeClock(), core.DefaultLoanPeriod)
			err := store.Transact("1", studentID, func(tx *inventory.Tx) error {
				if err := tx.ReserveCopy(); err != nil {
					return err
				}

				tx.OpenRecord(record)

				return nil
			})

			switch {
			case err == nil:
				successes.Add(1)
			case assert.ErrorIs(t, err, core.ErrOutOfStock):
				outOfStock.Add(1)
			}
		}(fmt.Sprintf("CS25-%03d", i))
	}

	wg.Wait()

	// assert
	assert.Equal(t, int32(copies), successes.Load())
	assert.Equal(t, int32(students-copies), outOfStock.Load())

	book, err := store.GetBook("1")
	require.NoError(t, err)
	assert.Equal(t, 0, book.AvailableCopies)
	assert.Len(t, book.Active, copies)
	assert.True(t, book.IsBalanced())
}

func Test_Transact_ReadersNeverObserveHalfAppliedChanges(t *testing.T) {
	// arrange
	store := inventory.NewStore()
	GivenBook(t, store, "1", "Dune", 1)
	GivenStudent(t, store, "CS25-001")

	done := make(chan struct{})
	var unbalanced atomic.Int32
	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for {
			select {
			case <-done:
				return
			default:
				for _, book := range store.ListBooks() {
					if !book.IsBalanced() {
						unbalanced.Add(1)
					}
				}
			}
		}
	}()

	// act
	for range 200 {
		GivenBookLent(t, store, "1", "CS25-001", FakeClock())
		GivenBookReturned(t, store, "1", "CS25-001", FakeClock())
	}

	close(done)
	wg.Wait()

	// assert
	assert.Zero(t, unbalanced.Load())
	assert.Len(t, store.History(), 200)
}

func Test_Transact_DifferentBooksDoNotBlockEachOther(t *testing.T) {
	// arrange
	store := inventory.NewStore()
	GivenBook(t, store, "1", "Dune", 1)
	GivenBook(t, store, "2", "Emma", 1)
	GivenStudent(t, store, "CS25-001")
	GivenStudent(t, store, "CS25-002")

	insideFirst := make(chan struct{})
	releaseFirst := make(chan struct{})
	firstDone := make(chan error)

	go func() {
		firstDone <- store.Transact("1", "CS25-001", func(*inventory.Tx) error {
			close(insideFirst)
			<-releaseFirst

			return nil
		})
	}()

	<-insideFirst

	// act
	err := store.Transact("2", "CS25-002", func(*inventory.Tx) error { return nil })

	// assert
	assert.NoError(t, err)
	close(releaseFirst)
	assert.NoError(t, <-firstDone)
}
