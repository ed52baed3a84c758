package shell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	"github.com/AntonStoeckl/school-library-lending/journal"
)

const (
	logMsgReplayCompleted = "replay: inventory rebuilt from journal"
	logAttrDurationMS     = "duration_ms"
)

// ErrReplayFailed is returned when the journal cannot be applied to the inventory.
var ErrReplayFailed = errors.New("replaying journal failed")

// ReplayFilter selects the events that change inventory state.
func ReplayFilter() journal.Filter {
	return journal.BuildFilter().
		AnyEventTypeOf(
			core.BookAddedToInventoryEventType,
			core.StudentEnrolledEventType,
			core.BookLentToStudentEventType,
			core.BookReturnedByStudentEventType,
		).
		Finalize()
}

// Replay rebuilds the store from the journal's success events, in journal order.
// It returns the number of events applied. The store should be empty.
func Replay(ctx context.Context, source QueriesJournal, store *inventory.Store, logger Logger) (int, error) {
	start := time.Now()

	storableEvents, _, err := source.Query(ctx, ReplayFilter())
	if err != nil {
		return 0, errors.Join(ErrReplayFailed, err)
	}

	events, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return 0, errors.Join(ErrReplayFailed, err)
	}

	for i, event := range events {
		if err := apply(store, event); err != nil {
			return i, errors.Join(ErrReplayFailed, fmt.Errorf("event %d (%s): %w", i, event.IsEventType(), err))
		}
	}

	if logger != nil {
		logger.Info(logMsgReplayCompleted, logAttrEventCount, len(events), logAttrDurationMS, time.Since(start).Milliseconds())
	}

	return len(events), nil
}

func apply(store *inventory.Store, event core.DomainEvent) error {
	switch e := event.(type) {
	case core.BookAddedToInventory:
		return store.AddBook(e.Book(), nil)

	case core.StudentEnrolled:
		return store.EnrollStudent(e.Student(), nil)

	case core.BookLentToStudent:
		return store.Transact(e.BookID, e.StudentID, func(tx *inventory.Tx) error {
			if _, active := tx.ActiveRecord(); active {
				return core.ErrDuplicateBorrow
			}

			if err := tx.ReserveCopy(); err != nil {
				return err
			}

			tx.OpenRecord(e.Record())

			return nil
		})

	case core.BookReturnedByStudent:
		return store.Transact(e.BookID, e.StudentID, func(tx *inventory.Tx) error {
			if _, err := tx.CloseRecord(e.OccurredAt); err != nil {
				return err
			}

			return tx.ReleaseCopy()
		})
	}

	return nil
}
