package shell_test

import (
	"context"
	"slices"
	"sync"

	"github.com/AntonStoeckl/school-library-lending/journal"
)

// fakeJournal keeps events in memory and can be told to fail the next appends.
type fakeJournal struct {
	mu           sync.Mutex
	events       journal.StorableEvents
	failAppends  int
	appendCalls  int
	appendedSets []int
}

func (j *fakeJournal) Append(_ context.Context, events ...journal.StorableEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.appendCalls++

	if j.failAppends > 0 {
		j.failAppends--
		return journal.ErrAppendingEventFailed
	}

	j.events = append(j.events, events...)
	j.appendedSets = append(j.appendedSets, len(events))

	return nil
}

func (j *fakeJournal) Query(_ context.Context, filter journal.Filter) (journal.StorableEvents, journal.MaxSequenceNumberUint, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	result := make(journal.StorableEvents, 0, len(j.events))
	for _, event := range j.events {
		if len(filter.EventTypes()) > 0 && !slices.Contains(filter.EventTypes(), event.EventType) {
			continue
		}

		result = append(result, event)
	}

	return result, journal.MaxSequenceNumberUint(len(j.events)), nil
}

func (j *fakeJournal) eventTypes() []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	types := make([]string, 0, len(j.events))
	for _, event := range j.events {
		types = append(types, event.EventType)
	}

	return types
}
