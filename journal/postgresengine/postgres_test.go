package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/journal"
	"github.com/AntonStoeckl/school-library-lending/journal/postgresengine"
	. "github.com/AntonStoeckl/school-library-lending/testutil/helper" //nolint:revive
	"github.com/AntonStoeckl/school-library-lending/testutil/pgjournal"
)

func givenStorableEvent(t *testing.T, eventType string, at time.Time, payload string) journal.StorableEvent {
	t.Helper()

	event, err := journal.BuildStorableEventWithEmptyMetadata(eventType, at, []byte(payload))
	require.NoError(t, err)

	return event
}

func Test_Append_And_Query_RoundTrip(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := pgjournal.CreateWrapper(t).Engine()
	at := FakeClock()

	// act
	err := engine.Append(ctx,
		givenStorableEvent(t, "BookLentToStudent", at, `{"BookID":"1","StudentID":"CS25-001"}`),
		givenStorableEvent(t, "BookReturnedByStudent", at.Add(time.Hour), `{"BookID":"1","StudentID":"CS25-001"}`),
	)
	events, maxSequenceNumber, queryErr := engine.Query(ctx, journal.BuildFilter().MatchingAnyEvent())

	// assert
	require.NoError(t, err)
	require.NoError(t, queryErr)
	require.Len(t, events, 2)
	assert.Equal(t, journal.MaxSequenceNumberUint(2), maxSequenceNumber)
	assert.True(t, at.Equal(events[0].OccurredAt))
	assert.JSONEq(t, `{"BookID":"1","StudentID":"CS25-001"}`, string(events[0].PayloadJSON))
	assert.Equal(t, "BookReturnedByStudent", events[1].EventType)
}

func Test_Query_WithFilters(t *testing.T) {
	ctx := context.Background()
	engine := pgjournal.CreateWrapper(t).Engine()
	at := FakeClock()

	require.NoError(t, engine.Append(ctx,
		givenStorableEvent(t, "BookLentToStudent", at, `{"BookID":"1","StudentID":"CS25-001"}`),
		givenStorableEvent(t, "BookLentToStudent", at.Add(time.Hour), `{"BookID":"2","StudentID":"O'Neil"}`),
		givenStorableEvent(t, "BookReturnedByStudent", at.Add(2*time.Hour), `{"BookID":"1","StudentID":"CS25-001"}`),
	))

	testCases := []struct {
		description   string
		filter        journal.Filter
		expectedTypes []string
	}{
		{
			description:   "by event type",
			filter:        journal.BuildFilter().AnyEventTypeOf("BookReturnedByStudent").Finalize(),
			expectedTypes: []string{"BookReturnedByStudent"},
		},
		{
			description:   "by predicate with quote",
			filter:        journal.BuildFilter().AndAnyPredicateOf(journal.P("StudentID", "O'Neil")).Finalize(),
			expectedTypes: []string{"BookLentToStudent"},
		},
		{
			description: "by all predicates",
			filter: journal.BuildFilter().
				AnyEventTypeOf("BookLentToStudent").
				AndAllPredicatesOf(journal.P("BookID", "1"), journal.P("StudentID", "CS25-001")).
				Finalize(),
			expectedTypes: []string{"BookLentToStudent"},
		},
		{
			description:   "by time range",
			filter:        journal.BuildFilter().OccurredFrom(at.Add(30 * time.Minute)).OccurredUntil(at.Add(time.Hour)).Finalize(),
			expectedTypes: []string{"BookLentToStudent"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			events, _, err := engine.Query(ctx, tc.filter)

			// assert
			require.NoError(t, err)
			actualTypes := make([]string, 0, len(events))
			for _, event := range events {
				actualTypes = append(actualTypes, event.EventType)
			}
			assert.Equal(t, tc.expectedTypes, actualTypes)
		})
	}
}

func Test_EnsureSchema_IsIdempotent(t *testing.T) {
	// arrange
	logger, logHandler := NewTestLogger()
	engine := pgjournal.CreateWrapper(t, postgresengine.WithLogger(logger)).Engine()

	// act
	err := engine.EnsureSchema(context.Background())

	// assert
	require.NoError(t, err)
	assert.False(t, logHandler.HasErrorLogWithMessage("failed to ensure events table").Assert())
}
