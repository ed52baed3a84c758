package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/journal"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents journal.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent journal.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.BookAddedToInventoryEventType:
		return unmarshalPayload[core.BookAddedToInventory](storableEvent.PayloadJSON)

	case core.StudentEnrolledEventType:
		return unmarshalPayload[core.StudentEnrolled](storableEvent.PayloadJSON)

	case core.BookLentToStudentEventType:
		return unmarshalPayload[core.BookLentToStudent](storableEvent.PayloadJSON)

	case core.BookReturnedByStudentEventType:
		return unmarshalPayload[core.BookReturnedByStudent](storableEvent.PayloadJSON)

	case core.LendingBookToStudentFailedEventType:
		return unmarshalPayload[core.LendingBookToStudentFailed](storableEvent.PayloadJSON)

	case core.ReturningBookFromStudentFailedEventType:
		return unmarshalPayload[core.ReturningBookFromStudentFailed](storableEvent.PayloadJSON)

	case core.AddingBookToInventoryFailedEventType:
		return unmarshalPayload[core.AddingBookToInventoryFailed](storableEvent.PayloadJSON)

	case core.EnrollingStudentFailedEventType:
		return unmarshalPayload[core.EnrollingStudentFailed](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

// unmarshalPayload decodes the payload into the event struct; the payload carries the EventType field too.
func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
