package helper

import (
	"sync"

	"github.com/AntonStoeckl/school-library-lending/core"
)

// EventRecorderSpy captures recorded domain events in memory.
type EventRecorderSpy struct {
	mu     sync.Mutex
	events core.DomainEvents
}

// NewEventRecorderSpy creates an empty EventRecorderSpy.
func NewEventRecorderSpy() *EventRecorderSpy {
	return &EventRecorderSpy{}
}

// Record implements shell.EventRecorder.
func (s *EventRecorderSpy) Record(events ...core.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, events...)
}

// Events returns a copy of everything recorded so far.
func (s *EventRecorderSpy) Events() core.DomainEvents {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append(core.DomainEvents(nil), s.events...)
}

// EventTypes returns the types of the recorded events in order.
func (s *EventRecorderSpy) EventTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]string, 0, len(s.events))
	for _, event := range s.events {
		types = append(types, event.IsEventType())
	}

	return types
}

// Last returns the most recent event, or nil.
func (s *EventRecorderSpy) Last() core.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) == 0 {
		return nil
	}

	return s.events[len(s.events)-1]
}
