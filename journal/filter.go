package journal

import (
	"cmp"
	"slices"
	"time"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

// Filter selects journal entries. An empty filter matches every event.
//
// Event types are always combined with OR, predicates with OR or AND depending on
// how they were added, and both groups with AND. The time range is inclusive.
type Filter struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
	occurredFrom           time.Time
	occurredUntil          time.Time
}

func (f Filter) EventTypes() []FilterEventTypeString {
	return f.eventTypes
}

func (f Filter) Predicates() []FilterPredicate {
	return f.predicates
}

func (f Filter) AllPredicatesMustMatch() bool {
	return f.allPredicatesMustMatch
}

func (f Filter) OccurredFrom() time.Time {
	return f.occurredFrom
}

func (f Filter) OccurredUntil() time.Time {
	return f.occurredUntil
}

// IsEmpty reports whether the filter matches every event.
func (f Filter) IsEmpty() bool {
	return len(f.eventTypes) == 0 &&
		len(f.predicates) == 0 &&
		f.occurredFrom.IsZero() &&
		f.occurredUntil.IsZero()
}

// FilterPredicate matches a top-level string field of the JSON payload.
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

// P builds a FilterPredicate.
func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

// FilterBuilder builds a Filter. Every method returns a modified copy.
type FilterBuilder struct {
	filter Filter
}

// BuildFilter starts a FilterBuilder which must be finished with Finalize or MatchingAnyEvent.
func BuildFilter() FilterBuilder {
	return FilterBuilder{}
}

// MatchingAnyEvent returns the empty filter.
func (fb FilterBuilder) MatchingAnyEvent() Filter {
	return Filter{}
}

// AnyEventTypeOf adds event types, any of which must match.
//
// It sanitizes the input:
//   - removing empty event types ("")
//   - sorting the event types
//   - removing duplicate event types
func (fb FilterBuilder) AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterBuilder {
	all := append(slices.Clone(fb.filter.eventTypes), eventType)
	all = append(all, eventTypes...)
	all = slices.DeleteFunc(all, func(e FilterEventTypeString) bool { return e == "" })
	slices.Sort(all)

	fb.filter.eventTypes = slices.Clip(slices.Compact(all))

	return fb
}

// AndAnyPredicateOf adds predicates, any of which must match.
//
// It sanitizes the input:
//   - removing partial predicates (key or val is "")
//   - sorting the predicates
//   - removing duplicate predicates
func (fb FilterBuilder) AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterBuilder {
	fb.filter.predicates = sanitizePredicates(fb.filter.predicates, predicate, predicates...)
	fb.filter.allPredicatesMustMatch = false

	return fb
}

// AndAllPredicatesOf adds predicates, all of which must match.
// Sanitizing works like in AndAnyPredicateOf.
func (fb FilterBuilder) AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterBuilder {
	fb.filter.predicates = sanitizePredicates(fb.filter.predicates, predicate, predicates...)
	fb.filter.allPredicatesMustMatch = true

	return fb
}

// OccurredFrom restricts the filter to events that occurred at or after t.
func (fb FilterBuilder) OccurredFrom(t time.Time) FilterBuilder {
	fb.filter.occurredFrom = t

	return fb
}

// OccurredUntil restricts the filter to events that occurred at or before t.
func (fb FilterBuilder) OccurredUntil(t time.Time) FilterBuilder {
	fb.filter.occurredUntil = t

	return fb
}

// Finalize returns the Filter.
func (fb FilterBuilder) Finalize() Filter {
	return fb.filter
}

func sanitizePredicates(existing []FilterPredicate, predicate FilterPredicate, predicates ...FilterPredicate) []FilterPredicate {
	all := append(slices.Clone(existing), predicate)
	all = append(all, predicates...)
	all = slices.DeleteFunc(all, func(p FilterPredicate) bool { return p.key == "" || p.val == "" })
	slices.SortFunc(all, func(a, b FilterPredicate) int {
		return cmp.Or(cmp.Compare(a.key, b.key), cmp.Compare(a.val, b.val))
	})

	return slices.Clip(slices.Compact(all))
}
