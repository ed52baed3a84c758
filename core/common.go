package core

import (
	"strconv"
	"strings"
	"time"
)

// BookIDString represents a book identifier
type BookIDString = string

// StudentIDString represents a student identifier, e.g. CS25-001
type StudentIDString = string

// RecordIDString represents a borrow record identifier
type RecordIDString = string

// ISBNString represents an ISBN identifier
type ISBNString = string

// EventTypeString represents the type of domain event
type EventTypeString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// CompareBookIDs orders book identifiers ascending.
// Purely numeric identifiers compare by value, so "2" sorts before "10".
// Equal values fall back to the raw strings, so "01" sorts before "1".
func CompareBookIDs(a, b BookIDString) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)

	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return strings.Compare(a, b)
		}

	case errA == nil:
		return -1

	case errB == nil:
		return 1
	}

	return strings.Compare(a, b)
}
