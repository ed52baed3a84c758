// Package overduebooks implements the Overdue Books query use case.
//
// The result is a lazy sequence over one consistent inventory snapshot: entries are
// produced only as the caller iterates, and the caller may stop at any time. Overdue
// status is computed from the query's point in time, never stored.
package overduebooks
