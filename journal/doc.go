// Package journal defines the append-only event journal that persists what happened
// in the library: books added, students enrolled, books lent and returned.
//
// The in-memory inventory is authoritative while the process runs; the journal is
// what survives a restart. Engines for Postgres and SQLite live in sub packages and
// share the types defined here.
//
// Common usage pattern:
//
//	filter := journal.BuildFilter().
//		AnyEventTypeOf(
//			core.BookLentToStudentEventType,
//			core.BookReturnedByStudentEventType).
//		AndAnyPredicateOf(journal.P("BookID", bookID)).
//		Finalize()
//
//	events, maxSeq, err := engine.Query(ctx, filter)
package journal
