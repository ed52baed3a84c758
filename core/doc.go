// Package core contains the domain model and domain events for a school library:
// books with a fixed number of physical copies, enrolled students, and the borrow
// records that connect them.
//
// Domain events describe meaningful business occurrences like BookLentToStudent and
// BookReturnedByStudent. All of them implement the DomainEvent interface so the shell
// can turn them into journal entries.
//
// Nothing in this package performs I/O or holds locks. In Domain-Driven Design or
// Hexagonal Architecture terminology, this would be called the 'domain' layer.
package core
