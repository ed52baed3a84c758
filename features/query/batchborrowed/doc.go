// Package batchborrowed implements the Batch Borrowed query use case.
//
// A batch is the code embedded in student ids, e.g. CS25-001 belongs to batch "25".
// The query lists, per book, the active borrows of all students of one batch.
package batchborrowed
