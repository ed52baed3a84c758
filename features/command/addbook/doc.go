// Package addbook implements the Add Book to Inventory use case.
//
// Adding a book that already exists with identical data is an idempotent no-op; adding a
// different book under an existing id fails with core.ErrDuplicateBook. Input is validated
// with struct tags before the inventory is touched.
package addbook
