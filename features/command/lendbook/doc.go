// Package lendbook implements the Lend Book to Student use case.
//
// A lend succeeds only if the student and the book exist, the student does not already hold
// a copy of this book, the student is below the borrow limit, and a copy is on the shelf.
// The CommandHandler runs the pure Decide function inside the inventory's per-book critical
// section, so the copy reservation and the new borrow record become visible together.
//
// Lending is not idempotent: a second identical command fails with core.ErrDuplicateBorrow.
package lendbook
