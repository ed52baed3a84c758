// Package returnbook implements the Return Book from Student use case.
//
// A return closes the student's active borrow record for the book, moves it into the
// history log and puts the copy back on the shelf, all inside one per-book critical section.
// Returning is not idempotent: a second identical command fails with core.ErrNoActiveBorrow.
package returnbook
