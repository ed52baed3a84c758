package core

import (
	"errors"
	"fmt"
)

// Error categories. Every domain error wraps exactly one of them, so callers can branch with errors.Is.
var (
	// ErrNotFound groups lookups of unknown books or students.
	ErrNotFound = errors.New("not found")

	// ErrConflict groups state conflicts like borrowing a book twice.
	ErrConflict = errors.New("conflict")

	// ErrCapacity groups copy count and borrow limit violations.
	ErrCapacity = errors.New("capacity exceeded")

	// ErrInvalidInput groups malformed identifiers and entity data.
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrUnknownStudent = fmt.Errorf("%w: unknown student", ErrNotFound)
	ErrUnknownBook    = fmt.Errorf("%w: unknown book", ErrNotFound)

	ErrDuplicateBorrow  = fmt.Errorf("%w: student has already borrowed this book", ErrConflict)
	ErrNoActiveBorrow   = fmt.Errorf("%w: no active borrow for this book and student", ErrConflict)
	ErrDuplicateBook    = fmt.Errorf("%w: book already exists", ErrConflict)
	ErrDuplicateStudent = fmt.Errorf("%w: student already exists", ErrConflict)

	ErrOutOfStock         = fmt.Errorf("%w: no copies available", ErrCapacity)
	ErrBorrowLimitReached = fmt.Errorf("%w: student has reached the borrow limit", ErrCapacity)

	// ErrOverRelease means a copy was released that was never reserved.
	// It can only be caused by a bug and must never reach a user as ordinary feedback.
	ErrOverRelease = fmt.Errorf("%w: copy released beyond total copies", ErrCapacity)

	ErrInvalidStudentID = fmt.Errorf("%w: malformed student id", ErrInvalidInput)
	ErrInvalidBook      = fmt.Errorf("%w: malformed book", ErrInvalidInput)
	ErrInvalidStudent   = fmt.Errorf("%w: malformed student", ErrInvalidInput)
)

// IsFatal reports whether err signals a broken inventory invariant rather than a user error.
func IsFatal(err error) bool {
	return errors.Is(err, ErrOverRelease)
}
