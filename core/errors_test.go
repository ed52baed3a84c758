package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/school-library-lending/core"
)

func Test_Errors_BelongToTheirCategory(t *testing.T) {
	testCases := []struct {
		err      error
		category error
	}{
		{err: core.ErrUnknownStudent, category: core.ErrNotFound},
		{err: core.ErrUnknownBook, category: core.ErrNotFound},
		{err: core.ErrDuplicateBorrow, category: core.ErrConflict},
		{err: core.ErrNoActiveBorrow, category: core.ErrConflict},
		{err: core.ErrDuplicateBook, category: core.ErrConflict},
		{err: core.ErrDuplicateStudent, category: core.ErrConflict},
		{err: core.ErrOutOfStock, category: core.ErrCapacity},
		{err: core.ErrOverRelease, category: core.ErrCapacity},
		{err: core.ErrBorrowLimitReached, category: core.ErrCapacity},
		{err: core.ErrInvalidStudentID, category: core.ErrInvalidInput},
		{err: core.ErrInvalidBook, category: core.ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("handling command: %w", tc.err)

			assert.ErrorIs(t, wrapped, tc.category)
			assert.ErrorIs(t, errors.Join(errors.New("context"), tc.err), tc.category)
		})
	}
}

func Test_IsFatal_OnlyForOverRelease(t *testing.T) {
	assert.True(t, core.IsFatal(core.ErrOverRelease))
	assert.False(t, core.IsFatal(core.ErrOutOfStock))
	assert.False(t, core.IsFatal(core.ErrUnknownBook))
	assert.False(t, core.IsFatal(nil))
}
