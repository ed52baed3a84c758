package searchbooks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/features/query/searchbooks"
	"github.com/AntonStoeckl/school-library-lending/inventory"
)

func Test_QueryHandler_Handle(t *testing.T) {
	store := inventory.NewStore()
	require.NoError(t, store.AddBook(core.BuildBook("1", "Dune", "Frank Herbert", "978-0441013593", 2), nil))
	require.NoError(t, store.AddBook(core.BuildBook("2", "Emma", "Jane Austen", "978-0141439587", 1), nil))
	require.NoError(t, store.AddBook(core.BuildBook("10", "Pride and Prejudice", "Jane Austen", "", 1), nil))
	handler := searchbooks.NewQueryHandler(store)

	testCases := []struct {
		description string
		term        string
		expectedIDs []string
	}{
		{"empty term returns all", "", []string{"1", "2", "10"}},
		{"blank term returns all", "   ", []string{"1", "2", "10"}},
		{"title ignores case", "dUNE", []string{"1"}},
		{"author substring", "austen", []string{"2", "10"}},
		{"isbn substring", "0441", []string{"1"}},
		{"no match", "tolkien", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result, err := handler.Handle(context.Background(), searchbooks.BuildQuery(tc.term))

			// assert
			require.NoError(t, err)
			ids := []string{}
			for _, book := range result.Books {
				ids = append(ids, book.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
			assert.Equal(t, len(tc.expectedIDs), result.Count)
		})
	}
}
