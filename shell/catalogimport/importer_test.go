package catalogimport_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/features/command/addbook"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	"github.com/AntonStoeckl/school-library-lending/shell/catalogimport"
	. "github.com/AntonStoeckl/school-library-lending/testutil/helper" //nolint:revive
)

const catalogCSV = `id,title,author,isbn,copies
# reference shelf
1,Dune,Frank Herbert,978-0441013593,3
2,"Pride and Prejudice, Annotated",Jane Austen,,2
3,Broken,Nobody,,many
4,Too Few Columns
1,Dune (other edition),Frank Herbert,,1
5,,Anonymous,,1
`

func Test_Importer_Import(t *testing.T) {
	// arrange
	store := inventory.NewStore()
	logger, logHandler := NewTestLogger()
	importer := catalogimport.NewImporter(
		addbook.NewCommandHandler(store),
		catalogimport.WithLogger(logger),
		catalogimport.WithClock(FakeClock),
	)

	// act
	result, err := importer.Import(context.Background(), strings.NewReader(catalogCSV))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 4, result.Failed)

	lines := make([]int, 0, len(result.Errors))
	for _, rowErr := range result.Errors {
		lines = append(lines, rowErr.Line)
	}
	assert.Equal(t, []int{5, 6, 7, 8}, lines)

	assert.ErrorIs(t, result.Errors[0], catalogimport.ErrMalformedRow)
	assert.ErrorIs(t, result.Errors[1], catalogimport.ErrMalformedRow)
	assert.ErrorIs(t, result.Errors[2], core.ErrDuplicateBook)
	assert.ErrorIs(t, result.Errors[3], core.ErrInvalidBook)

	book, err := store.GetBook("2")
	require.NoError(t, err)
	assert.Equal(t, "Pride and Prejudice, Annotated", book.Title)
	assert.Equal(t, 2, book.AvailableCopies)

	assert.True(t, logHandler.HasWarnLogWithMessage("catalog import: row rejected").WithAttr("line", "5").Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage("catalog import: finished").WithAttr("imported", "2").Assert())
}

func Test_Importer_Import_IsRepeatable(t *testing.T) {
	// arrange
	store := inventory.NewStore()
	importer := catalogimport.NewImporter(addbook.NewCommandHandler(store))
	rows := "1,Dune,Frank Herbert,,3\n"

	// act
	first, firstErr := importer.Import(context.Background(), strings.NewReader(rows))
	second, secondErr := importer.Import(context.Background(), strings.NewReader(rows))

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.Equal(t, 1, first.Imported)
	assert.Equal(t, 1, second.Imported)
	assert.Len(t, store.ListBooks(), 1)
}

func Test_Importer_Import_CanceledContext(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	importer := catalogimport.NewImporter(addbook.NewCommandHandler(inventory.NewStore()))

	// act
	_, err := importer.Import(ctx, strings.NewReader("1,Dune,Frank Herbert,,3\n"))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}
