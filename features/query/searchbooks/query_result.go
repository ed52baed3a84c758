package searchbooks

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

// Books is the query result, ordered by book id.
type Books struct {
	Books []core.Book
	Count int
}
