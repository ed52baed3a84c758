package bookhistory

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

const (
	queryType = "BookHistory"
)

// Query represents the intent to see every borrow of one book.
type Query struct {
	BookID core.BookIDString
}

// BuildQuery creates a new Query.
func BuildQuery(bookID core.BookIDString) Query {
	return Query{
		BookID: bookID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
