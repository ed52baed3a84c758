package borrowedbooks

const (
	queryType = "BorrowedBooks"
)

// Query represents the intent to list all books that have copies out.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
