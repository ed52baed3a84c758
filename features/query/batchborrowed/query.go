package batchborrowed

const (
	queryType = "BatchBorrowed"
)

// Query represents the intent to list what one batch currently has borrowed.
type Query struct {
	BatchCode string
}

// BuildQuery creates a new Query.
func BuildQuery(batchCode string) Query {
	return Query{
		BatchCode: batchCode,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
