package overduebooks

import (
	"time"
)

const (
	queryType = "OverdueBooks"
)

// Query represents the intent to list overdue borrows as of Now.
type Query struct {
	Now time.Time
}

// BuildQuery creates a new Query for the given point in time.
func BuildQuery(now time.Time) Query {
	return Query{
		Now: now,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
