package searchbooks

import (
	"strings"
)

const (
	queryType = "SearchBooks"
)

// Query represents the intent to find books by a free-text term.
type Query struct {
	Term string
}

// BuildQuery creates a new Query. Surrounding whitespace is ignored.
func BuildQuery(term string) Query {
	return Query{
		Term: strings.TrimSpace(term),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
