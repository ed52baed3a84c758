package searchstudents

import (
	"strings"
)

const (
	queryType = "SearchStudents"
)

// Query represents the intent to find students by name or id.
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
