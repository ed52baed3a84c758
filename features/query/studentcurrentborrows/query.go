package studentcurrentborrows

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

const (
	queryType = "StudentCurrentBorrows"
)

// Query represents the intent to list the books a student has out right now.
type Query struct {
	StudentID core.StudentIDString
}

// BuildQuery creates a new Query.
func BuildQuery(studentID core.StudentIDString) Query {
	return Query{
		StudentID: studentID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
