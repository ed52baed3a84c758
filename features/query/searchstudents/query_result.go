package searchstudents

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

// Students is the query result, ordered by student id.
type Students struct {
	Students []core.Student
	Count    int
}
