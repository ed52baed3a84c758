package searchstudents

import (
	"strings"

	"github.com/AntonStoeckl/school-library-lending/core"
)

// ProjectMatchingStudents filters the enrolled students by the search term.
//
// Query Logic:
//
//	GIVEN: Student snapshots and a search term
//	WHEN: SearchStudents query is executed
//	THEN: students whose name or id contains the term, ignoring case
//	EDGE: a blank term matches every student
func ProjectMatchingStudents(students []core.Student, query Query) Students {
	term := strings.ToLower(strings.TrimSpace(query.Term))
	result := Students{Students: make([]core.Student, 0, len(students))}

	for _, student := range students {
		if term == "" ||
			strings.Contains(strings.ToLower(student.Name), term) ||
			strings.Contains(strings.ToLower(student.ID), term) {

			result.Students = append(result.Students, student)
		}
	}

	result.Count = len(result.Students)

	return result
}
