package enrollstudent

import (
	"github.com/AntonStoeckl/school-library-lending/core"
)

const (
	failureReasonDuplicateStudent = "a different student with this id already exists"
)

// Decide determines whether the student can be enrolled.
//
// Business Rules:
//
//	GIVEN: An optional existing student with the same StudentID
//	WHEN: EnrollStudent command is received
//	THEN: StudentEnrolled event
//	ERROR: "a different student with this id already exists" if the existing student differs
//	IDEMPOTENCY: If an identical student exists, no event is generated (no-op)
func Decide(existing *core.Student, command Command) core.DecisionResult {
	if existing != nil {
		candidate := command.Student()
		if existing.Name == candidate.Name && existing.Email == candidate.Email && existing.ClassLabel == candidate.ClassLabel {
			return core.IdempotentDecision()
		}

		event := core.BuildEnrollingStudentFailed(command.StudentID, failureReasonDuplicateStudent, command.OccurredAt)

		return core.ErrorDecision(event, core.ErrDuplicateStudent)
	}

	return core.SuccessDecision(core.BuildStudentEnrolled(command.Student(), command.OccurredAt))
}
