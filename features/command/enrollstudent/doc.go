// Package enrollstudent implements the Enroll Student use case.
//
// The student id must have the form CS25-001: two capital letters, a batch code, a dash
// and a three digit sequence. When no class label is given, it is derived from the batch.
// Enrolling an identical student twice is a no-op; different data under an existing id
// fails with core.ErrDuplicateStudent.
package enrollstudent
