package returnbook

import (
	"time"

	"github.com/AntonStoeckl/school-library-lending/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to take a lent copy back from a student.
type Command struct {
	BookID     core.BookIDString
	StudentID  core.StudentIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for logging.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(studentID core.StudentIDString, bookID core.BookIDString, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		StudentID:  studentID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
