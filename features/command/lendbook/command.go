package lendbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/school-library-lending/core"
)

const (
	commandType = "LendBook"
)

// Command represents the intent to lend one copy of a book to a student.
type Command struct {
	RecordID   core.RecordIDString
	BookID     core.BookIDString
	StudentID  core.StudentIDString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for logging.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with a fresh record id.
func BuildCommand(studentID core.StudentIDString, bookID core.BookIDString, occurredAt time.Time) Command {
	return Command{
		RecordID:   newRecordID(),
		BookID:     bookID,
		StudentID:  studentID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

func newRecordID() core.RecordIDString {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
