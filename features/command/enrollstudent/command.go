package enrollstudent

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AntonStoeckl/school-library-lending/core"
)

const (
	commandType = "EnrollStudent"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Command represents the intent to enroll a student as a library member.
type Command struct {
	StudentID  core.StudentIDString `validate:"required"`
	Name       string               `validate:"required,max=200"`
	Email      string               `validate:"omitempty,email,max=254"`
	ClassLabel string               `validate:"max=100"`
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for logging.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with trimmed text fields and a derived class label.
func BuildCommand(studentID core.StudentIDString, name string, email string, classLabel string, occurredAt time.Time) Command {
	studentID = strings.TrimSpace(studentID)
	classLabel = strings.TrimSpace(classLabel)

	if classLabel == "" {
		if batch, ok := core.BatchOf(studentID); ok {
			classLabel = core.ClassName(batch)
		}
	}

	return Command{
		StudentID:  studentID,
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		ClassLabel: classLabel,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the command's fields.
// A malformed id wraps core.ErrInvalidStudentID, other failures wrap core.ErrInvalidStudent.
func (c Command) Validate() error {
	if _, err := core.ParseStudentID(c.StudentID); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return errors.Join(core.ErrInvalidStudent, err)
	}

	return nil
}

// Student returns the member the command describes.
func (c Command) Student() core.Student {
	return core.BuildStudent(c.StudentID, c.Name, c.Email, c.ClassLabel)
}
