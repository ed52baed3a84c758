package enrollstudent

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	"github.com/AntonStoeckl/school-library-lending/shell"
)

const (
	logMsgEnrolled    = "enroll student: student enrolled"
	logMsgIdempotent  = "enroll student: identical student exists"
	logMsgRejected    = "enroll student: rejected"
	logAttrCommand    = "command_type"
	logAttrStudentID  = "student_id"
	logAttrClass      = "class_label"
	logAttrReason     = "reason"
	maxDecideAttempts = 2
)

// CommandHandler enrolls students.
type CommandHandler struct {
	store    *inventory.Store
	recorder shell.EventRecorder
	logger   shell.Logger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRecorder sets where the resulting domain events are recorded.
func WithRecorder(recorder shell.EventRecorder) Option {
	return func(h *CommandHandler) {
		h.recorder = recorder
	}
}

// WithLogger sets the logger for the CommandHandler.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store *inventory.Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:    store,
		recorder: shell.NopRecorder{},
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle enrolls the student and returns the member as stored.
//
// Errors: core.ErrInvalidStudentID, core.ErrInvalidStudent, core.ErrDuplicateStudent.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Student, error) {
	if err := ctx.Err(); err != nil {
		return core.Student{}, err
	}

	if err := command.Validate(); err != nil {
		h.reject(command, core.BuildEnrollingStudentFailed(command.StudentID, err.Error(), command.OccurredAt), err)
		return core.Student{}, err
	}

	for attempt := 1; ; attempt++ {
		var existing *core.Student
		if student, err := h.store.GetStudent(command.StudentID); err == nil {
			existing = &student
		}

		result := Decide(existing, command)

		if result.IsIdempotent() {
			h.logInfo(logMsgIdempotent, logAttrCommand, command.CommandType(), logAttrStudentID, command.StudentID)
			return *existing, nil
		}

		if err := result.HasError(); err != nil {
			h.reject(command, result.Event, err)
			return core.Student{}, err
		}

		enrolled, _ := result.Event.(core.StudentEnrolled)

		err := h.store.EnrollStudent(enrolled.Student(), func(core.Student) { h.recorder.Record(enrolled) })
		if errors.Is(err, core.ErrDuplicateStudent) && attempt < maxDecideAttempts {
			continue
		}

		if err != nil {
			h.reject(command, core.BuildEnrollingStudentFailed(command.StudentID, err.Error(), command.OccurredAt), err)
			return core.Student{}, err
		}

		h.logInfo(logMsgEnrolled, logAttrCommand, command.CommandType(), logAttrStudentID, command.StudentID, logAttrClass, command.ClassLabel)

		return enrolled.Student(), nil
	}
}

func (h CommandHandler) reject(command Command, event core.DomainEvent, err error) {
	h.recorder.Record(event)

	if h.logger != nil {
		h.logger.Warn(logMsgRejected, logAttrCommand, command.CommandType(), logAttrStudentID, command.StudentID, logAttrReason, err.Error())
	}
}

func (h CommandHandler) logInfo(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Info(msg, args...)
	}
}
