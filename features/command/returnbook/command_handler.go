package returnbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	"github.com/AntonStoeckl/school-library-lending/shell"
)

const (
	logMsgReturned = "return book: book returned"
	logMsgRejected = "return book: rejected"
	logMsgFatal    = "return book: inventory invariant violated"
	logAttrCommand = "command_type"
	logAttrBookID  = "book_id"
	logAttrStudent = "student_id"
	logAttrRecord  = "record_id"
	logAttrReason  = "reason"
)

// CommandHandler runs return commands against the inventory.
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

// Handle takes the copy back and returns the closed borrow record.
//
// Errors: core.ErrUnknownStudent, core.ErrUnknownBook, core.ErrNoActiveBorrow.
// core.ErrOverRelease means the inventory is corrupt; it is logged at error level.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.BorrowRecord, error) {
	if err := ctx.Err(); err != nil {
		return core.BorrowRecord{}, err
	}

	var closed core.BorrowRecord

	err := h.store.Transact(command.BookID, command.StudentID, func(tx *inventory.Tx) error {
		result := Decide(tx.Book(), tx.Student(), command)
		if decisionErr := result.HasError(); decisionErr != nil {
			h.recorder.Record(result.Event)
			return decisionErr
		}

		returned, ok := result.Event.(core.BookReturnedByStudent)
		if !ok {
			return errors.New("return book: unexpected decision event " + result.Event.IsEventType())
		}

		var closeErr error

		closed, closeErr = tx.CloseRecord(returned.OccurredAt)
		if closeErr != nil {
			return closeErr
		}

		if releaseErr := tx.ReleaseCopy(); releaseErr != nil {
			return releaseErr
		}

		tx.OnCommit(func() { h.recorder.Record(returned) })

		return nil
	})

	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.recorder.Record(core.BuildReturningBookFromStudentFailed(command.BookID, command.StudentID, err.Error(), command.OccurredAt))
		}

		h.logFailure(command, err)

		return core.BorrowRecord{}, err
	}

	if h.logger != nil {
		h.logger.Info(
			logMsgReturned,
			logAttrCommand, command.CommandType(),
			logAttrRecord, closed.ID,
			logAttrBookID, closed.BookID,
			logAttrStudent, closed.StudentID,
		)
	}

	return closed, nil
}

func (h CommandHandler) logFailure(command Command, err error) {
	if h.logger == nil {
		return
	}

	args := []any{logAttrCommand, command.CommandType(), logAttrBookID, command.BookID, logAttrStudent, command.StudentID, logAttrReason, err.Error()}

	if core.IsFatal(err) || errors.Is(err, inventory.ErrUnbalancedTransaction) {
		h.logger.Error(logMsgFatal, args...)
		return
	}

	h.logger.Warn(logMsgRejected, args...)
}
