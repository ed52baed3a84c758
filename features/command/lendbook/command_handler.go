package lendbook

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	"github.com/AntonStoeckl/school-library-lending/shell"
)

const (
	logMsgLent     = "lend book: book lent"
	logMsgRejected = "lend book: rejected"
	logMsgFatal    = "lend book: inventory invariant violated"
	logAttrCommand = "command_type"
	logAttrBookID  = "book_id"
	logAttrStudent = "student_id"
	logAttrRecord  = "record_id"
	logAttrDueAt   = "due_at"
	logAttrReason  = "reason"
)

// CommandHandler runs lend commands against the inventory.
type CommandHandler struct {
	store    *inventory.Store
	rules    Rules
	recorder shell.EventRecorder
	logger   shell.Logger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithLoanPeriod sets the time between lending and the due date.
func WithLoanPeriod(period time.Duration) Option {
	return func(h *CommandHandler) {
		if period > 0 {
			h.rules.LoanPeriod = period
		}
	}
}

// WithBorrowLimit sets how many books a student may hold at once. 0 disables the limit.
func WithBorrowLimit(limit int) Option {
	return func(h *CommandHandler) {
		if limit >= 0 {
			h.rules.BorrowLimit = limit
		}
	}
}

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
		rules:    Rules{LoanPeriod: core.DefaultLoanPeriod},
		recorder: shell.NopRecorder{},
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle lends a copy and returns the created borrow record.
//
// Errors: core.ErrUnknownStudent, core.ErrUnknownBook, core.ErrDuplicateBorrow,
// core.ErrBorrowLimitReached, core.ErrOutOfStock.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.BorrowRecord, error) {
	if err := ctx.Err(); err != nil {
		return core.BorrowRecord{}, err
	}

	var record core.BorrowRecord

	err := h.store.Transact(command.BookID, command.StudentID, func(tx *inventory.Tx) error {
		result := Decide(tx.Book(), tx.Student(), command, h.rules)
		if decisionErr := result.HasError(); decisionErr != nil {
			h.recorder.Record(result.Event)
			return decisionErr
		}

		lent, ok := result.Event.(core.BookLentToStudent)
		if !ok {
			return errors.New("lend book: unexpected decision event " + result.Event.IsEventType())
		}

		if reserveErr := tx.ReserveCopy(); reserveErr != nil {
			return reserveErr
		}

		record = lent.Record()
		tx.OpenRecord(record)
		tx.OnCommit(func() { h.recorder.Record(lent) })

		return nil
	})

	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.recorder.Record(core.BuildLendingBookToStudentFailed(command.BookID, command.StudentID, err.Error(), command.OccurredAt))
		}

		h.logFailure(command, err)

		return core.BorrowRecord{}, err
	}

	h.logInfo(
		logMsgLent,
		logAttrCommand, command.CommandType(),
		logAttrRecord, record.ID,
		logAttrBookID, record.BookID,
		logAttrStudent, record.StudentID,
		logAttrDueAt, record.DueAt,
	)

	return record, nil
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

func (h CommandHandler) logInfo(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Info(msg, args...)
	}
}
