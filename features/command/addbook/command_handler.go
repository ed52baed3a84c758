package addbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/inventory"
	"github.com/AntonStoeckl/school-library-lending/shell"
)

const (
	logMsgAdded       = "add book: book added"
	logMsgIdempotent  = "add book: identical book exists"
	logMsgRejected    = "add book: rejected"
	logAttrCommand    = "command_type"
	logAttrBookID     = "book_id"
	logAttrCopies     = "total_copies"
	logAttrReason     = "reason"
	maxDecideAttempts = 2
)

// CommandHandler adds books to the inventory.
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

// Handle adds the book and returns the catalog entry as stored.
//
// Errors: core.ErrInvalidBook, core.ErrDuplicateBook.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Book, error) {
	if err := ctx.Err(); err != nil {
		return core.Book{}, err
	}

	if err := command.Validate(); err != nil {
		h.reject(command, core.BuildAddingBookToInventoryFailed(command.BookID, err.Error(), command.OccurredAt), err)
		return core.Book{}, err
	}

	// A concurrent add of the same id between the lookup and the insert makes the
	// store report a duplicate; deciding again against the now existing book settles it.
	for attempt := 1; ; attempt++ {
		var existing *core.Book
		if book, err := h.store.GetBook(command.BookID); err == nil {
			existing = &book
		}

		result := Decide(existing, command)

		if result.IsIdempotent() {
			h.logInfo(logMsgIdempotent, logAttrCommand, command.CommandType(), logAttrBookID, command.BookID)
			return *existing, nil
		}

		if err := result.HasError(); err != nil {
			h.reject(command, result.Event, err)
			return core.Book{}, err
		}

		added, err := bookAddedFrom(result)
		if err != nil {
			return core.Book{}, err
		}

		err = h.store.AddBook(added.Book(), func(core.Book) { h.recorder.Record(added) })
		if errors.Is(err, core.ErrDuplicateBook) && attempt < maxDecideAttempts {
			continue
		}

		if err != nil {
			h.reject(command, core.BuildAddingBookToInventoryFailed(command.BookID, err.Error(), command.OccurredAt), err)
			return core.Book{}, err
		}

		h.logInfo(logMsgAdded, logAttrCommand, command.CommandType(), logAttrBookID, command.BookID, logAttrCopies, command.TotalCopies)

		return added.Book(), nil
	}
}

func bookAddedFrom(result core.DecisionResult) (core.BookAddedToInventory, error) {
	added, ok := result.Event.(core.BookAddedToInventory)
	if !ok {
		return core.BookAddedToInventory{}, errors.New("add book: unexpected decision event " + result.Event.IsEventType())
	}

	return added, nil
}

func (h CommandHandler) reject(command Command, event core.DomainEvent, err error) {
	h.recorder.Record(event)

	if h.logger != nil {
		h.logger.Warn(logMsgRejected, logAttrCommand, command.CommandType(), logAttrBookID, command.BookID, logAttrReason, err.Error())
	}
}

func (h CommandHandler) logInfo(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Info(msg, args...)
	}
}
