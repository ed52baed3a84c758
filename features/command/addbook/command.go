package addbook

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AntonStoeckl/school-library-lending/core"
)

const (
	commandType = "AddBook"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Command represents the intent to add a book with a number of physical copies.
type Command struct {
	BookID      core.BookIDString `validate:"required,max=64,excludesall=/?#"`
	Title       string            `validate:"required,max=300"`
	Author      string            `validate:"max=200"`
	ISBN        core.ISBNString   `validate:"max=32"`
	TotalCopies int               `validate:"min=0,max=10000"`
	OccurredAt  core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for logging.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with trimmed text fields.
func BuildCommand(
	bookID core.BookIDString,
	title string,
	author string,
	isbn core.ISBNString,
	totalCopies int,
	occurredAt time.Time,
) Command {

	return Command{
		BookID:      strings.TrimSpace(bookID),
		Title:       strings.TrimSpace(title),
		Author:      strings.TrimSpace(author),
		ISBN:        strings.TrimSpace(isbn),
		TotalCopies: totalCopies,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the command's fields; failures wrap core.ErrInvalidBook.
func (c Command) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Join(core.ErrInvalidBook, err)
	}

	return nil
}

// Book returns the catalog entry the command describes.
func (c Command) Book() core.Book {
	return core.BuildBook(c.BookID, c.Title, c.Author, c.ISBN, c.TotalCopies)
}
