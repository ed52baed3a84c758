package catalogimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/features/command/addbook"
	"github.com/AntonStoeckl/school-library-lending/shell"
)

const (
	columnCount = 5

	logMsgRowFailed = "catalog import: row rejected"
	logMsgDone      = "catalog import: finished"
	logAttrLine     = "line"
	logAttrImported = "imported"
	logAttrFailed   = "failed"
	logAttrReason   = "reason"
)

// ErrMalformedRow is recorded for rows that cannot be turned into an add book command.
var ErrMalformedRow = errors.New("malformed catalog row")

// AddsBooks is the command side the importer feeds. addbook.CommandHandler satisfies it.
type AddsBooks interface {
	Handle(ctx context.Context, command addbook.Command) (core.Book, error)
}

// RowError is the failure of one CSV line.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Result summarizes one import run.
type Result struct {
	Imported int
	Failed   int
	Errors   []RowError
}

// Importer reads catalog rows and adds them one by one.
type Importer struct {
	books  AddsBooks
	clock  func() time.Time
	logger shell.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger for rejected rows and the final summary.
func WithLogger(logger shell.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// WithClock replaces time.Now as the source of the command timestamps.
func WithClock(clock func() time.Time) Option {
	return func(i *Importer) {
		i.clock = clock
	}
}

// NewImporter creates an Importer.
func NewImporter(books AddsBooks, opts ...Option) Importer {
	importer := Importer{
		books: books,
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(&importer)
	}

	return importer
}

// Import adds every row of r. Row level failures end up in the Result; the returned error
// is reserved for unreadable input and a canceled context.
func (i Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	reader.LazyQuotes = true

	var result Result

	for first := true; ; first = false {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return result, fmt.Errorf("read catalog: %w", err)
			}

			i.fail(&result, parseErr.Line, errors.Join(ErrMalformedRow, err))
			continue
		}

		line, _ := reader.FieldPos(0)

		if first && isHeader(row) {
			continue
		}

		command, err := i.commandFrom(row)
		if err != nil {
			i.fail(&result, line, err)
			continue
		}

		if _, err := i.books.Handle(ctx, command); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}

			i.fail(&result, line, err)
			continue
		}

		result.Imported++
	}

	if i.logger != nil {
		i.logger.Info(logMsgDone, logAttrImported, result.Imported, logAttrFailed, result.Failed)
	}

	return result, nil
}

func (i Importer) commandFrom(row []string) (addbook.Command, error) {
	if len(row) != columnCount {
		return addbook.Command{}, fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedRow, columnCount, len(row))
	}

	copies, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil {
		return addbook.Command{}, fmt.Errorf("%w: copies %q is not a number", ErrMalformedRow, row[4])
	}

	return addbook.BuildCommand(row[0], row[1], row[2], row[3], copies, i.clock()), nil
}

func (i Importer) fail(result *Result, line int, err error) {
	result.Failed++
	result.Errors = append(result.Errors, RowError{Line: line, Err: err})

	if i.logger != nil {
		i.logger.Warn(logMsgRowFailed, logAttrLine, line, logAttrReason, err.Error())
	}
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "id")
}
