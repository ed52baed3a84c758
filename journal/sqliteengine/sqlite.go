package sqliteengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	_ "modernc.org/sqlite"                              // driver registration

	"github.com/AntonStoeckl/school-library-lending/journal"
)

const (
	driverName            = "sqlite"
	dialectSQLite         = "sqlite3"
	defaultEventTableName = "events"
	defaultBusyTimeout    = 5 * time.Second
	occurredAtLayout      = "2006-01-02T15:04:05.000000Z"
	jsonExtractEquals     = "json_extract(payload, ?) = ?"

	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"
	colSequenceNumber = "sequence_number"

	logMsgOpened          = "journal opened"
	logMsgQueryCompleted  = "journal query completed"
	logMsgEventsAppended  = "journal events appended"
	logMsgSQLExecuted     = "executed sql for: "
	logMsgOperationFailed = "journal operation failed"
	logMsgRollbackFailed  = "journal rollback failed"
	logAttrPath           = "path"
	logAttrError          = "error"
	logAttrQuery          = "query"
	logAttrEventCount     = "event_count"
	logAttrDurationMS     = "duration_ms"
	logActionQuery        = "query"
	logActionAppend       = "append"
)

// Engine is the SQLite journal. It is safe for concurrent use.
type Engine struct {
	db             *sql.DB
	eventTableName string
	busyTimeout    time.Duration
	logger         Logger
}

// Open opens (or creates) the journal database at path and ensures its schema.
func Open(ctx context.Context, path string, options ...Option) (*Engine, error) {
	e := &Engine{
		eventTableName: defaultEventTableName,
		busyTimeout:    defaultBusyTimeout,
	}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite journal: %w", err)
	}

	// SQLite serializes writers; one connection avoids SQLITE_BUSY churn between our own goroutines.
	db.SetMaxOpenConns(1)
	e.db = db

	if err := e.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if e.logger != nil {
		e.logger.Info(logMsgOpened, logAttrPath, path)
	}

	return e, nil
}

// Close closes the underlying database.
func (e *Engine) Close() error {
	return e.db.Close()
}

func (e *Engine) migrate(ctx context.Context) error {
	table := quoteIdentifier(e.eventTableName)
	plain := strings.ReplaceAll(e.eventTableName, `"`, "")

	statements := []string{
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", e.busyTimeout.Milliseconds()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	sequence_number INTEGER PRIMARY KEY AUTOINCREMENT,
	event_type TEXT NOT NULL,
	occurred_at TEXT NOT NULL,
	payload TEXT NOT NULL,
	metadata TEXT NOT NULL
)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (event_type)`, quoteIdentifier("idx_"+plain+"_event_type"), table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (occurred_at)`, quoteIdentifier("idx_"+plain+"_occurred_at"), table),
	}

	for _, statement := range statements {
		if _, err := e.db.ExecContext(ctx, statement); err != nil {
			return errors.Join(journal.ErrCreatingTableFailed, err)
		}
	}

	return nil
}

// Append stores one or more events in a single transaction, in the given order.
func (e *Engine) Append(ctx context.Context, events ...journal.StorableEvent) error {
	if len(events) == 0 {
		return journal.ErrNoEventsToAppend
	}

	rows := make([]any, 0, len(events))
	for _, event := range events {
		rows = append(rows, goqu.Record{
			colEventType:  event.EventType,
			colOccurredAt: formatOccurredAt(event.OccurredAt),
			colPayload:    string(event.PayloadJSON),
			colMetadata:   string(event.MetadataJSON),
		})
	}

	sqlQuery, args, err := goqu.Dialect(dialectSQLite).
		Insert(e.eventTableName).
		Prepared(true).
		Rows(rows...).
		ToSQL()
	if err != nil {
		return errors.Join(journal.ErrBuildingQueryFailed, err)
	}

	start := time.Now()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		e.logError(err, sqlQuery)
		return errors.Join(journal.ErrAppendingEventFailed, err)
	}

	if _, err = tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		e.logError(err, sqlQuery)
		if rollbackErr := tx.Rollback(); rollbackErr != nil && e.logger != nil {
			e.logger.Warn(logMsgRollbackFailed, logAttrError, rollbackErr.Error())
		}

		return errors.Join(journal.ErrAppendingEventFailed, err)
	}

	if err = tx.Commit(); err != nil {
		e.logError(err, sqlQuery)
		return errors.Join(journal.ErrAppendingEventFailed, err)
	}

	duration := time.Since(start)
	e.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if e.logger != nil {
		e.logger.Info(logMsgEventsAppended, logAttrEventCount, len(events), logAttrDurationMS, durationToMilliseconds(duration))
	}

	return nil
}

// Query retrieves the events matching the filter in sequence order,
// together with the sequence number of the last returned event.
func (e *Engine) Query(ctx context.Context, filter journal.Filter) (
	journal.StorableEvents,
	journal.MaxSequenceNumberUint,
	error,
) {

	sqlQuery, args, err := e.buildSelectQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	rows, err := e.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		e.logError(err, sqlQuery)
		return nil, 0, errors.Join(journal.ErrQueryingEventsFailed, err)
	}
	defer func() { _ = rows.Close() }()

	events := make(journal.StorableEvents, 0)
	maxSequenceNumber := journal.MaxSequenceNumberUint(0)

	for rows.Next() {
		var (
			eventType      string
			occurredAt     string
			payload        string
			metadata       string
			sequenceNumber int64
		)

		if err := rows.Scan(&eventType, &occurredAt, &payload, &metadata, &sequenceNumber); err != nil {
			return nil, 0, errors.Join(journal.ErrScanningDBRowFailed, err)
		}

		at, err := time.Parse(occurredAtLayout, occurredAt)
		if err != nil {
			return nil, 0, errors.Join(journal.ErrScanningDBRowFailed, err)
		}

		event, err := journal.BuildStorableEvent(eventType, at, []byte(payload), []byte(metadata))
		if err != nil {
			return nil, 0, errors.Join(journal.ErrBuildingStorableEventFailed, err)
		}

		events = append(events, event)
		maxSequenceNumber = journal.MaxSequenceNumberUint(sequenceNumber)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.Join(journal.ErrQueryingEventsFailed, err)
	}

	duration := time.Since(start)
	e.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if e.logger != nil {
		e.logger.Info(logMsgQueryCompleted, logAttrEventCount, len(events), logAttrDurationMS, durationToMilliseconds(duration))
	}

	return events, maxSequenceNumber, nil
}

func (e *Engine) buildSelectQuery(filter journal.Filter) (string, []any, error) {
	selectStmt := goqu.Dialect(dialectSQLite).
		From(e.eventTableName).
		Prepared(true).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	expressions := make([]goqu.Expression, 0)

	if eventTypes := filter.EventTypes(); len(eventTypes) > 0 {
		expressions = append(expressions, goqu.C(colEventType).In(eventTypes))
	}

	if predicates := filter.Predicates(); len(predicates) > 0 {
		predicateExpressions := make([]goqu.Expression, 0, len(predicates))
		for _, predicate := range predicates {
			predicateExpressions = append(predicateExpressions, goqu.L(jsonExtractEquals, "$."+predicate.Key(), predicate.Val()))
		}

		if filter.AllPredicatesMustMatch() {
			expressions = append(expressions, goqu.And(predicateExpressions...))
		} else {
			expressions = append(expressions, goqu.Or(predicateExpressions...))
		}
	}

	if from := filter.OccurredFrom(); !from.IsZero() {
		expressions = append(expressions, goqu.C(colOccurredAt).Gte(formatOccurredAt(from)))
	}

	if until := filter.OccurredUntil(); !until.IsZero() {
		expressions = append(expressions, goqu.C(colOccurredAt).Lte(formatOccurredAt(until)))
	}

	if len(expressions) > 0 {
		selectStmt = selectStmt.Where(expressions...)
	}

	sqlQuery, args, err := selectStmt.ToSQL()
	if err != nil {
		return "", nil, errors.Join(journal.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, args, nil
}

func (e *Engine) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (e *Engine) logError(err error, sqlQuery string) {
	if e.logger != nil {
		e.logger.Error(logMsgOperationFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
	}
}

// formatOccurredAt renders a fixed-width UTC timestamp so text ordering matches time ordering.
func formatOccurredAt(t time.Time) string {
	return t.UTC().Format(occurredAtLayout)
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
