package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/school-library-lending/journal"
	"github.com/AntonStoeckl/school-library-lending/journal/postgresengine/internal/adapters"
)

const (
	defaultEventTableName          = "events"
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgSchemaFailed             = "failed to ensure events table"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "journal operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrEventType               = "event_type"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logActionQuery                 = "query"
	logActionAppend                = "append"
	logActionSchema                = "schema"
	colEventType                   = "event_type"
	colOccurredAt                  = "occurred_at"
	colPayload                     = "payload"
	colMetadata                    = "metadata"
	colSequenceNumber              = "sequence_number"
	dialectPostgres                = "postgres"
	castJsonb                      = "?::jsonb"
	containsJsonb                  = `"payload" @> ?::jsonb`
)

type sqlQueryString = string

// Engine is the Postgres journal. It is safe for concurrent use.
type Engine struct {
	db             adapters.DBAdapter
	eventTableName string
	logger         Logger
}

type queryResultRow struct {
	eventType      string
	payload        []byte
	metadata       []byte
	occurredAt     time.Time
	sequenceNumber journal.MaxSequenceNumberUint
}

// NewEngineFromPGXPool creates a new Engine using a pgx Pool with optional configuration.
func NewEngineFromPGXPool(db *pgxpool.Pool, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, journal.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(db), options...)
}

// NewEngineFromSQLDB creates a new Engine using a sql.DB with optional configuration.
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, journal.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), options...)
}

// NewEngineFromSQLX creates a new Engine using a sqlx.DB with optional configuration.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, journal.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapter(db), options...)
}

func newEngine(db adapters.DBAdapter, options ...Option) (Engine, error) {
	e := Engine{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(&e); err != nil {
			return Engine{}, err
		}
	}

	return e, nil
}

// EnsureSchema creates the events table and its indexes if they do not exist.
func (e Engine) EnsureSchema(ctx context.Context) error {
	for _, statement := range e.schemaStatements() {
		start := time.Now()
		_, err := e.db.Exec(ctx, statement)
		e.logQueryWithDuration(statement, logActionSchema, time.Since(start))

		if err != nil {
			e.logError(logMsgSchemaFailed, logAttrError, err.Error())
			return errors.Join(journal.ErrCreatingTableFailed, err)
		}
	}

	return nil
}

func (e Engine) schemaStatements() []sqlQueryString {
	table := quoteIdentifier(e.eventTableName)
	plain := strings.ReplaceAll(e.eventTableName, `"`, "")

	return []sqlQueryString{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	sequence_number BIGSERIAL PRIMARY KEY,
	event_type TEXT NOT NULL,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
	payload JSONB NOT NULL,
	metadata JSONB NOT NULL
)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (event_type)`, quoteIdentifier("idx_"+plain+"_event_type"), table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (occurred_at)`, quoteIdentifier("idx_"+plain+"_occurred_at"), table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING gin (payload jsonb_path_ops)`, quoteIdentifier("idx_"+plain+"_payload_gin"), table),
	}
}

// Query retrieves the events matching the filter in sequence order,
// together with the sequence number of the last returned event.
func (e Engine) Query(ctx context.Context, filter journal.Filter) (
	journal.StorableEvents,
	journal.MaxSequenceNumberUint,
	error,
) {

	var empty journal.StorableEvents

	sqlQuery, buildQueryErr := e.buildSelectQuery(filter)
	if buildQueryErr != nil {
		e.logError(logMsgBuildSelectQueryFailed, logAttrError, buildQueryErr.Error())
		return empty, 0, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := e.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	e.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		e.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return empty, 0, errors.Join(journal.ErrQueryingEventsFailed, queryErr)
	}
	defer e.closeRows(rows)

	events, maxSequenceNumber, scanErr := e.processQueryResults(rows)
	if scanErr != nil {
		return empty, 0, scanErr
	}

	e.logOperation(
		logMsgQueryCompleted,
		logAttrEventCount, len(events),
		logAttrDurationMS, durationToMilliseconds(duration),
	)

	return events, maxSequenceNumber, nil
}

func (e Engine) processQueryResults(rows adapters.DBRows) (
	journal.StorableEvents,
	journal.MaxSequenceNumberUint,
	error,
) {

	result := queryResultRow{}
	events := make(journal.StorableEvents, 0)
	maxSequenceNumber := journal.MaxSequenceNumberUint(0)

	for rows.Next() {
		if err := rows.Scan(&result.eventType, &result.occurredAt, &result.payload, &result.metadata, &result.sequenceNumber); err != nil {
			e.logError(logMsgScanRowFailed, logAttrError, err.Error())
			return nil, 0, errors.Join(journal.ErrScanningDBRowFailed, err)
		}

		event, buildErr := journal.BuildStorableEvent(result.eventType, result.occurredAt, result.payload, result.metadata)
		if buildErr != nil {
			e.logError(logMsgBuildStorableEventFailed, logAttrError, buildErr.Error(), logAttrEventType, result.eventType)
			return nil, 0, errors.Join(journal.ErrBuildingStorableEventFailed, buildErr)
		}

		events = append(events, event)
		maxSequenceNumber = result.sequenceNumber
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.Join(journal.ErrQueryingEventsFailed, err)
	}

	return events, maxSequenceNumber, nil
}

// Append stores one or more events atomically, in the given order.
func (e Engine) Append(ctx context.Context, events ...journal.StorableEvent) error {
	if len(events) == 0 {
		return journal.ErrNoEventsToAppend
	}

	sqlQuery, buildQueryErr := e.buildInsertQuery(events)
	if buildQueryErr != nil {
		e.logError(logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error(), logAttrEventCount, len(events))
		return buildQueryErr
	}

	start := time.Now()
	_, execErr := e.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	e.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if execErr != nil {
		e.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return errors.Join(journal.ErrAppendingEventFailed, execErr)
	}

	e.logOperation(
		logMsgEventsAppended,
		logAttrEventCount, len(events),
		logAttrDurationMS, durationToMilliseconds(duration),
	)

	return nil
}

func (e Engine) buildSelectQuery(filter journal.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(e.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	whereExpressions, buildErr := whereExpressionsFor(filter)
	if buildErr != nil {
		return "", buildErr
	}

	if len(whereExpressions) > 0 {
		selectStmt = selectStmt.Where(whereExpressions...)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (e Engine) buildInsertQuery(events journal.StorableEvents) (sqlQueryString, error) {
	rows := make([]any, 0, len(events))

	for _, event := range events {
		rows = append(rows, goqu.Record{
			colEventType:  event.EventType,
			colOccurredAt: event.OccurredAt.UTC(),
			colPayload:    goqu.L(castJsonb, string(event.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(event.MetadataJSON)),
		})
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(e.eventTableName).
		Rows(rows...)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// whereExpressionsFor translates the filter; event types are ORed, predicates use JSONB containment.
func whereExpressionsFor(filter journal.Filter) ([]goqu.Expression, error) {
	expressions := make([]goqu.Expression, 0)

	if eventTypes := filter.EventTypes(); len(eventTypes) > 0 {
		expressions = append(expressions, goqu.C(colEventType).In(eventTypes))
	}

	if predicates := filter.Predicates(); len(predicates) > 0 {
		predicateExpressions := make([]goqu.Expression, 0, len(predicates))

		for _, predicate := range predicates {
			containment, err := jsoniter.ConfigFastest.Marshal(map[string]string{predicate.Key(): predicate.Val()})
			if err != nil {
				return nil, errors.Join(journal.ErrBuildingQueryFailed, err)
			}

			predicateExpressions = append(predicateExpressions, goqu.L(containsJsonb, string(containment)))
		}

		if filter.AllPredicatesMustMatch() {
			expressions = append(expressions, goqu.And(predicateExpressions...))
		} else {
			expressions = append(expressions, goqu.Or(predicateExpressions...))
		}
	}

	if from := filter.OccurredFrom(); !from.IsZero() {
		expressions = append(expressions, goqu.C(colOccurredAt).Gte(from.UTC()))
	}

	if until := filter.OccurredUntil(); !until.IsZero() {
		expressions = append(expressions, goqu.C(colOccurredAt).Lte(until.UTC()))
	}

	return expressions, nil
}

func (e Engine) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil && e.logger != nil {
		e.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (e Engine) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (e Engine) logOperation(action string, args ...any) {
	if e.logger != nil {
		e.logger.Info(logMsgOperation+action, args...)
	}
}

func (e Engine) logError(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Error(msg, args...)
	}
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
