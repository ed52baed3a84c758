package pgjournal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/school-library-lending/journal/postgresengine"
	"github.com/AntonStoeckl/school-library-lending/shell/config"
)

// Adapter type constants.
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"

	envDSN     = "LIBRARY_TEST_POSTGRES_DSN"
	envAdapter = "ADAPTER_TYPE"
)

// Wrapper abstracts over the adapter-specific connection behind one engine.
type Wrapper interface {
	Engine() postgresengine.Engine
	TableName() string
	Exec(ctx context.Context, statement string) error
	Close()
}

type pgxPoolWrapper struct {
	pool   *pgxpool.Pool
	engine postgresengine.Engine
	table  string
}

func (w *pgxPoolWrapper) Engine() postgresengine.Engine { return w.engine }
func (w *pgxPoolWrapper) TableName() string             { return w.table }
func (w *pgxPoolWrapper) Close()                        { w.pool.Close() }

func (w *pgxPoolWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.pool.Exec(ctx, statement)
	return err
}

type sqlDBWrapper struct {
	db     *sql.DB
	engine postgresengine.Engine
	table  string
}

func (w *sqlDBWrapper) Engine() postgresengine.Engine { return w.engine }
func (w *sqlDBWrapper) TableName() string             { return w.table }
func (w *sqlDBWrapper) Close()                        { _ = w.db.Close() }

func (w *sqlDBWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.db.ExecContext(ctx, statement)
	return err
}

type sqlxWrapper struct {
	db     *sqlx.DB
	engine postgresengine.Engine
	table  string
}

func (w *sqlxWrapper) Engine() postgresengine.Engine { return w.engine }
func (w *sqlxWrapper) TableName() string             { return w.table }
func (w *sqlxWrapper) Close()                        { _ = w.db.Close() }

func (w *sqlxWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.db.ExecContext(ctx, statement)
	return err
}

// CreateWrapper connects through the adapter named by ADAPTER_TYPE and prepares a fresh journal table.
// The table is dropped and the connection closed when the test ends.
func CreateWrapper(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	dsn := os.Getenv(envDSN)
	if dsn == "" {
		t.Skipf("%s is not set, skipping postgres journal test", envDSN)
	}

	ctx := context.Background()
	table := "journal_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	options = append([]postgresengine.Option{postgresengine.WithTableName(table)}, options...)

	var wrapper Wrapper

	switch adapter := strings.ToLower(os.Getenv(envAdapter)); adapter {
	case typePGXPool, "":
		pool, err := config.PostgresPGXPool(ctx, dsn)
		require.NoError(t, err, "error connecting to DB pool in test setup")

		engine, err := postgresengine.NewEngineFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating journal engine")

		wrapper = &pgxPoolWrapper{pool: pool, engine: engine, table: table}

	case typeSQLDB:
		db, err := config.PostgresSQLDB(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")

		engine, err := postgresengine.NewEngineFromSQLDB(db, options...)
		require.NoError(t, err, "error creating journal engine")

		wrapper = &sqlDBWrapper{db: db, engine: engine, table: table}

	case typeSQLXDB:
		db, err := config.PostgresSQLX(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")

		engine, err := postgresengine.NewEngineFromSQLX(db, options...)
		require.NoError(t, err, "error creating journal engine")

		wrapper = &sqlxWrapper{db: db, engine: engine, table: table}

	default:
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapter))
	}

	require.NoError(t, wrapper.Engine().EnsureSchema(ctx), "error creating journal table")

	t.Cleanup(func() {
		_ = wrapper.Exec(context.Background(), fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, table))
		wrapper.Close()
	})

	return wrapper
}
