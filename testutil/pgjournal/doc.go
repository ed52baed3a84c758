// Package pgjournal provides test utilities for running the postgres journal against a real database
// through each of the supported adapters (pgx, sql.DB, sqlx.DB).
//
// The database comes from LIBRARY_TEST_POSTGRES_DSN; tests using this package are skipped when it is
// unset. The adapter comes from ADAPTER_TYPE (pgx.pool, sql.db or sqlx.db, default pgx.pool).
//
// Usage:
//
//	wrapper := pgjournal.CreateWrapper(t)
//	engine := wrapper.Engine()
package pgjournal
