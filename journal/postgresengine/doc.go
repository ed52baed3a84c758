// Package postgresengine provides a PostgreSQL implementation of the lending journal.
//
// Events are stored in a single table with JSONB payload and metadata columns. Filters
// translate to SQL with JSONB containment for payload predicates, and appends of
// several events go into one INSERT statement, so they succeed or fail together.
//
// Three connection types are supported:
//   - pgx.Pool (NewEngineFromPGXPool)
//   - database/sql.DB (NewEngineFromSQLDB)
//   - sqlx.DB (NewEngineFromSQLX)
//
// Example:
//
//	engine, err := postgresengine.NewEngineFromPGXPool(pool, postgresengine.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	if err := engine.EnsureSchema(ctx); err != nil {
//		return err
//	}
package postgresengine
