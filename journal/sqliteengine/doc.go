// Package sqliteengine provides an embedded SQLite implementation of the lending journal.
//
// It uses the pure Go modernc.org/sqlite driver, so a single school deployment needs
// nothing but a file path. The schema mirrors the Postgres engine: payload and metadata
// are stored as JSON text and payload predicates are matched with json_extract.
package sqliteengine
