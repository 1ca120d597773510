package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open connects to the SQLite database at path, creating the file if it
// does not exist. A single writer connection avoids "database is locked"
// errors under concurrent writes.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=foreign_keys(1)", path)
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqldb.SetMaxOpenConns(1)

	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return sqldb, nil
}

// CreateTables sets up the schema if it is not already in place.
//
// Registrations carry UNIQUE(event_id, user_id): the constraint, not an
// application pre-check, is what prevents double registration. event_id
// deliberately has no foreign key: deleting an event must succeed even
// with registrations present, leaving those rows behind as an orphaned
// ledger.
func CreateTables(sqldb *sql.DB) error {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at TEXT NOT NULL
	);`
	if _, err := sqldb.Exec(createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	createEventsTable := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		address TEXT,
		date TEXT,
		created_at TEXT NOT NULL,
		owner_id INTEGER REFERENCES users(id),
		image TEXT
	);`
	if _, err := sqldb.Exec(createEventsTable); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}

	createRegistrationsTable := `
	CREATE TABLE IF NOT EXISTS registrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL REFERENCES users(id),
		created_at TEXT NOT NULL,
		UNIQUE (event_id, user_id)
	);`
	if _, err := sqldb.Exec(createRegistrationsTable); err != nil {
		return fmt.Errorf("create registrations table: %w", err)
	}
	return nil
}
