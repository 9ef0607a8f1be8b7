// ABOUTME: Database connection management and initialization
// ABOUTME: Opens the in-memory SQLite database that backs the state store
package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// OpenDatabase opens a private in-memory database and initializes the schema.
// Nothing is written to disk; the data lives as long as the returned handle.
func OpenDatabase() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" is a separate database, so pin the pool
	// to one connection that is never recycled.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
