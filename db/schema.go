// ABOUTME: Database schema definitions
// ABOUTME: Creates the companies, communications and communication_methods tables
package db

import (
	"database/sql"
)

// seq columns preserve insertion order, which the derivations rely on for
// tie-breaking equal dates.
const schema = `
CREATE TABLE IF NOT EXISTS communication_methods (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS companies (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	location TEXT NOT NULL,
	profile_url TEXT NOT NULL,
	emails TEXT NOT NULL,
	phone_numbers TEXT NOT NULL,
	comments TEXT NOT NULL DEFAULT '',
	communication_periodicity INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS communications (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	company_id TEXT NOT NULL,
	method_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	completed BOOLEAN NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_communications_company_id ON communications(company_id);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
