// Package database provides SQLite-backed storage for the xref schema:
// sources, xrefs, primary (sequence-bearing) xrefs, dependent xrefs and
// synonyms.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQL database connection.
type DB struct {
	*sql.DB
	path string
}

// Initialize creates and configures the database connection.
func Initialize(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_sync=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = 10000",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	db.SetMaxOpenConns(1) // the loader is single-writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{DB: db, path: path}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS source (
		source_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name      TEXT NOT NULL UNIQUE,
		priority  INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS xref (
		xref_id     INTEGER PRIMARY KEY AUTOINCREMENT,
		accession   TEXT NOT NULL,
		label       TEXT,
		description TEXT,
		source_id   INTEGER NOT NULL REFERENCES source(source_id),
		species_id  INTEGER NOT NULL,
		info_type   TEXT NOT NULL DEFAULT 'DIRECT',
		UNIQUE(accession, source_id, species_id)
	);

	CREATE TABLE IF NOT EXISTS primary_xref (
		xref_id       INTEGER PRIMARY KEY REFERENCES xref(xref_id),
		sequence      TEXT NOT NULL,
		sequence_type TEXT NOT NULL,
		status        TEXT
	);

	CREATE TABLE IF NOT EXISTS dependent_xref (
		master_xref_id    INTEGER NOT NULL REFERENCES xref(xref_id),
		dependent_xref_id INTEGER NOT NULL REFERENCES xref(xref_id),
		linkage_annotation TEXT,
		PRIMARY KEY (master_xref_id, dependent_xref_id)
	);

	CREATE TABLE IF NOT EXISTS synonym (
		xref_id INTEGER NOT NULL REFERENCES xref(xref_id),
		synonym TEXT NOT NULL,
		PRIMARY KEY (xref_id, synonym)
	);

	CREATE INDEX IF NOT EXISTS idx_xref_accession ON xref(accession);
	CREATE INDEX IF NOT EXISTS idx_xref_source ON xref(source_id);
	CREATE INDEX IF NOT EXISTS idx_synonym_value ON synonym(synonym);
	`
	_, err := db.Exec(schema)
	return err
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}
