package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for graph snapshots.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates all tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
  id              INTEGER PRIMARY KEY,
  path            TEXT NOT NULL UNIQUE,
  rel_path        TEXT NOT NULL,
  size            INTEGER NOT NULL DEFAULT 0,
  hash            TEXT,
  lossy           BOOLEAN NOT NULL DEFAULT FALSE,
  error           TEXT
);

CREATE TABLE IF NOT EXISTS definitions (
  file_id         INTEGER NOT NULL REFERENCES files(id),
  name            TEXT NOT NULL,
  PRIMARY KEY (file_id, name)
);

CREATE TABLE IF NOT EXISTS calls (
  file_id         INTEGER NOT NULL REFERENCES files(id),
  name            TEXT NOT NULL,
  PRIMARY KEY (file_id, name)
);

CREATE TABLE IF NOT EXISTS imports (
  file_id         INTEGER NOT NULL REFERENCES files(id),
  source          TEXT NOT NULL,
  PRIMARY KEY (file_id, source)
);

CREATE TABLE IF NOT EXISTS metadata (
  key             TEXT PRIMARY KEY,
  value           TEXT
);

CREATE INDEX IF NOT EXISTS idx_files_rel_path ON files(rel_path);
CREATE INDEX IF NOT EXISTS idx_definitions_name ON definitions(name);
CREATE INDEX IF NOT EXISTS idx_calls_name ON calls(name);
CREATE INDEX IF NOT EXISTS idx_imports_source ON imports(source);
`
