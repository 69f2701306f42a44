package store

import (
	"database/sql"
	"fmt"
	"sort"
)

// ReplaceSnapshot discards every stored row and writes facts in a single
// transaction, so the database always reflects exactly one scan. meta is
// stored alongside (scan root, tool version, timestamp).
func (s *Store) ReplaceSnapshot(facts []FileFacts, meta map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first to respect FK constraints.
	for _, q := range []string{
		"DELETE FROM definitions",
		"DELETE FROM calls",
		"DELETE FROM imports",
		"DELETE FROM files",
		"DELETE FROM metadata",
	} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}

	fileStmt, err := tx.Prepare("INSERT INTO files (path, rel_path, size, hash, lossy, error) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare file insert: %w", err)
	}
	defer fileStmt.Close()

	for i := range facts {
		f := &facts[i]
		res, err := fileStmt.Exec(f.File.Path, f.File.RelPath, f.File.Size, nullString(f.File.Hash), f.File.Lossy, nullString(f.File.Error))
		if err != nil {
			return fmt.Errorf("insert file %s: %w", f.File.RelPath, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		f.File.ID = id

		if err := insertNames(tx, "INSERT OR IGNORE INTO definitions (file_id, name) VALUES (?, ?)", id, f.Defs); err != nil {
			return fmt.Errorf("insert definitions for %s: %w", f.File.RelPath, err)
		}
		if err := insertNames(tx, "INSERT OR IGNORE INTO calls (file_id, name) VALUES (?, ?)", id, f.Calls); err != nil {
			return fmt.Errorf("insert calls for %s: %w", f.File.RelPath, err)
		}
		if err := insertNames(tx, "INSERT OR IGNORE INTO imports (file_id, source) VALUES (?, ?)", id, f.Imports); err != nil {
			return fmt.Errorf("insert imports for %s: %w", f.File.RelPath, err)
		}
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := tx.Exec("INSERT INTO metadata (key, value) VALUES (?, ?)", k, meta[k]); err != nil {
			return fmt.Errorf("insert metadata %s: %w", k, err)
		}
	}

	return tx.Commit()
}

func insertNames(tx *sql.Tx, query string, fileID int64, names []string) error {
	if len(names) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, n := range names {
		if _, err := stmt.Exec(fileID, n); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
