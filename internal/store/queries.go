package store

import (
	"database/sql"
	"fmt"
)

// Files returns every file in the snapshot, ordered by relative path.
func (s *Store) Files() ([]*File, error) {
	rows, err := s.db.Query(
		"SELECT id, path, rel_path, size, hash, lossy, error FROM files ORDER BY rel_path",
	)
	if err != nil {
		return nil, fmt.Errorf("files: %w", err)
	}
	defer rows.Close()

	var files []*File
	for rows.Next() {
		f := &File{}
		var hash, errText sql.NullString
		if err := rows.Scan(&f.ID, &f.Path, &f.RelPath, &f.Size, &hash, &f.Lossy, &errText); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		f.Hash = hash.String
		f.Error = errText.String
		files = append(files, f)
	}
	return files, rows.Err()
}

// FilesDefining returns the relative paths of files that define name.
func (s *Store) FilesDefining(name string) ([]string, error) {
	return s.strings(
		`SELECT f.rel_path FROM definitions d JOIN files f ON f.id = d.file_id
		 WHERE d.name = ? ORDER BY f.rel_path`, name)
}

// FilesCalling returns the relative paths of files with a call site for name.
func (s *Store) FilesCalling(name string) ([]string, error) {
	return s.strings(
		`SELECT f.rel_path FROM calls c JOIN files f ON f.id = c.file_id
		 WHERE c.name = ? ORDER BY f.rel_path`, name)
}

// FilesImporting returns the relative paths of files importing source.
func (s *Store) FilesImporting(source string) ([]string, error) {
	return s.strings(
		`SELECT f.rel_path FROM imports i JOIN files f ON f.id = i.file_id
		 WHERE i.source = ? ORDER BY f.rel_path`, source)
}

// ImportsOf returns the module specifiers imported by the file at relPath.
func (s *Store) ImportsOf(relPath string) ([]string, error) {
	return s.strings(
		`SELECT i.source FROM imports i JOIN files f ON f.id = i.file_id
		 WHERE f.rel_path = ? ORDER BY i.source`, relPath)
}

// DefinitionsOf returns the names defined by the file at relPath.
func (s *Store) DefinitionsOf(relPath string) ([]string, error) {
	return s.strings(
		`SELECT d.name FROM definitions d JOIN files f ON f.id = d.file_id
		 WHERE f.rel_path = ? ORDER BY d.name`, relPath)
}

// CallsOf returns the call-site names recorded for the file at relPath.
func (s *Store) CallsOf(relPath string) ([]string, error) {
	return s.strings(
		`SELECT c.name FROM calls c JOIN files f ON f.id = c.file_id
		 WHERE f.rel_path = ? ORDER BY c.name`, relPath)
}

// Metadata returns the value stored under key, or "" if absent.
func (s *Store) Metadata(key string) (string, error) {
	var value sql.NullString
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("metadata %s: %w", key, err)
	}
	return value.String, nil
}

// strings runs a single-column query and collects the results.
func (s *Store) strings(query string, args ...any) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
