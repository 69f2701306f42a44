package srcgraph

import (
	"fmt"

	"github.com/jward/srcgraph/internal/store"
)

// QueryBuilder answers graph questions from an Index snapshot. Every result
// is a sorted list of relative paths or names; no match is an empty list.
type QueryBuilder struct {
	store *store.Store
}

// Definers returns the files declaring a function or const arrow named name.
func (q *QueryBuilder) Definers(name string) ([]string, error) {
	out, err := q.store.FilesDefining(name)
	if err != nil {
		return nil, fmt.Errorf("definers: %w", err)
	}
	return out, nil
}

// Callers returns the files with a call site for name.
func (q *QueryBuilder) Callers(name string) ([]string, error) {
	out, err := q.store.FilesCalling(name)
	if err != nil {
		return nil, fmt.Errorf("callers: %w", err)
	}
	return out, nil
}

// Dependents returns the files that import the module specifier spec, as
// written (specifiers are not resolved to files).
func (q *QueryBuilder) Dependents(spec string) ([]string, error) {
	out, err := q.store.FilesImporting(spec)
	if err != nil {
		return nil, fmt.Errorf("dependents: %w", err)
	}
	return out, nil
}

// Dependencies returns the module specifiers imported by the file at relPath.
func (q *QueryBuilder) Dependencies(relPath string) ([]string, error) {
	out, err := q.store.ImportsOf(relPath)
	if err != nil {
		return nil, fmt.Errorf("dependencies: %w", err)
	}
	return out, nil
}

// Definitions returns the names the file at relPath declares.
func (q *QueryBuilder) Definitions(relPath string) ([]string, error) {
	out, err := q.store.DefinitionsOf(relPath)
	if err != nil {
		return nil, fmt.Errorf("definitions: %w", err)
	}
	return out, nil
}

// Calls returns the call-site names recorded for the file at relPath.
func (q *QueryBuilder) Calls(relPath string) ([]string, error) {
	out, err := q.store.CallsOf(relPath)
	if err != nil {
		return nil, fmt.Errorf("calls: %w", err)
	}
	return out, nil
}

// Files returns every file recorded in the snapshot, in path order.
func (q *QueryBuilder) Files() ([]*IndexedFile, error) {
	out, err := q.store.Files()
	if err != nil {
		return nil, fmt.Errorf("files: %w", err)
	}
	return out, nil
}

// Root returns the scan root recorded with the snapshot.
func (q *QueryBuilder) Root() (string, error) {
	return q.store.Metadata("root")
}
