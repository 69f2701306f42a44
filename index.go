package srcgraph

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jward/srcgraph/internal/store"
)

// Index is a SQLite snapshot of one scan. Writing a Graph replaces whatever
// the database held before; nothing from a previous snapshot is ever fed back
// into a scan.
type Index struct {
	store *store.Store
}

// OpenIndex opens (creating if needed) the snapshot database at dbPath.
func OpenIndex(dbPath string) (*Index, error) {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("srcgraph: open index: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("srcgraph: migrate: %w", err)
	}
	return &Index{store: s}, nil
}

// Close releases the database.
func (ix *Index) Close() error {
	return ix.store.Close()
}

// Write replaces the snapshot with g.
func (ix *Index) Write(g *Graph) error {
	facts := make([]store.FileFacts, 0, len(g.Files))
	for _, r := range g.Files {
		f := store.FileFacts{
			File: store.File{
				Path:    r.File.Path,
				RelPath: r.File.RelPath,
				Size:    r.Size,
				Hash:    r.Hash,
				Lossy:   r.Lossy,
			},
			Defs:    r.Defs.Sorted(),
			Calls:   r.Calls.Sorted(),
			Imports: r.Imports.Sorted(),
		}
		if r.Err != nil {
			f.File.Error = r.Err.Error()
		}
		facts = append(facts, f)
	}

	meta := map[string]string{
		"root":       g.Root,
		"version":    Version,
		"file_count": strconv.Itoa(len(g.Files)),
		"indexed_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := ix.store.ReplaceSnapshot(facts, meta); err != nil {
		return fmt.Errorf("srcgraph: write index: %w", err)
	}
	return nil
}

// Query returns a QueryBuilder over the snapshot.
func (ix *Index) Query() *QueryBuilder {
	return &QueryBuilder{store: ix.store}
}
