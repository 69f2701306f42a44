package srcgraph

import (
	"github.com/jward/srcgraph/internal/discover"
	"github.com/jward/srcgraph/internal/extract"
	"github.com/jward/srcgraph/internal/store"
)

// Public type aliases for the internal types used in the Engine API.

type SourceFile = discover.File
type Rules = discover.Rules
type Set = extract.Set
type IndexedFile = store.File
