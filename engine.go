package srcgraph

import (
	"fmt"
	"log/slog"

	"github.com/jward/srcgraph/internal/discover"
	"github.com/jward/srcgraph/internal/extract"
	"github.com/jward/srcgraph/internal/logging"
	"github.com/jward/srcgraph/internal/textread"
)

// Engine orchestrates the srcgraph pipeline: file discovery, per-file text
// extraction, and aggregation into a Graph. An Engine holds no state between
// scans; every Scan re-reads every file.
type Engine struct {
	rules  discover.Rules
	logger *slog.Logger

	// readFile is swapped in tests to simulate I/O failures.
	readFile func(path string) (textread.Text, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules sets the discovery rules. The default is discover.DefaultRules.
func WithRules(rules Rules) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:    discover.DefaultRules(),
		logger:   logging.Discard(),
		readFile: textread.Read,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the discovery rules in effect.
func (e *Engine) Rules() Rules {
	return e.rules
}

// FileResult is the outcome of scanning one file. When Err is set the file
// could not be read and its sets are empty; the scan itself still succeeds.
type FileResult struct {
	File    SourceFile
	Defs    Set
	Calls   Set
	Imports Set
	Size    int64
	Hash    string // hex SHA-256 of the file's bytes
	Lossy   bool   // invalid byte sequences were replaced before scanning
	Err     error
}

// HasDefsOrCalls reports whether the file belongs in the definition/call report.
func (r *FileResult) HasDefsOrCalls() bool {
	return r.Defs.Len() > 0 || r.Calls.Len() > 0
}

// HasImports reports whether the file belongs in the import report.
func (r *FileResult) HasImports() bool {
	return r.Imports.Len() > 0
}

// Graph holds per-file results for one scan, ordered by path.
type Graph struct {
	Root  string
	Files []FileResult
}

// Lookup returns the result for a file by its relative path.
func (g *Graph) Lookup(relPath string) (*FileResult, bool) {
	for i := range g.Files {
		if g.Files[i].File.RelPath == relPath {
			return &g.Files[i], true
		}
	}
	return nil, false
}

// Failed returns the results whose files could not be read.
func (g *Graph) Failed() []FileResult {
	var out []FileResult
	for _, r := range g.Files {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Discover lists the candidate files for targets under root.
func (e *Engine) Discover(root string, targets []string) ([]SourceFile, error) {
	files, err := discover.Discover(root, targets, e.rules, e.logger)
	if err != nil {
		return nil, fmt.Errorf("srcgraph: discover: %w", err)
	}
	return files, nil
}

// Scan discovers the files for targets under root and scans each of them.
func (e *Engine) Scan(root string, targets []string) (*Graph, error) {
	files, err := e.Discover(root, targets)
	if err != nil {
		return nil, err
	}
	g := e.ScanFiles(files)
	g.Root = root
	return g, nil
}

// ScanFiles scans the given files one at a time, ordered by RelPath as
// Discover returns them, so reports follow display paths. A file that
// cannot be read yields a FileResult with Err set; processing continues with
// the remaining files.
func (e *Engine) ScanFiles(files []SourceFile) *Graph {
	ordered := make([]SourceFile, len(files))
	copy(ordered, files)
	sortFiles(ordered)

	g := &Graph{Files: make([]FileResult, 0, len(ordered))}
	for _, f := range ordered {
		g.Files = append(g.Files, e.scanFile(f))
	}
	e.logger.Debug("scan complete", "files", len(g.Files), "failed", len(g.Failed()))
	return g
}

func (e *Engine) scanFile(f SourceFile) FileResult {
	res := FileResult{
		File:    f,
		Defs:    make(Set),
		Calls:   make(Set),
		Imports: make(Set),
	}

	txt, err := e.readFile(f.Path)
	if err != nil {
		res.Err = err
		e.logger.Warn("skipping unreadable file", "path", f.RelPath, "error", err)
		return res
	}
	if txt.Lossy {
		e.logger.Warn("replaced invalid UTF-8 sequences", "path", f.RelPath)
	}

	res.Size = txt.Size
	res.Hash = txt.Hash
	res.Lossy = txt.Lossy
	res.Defs, res.Calls = extract.DefsAndCalls(txt.Content)
	res.Imports = extract.Imports(txt.Content)
	return res
}
