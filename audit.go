package srcgraph

import (
	"context"

	"github.com/jward/srcgraph/internal/audit"
)

// AuditResult pairs a scanned file with the parser cross-check of its
// definitions. Err is set when the file could not be read or parsed, in which
// case the Finding is empty.
type AuditResult struct {
	File SourceFile
	audit.Finding
	Err error
}

// Agrees reports whether the file was audited and the parser confirmed
// exactly the extractor's definitions.
func (r *AuditResult) Agrees() bool {
	return r.Err == nil && r.Finding.Agrees()
}

// Audit re-reads every readable file in g and compares the extractor's
// definitions with those a tree-sitter parse finds. Files that failed during
// the scan are skipped. The Graph is not modified.
func (e *Engine) Audit(ctx context.Context, g *Graph) ([]AuditResult, error) {
	var out []AuditResult
	for i := range g.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := &g.Files[i]
		if r.Err != nil {
			continue
		}

		res := AuditResult{File: r.File}
		txt, err := e.readFile(r.File.Path)
		if err != nil {
			res.Err = err
			e.logger.Warn("skipping unreadable file", "path", r.File.RelPath, "error", err)
			out = append(out, res)
			continue
		}

		f, err := audit.File(ctx, r.File.Path, []byte(txt.Content), r.Defs)
		if err != nil {
			res.Err = err
			e.logger.Warn("audit failed", "path", r.File.RelPath, "error", err)
			out = append(out, res)
			continue
		}
		res.Finding = *f
		out = append(out, res)
	}
	return out, nil
}
