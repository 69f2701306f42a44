package srcgraph

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// sortFiles orders files by their display path.
func sortFiles(files []SourceFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
}

// WriteDefsReport writes the definition/call report: one section per file
// that declares or calls anything, in path order.
//
//	src/app.ts
//	  defs:  main, render
//	  calls: main, render, useState
//
// A line is left out when its set is empty. Sections are separated by a
// blank line. Files with nothing to report produce no output.
func WriteDefsReport(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	first := true
	for i := range g.Files {
		r := &g.Files[i]
		if !r.HasDefsOrCalls() {
			continue
		}
		if !first {
			fmt.Fprintln(bw)
		}
		first = false

		fmt.Fprintln(bw, r.File.RelPath)
		if r.Defs.Len() > 0 {
			fmt.Fprintf(bw, "  defs:  %s\n", strings.Join(r.Defs.Sorted(), ", "))
		}
		if r.Calls.Len() > 0 {
			fmt.Fprintf(bw, "  calls: %s\n", strings.Join(r.Calls.Sorted(), ", "))
		}
	}
	return bw.Flush()
}

// WriteImportsReport writes the import report: one section per file with at
// least one import, listing its module specifiers one per line.
//
//	src/app.ts
//	  ./components/Header
//	  react
func WriteImportsReport(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	first := true
	for i := range g.Files {
		r := &g.Files[i]
		if !r.HasImports() {
			continue
		}
		if !first {
			fmt.Fprintln(bw)
		}
		first = false

		fmt.Fprintln(bw, r.File.RelPath)
		for _, spec := range r.Imports.Sorted() {
			fmt.Fprintf(bw, "  %s\n", spec)
		}
	}
	return bw.Flush()
}

// FolderCount is the number of discovered files under one top-level folder.
type FolderCount struct {
	Folder string
	Files  int
}

// FolderCounts groups files by the first component of their RelPath, sorted
// by folder name. A file directly under the root counts under its own name.
func FolderCounts(files []SourceFile) []FolderCount {
	counts := make(map[string]int)
	for _, f := range files {
		top, _, _ := strings.Cut(f.RelPath, "/")
		counts[top]++
	}
	out := make([]FolderCount, 0, len(counts))
	for folder, n := range counts {
		out = append(out, FolderCount{Folder: folder, Files: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Folder < out[j].Folder })
	return out
}

// WriteFileList writes one relative path per line.
func WriteFileList(w io.Writer, files []SourceFile) error {
	bw := bufio.NewWriter(w)
	for _, f := range files {
		fmt.Fprintln(bw, f.RelPath)
	}
	return bw.Flush()
}

// WriteAuditReport writes one section per file where the parser and the
// extractor disagree, or where the audit itself failed. Files that agree are
// left out.
//
//	src/app.ts
//	  missed: handler
//	  extra:  commented
func WriteAuditReport(w io.Writer, results []AuditResult) error {
	bw := bufio.NewWriter(w)
	first := true
	for i := range results {
		r := &results[i]
		if r.Agrees() {
			continue
		}
		if !first {
			fmt.Fprintln(bw)
		}
		first = false

		fmt.Fprintln(bw, r.File.RelPath)
		if r.Err != nil {
			fmt.Fprintf(bw, "  error:  %v\n", r.Err)
			continue
		}
		if len(r.Missed) > 0 {
			fmt.Fprintf(bw, "  missed: %s\n", strings.Join(r.Missed, ", "))
		}
		if len(r.Extra) > 0 {
			fmt.Fprintf(bw, "  extra:  %s\n", strings.Join(r.Extra, ", "))
		}
	}
	return bw.Flush()
}
