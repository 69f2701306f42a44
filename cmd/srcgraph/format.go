package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jward/srcgraph"
)

// formatNamesText writes one value per line.
func formatNamesText(w io.Writer, names []string) {
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

// formatFilesText formats CLIFile results as aligned columns.
func formatFilesText(w io.Writer, files []CLIFile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tSIZE\tNOTE")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Path, humanize.IBytes(uint64(f.Size)), fileNote(f.Lossy, f.Error))
	}
	tw.Flush()
}

// outputResultText dispatches to the appropriate text formatter based on the
// result type.
func outputResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case []string:
		formatNamesText(w, v)
	case []CLIFile:
		formatFilesText(w, v)
	case nil:
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// renderStats renders a per-file table of sizes and counts with a totals
// footer.
func renderStats(g *srcgraph.Graph) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	tbl.AppendHeader(table.Row{"File", "Size", "Defs", "Calls", "Imports", "Note"})

	var size int64
	var defs, calls, imports int
	for i := range g.Files {
		r := &g.Files[i]
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		tbl.AppendRow(table.Row{
			r.File.RelPath,
			humanize.IBytes(uint64(r.Size)),
			r.Defs.Len(),
			r.Calls.Len(),
			r.Imports.Len(),
			fileNote(r.Lossy, errText),
		})
		size += r.Size
		defs += r.Defs.Len()
		calls += r.Calls.Len()
		imports += r.Imports.Len()
	}

	tbl.AppendFooter(table.Row{
		fmt.Sprintf("%s files", humanize.Comma(int64(len(g.Files)))),
		humanize.IBytes(uint64(size)),
		humanize.Comma(int64(defs)),
		humanize.Comma(int64(calls)),
		humanize.Comma(int64(imports)),
		"",
	})
	return tbl.Render() + "\n"
}

// renderSummary renders the scan root and targets followed by a table of
// file counts per top-level folder.
func renderSummary(root string, targets []string, counts []srcgraph.FolderCount) string {
	var b strings.Builder
	list := "-"
	if len(targets) > 0 {
		list = strings.Join(targets, ", ")
	}
	fmt.Fprintf(&b, "Root:    %s\nTargets: %s\n\n", root, list)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	tbl.AppendHeader(table.Row{"Folder", "Files"})

	total := 0
	for _, c := range counts {
		tbl.AppendRow(table.Row{c.Folder, humanize.Comma(int64(c.Files))})
		total += c.Files
	}
	tbl.AppendFooter(table.Row{"Total", humanize.Comma(int64(total))})
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	return b.String()
}

func fileNote(lossy bool, errText string) string {
	switch {
	case errText != "":
		return "unreadable: " + errText
	case lossy:
		return "invalid UTF-8 replaced"
	}
	return ""
}

// validFormats lists accepted values for --format.
var validFormats = []string{"text", "json"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
