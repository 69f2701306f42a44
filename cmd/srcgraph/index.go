package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jward/srcgraph"
)

var flagDB string

var indexCmd = &cobra.Command{
	Use:   "index [targets...]",
	Short: "Write a scan to the SQLite snapshot database",
	Long: "Scans the targets and replaces the contents of the snapshot database with the\n" +
		"result. Nothing stored by a previous run is kept or reused.",
	Args: usageArgs(cobra.ArbitraryArgs),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&flagDB, "db", "", "database path (default: db from config, relative to root)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()

	g, err := scan(args)
	if err != nil {
		return err
	}

	dbPath := resolveDBPath(flagDB)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dbPath), err)
	}

	ix, err := srcgraph.OpenIndex(dbPath)
	if err != nil {
		return err
	}
	defer ix.Close()

	if err := ix.Write(g); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Indexed %s files in %s (%d unreadable)\n",
		humanize.Comma(int64(len(g.Files))),
		time.Since(start).Round(time.Millisecond),
		len(g.Failed()),
	)
	fmt.Fprintf(cmd.ErrOrStderr(), "Database: %s\n", dbPath)
	return nil
}

// resolveDBPath returns flag if set, else the configured path. Relative
// paths are taken from the project root.
func resolveDBPath(flag string) string {
	p := flag
	if p == "" {
		p = cfg.DB
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(rootDir, p)
}
