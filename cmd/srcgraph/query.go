package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/srcgraph"
)

var flagFormat string

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the snapshot written by 'srcgraph index'",
	Long: "Answers questions from the snapshot database. Paths are relative to the scan\n" +
		"root; module specifiers are matched exactly as written in the import.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadSettings(cmd); err != nil {
			return err
		}
		if err := validateFormat(flagFormat); err != nil {
			return &usageError{cmd, err}
		}
		return nil
	},
}

func init() {
	queryCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: db from config, relative to root)")
	queryCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: text|json")

	queryCmd.AddCommand(newLookupCmd("definers <name>", "Files that define a function or const arrow", (*srcgraph.QueryBuilder).Definers))
	queryCmd.AddCommand(newLookupCmd("callers <name>", "Files with a call site for a name", (*srcgraph.QueryBuilder).Callers))
	queryCmd.AddCommand(newLookupCmd("dependents <specifier>", "Files that import a module specifier", (*srcgraph.QueryBuilder).Dependents))
	queryCmd.AddCommand(newLookupCmd("dependencies <path>", "Module specifiers imported by a file", (*srcgraph.QueryBuilder).Dependencies))
	queryCmd.AddCommand(newLookupCmd("defs <path>", "Functions and const arrows a file declares", (*srcgraph.QueryBuilder).Definitions))
	queryCmd.AddCommand(newLookupCmd("calls <path>", "Call-site names recorded for a file", (*srcgraph.QueryBuilder).Calls))
	queryCmd.AddCommand(filesCmd)
}

// newLookupCmd builds a single-argument query command around a QueryBuilder
// method that returns a list of strings.
func newLookupCmd(use, short string, lookup func(*srcgraph.QueryBuilder, string) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := openIndex()
			if err != nil {
				return outputError(cmd.Name(), args, err)
			}
			defer ix.Close()

			out, err := lookup(ix.Query(), args[0])
			if err != nil {
				return outputError(cmd.Name(), args, err)
			}
			return outputResult(CLIResult{Command: cmd.Name(), Args: args, Results: out})
		},
	}
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Files recorded in the snapshot",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return outputError(cmd.Name(), args, err)
		}
		defer ix.Close()

		files, err := ix.Query().Files()
		if err != nil {
			return outputError(cmd.Name(), args, err)
		}
		out := make([]CLIFile, 0, len(files))
		for _, f := range files {
			out = append(out, CLIFile{Path: f.RelPath, Size: f.Size, Hash: f.Hash, Lossy: f.Lossy, Error: f.Error})
		}
		return outputResult(CLIResult{Command: cmd.Name(), Results: out})
	},
}

// openIndex opens the snapshot database, which must already exist.
func openIndex() (*srcgraph.Index, error) {
	dbPath := resolveDBPath(flagDB)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: %s (run 'srcgraph index' first)", dbPath)
	}
	return srcgraph.OpenIndex(dbPath)
}

// outputResult writes the result in the selected format to stdout.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(os.Stdout, result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, args []string, err error) error {
	errorHandled = true
	if flagFormat != "json" {
		printError(os.Stderr, err)
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResult{Command: command, Args: args, Error: err.Error()})
	return err
}
