package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jward/srcgraph"
	"github.com/jward/srcgraph/internal/config"
	"github.com/jward/srcgraph/internal/logging"
)

var (
	flagRoot      string
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
	flagExclude   []string
	flagMaxDepth  int
	flagTargets   []string
	flagExt       []string
)

// Effective settings, resolved once per invocation by loadSettings.
var (
	cfg     *config.Config
	logger  *slog.Logger
	rootDir string
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

// usageError marks a failure caused by how the command was invoked. main
// prints the command's usage after the error message.
type usageError struct {
	cmd *cobra.Command
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			printError(os.Stderr, err)
		}
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprint(os.Stderr, ue.cmd.UsageString())
		}
		os.Exit(1)
	}
}

// printError writes "Error: msg" with the prefix highlighted when w is a
// terminal.
func printError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "Error:")
	fmt.Fprintf(w, " %s\n", err)
}

var rootCmd = &cobra.Command{
	Use:   "srcgraph",
	Short: "Heuristic definition, call and import graph for JS/TS sources",
	Long: "srcgraph scans JavaScript and TypeScript files under a project root and reports\n" +
		"function definitions, call sites and module imports found by text pattern matching.",
	Version:       srcgraph.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return &usageError{cmd, fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())}
		}
		return cmd.Help()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagRoot, "root", "", "project root to scan (default: current directory)")
	pf.StringVar(&flagConfig, "config", "", "config file (default: ./.srcgraph.yaml if present)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&flagLogFormat, "log-format", "", "log format: text|json")
	pf.StringArrayVar(&flagExclude, "exclude", nil, "additional directory name to prune (repeatable)")
	pf.IntVar(&flagMaxDepth, "max-depth", 0, "maximum directory depth below each target (0 = unlimited)")
	pf.StringSliceVar(&flagTargets, "targets", nil, "comma-separated default targets, used when none are given as arguments")
	pf.StringSliceVar(&flagExt, "ext", nil, "comma-separated file extensions to scan, e.g. ts,tsx,js")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{cmd, err}
	})

	rootCmd.AddCommand(defsCmd)
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings merges the config file, environment and command-line flags,
// then builds the logger and resolves the project root. Any failure here is a
// usage error.
func loadSettings(cmd *cobra.Command) error {
	c, err := config.Load(flagConfig)
	if err != nil {
		return &usageError{cmd, err}
	}
	applyFlagOverrides(cmd, c)
	if err := c.Validate(); err != nil {
		return &usageError{cmd, fmt.Errorf("invalid configuration: %w", err)}
	}

	l, err := logging.New(os.Stderr, c.Logging.Level, c.Logging.Format)
	if err != nil {
		return &usageError{cmd, err}
	}

	dir, err := resolveRoot(flagRoot)
	if err != nil {
		return &usageError{cmd, err}
	}

	cfg, logger, rootDir = c, l, dir
	return nil
}

// applyFlagOverrides copies explicitly set flags onto c.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.Logging.Level = flagLogLevel
	}
	if flags.Changed("log-format") {
		c.Logging.Format = flagLogFormat
	}
	if flags.Changed("max-depth") {
		c.MaxDepth = flagMaxDepth
	}
	if flags.Changed("targets") {
		c.Targets = nonEmpty(flagTargets)
	}
	if flags.Changed("ext") {
		c.Extensions = normalizeExtensions(flagExt)
	}
	c.Exclude = append(c.Exclude, flagExclude...)
}

// normalizeExtensions turns "ts", ".TSX" and " js " into ".ts", ".tsx" and
// ".js", dropping blanks.
func normalizeExtensions(exts []string) []string {
	var out []string
	for _, ext := range nonEmpty(exts) {
		out = append(out, "."+strings.ToLower(strings.TrimLeft(ext, ".")))
	}
	return out
}

// nonEmpty returns the trimmed, non-blank values.
func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// resolveRoot returns the absolute path of the project root.
func resolveRoot(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

// usageArgs wraps a cobra argument validator so that failures print usage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{cmd, err}
		}
		return nil
	}
}

func newEngine() *srcgraph.Engine {
	return srcgraph.New(
		srcgraph.WithRules(cfg.Rules()),
		srcgraph.WithLogger(logger),
	)
}

// targetsFrom returns the positional targets, or the configured ones.
func targetsFrom(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Targets
}

func scan(args []string) (*srcgraph.Graph, error) {
	g, err := newEngine().Scan(rootDir, targetsFrom(args))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", rootDir, err)
	}
	return g, nil
}
