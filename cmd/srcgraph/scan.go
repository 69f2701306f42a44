package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/srcgraph"
)

var defsCmd = &cobra.Command{
	Use:   "defs [targets...]",
	Short: "Report function definitions and call sites per file",
	Args:  usageArgs(cobra.ArbitraryArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := scan(args)
		if err != nil {
			return err
		}
		return srcgraph.WriteDefsReport(cmd.OutOrStdout(), g)
	},
}

var importsCmd = &cobra.Command{
	Use:   "imports [targets...]",
	Short: "Report module specifiers imported by each file",
	Args:  usageArgs(cobra.ArbitraryArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := scan(args)
		if err != nil {
			return err
		}
		return srcgraph.WriteImportsReport(cmd.OutOrStdout(), g)
	},
}

var listCmd = &cobra.Command{
	Use:   "list [targets...]",
	Short: "List the files a scan would read",
	Args:  usageArgs(cobra.ArbitraryArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := newEngine().Discover(rootDir, targetsFrom(args))
		if err != nil {
			return err
		}
		return srcgraph.WriteFileList(cmd.OutOrStdout(), files)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [targets...]",
	Short: "Count the files a scan would read per top-level folder",
	Args:  usageArgs(cobra.ArbitraryArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := targetsFrom(args)
		files, err := newEngine().Discover(rootDir, targets)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderSummary(rootDir, targets, srcgraph.FolderCounts(files)))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [targets...]",
	Short: "Show per-file sizes and definition, call and import counts",
	Args:  usageArgs(cobra.ArbitraryArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := scan(args)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderStats(g))
		return nil
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit [targets...]",
	Short: "Compare extracted definitions with a tree-sitter parse",
	Long: "Parses every scanned file with tree-sitter and lists, per file, the declarations\n" +
		"the parser found that text matching missed and the matches the parser does not\n" +
		"confirm. Files where both agree are not listed. Extraction output is unaffected.",
	Args: usageArgs(cobra.ArbitraryArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := scan(args)
		if err != nil {
			return err
		}
		results, err := newEngine().Audit(cmd.Context(), g)
		if err != nil {
			return err
		}
		return srcgraph.WriteAuditReport(cmd.OutOrStdout(), results)
	},
}

var flagEval string

var scriptCmd = &cobra.Command{
	Use:   "script [file.risor] [targets...]",
	Short: "Run a Risor script against a fresh scan",
	Long: "Scans the targets, then evaluates the script with these globals:\n\n" +
		"  root              absolute project root\n" +
		"  files             scanned relative paths, in report order\n" +
		"  defs(path)        sorted definitions of a file\n" +
		"  calls(path)       sorted call-site names of a file\n" +
		"  imports(path)     sorted module specifiers of a file\n" +
		"  log               log.Info/Warn/Error(msg)\n\n" +
		"With --eval the source is given inline, every argument is a target and\n" +
		"imports load .risor modules from the project root.\n" +
		"The script's final value is printed unless it is nil.",
	Args: usageArgs(func(cmd *cobra.Command, args []string) error {
		if flagEval != "" {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	}),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := args
		if flagEval == "" {
			targets = args[1:]
		}
		g, err := scan(targets)
		if err != nil {
			return err
		}

		var text string
		var ok bool
		if flagEval != "" {
			text, ok, err = newEngine().EvalScript(cmd.Context(), g, flagEval, os.DirFS(rootDir))
		} else {
			text, ok, err = newEngine().RunScript(cmd.Context(), g, args[0])
		}
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(cmd.OutOrStdout(), text)
		}
		return nil
	},
}

func init() {
	scriptCmd.Flags().StringVarP(&flagEval, "eval", "e", "", "evaluate inline Risor source instead of a script file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
