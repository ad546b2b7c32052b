/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tristendillon/importfix/core/config"
	"github.com/tristendillon/importfix/core/logger"
	"github.com/tristendillon/importfix/core/rewriter"
)

var (
	dryRun   bool
	showDiff bool
	strict   bool
	workers  int
)

var fixCmd = &cobra.Command{
	Use:   "fix [root]",
	Short: "Rewrite ./Component imports to ../<folder>/Component",
	Long: `Walks root (default: the configured root, "components") and rewrites
relative imports of classified components in every matching file. Files that
cannot be read or written are reported as warnings and do not stop the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

func addFixFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Print the changed lines of every file")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero if any file failed")
	cmd.Flags().IntVar(&workers, "workers", 0, "Files processed in parallel (default from config)")
}

func runFix(cmd *cobra.Command, args []string) error {
	logger.Debug("fix called")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root := cfg.Root
	if len(args) == 1 {
		root = args[0]
	}

	engine, err := newEngine(cfg, rewriter.Options{DryRun: dryRun, Diff: showDiff})
	if err != nil {
		return err
	}

	result, err := engine.Run(cmd.Context(), root)
	if err != nil {
		if result != nil {
			printResult(cmd.OutOrStdout(), result)
		}
		return fmt.Errorf("failed to rewrite imports under %s: %w", root, err)
	}

	printResult(cmd.OutOrStdout(), result)
	return finishResult(result, strict)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg, nil
}

func newEngine(cfg *config.Config, opts rewriter.Options) (*rewriter.Engine, error) {
	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}
	w, err := cfg.Walker()
	if err != nil {
		return nil, fmt.Errorf("invalid include/exclude patterns: %w", err)
	}
	opts.Workers = cfg.Workers
	return rewriter.NewEngine(table, w, opts)
}

func printChanges(out io.Writer, result *rewriter.Result) {
	for _, change := range result.Changes {
		fmt.Fprintf(out, "✓ %s\n", change.Path)
		if change.Diff != "" {
			fmt.Fprint(out, change.Diff)
		}
	}
}

func printResult(out io.Writer, result *rewriter.Result) {
	printChanges(out, result)

	verb := "updated"
	if result.DryRun {
		verb = "would be updated"
	}
	fmt.Fprintf(out, "\n✅ %d file(s) scanned, %d file(s) %s\n", result.FilesScanned, result.FilesModified, verb)
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "   %d non-text file(s) skipped\n", len(result.Skipped))
	}
	if len(result.Failures) > 0 {
		fmt.Fprintf(out, "⚠️  %d file(s) failed, see warnings above\n", len(result.Failures))
	}
	result.Log(logger.DEBUG)
}

// finishResult keeps per-file failures non-fatal unless strict is set.
func finishResult(result *rewriter.Result, strict bool) error {
	if strict && result.Failed() {
		return fmt.Errorf("%d file(s) failed: %w", len(result.Failures), result.Err())
	}
	return nil
}

func init() {
	rootCmd.AddCommand(fixCmd)
	addFixFlags(fixCmd)
}
