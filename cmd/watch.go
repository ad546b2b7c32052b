/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/importfix/core/cache"
	"github.com/tristendillon/importfix/core/logger"
	"github.com/tristendillon/importfix/core/rewriter"
	"github.com/tristendillon/importfix/core/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Fix imports now and again whenever files change",
	Long: `Runs fix once, then watches root and rewrites every matching file that is
created or saved. Files whose content did not change since the last pass are
skipped. Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("watch called")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		root := cfg.Root
		if len(args) == 1 {
			root = args[0]
		}
		// cache keys must match the absolute paths the watcher reports
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", root, err)
		}

		cc := cache.NewContentCache()
		engine, err := newEngine(cfg, rewriter.Options{Diff: showDiff, Cache: cc})
		if err != nil {
			return err
		}

		result, err := engine.Run(cmd.Context(), absRoot)
		if err != nil {
			return fmt.Errorf("failed to rewrite imports under %s: %w", absRoot, err)
		}
		printResult(cmd.OutOrStdout(), result)

		w, err := cfg.Walker()
		if err != nil {
			return err
		}
		fw, err := watcher.NewFileWatcher(absRoot, w)
		if err != nil {
			return err
		}
		defer fw.Close()

		fw.OnRemove = cc.RemoveContent
		fw.OnChange = func(paths []string) error {
			result, err := engine.RunFiles(cmd.Context(), paths)
			if err != nil {
				return err
			}
			printChanges(cmd.OutOrStdout(), result)
			result.Log(logger.INFO)
			return nil
		}

		logger.Info("Watching %s for changes", absRoot)
		if err := fw.Watch(cmd.Context()); err != nil {
			return err
		}
		cc.LogStats()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&showDiff, "diff", false, "Print the changed lines of every file")
	watchCmd.Flags().IntVar(&workers, "workers", 0, "Files processed in parallel (default from config)")
}
