/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/importfix/core/classification"
	"github.com/tristendillon/importfix/core/config"
	"github.com/tristendillon/importfix/core/logger"
	"github.com/tristendillon/importfix/core/template_engine"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write an importfix.yaml with the built-in classification table",
	Long: `Creates importfix.yaml in dir (default: the working directory) holding the
default root, include and exclude patterns, and every built-in category so the
table can be edited instead of recompiled.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		target := filepath.Join(dir, config.FileName)

		if _, err := os.Stat(target); err == nil {
			if !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", target)
			}
			logger.Debug("%s already exists. Overwriting.", target)
		}

		engine := template_engine.NewTemplateEngine()
		data := template_engine.NewConfigTemplateData(config.Default(), classification.Default())
		if err := engine.GenerateFile(template_engine.TEMPLATES.INIT_CONFIG, target, data); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
		fmt.Fprintf(cmd.OutOrStdout(), "Next Steps:\n")
		fmt.Fprintf(cmd.OutOrStdout(), "  - edit the categories in %s\n", target)
		fmt.Fprintf(cmd.OutOrStdout(), "  - importfix fix --dry-run --diff\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
}
