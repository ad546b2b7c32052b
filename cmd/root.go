/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tristendillon/importfix/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "importfix",
	Short: "Rewrites flat component imports to their category folders.",
	Long: `importfix updates relative imports after components were moved out of a
single flat directory into category folders. Every import of the form
from './Name'; is rewritten to from '../<folder>/Name'; for each component
in the classification table. Running it again changes nothing.

Without a subcommand it behaves like "importfix fix".`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		logger.SetColor(!noColor)
		if logfile != "" {
			return logger.SetLogFile(logfile)
		}
		return nil
	},
	RunE: runFix,
}

var logfile string
var verbose bool
var configPath string
var noColor bool

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("%v", err)
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./importfix.yaml)")
	addFixFlags(rootCmd)
}
