/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tristendillon/importfix/core/classification"
)

var tableCmd = &cobra.Command{
	Use:   "table [component...]",
	Short: "Show the classification table or look up components",
	Long: `Without arguments prints every component and its folder. With arguments
prints the folder for each named component, or (unclassified) when the table
does not list it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		table, err := cfg.Table()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

		if len(args) == 0 {
			for _, e := range table.Entries() {
				fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Folder)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d component(s) in %d folder(s)\n", table.Len(), len(table.Folders()))
			return nil
		}

		for _, name := range args {
			folder, ok := table.Lookup(classification.ComponentName(name))
			if !ok {
				fmt.Fprintf(tw, "%s\t(unclassified)\n", name)
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\n", name, folder)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
}
