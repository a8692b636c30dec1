// Package cmd defines the CLI commands for the papers executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "papers",
		Short: "Scrape paper data from ICML, NeurIPS and ICLR.",
		Long: `papers scrapes paper, author and affiliation records from the
schedule pages of the configured machine learning conferences and writes
them as a flat CSV dataset. All editions and conferences are fetched
concurrently under a single global request cap.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	cmd.AddCommand(newScrapeCmd())
	return cmd
}

// Execute runs the CLI.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
