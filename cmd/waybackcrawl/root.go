// Package main provides the entry point for the WaybackCrawl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for WaybackCrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waybackcrawl",
		Short: "Discover archived URLs of a domain via the Wayback Machine",
		Long: `WaybackCrawl queries the Wayback Machine CDX index for every archived URL
of a domain and categorizes the results for reconnaissance: JavaScript
files, API endpoints, admin panels, redirect parameters, and exposed
configuration files.

Each scan is stored locally so past results can be listed and compared.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
