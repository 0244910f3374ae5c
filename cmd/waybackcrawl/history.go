package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waybackcrawl/waybackcrawl/internal/config"
	"github.com/waybackcrawl/waybackcrawl/internal/database"
	"github.com/waybackcrawl/waybackcrawl/internal/model"
)

// NewHistoryCmd creates the history command.
// This command lists stored scans from the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [domain]",
		Short: "List stored scans for a domain",
		Long: `History lists the scans stored in the local database.

Each scan performed with 'waybackcrawl scan' is saved with its per-category
counts, so past results can be reviewed and compared.

Examples:
  # List scan history for a domain
  waybackcrawl history example.com

  # List all scanned domains in the database
  waybackcrawl history --list-domains`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-domains", "L", false,
		"List all scanned domains in the database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listDomains, err := cmd.Flags().GetBool("list-domains")
	if err != nil {
		return err
	}

	if !listDomains && len(args) == 0 {
		return errors.New("domain is required (use --list-domains to see available domains)")
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listDomains {
		return listScannedDomains(ctx, db)
	}
	return listScanHistory(ctx, db, args[0])
}

// listScannedDomains lists all domains that have scan records in the database.
func listScannedDomains(ctx context.Context, db *database.ScanDB) error {
	domains, err := db.ListScannedDomains(ctx)
	if err != nil {
		return fmt.Errorf("failed to list domains: %w", err)
	}

	if len(domains) == 0 {
		fmt.Println("No scanned domains found in the database.")
		fmt.Println("\nUse 'waybackcrawl scan <domain>' to scan a domain.")
		return nil
	}

	fmt.Printf("Scanned domains (%d):\n\n", len(domains))
	for _, domain := range domains {
		fmt.Printf("  %s\n", domain)
	}
	fmt.Println("\nUse 'waybackcrawl history <domain>' to see scan history for a domain.")

	return nil
}

// listScanHistory lists all scan records for a specific domain.
func listScanHistory(ctx context.Context, db *database.ScanDB, domain string) error {
	entries, err := db.GetScanHistory(ctx, domain)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Printf("No scan history found for %s\n", domain)
		fmt.Println("\nUse 'waybackcrawl scan' to scan this domain.")
		return nil
	}

	fmt.Printf("Scan history for %s (%d scans):\n\n", domain, len(entries))
	fmt.Printf("  %-6s  %-20s  %-8s  %s\n", "ID", "Date", "URLs", "Categories")
	fmt.Println("  " + strings.Repeat("-", 70))

	for _, meta := range entries {
		fmt.Printf("  %-6d  %-20s  %-8d  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.TotalURLs,
			formatCategorySummary(meta.CategoryCounts),
		)
	}

	fmt.Println("\nUse 'waybackcrawl compare <domain>' to compare the latest two scans.")
	fmt.Println("Use 'waybackcrawl compare --with-scan-id <id> <domain>' to compare with a specific scan.")

	return nil
}

// formatCategorySummary formats non-zero category counts into a short string.
func formatCategorySummary(counts map[string]int) string {
	if len(counts) == 0 {
		return "N/A"
	}

	var parts []string
	for _, c := range model.Categories() {
		if v := counts[c.String()]; v > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", c, v))
		}
	}

	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}
