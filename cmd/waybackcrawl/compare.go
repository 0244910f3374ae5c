package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/waybackcrawl/waybackcrawl/internal/config"
	"github.com/waybackcrawl/waybackcrawl/internal/database"
	"github.com/waybackcrawl/waybackcrawl/internal/model"
)

// Messages for the overall change direction between two scans.
const (
	changeDirectionGrew      = "grew"
	changeDirectionShrank    = "shrank"
	changeDirectionUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares scan results with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [domain]",
		Short: "Compare the two most recent scans of a domain",
		Long: `Compare displays differences between the current and previous scan results.

This command retrieves historical scan data from the database and shows:
- URLs that appeared in the archive since the last scan
- URLs that no longer appear
- Per-category count changes

The comparison requires at least two scans in the database for the specified
domain. Use 'waybackcrawl scan' to perform scans and save results.

Examples:
  # Compare latest two scans for a domain
  waybackcrawl compare example.com

  # Compare the latest scan with a specific historical scan by ID
  waybackcrawl compare --with-scan-id 5 example.com

  # Output comparison in JSON format
  waybackcrawl compare --json example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().Int64P("with-scan-id", "i", 0,
		"Compare with a specific scan by ID (use 'history' to see available IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	domain := args[0]

	withScanID, err := cmd.Flags().GetInt64("with-scan-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Use XDG data directory for database
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return runComparison(context.Background(), db, domain, withScanID, jsonOutput)
}

// runComparison performs the actual comparison between scan reports.
func runComparison(ctx context.Context, db *database.ScanDB, domain string, withScanID int64, jsonOutput bool) error {
	reports, err := db.GetLatestScanReports(ctx, domain, 2)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no scan history found for %s", domain)
	}

	// Latest report is always the current one
	currentReport := reports[0]

	var previousReport *model.ScanReport
	if withScanID > 0 {
		previousReport, err = db.GetScanReportByID(ctx, withScanID)
		if err != nil {
			return fmt.Errorf("failed to get scan with ID %d: %w", withScanID, err)
		}
		if previousReport == nil {
			return fmt.Errorf("scan with ID %d not found", withScanID)
		}
		// Validate that the scan ID belongs to the same domain
		if previousReport.Domain != domain {
			return fmt.Errorf("scan ID %d belongs to %s, not %s", withScanID, previousReport.Domain, domain)
		}
	} else {
		if len(reports) < 2 {
			return errors.New("at least 2 scans are required for comparison (found 1)")
		}
		previousReport = reports[1]
	}

	comparison := compareReports(previousReport, currentReport)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two scan reports.
type ComparisonResult struct {
	// Domain is the compared domain.
	Domain string `json:"domain"`

	// PreviousScan contains metadata about the previous scan.
	PreviousScan ScanMetadata `json:"previous_scan"`

	// CurrentScan contains metadata about the current scan.
	CurrentScan ScanMetadata `json:"current_scan"`

	// NewURLs lists URLs present in the current scan but not the previous.
	NewURLs []string `json:"new_urls,omitempty"`

	// RemovedURLs lists URLs present in the previous scan but not the current.
	RemovedURLs []string `json:"removed_urls,omitempty"`

	// UnchangedCount is the number of URLs present in both scans.
	UnchangedCount int `json:"unchanged_count"`

	// CategoryDeltas holds the per-category count change, in declaration order.
	CategoryDeltas []CategoryDelta `json:"category_deltas"`

	// Direction is "grew", "shrank", or "unchanged".
	Direction string `json:"direction"`
}

// ScanMetadata contains metadata about a scan for comparison display.
type ScanMetadata struct {
	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// TotalURLs is the total number of URLs in this scan.
	TotalURLs int `json:"total_urls"`
}

// CategoryDelta describes the count change of one category between scans.
type CategoryDelta struct {
	// Category is the category name.
	Category model.Category `json:"category"`

	// Previous is the count in the previous scan.
	Previous int `json:"previous"`

	// Current is the count in the current scan.
	Current int `json:"current"`

	// Delta is Current minus Previous.
	Delta int `json:"delta"`
}

// compareReports compares two scan reports and generates a comparison result.
func compareReports(previous, current *model.ScanReport) *ComparisonResult {
	result := &ComparisonResult{
		Domain:       current.Domain,
		PreviousScan: ScanMetadata{DateScanned: previous.DateScanned, TotalURLs: previous.TotalURLs},
		CurrentScan:  ScanMetadata{DateScanned: current.DateScanned, TotalURLs: current.TotalURLs},
	}

	previousURLs := urlSet(previous.Results)
	currentURLs := urlSet(current.Results)

	// New URLs, preserving category and fetch order from the current scan
	for _, c := range model.Categories() {
		for _, u := range current.Results[c] {
			if _, exists := previousURLs[u]; !exists {
				result.NewURLs = append(result.NewURLs, u)
			} else {
				result.UnchangedCount++
			}
		}
	}

	// Removed URLs, preserving order from the previous scan
	for _, c := range model.Categories() {
		for _, u := range previous.Results[c] {
			if _, exists := currentURLs[u]; !exists {
				result.RemovedURLs = append(result.RemovedURLs, u)
			}
		}
	}

	// Per-category deltas in declaration order
	for _, c := range model.Categories() {
		prev := len(previous.Results[c])
		curr := len(current.Results[c])
		result.CategoryDeltas = append(result.CategoryDeltas, CategoryDelta{
			Category: c,
			Previous: prev,
			Current:  curr,
			Delta:    curr - prev,
		})
	}

	switch {
	case current.TotalURLs > previous.TotalURLs:
		result.Direction = changeDirectionGrew
	case current.TotalURLs < previous.TotalURLs:
		result.Direction = changeDirectionShrank
	default:
		result.Direction = changeDirectionUnchanged
	}

	return result
}

// urlSet flattens a result set into a membership set.
func urlSet(results model.ResultSet) map[string]struct{} {
	set := make(map[string]struct{})
	for _, urls := range results {
		for _, u := range urls {
			set[u] = struct{}{}
		}
	}
	return set
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Scan Comparison: %s\n", result.Domain)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nArchive coverage: %s\n", formatDirection(result.Direction))

	fmt.Printf("\nPrevious scan: %s (%d URLs)\n",
		result.PreviousScan.DateScanned.Format("2006-01-02 15:04:05"), result.PreviousScan.TotalURLs)
	fmt.Printf("Current scan:  %s (%d URLs)\n",
		result.CurrentScan.DateScanned.Format("2006-01-02 15:04:05"), result.CurrentScan.TotalURLs)

	fmt.Println("\nCategory Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Category", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	for _, cd := range result.CategoryDeltas {
		fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n",
			strings.ToUpper(cd.Category.String()), cd.Previous, cd.Current, formatDelta(cd.Delta))
	}

	if len(result.NewURLs) > 0 {
		fmt.Printf("\nNew URLs (%d):\n", len(result.NewURLs))
		for _, u := range result.NewURLs {
			fmt.Printf("  [+] %s\n", u)
		}
	}

	if len(result.RemovedURLs) > 0 {
		fmt.Printf("\nRemoved URLs (%d):\n", len(result.RemovedURLs))
		for _, u := range result.RemovedURLs {
			fmt.Printf("  [-] %s\n", u)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d URLs\n", result.UnchangedCount)
	}

	return nil
}

// formatDirection formats the change direction for display.
func formatDirection(direction string) string {
	switch direction {
	case changeDirectionGrew:
		return "GREW (more archived URLs)"
	case changeDirectionShrank:
		return "SHRANK (fewer archived URLs)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
