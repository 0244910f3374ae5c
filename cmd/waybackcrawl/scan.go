package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/waybackcrawl/waybackcrawl/internal/cdx"
	"github.com/waybackcrawl/waybackcrawl/internal/config"
	"github.com/waybackcrawl/waybackcrawl/internal/database"
	"github.com/waybackcrawl/waybackcrawl/internal/log"
	"github.com/waybackcrawl/waybackcrawl/internal/model"
	"github.com/waybackcrawl/waybackcrawl/internal/pipeline"
	"github.com/waybackcrawl/waybackcrawl/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [domain]",
		Short: "Fetch and categorize a domain's archived URLs",
		Long: `Scan queries the Wayback Machine CDX index for every archived URL of the
given domain, deduplicates the results, and sorts them into categories:
- js:        JavaScript files
- api:       API endpoints and JSON resources
- admin:     admin panels and login pages
- redirects: URLs carrying redirect parameters
- configs:   exposed configuration files
- other:     everything else

The categorized results are written to a JSON file and a per-category
summary is printed to the terminal.

Examples:
  # Scan a single domain
  waybackcrawl scan example.com

  # Scan multiple domains concurrently
  waybackcrawl scan example.com other.example

  # Write results to a custom path
  waybackcrawl scan -o results/example.json example.com

  # Print the full report as JSON instead of the summary
  waybackcrawl scan --json example.com

  # Use a custom configuration file
  waybackcrawl scan -c myconfig.yaml example.com

Configuration file (.waybackcrawl) example:
  domains:
    example.com:
      limit: 5000
      from: "20200101"
      to: "20231231"`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Query behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for the CDX index request")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of concurrent classification workers")
	cmd.Flags().String("cdx-url", cdx.DefaultBaseURL,
		"Base URL of the CDX index server")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .waybackcrawl in current or home directory)")

	// Report flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputFile,
		"Path of the categorized results file (creates directories if needed)")
	cmd.Flags().BoolP("json", "j", false,
		"Print the full report as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print a Markdown report (mutually exclusive with --json)")
	cmd.Flags().Bool("no-save", false,
		"Skip saving the scan to the local history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with secret redaction
	logger := log.NewRedactLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.CDXBaseURL, err = cmd.Flags().GetString("cdx-url")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-domain configurations from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.DomainConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.DomainConfigs = &config.File{
			Domains: make(map[string]config.DomainConfig),
		}
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Get positional arguments (domains)
	cfg.Targets = args

	return cfg, nil
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"targets", cfg.Targets,
		"workers", cfg.Workers,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.ScanDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Multiple domains run through the batch processor
	if len(cfg.Targets) > 1 {
		return runBatchScan(ctx, cfg, db, logger)
	}

	return runSingleScan(ctx, cfg, cfg.Targets[0], db, logger)
}

// runSingleScan scans one domain and reports the result.
func runSingleScan(ctx context.Context, cfg *config.Config, domain string, db *database.ScanDB, logger *slog.Logger) error {
	p := pipeline.DefaultPipeline(cfg, domain, os.Stdout,
		pipeline.WithLogger(logger),
	)

	scanReport := model.NewScanReport(domain)

	startTime := time.Now()
	if err := p.Execute(ctx, scanReport); err != nil {
		return reportScanError(domain, err)
	}

	elapsed := time.Since(startTime)
	logger.Info("scan completed", "domain", domain, "elapsed", elapsed.Round(time.Millisecond))

	if err := finishScan(ctx, cfg, scanReport, db, logger); err != nil {
		return err
	}

	return nil
}

// runBatchScan scans multiple domains concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, db *database.ScanDB, logger *slog.Logger) error {
	fmt.Printf("[*] Scanning %d domains...\n", len(cfg.Targets))

	// Per-domain progress lines interleave badly in batch mode, so the
	// pipelines stay quiet and only completed results are printed.
	bp := pipeline.NewBatchProcessor(
		func(domain string) *pipeline.Pipeline {
			return pipeline.DefaultPipeline(cfg, domain, io.Discard,
				pipeline.WithLogger(logger),
			)
		},
		pipeline.WithBatchLogger(logger),
	)

	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(scanReport *model.ScanReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("\n[%d/%d] %s\n", index+1, len(cfg.Targets), scanReport.Domain)

		if scanReport.Error != nil {
			_ = reportScanError(scanReport.Domain, scanReport.Error) //nolint:errcheck // Printed, batch continues
			return
		}

		if err := finishScan(ctx, cfg, scanReport, db, logger); err != nil {
			logger.Error("report failed", "domain", scanReport.Domain, "error", err)
		}
	})

	return err
}

// reportScanError prints a user-facing line for a failed fetch and
// returns the error for the caller to propagate.
func reportScanError(domain string, err error) error {
	switch {
	case errors.Is(err, cdx.ErrEmptyResult):
		fmt.Printf("[-] No URLs found for %s. The domain may not be archived.\n", domain)
	case errors.Is(err, cdx.ErrTransport):
		fmt.Fprintf(os.Stderr, "[-] Error fetching URLs for %s: %v\n", domain, err)
	case errors.Is(err, cdx.ErrDecode):
		fmt.Fprintf(os.Stderr, "[-] Error parsing CDX response for %s: %v\n", domain, err)
	default:
		fmt.Fprintf(os.Stderr, "[-] Scan failed for %s: %v\n", domain, err)
	}
	return err
}

// finishScan writes the results file, prints the report, and saves the
// scan to the history database.
func finishScan(ctx context.Context, cfg *config.Config, scanReport *model.ScanReport, db *database.ScanDB, logger *slog.Logger) error {
	outputPath := resolveOutputPath(cfg, scanReport.Domain)

	if err := writeResultsFile(outputPath, scanReport); err != nil {
		return err
	}
	fmt.Printf("[+] Results saved to %s\n", outputPath)

	if err := printReport(cfg, scanReport); err != nil {
		return err
	}

	if err := saveScanReport(ctx, db, scanReport, logger); err != nil {
		logger.Error("failed to save scan report", "domain", scanReport.Domain, "error", err)
	}

	return nil
}

// resolveOutputPath returns the per-domain results path. With multiple
// targets the domain is woven into the file name so scans don't
// overwrite each other.
func resolveOutputPath(cfg *config.Config, domain string) string {
	if len(cfg.Targets) <= 1 {
		return cfg.OutputFile
	}

	dir := filepath.Dir(cfg.OutputFile)
	base := filepath.Base(cfg.OutputFile)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	return filepath.Join(dir, name+"_"+domain+ext)
}

// writeResultsFile writes the categorized results mapping to path.
func writeResultsFile(path string, scanReport *model.ScanReport) error {
	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := report.NewResultsWriter(f).Write(scanReport); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}

// printReport prints the scan report to stdout in the requested format.
func printReport(cfg *config.Config, scanReport *model.ScanReport) error {
	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(os.Stdout, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(os.Stdout)
	default:
		w = report.NewConsoleWriter(os.Stdout)
	}

	_, err := w.Write(scanReport)
	return err
}

// saveScanReport saves the scan report to the database if enabled.
// If db is nil, this function is a no-op.
func saveScanReport(ctx context.Context, db *database.ScanDB, scanReport *model.ScanReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveScanReport(ctx, scanReport); err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	logger.Info("scan report saved to database", "domain", scanReport.Domain)
	return nil
}
