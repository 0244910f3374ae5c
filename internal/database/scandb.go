package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/waybackcrawl/waybackcrawl/internal/model"
)

// ScanDB provides SQLite-based storage for scan reports.
//
// Design decision: The full report is stored as one JSON column rather than
// normalized per-URL rows. History queries only need whole reports and
// per-category counts, and the counts are kept in a separate summary column
// so listing history never deserializes full reports.
type ScanDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ScanDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ScanDB in the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned instead of creating an empty one.
func Open(dbDir string, opts Options) (*ScanDB, error) {
	dbPath := filepath.Join(dbDir, "waybackcrawl.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection avoids
	// SQLITE_BUSY on concurrent saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &ScanDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *ScanDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *ScanDB) createTables() error {
	schema := `
	-- Scan reports store complete scan results as JSON.
	-- category_summary duplicates the per-category counts so history
	-- listings don't need to deserialize report_json.
	CREATE TABLE IF NOT EXISTS scan_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		domain TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_urls INTEGER DEFAULT 0,
		report_json TEXT NOT NULL,
		category_summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_reports_domain ON scan_reports(domain);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON scan_reports(timestamp);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveScanReport saves a complete scan report.
func (sdb *ScanDB) SaveScanReport(ctx context.Context, report *model.ScanReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	counts := make(map[string]int, len(report.Results))
	for category, urls := range report.Results {
		counts[category.String()] = len(urls)
	}
	countsJSON, _ := json.Marshal(counts) //nolint:errcheck,errchkjson // counts is a simple map; Marshal won't fail

	query := `
	INSERT INTO scan_reports (domain, timestamp, total_urls, report_json, category_summary)
	VALUES (?, ?, ?, ?, ?)
	`

	_, err = sdb.db.ExecContext(ctx, query,
		report.Domain,
		report.DateScanned.UTC().Format("2006-01-02 15:04:05"),
		report.TotalURLs,
		string(reportJSON),
		string(countsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	return nil
}

// GetLatestScanReport retrieves the most recent scan report for a domain.
// Returns nil without error when the domain has no stored scans.
func (sdb *ScanDB) GetLatestScanReport(ctx context.Context, domain string) (*model.ScanReport, error) {
	query := `
	SELECT report_json FROM scan_reports
	WHERE domain = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	return sdb.queryOneReport(ctx, query, domain)
}

// GetScanReportByID retrieves a scan report by its database ID.
// Returns nil without error when no such row exists.
func (sdb *ScanDB) GetScanReportByID(ctx context.Context, id int64) (*model.ScanReport, error) {
	query := `
	SELECT report_json FROM scan_reports
	WHERE id = ?
	`

	return sdb.queryOneReport(ctx, query, id)
}

// queryOneReport runs a single-row report query and deserializes the result.
func (sdb *ScanDB) queryOneReport(ctx context.Context, query string, args ...any) (*model.ScanReport, error) {
	var reportJSON string
	err := sdb.db.QueryRowContext(ctx, query, args...).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.ScanReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// GetLatestScanReports retrieves the n most recent reports for a domain,
// newest first. Used by the compare command to diff consecutive scans.
func (sdb *ScanDB) GetLatestScanReports(ctx context.Context, domain string, n int) ([]*model.ScanReport, error) {
	query := `
	SELECT report_json FROM scan_reports
	WHERE domain = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`

	rows, err := sdb.db.QueryContext(ctx, query, domain, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan history: %w", err)
	}
	defer rows.Close()

	var reports []*model.ScanReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}

		var report model.ScanReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// ListScannedDomains returns all domains with stored scan reports.
func (sdb *ScanDB) ListScannedDomains(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT domain FROM scan_reports
	ORDER BY domain
	`

	rows, err := sdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, domain)
	}

	return domains, rows.Err()
}

// ScanReportMetadata contains summary information about a stored scan.
// Used for displaying scan history without loading full reports.
type ScanReportMetadata struct {
	// ID is the unique identifier of the scan report in the database.
	ID int64

	// Domain is the scanned domain.
	Domain string

	// Timestamp is when the scan was performed.
	Timestamp time.Time

	// TotalURLs is the number of URLs the scan processed.
	TotalURLs int

	// CategoryCounts maps category names to URL counts.
	CategoryCounts map[string]int
}

// GetScanHistory retrieves scan metadata for a domain, newest first.
func (sdb *ScanDB) GetScanHistory(ctx context.Context, domain string) ([]ScanReportMetadata, error) {
	query := `
	SELECT id, domain, timestamp, total_urls, category_summary
	FROM scan_reports
	WHERE domain = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := sdb.db.QueryContext(ctx, query, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan history: %w", err)
	}
	defer rows.Close()

	var results []ScanReportMetadata
	for rows.Next() {
		var meta ScanReportMetadata
		var timestamp string
		var countsJSON sql.NullString

		if err := rows.Scan(&meta.ID, &meta.Domain, &timestamp, &meta.TotalURLs, &countsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)

		if countsJSON.Valid && countsJSON.String != "" {
			if err := json.Unmarshal([]byte(countsJSON.String), &meta.CategoryCounts); err != nil {
				meta.CategoryCounts = make(map[string]int)
			}
		} else {
			meta.CategoryCounts = make(map[string]int)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats, since SQLite may return different formats depending on
// configuration. Returns zero time if no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
