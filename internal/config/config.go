package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/waybackcrawl/waybackcrawl/internal/cdx"
)

// Default configuration values.
const (
	// DefaultTimeout bounds the single CDX index request per domain.
	// The index answers most domains well under this, but large capture
	// sets can take several seconds.
	DefaultTimeout = 15 * time.Second

	// DefaultWorkers is the classification fan-out width. Classification
	// is CPU-light, so the value mostly controls goroutine count, not
	// throughput; 20 keeps large URL lists moving without oversubscribing.
	DefaultWorkers = 20

	// DefaultOutputFile is the results file written next to the caller
	// unless --output overrides it.
	DefaultOutputFile = "wayback_results.json"

	// AppName is the application name used for XDG directory paths.
	AppName = "waybackcrawl"
)

// Config holds all configuration options for a WaybackCrawl run.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
type Config struct {
	// Targets is the list of domains to scan.
	Targets []string

	// CDXBaseURL is the index host queried for archived URLs.
	// Defaults to the public Wayback Machine endpoint.
	CDXBaseURL string

	// Timeout is the per-request timeout for the CDX index query.
	Timeout time.Duration

	// Workers is the classification fan-out width.
	Workers int

	// UserAgent is sent with every index request. A descriptive value
	// lets the archive operators identify scanner traffic.
	UserAgent string

	// OutputFile is the path of the categorized results file. The file is
	// fully overwritten on every successful scan. When several targets are
	// scanned, the domain is woven into the file name.
	OutputFile string

	// JSONReport prints the full scan report as JSON to stdout instead of
	// the human-readable summary. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport prints a Markdown report to stdout instead of the
	// human-readable summary. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is the explicit path of the YAML configuration file.
	// Empty means search the working directory and then the home directory.
	ConfigFilePath string

	// DomainConfigs holds per-domain query overrides loaded from the
	// configuration file.
	DomainConfigs *File

	// SaveToDB enables persisting each completed scan to the history
	// database for the history and compare commands.
	SaveToDB bool

	// DBDir is the directory holding the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so relying on zero values would be wrong; this constructor
// also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		CDXBaseURL: cdx.DefaultBaseURL,
		Timeout:    DefaultTimeout,
		Workers:    DefaultWorkers,
		UserAgent:  cdx.DefaultUserAgent,
		OutputFile: DefaultOutputFile,
	}
}

// XDGDataDir returns the XDG data directory for WaybackCrawl.
// On Linux: ~/.local/share/waybackcrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for WaybackCrawl.
// On Linux: ~/.config/waybackcrawl
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found
// as one of the sentinel errors in errors.go. Called once after CLI
// parsing, before any network or file activity.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	if c.OutputFile == "" {
		return ErrEmptyOutputPath
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
