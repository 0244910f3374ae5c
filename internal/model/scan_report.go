package model

import "time"

// ScanReport is the main scan result structure.
// It accumulates state as pipeline steps run: the fetch step fills URLs,
// the classify step fills Results.
//
// Design decision: We use a single struct passed through the pipeline rather
// than per-step return values because steps build on each other's output and
// the finished report is what gets serialized to the history database.
type ScanReport struct {
	// Domain is the scanned domain, as given on the command line.
	Domain string `json:"domain"`

	// DateScanned is the timestamp when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// URLs holds the deduplicated URL list returned by the CDX index.
	// Excluded from JSON: the same URLs appear classified in Results.
	URLs []string `json:"-"`

	// TotalURLs is the number of deduplicated URLs fetched.
	TotalURLs int `json:"total_urls"`

	// Results maps each category to the URLs classified into it.
	Results ResultSet `json:"results"`

	// PerformedSteps lists pipeline step names in execution order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// TimedOut indicates the scan was cancelled before completion.
	TimedOut bool `json:"timed_out,omitempty"`

	// Error holds the terminal error, if any. Excluded from JSON because
	// error values don't round-trip; ErrorMessage carries the text.
	Error error `json:"-"`

	// ErrorMessage is the human-readable form of Error.
	ErrorMessage string `json:"error,omitempty"`

	// Summary is the derived per-category count summary.
	// Generated lazily by NewScanSummary before output.
	Summary *ScanSummary `json:"summary,omitempty"`
}

// NewScanReport creates a ScanReport for the given domain with the
// result set pre-seeded and the scan timestamp set to now.
func NewScanReport(domain string) *ScanReport {
	return &ScanReport{
		Domain:      domain,
		DateScanned: time.Now().UTC(),
		Results:     NewResultSet(),
	}
}

// AddURL classifies-and-records a single URL under the given category.
func (r *ScanReport) AddURL(category Category, url string) {
	r.Results.Add(category, url)
}

// CategoryCount is one row of the per-category summary.
type CategoryCount struct {
	// Category is the category name.
	Category Category `json:"category"`

	// Count is the number of URLs classified into the category.
	Count int `json:"count"`
}

// ScanSummary is a summarized view of a ScanReport for console and
// markdown rendering, analogous to a quick-stats block.
type ScanSummary struct {
	// Domain is the scanned domain.
	Domain string `json:"domain"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// TotalURLs is the number of deduplicated URLs processed.
	TotalURLs int `json:"total_urls"`

	// Counts holds per-category URL counts in category declaration order.
	// Every known category appears, including zero-count ones; renderers
	// decide whether to omit empty categories.
	Counts []CategoryCount `json:"counts"`

	// TimedOut indicates the scan was cancelled before completion.
	TimedOut bool `json:"timed_out,omitempty"`

	// Error contains the error message if the scan failed.
	Error string `json:"error,omitempty"`
}

// NewScanSummary derives a ScanSummary from a ScanReport.
func NewScanSummary(report *ScanReport) *ScanSummary {
	counts := make([]CategoryCount, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		counts = append(counts, CategoryCount{Category: c, Count: report.Results.Count(c)})
	}

	return &ScanSummary{
		Domain:      report.Domain,
		DateScanned: report.DateScanned,
		TotalURLs:   report.TotalURLs,
		Counts:      counts,
		TimedOut:    report.TimedOut,
		Error:       report.ErrorMessage,
	}
}

// NonEmptyCounts returns only the categories that matched at least one URL,
// preserving declaration order.
func (s *ScanSummary) NonEmptyCounts() []CategoryCount {
	out := make([]CategoryCount, 0, len(s.Counts))
	for _, cc := range s.Counts {
		if cc.Count > 0 {
			out = append(out, cc)
		}
	}
	return out
}
