package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/waybackcrawl/waybackcrawl/internal/model"
)

// ConsoleWriter outputs the human-readable per-category count summary.
// This is the default stdout format after a scan:
//
//	[+] Discovered URLs by Category:
//	  JS        : 12 URLs
//	  API       : 3 URLs
//
// Categories with zero URLs are omitted from the printed summary; they
// still appear (as empty arrays) in the persisted results file.
type ConsoleWriter struct {
	baseWriter

	// showEmpty also prints zero-count categories.
	showEmpty bool

	// upper renders category names in upper case for display.
	upper cases.Caser
}

// ConsoleWriterOption configures a ConsoleWriter.
type ConsoleWriterOption func(*ConsoleWriter)

// WithShowEmpty configures the writer to print zero-count categories too.
func WithShowEmpty(show bool) ConsoleWriterOption {
	return func(w *ConsoleWriter) {
		w.showEmpty = show
	}
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given writer.
func NewConsoleWriter(output io.Writer, opts ...ConsoleWriterOption) *ConsoleWriter {
	w := &ConsoleWriter{
		baseWriter: newBaseWriter(output),
		upper:      cases.Upper(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary of the report in human-readable format.
func (w *ConsoleWriter) Write(report *model.ScanReport) (int, error) {
	summary := report.Summary
	if summary == nil {
		summary = model.NewScanSummary(report)
	}

	var sb strings.Builder

	sb.WriteString("\n[+] Discovered URLs by Category:\n")

	counts := summary.Counts
	if !w.showEmpty {
		counts = summary.NonEmptyCounts()
	}
	for _, cc := range counts {
		fmt.Fprintf(&sb, "  %-10s: %d URLs\n", w.upper.String(cc.Category.String()), cc.Count)
	}

	if len(counts) == 0 {
		sb.WriteString("  (no URLs classified)\n")
	}

	return w.output.Write([]byte(sb.String()))
}
