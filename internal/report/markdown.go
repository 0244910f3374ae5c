package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/waybackcrawl/waybackcrawl/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing; it renders the
// scan metadata and per-category counts as tables plus a mermaid pie chart
// of the category distribution.
type MarkdownWriter struct {
	baseWriter

	// upper renders category names in upper case for display.
	upper cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		upper:      cases.Upper(language.English),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	summary := report.Summary
	if summary == nil {
		summary = model.NewScanSummary(report)
	}

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeCategories(md, summary)
	w.writePieChart(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.ScanSummary) {
	md.H1("WaybackCrawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Domain", "`" + summary.Domain + "`"},
			{"Scan Date", summary.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"URLs Fetched", strconv.Itoa(summary.TotalURLs)},
			{"Status", w.statusText(summary)},
		},
	})
	md.PlainText("")
}

// statusText returns the status cell based on report state.
func (w *MarkdownWriter) statusText(summary *model.ScanSummary) string {
	if summary.TimedOut {
		return "Cancelled (partial results)"
	}
	if summary.Error != "" {
		return "Error - " + summary.Error
	}
	return "Complete"
}

// writeCategories writes the per-category count table.
// Every category appears here, including zero-count ones, because the
// table mirrors the persisted results file.
func (w *MarkdownWriter) writeCategories(md *markdown.Markdown, summary *model.ScanSummary) {
	md.H2("URLs by Category")
	md.PlainText("")

	rows := make([][]string, 0, len(summary.Counts))
	for _, cc := range summary.Counts {
		rows = append(rows, []string{
			w.upper.String(cc.Category.String()),
			strconv.Itoa(cc.Count),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Category", "URLs"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the category distribution.
// Skipped when nothing was classified, since an empty chart renders badly.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.ScanSummary) {
	nonEmpty := summary.NonEmptyCounts()
	if len(nonEmpty) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("URL Category Distribution"),
		piechart.WithShowData(true),
	)

	for _, cc := range nonEmpty {
		chart.LabelAndIntValue(cc.Category.String(), uint64(cc.Count))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
