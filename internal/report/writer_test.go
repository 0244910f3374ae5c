package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/waybackcrawl/waybackcrawl/internal/model"
)

// sampleReport builds a report with a known category distribution.
func sampleReport() *model.ScanReport {
	report := model.NewScanReport("example.com")
	report.TotalURLs = 4
	report.AddURL(model.CategoryJS, "http://example.com/app.js")
	report.AddURL(model.CategoryJS, "http://example.com/vendor.js")
	report.AddURL(model.CategoryAPI, "http://example.com/api/v1/users")
	report.AddURL(model.CategoryOther, "http://example.com/home")
	return report
}

// TestResultsWriter tests the persisted results file format.
func TestResultsWriter(t *testing.T) {
	t.Parallel()

	t.Run("round-trips to the identical mapping", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewResultsWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var got map[string][]string
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		// Keys are exactly the declared categories plus other.
		if len(got) != len(model.Categories()) {
			t.Errorf("got %d keys, expected %d", len(got), len(model.Categories()))
		}
		for _, c := range model.Categories() {
			if _, ok := got[c.String()]; !ok {
				t.Errorf("missing category key %q", c)
			}
		}

		if len(got["js"]) != 2 || got["js"][0] != "http://example.com/app.js" {
			t.Errorf("unexpected js bucket: %v", got["js"])
		}
		if len(got["admin"]) != 0 {
			t.Errorf("expected empty admin bucket, got %v", got["admin"])
		}
	})

	t.Run("zero-match categories serialize as empty arrays", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewResultsWriter(&buf).Write(model.NewScanReport("example.com")); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := buf.String()
		if strings.Contains(out, "null") {
			t.Errorf("expected [] for empty categories, output contains null: %s", out)
		}
		if !strings.Contains(out, `"configs": []`) {
			t.Errorf("expected empty configs array, got: %s", out)
		}
	})

	t.Run("output is 2-space indented", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewResultsWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"") {
			t.Errorf("expected 2-space indentation, got: %s", buf.String())
		}
	})
}

// TestJSONWriter tests the full-report JSON output.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("contains domain, results and derived summary", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var got struct {
			Domain  string              `json:"domain"`
			Results map[string][]string `json:"results"`
			Summary *model.ScanSummary  `json:"summary"`
		}
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		if got.Domain != "example.com" {
			t.Errorf("got domain %q, expected example.com", got.Domain)
		}
		if len(got.Results["js"]) != 2 {
			t.Errorf("unexpected js bucket: %v", got.Results["js"])
		}
		if got.Summary == nil {
			t.Fatal("expected derived summary in output")
		}
		if got.Summary.TotalURLs != 4 {
			t.Errorf("got total %d, expected 4", got.Summary.TotalURLs)
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(sampleReport()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"") {
			t.Errorf("expected indented output, got: %s", buf.String())
		}
	})
}

// TestConsoleWriter tests the human-readable summary.
func TestConsoleWriter(t *testing.T) {
	t.Parallel()

	t.Run("prints non-empty categories upper-cased with counts", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewConsoleWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "[+] Discovered URLs by Category:") {
			t.Errorf("missing summary header: %s", out)
		}
		if !strings.Contains(out, "JS        : 2 URLs") {
			t.Errorf("missing js line: %s", out)
		}
		if !strings.Contains(out, "API       : 1 URLs") {
			t.Errorf("missing api line: %s", out)
		}
		if !strings.Contains(out, "OTHER     : 1 URLs") {
			t.Errorf("missing other line: %s", out)
		}
	})

	t.Run("omits zero-count categories by default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewConsoleWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(buf.String(), "ADMIN") {
			t.Errorf("expected empty category to be omitted: %s", buf.String())
		}
	})

	t.Run("shows zero-count categories with WithShowEmpty", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewConsoleWriter(&buf, WithShowEmpty(true)).Write(sampleReport()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), "ADMIN     : 0 URLs") {
			t.Errorf("expected admin line with zero count: %s", buf.String())
		}
	})

	t.Run("empty report prints placeholder", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewConsoleWriter(&buf).Write(model.NewScanReport("example.com")); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), "(no URLs classified)") {
			t.Errorf("expected placeholder for empty report: %s", buf.String())
		}
	})
}

// TestMarkdownWriter tests the markdown rendering.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders header and category table", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "# WaybackCrawl Report") {
			t.Errorf("missing title: %s", out)
		}
		if !strings.Contains(out, "`example.com`") {
			t.Errorf("missing domain: %s", out)
		}
		if !strings.Contains(out, "URLs by Category") {
			t.Errorf("missing category section: %s", out)
		}
		if !strings.Contains(out, "JS") {
			t.Errorf("missing category rows: %s", out)
		}
	})

	t.Run("includes pie chart when URLs were classified", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), "mermaid") {
			t.Errorf("expected mermaid pie chart: %s", buf.String())
		}
	})

	t.Run("omits pie chart for empty report", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(model.NewScanReport("example.com")); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(buf.String(), "mermaid") {
			t.Errorf("expected no pie chart for empty report: %s", buf.String())
		}
	})
}

// TestMultiWriter tests fan-out to multiple writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewConsoleWriter(&a), NewConsoleWriter(&b))

	if _, err := mw.Write(sampleReport()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if a.String() != b.String() {
		t.Error("expected identical output on both writers")
	}
	if a.Len() == 0 {
		t.Error("expected output to be written")
	}
}
