package model

import (
	"testing"
	"time"
)

// TestNewScanReport tests the ScanReport constructor.
func TestNewScanReport(t *testing.T) {
	t.Parallel()

	report := NewScanReport("example.com")

	t.Run("sets domain", func(t *testing.T) {
		t.Parallel()
		if report.Domain != "example.com" {
			t.Errorf("got %q, expected %q", report.Domain, "example.com")
		}
	})

	t.Run("sets scan timestamp", func(t *testing.T) {
		t.Parallel()
		if report.DateScanned.IsZero() {
			t.Error("expected DateScanned to be set")
		}
		if time.Since(report.DateScanned) > time.Second {
			t.Error("DateScanned is too old")
		}
	})

	t.Run("pre-seeds every category as empty non-nil slice", func(t *testing.T) {
		t.Parallel()
		for _, c := range Categories() {
			urls, ok := report.Results[c]
			if !ok {
				t.Errorf("expected category %q to be pre-seeded", c)
				continue
			}
			if urls == nil {
				t.Errorf("expected category %q to be non-nil", c)
			}
			if len(urls) != 0 {
				t.Errorf("expected category %q to be empty, got %d entries", c, len(urls))
			}
		}
	})

	t.Run("has no categories beyond the closed set", func(t *testing.T) {
		t.Parallel()
		if len(report.Results) != len(Categories()) {
			t.Errorf("got %d categories, expected %d", len(report.Results), len(Categories()))
		}
	})
}

// TestResultSetAdd tests URL accumulation per category.
func TestResultSetAdd(t *testing.T) {
	t.Parallel()

	t.Run("keeps insertion order", func(t *testing.T) {
		t.Parallel()
		rs := NewResultSet()
		rs.Add(CategoryJS, "http://x.com/a.js")
		rs.Add(CategoryJS, "http://x.com/b.js")

		if len(rs[CategoryJS]) != 2 {
			t.Fatalf("got %d URLs, expected 2", len(rs[CategoryJS]))
		}
		if rs[CategoryJS][0] != "http://x.com/a.js" || rs[CategoryJS][1] != "http://x.com/b.js" {
			t.Errorf("insertion order not preserved: %v", rs[CategoryJS])
		}
	})

	t.Run("unknown category falls back to other", func(t *testing.T) {
		t.Parallel()
		rs := NewResultSet()
		rs.Add(Category("bogus"), "http://x.com/")

		if len(rs[CategoryOther]) != 1 {
			t.Errorf("expected URL in %q, got %v", CategoryOther, rs)
		}
		if _, ok := rs[Category("bogus")]; ok {
			t.Error("expected no new category to be created")
		}
	})

	t.Run("total sums all categories", func(t *testing.T) {
		t.Parallel()
		rs := NewResultSet()
		rs.Add(CategoryJS, "http://x.com/a.js")
		rs.Add(CategoryAPI, "http://x.com/api/v1/users")
		rs.Add(CategoryOther, "http://x.com/home")

		if got := rs.Total(); got != 3 {
			t.Errorf("got total %d, expected 3", got)
		}
	})
}

// TestCategories tests the category enumeration.
func TestCategories(t *testing.T) {
	t.Parallel()

	t.Run("declaration order is stable", func(t *testing.T) {
		t.Parallel()
		want := []Category{
			CategoryJS, CategoryAPI, CategoryAdmin,
			CategoryRedirects, CategoryConfigs, CategoryOther,
		}
		got := Categories()
		if len(got) != len(want) {
			t.Fatalf("got %d categories, expected %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: got %q, expected %q", i, got[i], want[i])
			}
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		t.Parallel()
		first := Categories()
		first[0] = Category("mutated")
		if Categories()[0] != CategoryJS {
			t.Error("mutating the returned slice leaked into the declaration order")
		}
	})

	t.Run("valid rejects unknown categories", func(t *testing.T) {
		t.Parallel()
		if Category("bogus").Valid() {
			t.Error("expected bogus category to be invalid")
		}
		if !CategoryOther.Valid() {
			t.Error("expected other to be valid")
		}
	})
}

// TestNewScanSummary tests summary derivation from a report.
func TestNewScanSummary(t *testing.T) {
	t.Parallel()

	report := NewScanReport("example.com")
	report.TotalURLs = 3
	report.AddURL(CategoryJS, "http://x.com/app.js")
	report.AddURL(CategoryJS, "http://x.com/vendor.js")
	report.AddURL(CategoryOther, "http://x.com/home")

	summary := NewScanSummary(report)

	t.Run("carries domain and total", func(t *testing.T) {
		t.Parallel()
		if summary.Domain != "example.com" {
			t.Errorf("got %q, expected example.com", summary.Domain)
		}
		if summary.TotalURLs != 3 {
			t.Errorf("got %d, expected 3", summary.TotalURLs)
		}
	})

	t.Run("includes every category in order", func(t *testing.T) {
		t.Parallel()
		if len(summary.Counts) != len(Categories()) {
			t.Fatalf("got %d counts, expected %d", len(summary.Counts), len(Categories()))
		}
		if summary.Counts[0].Category != CategoryJS || summary.Counts[0].Count != 2 {
			t.Errorf("unexpected first count: %+v", summary.Counts[0])
		}
	})

	t.Run("non-empty counts omit zero categories", func(t *testing.T) {
		t.Parallel()
		nonEmpty := summary.NonEmptyCounts()
		if len(nonEmpty) != 2 {
			t.Fatalf("got %d non-empty categories, expected 2", len(nonEmpty))
		}
		if nonEmpty[0].Category != CategoryJS || nonEmpty[1].Category != CategoryOther {
			t.Errorf("unexpected non-empty order: %+v", nonEmpty)
		}
	})
}
