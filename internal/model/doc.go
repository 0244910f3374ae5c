// Package model defines the core data structures for WaybackCrawl.
// It contains the URL category enumeration, the categorized result set,
// and the scan report that flows through the pipeline and into reports.
package model
