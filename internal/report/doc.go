// Package report renders scan results in the supported output formats:
// the persisted JSON results file, the human-readable console summary,
// full-report JSON, and Markdown.
package report
