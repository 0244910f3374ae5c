package report

import (
	"encoding/json"
	"io"

	"github.com/waybackcrawl/waybackcrawl/internal/model"
)

// ResultsWriter outputs just the category-to-URLs mapping.
// This is the format of the persisted results file: a JSON object keyed by
// category name with URL arrays as values, 2-space indented. Every known
// category appears, zero-match ones as empty arrays.
type ResultsWriter struct {
	baseWriter
}

// NewResultsWriter creates a ResultsWriter that outputs to the given writer.
func NewResultsWriter(output io.Writer) *ResultsWriter {
	return &ResultsWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report's result set as indented JSON.
func (w *ResultsWriter) Write(report *model.ScanReport) (int, error) {
	return writeJSON(w.output, report.Results, true)
}

// JSONWriter outputs the full scan report in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with 2-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in JSON format.
// The summary is generated first if not already present.
func (w *JSONWriter) Write(report *model.ScanReport) (int, error) {
	if report.Summary == nil {
		report.Summary = model.NewScanSummary(report)
	}
	return writeJSON(w.output, report, w.indent)
}

// writeJSON marshals v and writes it with a trailing newline for better
// terminal output.
func writeJSON(output io.Writer, v any, indent bool) (int, error) {
	var data []byte
	var err error

	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return output.Write(data)
}
