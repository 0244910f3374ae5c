// Package log provides a slog handler that redacts secrets from logged
// URLs. Archived URLs routinely embed API keys, session ids, and signed
// tokens in their query strings, so any log line that carries a URL must be
// scrubbed before it leaves the process.
package log
