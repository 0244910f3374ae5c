// Package database provides SQLite-based storage for scan history.
// Completed scan reports are stored as JSON rows so the history and
// compare commands can list and diff past scans of a domain.
package database
