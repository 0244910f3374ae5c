package config

import "errors"

// Configuration validation errors.
// Package-level sentinels let callers use errors.Is for programmatic
// handling while keeping the messages human-readable.
var (
	// ErrNoTarget is returned when no domain argument is given.
	ErrNoTarget = errors.New("no target specified: provide one or more domains")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrEmptyOutputPath is returned when the results file path is empty.
	ErrEmptyOutputPath = errors.New("invalid output: path must not be empty")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one stdout format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
