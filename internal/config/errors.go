package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
var (
	// ErrInvalidMaxSize is returned when the wordlist cap is not positive.
	ErrInvalidMaxSize = errors.New("invalid max size: must be positive")

	// ErrInvalidConcurrency is returned when the audit worker count is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidReportFormat is returned for an unknown audit report format.
	ErrInvalidReportFormat = errors.New("invalid report format: use csv, json, markdown or table")

	// ErrEmptyReportFile is returned when the audit output path is empty.
	ErrEmptyReportFile = errors.New("invalid report file: path must not be empty")
)
