package report

import "errors"

// Sentinel errors for the report package.
var (
	// ErrNotFound indicates no stored report matches the requested id.
	ErrNotFound = errors.New("report: not found")

	// ErrNoID indicates a report was submitted without a session id.
	ErrNoID = errors.New("report: missing session id")
)
