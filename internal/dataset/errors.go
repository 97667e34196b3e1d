package dataset

import "errors"

var (
	// ErrDatabaseUnavailable means no copy of the database could be loaded.
	ErrDatabaseUnavailable = errors.New("financial database unavailable")

	// ErrIndexNotConfigured means no company index URL was configured.
	ErrIndexNotConfigured = errors.New("company index URL is not configured")
)
