package analytics

import "errors"

// Sentinel errors of the analytics package.
var (
	// ErrClientInit wraps failures to construct the ingestion sink.
	ErrClientInit = errors.New("analytics client init failed")
	// ErrNoSinkFactory is returned when tracking is enabled but no sink factory was configured.
	ErrNoSinkFactory = errors.New("no sink factory configured")
)
