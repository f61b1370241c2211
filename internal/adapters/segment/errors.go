package segment

import "errors"

var (
	// ErrInvalidClientConfig is returned when the Segment client rejects its configuration.
	ErrInvalidClientConfig = errors.New("invalid segment client config")
	// ErrSinkClosed wraps failures while closing the client, including double close.
	ErrSinkClosed = errors.New("segment sink close failed")
)
