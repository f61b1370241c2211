package analytics

import "context"

// Sink is the external ingestion client. Batching, delivery and retries are
// its concern; Track only hands an event over.
type Sink interface {
	Track(ctx context.Context, e Event) error
	// Close flushes pending events and releases the client.
	Close() error
}

// SinkFactory builds a Sink for a write key.
type SinkFactory func(ctx context.Context, writeKey string) (Sink, error)
