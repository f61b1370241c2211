package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/beacon/pkg/logger"
)

// Trackers bundles the two event surfaces bound to one ingestion sink.
type Trackers struct {
	API  *API
	Node *Node

	sink Sink
}

// New builds the event surfaces. A sink is created only when writeKey is
// non-empty and active is true; otherwise both surfaces are no-ops.
// The sink is fixed for the lifetime of the returned Trackers.
//
// New has no default sink: an enabled call without WithSinkFactory fails with
// ErrNoSinkFactory. tracking.New supplies the Segment sink.
func New(ctx context.Context, writeKey string, active bool, opts ...Option) (*Trackers, error) {
	s := settings{
		log:    logger.Nop(),
		now:    time.Now,
		memory: RuntimeMemory{},
	}
	for _, opt := range opts {
		opt(&s)
	}

	var sink Sink
	if writeKey != "" && active {
		if s.sinkFactory == nil {
			return nil, fmt.Errorf("%w: %w", ErrClientInit, ErrNoSinkFactory)
		}
		var err error
		sink, err = s.sinkFactory(ctx, writeKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrClientInit, err)
		}
		s.log.Info(ctx, "analytics tracking enabled")
	} else {
		s.log.Info(ctx, "analytics tracking disabled", logger.Bool("active", active),
			logger.Bool("write_key_set", writeKey != ""))
	}

	em := &emitter{sink: sink, log: s.log, now: s.now}
	return &Trackers{
		API:  &API{em: em},
		Node: &Node{em: em, memory: s.memory},
		sink: sink,
	}, nil
}

// NewDisabled returns Trackers that drop every event.
func NewDisabled() *Trackers {
	t, _ := New(context.Background(), "", false)
	return t
}

// Enabled reports whether events are forwarded to a sink.
func (t *Trackers) Enabled() bool { return t.sink != nil }

// Close flushes and closes the sink. It is a no-op when tracking is disabled.
func (t *Trackers) Close() error {
	if t.sink == nil {
		return nil
	}
	return t.sink.Close()
}
