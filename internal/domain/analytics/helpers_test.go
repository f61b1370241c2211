package analytics_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/beacon/internal/domain/analytics"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// recordingSink captures every event handed to it.
type recordingSink struct {
	mu     sync.Mutex
	events []analytics.Event
	err    error
	closed bool
}

func (s *recordingSink) Track(_ context.Context, e analytics.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingSink) Events() []analytics.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]analytics.Event, len(s.events))
	copy(out, s.events)
	return out
}

func factoryFor(sink analytics.Sink) analytics.SinkFactory {
	return func(context.Context, string) (analytics.Sink, error) { return sink, nil }
}

// newRecording returns enabled trackers bound to a fresh recordingSink and a fixed clock.
func newRecording(opts ...analytics.Option) (*analytics.Trackers, *recordingSink) {
	sink := &recordingSink{}
	opts = append([]analytics.Option{
		analytics.WithSinkFactory(factoryFor(sink)),
		analytics.WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	t, err := analytics.New(context.Background(), "wk_test", true, opts...)
	if err != nil {
		panic(err)
	}
	return t, sink
}

type stubMemory struct {
	stats analytics.MemoryStats
	err   error
}

func (m stubMemory) ReadMemory(context.Context) (analytics.MemoryStats, error) {
	return m.stats, m.err
}

var errSinkDown = errors.New("sink down")
