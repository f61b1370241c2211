package emitevents

import (
	"context"
	"sync"

	"github.com/okian/beacon/internal/domain/analytics"
	"github.com/okian/beacon/pkg/logger"
)

// logSink prints events instead of sending them.
type logSink struct {
	log logger.Logger

	mu    sync.Mutex
	count int
}

func (s *logSink) Track(ctx context.Context, e analytics.Event) error {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()

	s.log.Info(ctx, "event",
		logger.String("name", e.Name),
		logger.String("anonymous_id", e.AnonymousID),
		logger.Any("properties", map[string]any(e.Properties)))
	return nil
}

func (s *logSink) Close() error { return nil }

// Count returns how many events were logged.
func (s *logSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
