package analytics

import (
	"time"

	"github.com/okian/beacon/pkg/logger"
)

// Option configures New.
type Option func(*settings)

type settings struct {
	sinkFactory SinkFactory
	log         logger.Logger
	now         func() time.Time
	memory      MemoryReader
}

// WithSinkFactory sets how the ingestion client is built when tracking is
// enabled. It is required for enabled trackers.
func WithSinkFactory(f SinkFactory) Option {
	return func(s *settings) {
		if f != nil {
			s.sinkFactory = f
		}
	}
}

// WithLogger sets the logger used for rejected events and lifecycle messages.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the clock used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMemoryReader sets the source of infra_metrics figures.
func WithMemoryReader(r MemoryReader) Option {
	return func(s *settings) {
		if r != nil {
			s.memory = r
		}
	}
}
