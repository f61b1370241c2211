// Package service runs the periodic infra_metrics reporter of a beacon node.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/beacon/pkg/logger"
	"github.com/okian/beacon/pkg/metrics"
)

const defaultInterval = 30 * time.Minute

// ErrNoTracker is returned by Start when the service has nothing to report to.
var ErrNoTracker = errors.New("no infra tracker configured")

// InfraTracker emits one infra_metrics event. *analytics.Node satisfies it.
type InfraTracker interface {
	TrackInfraMetrics(ctx context.Context) bool
}

// Service reports process memory on a fixed interval until stopped.
type Service struct {
	mu sync.Mutex

	tracker       InfraTracker
	interval      time.Duration
	reportOnStart bool

	started bool
	cancel  context.CancelFunc
	done    chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithInterval sets the reporting interval. Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithReportOnStart emits one report as soon as the service starts.
func WithReportOnStart(enabled bool) Option {
	return func(s *Service) {
		s.reportOnStart = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a reporter for tracker.
func New(tracker InfraTracker, opts ...Option) *Service {
	s := &Service{
		tracker:  tracker,
		interval: defaultInterval,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the reporting loop. It is a no-op if already started.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.tracker == nil {
		return ErrNoTracker
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.started = true

	s.logger.Info(ctx, "starting infra metrics reporter", logger.String("interval", s.interval.String()))
	go s.run(loopCtx, s.done)
	return nil
}

func (s *Service) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	if s.reportOnStart {
		s.report(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.report(ctx)
		}
	}
}

func (s *Service) report(ctx context.Context) {
	metrics.RecordInfraReport()
	if !s.tracker.TrackInfraMetrics(ctx) {
		s.logger.Debug(ctx, "infra metrics not forwarded")
	}
}

// Stop ends the reporting loop and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.cancel()
	<-s.done
	s.started = false
	s.logger.Info(context.Background(), "infra metrics reporter stopped")
}

// Running reports whether the loop is active.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}
