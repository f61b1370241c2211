// Package segment adapts the Segment analytics client to the analytics.Sink
// interface.
package segment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	segment "github.com/segmentio/analytics-go/v3"

	"github.com/okian/beacon/internal/domain/analytics"
	"github.com/okian/beacon/pkg/logger"
)

// Config tunes the underlying Segment client. Zero values keep the client defaults.
type Config struct {
	Endpoint   string
	BatchSize  int
	Interval   time.Duration
	Verbose    bool
	AppName    string
	AppVersion string
	Logger     logger.Logger
}

// Sink forwards events to Segment as track calls.
type Sink struct {
	client segment.Client
	log    logger.Logger
	newID  func() string
}

// New builds a Segment client for writeKey.
func New(writeKey string, cfg Config) (*Sink, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	sc := segment.Config{
		Endpoint:  cfg.Endpoint,
		BatchSize: cfg.BatchSize,
		Interval:  cfg.Interval,
		Verbose:   cfg.Verbose,
		Logger:    clientLogger{log: log},
		Callback:  deliveryCallback{log: log},
	}
	if cfg.AppName != "" {
		sc.DefaultContext = &segment.Context{
			App: segment.AppInfo{Name: cfg.AppName, Version: cfg.AppVersion},
		}
	}

	client, err := segment.NewWithConfig(writeKey, sc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidClientConfig, err)
	}
	return NewWithClient(client, log), nil
}

// NewWithClient wraps an existing Segment client.
func NewWithClient(client segment.Client, log logger.Logger) *Sink {
	if log == nil {
		log = logger.Nop()
	}
	return &Sink{client: client, log: log, newID: uuid.NewString}
}

// Factory returns an analytics.SinkFactory building Segment sinks with cfg.
func Factory(cfg Config) analytics.SinkFactory {
	return func(_ context.Context, writeKey string) (analytics.Sink, error) {
		return New(writeKey, cfg)
	}
}

// Track enqueues e. The Segment client batches and delivers it asynchronously.
func (s *Sink) Track(_ context.Context, e analytics.Event) error {
	msg := segment.Track{
		MessageId:   s.newID(),
		AnonymousId: e.AnonymousID,
		Event:       e.Name,
		Timestamp:   e.Timestamp,
		Properties:  segment.Properties(e.Properties),
	}
	if err := s.client.Enqueue(msg); err != nil {
		return fmt.Errorf("enqueue %s: %w", e.Name, err)
	}
	return nil
}

// Close flushes buffered messages and stops the client.
func (s *Sink) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkClosed, err)
	}
	return nil
}
