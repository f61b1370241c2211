// Package tracking builds analytics trackers backed by the Segment client.
//
// The analytics domain package cannot import the Segment adapter, so the
// Segment default lives here, one layer up.
package tracking

import (
	"context"

	"github.com/okian/beacon/internal/adapters/segment"
	"github.com/okian/beacon/internal/domain/analytics"
)

// New builds trackers the way analytics.New does, with a default-configured
// Segment sink. Later options win, so WithSegment or analytics.WithSinkFactory
// in opts replace the default.
func New(ctx context.Context, writeKey string, active bool, opts ...analytics.Option) (*analytics.Trackers, error) {
	opts = append([]analytics.Option{WithSegment(segment.Config{})}, opts...)
	return analytics.New(ctx, writeKey, active, opts...)
}

// WithSegment sends events through a Segment client tuned by cfg.
func WithSegment(cfg segment.Config) analytics.Option {
	return analytics.WithSinkFactory(segment.Factory(cfg))
}
