package emitevents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/beacon/internal/adapters/segment"
	"github.com/okian/beacon/internal/domain/analytics"
	"github.com/okian/beacon/internal/tracking"
	"github.com/okian/beacon/pkg/logger"
)

// ErrNoWriteKey is returned when a live run has no write key.
var ErrNoWriteKey = errors.New("write key required unless dry-run")

const sampleStatus = 200

// Run emits the whole taxonomy once and flushes the client.
func Run(ctx context.Context, cfg *Config, log logger.Logger) (*Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.WriteKey == "" && !cfg.DryRun {
		return nil, ErrNoWriteKey
	}

	dry := &logSink{log: log.Named("dry-run")}
	sinkOpt := tracking.WithSegment(segment.Config{
		Endpoint:   cfg.Endpoint,
		BatchSize:  len(analytics.Taxonomy()),
		AppName:    "beacon-emit-events",
		AppVersion: cfg.AppVersion,
		Logger:     log.Named("segment"),
	})
	writeKey := cfg.WriteKey
	if cfg.DryRun {
		sinkOpt = analytics.WithSinkFactory(func(context.Context, string) (analytics.Sink, error) {
			return dry, nil
		})
		writeKey = "dry-run"
	}

	trackers, err := tracking.New(ctx, writeKey, true,
		sinkOpt,
		analytics.WithLogger(log.Named("analytics")))
	if err != nil {
		return nil, fmt.Errorf("build trackers: %w", err)
	}

	res := &Result{}
	for _, c := range calls(cfg) {
		res.Attempted++
		if c.fire(ctx, trackers) {
			res.Forwarded++
		} else {
			res.Failed = append(res.Failed, c.name)
		}
	}

	if err := closeWithin(trackers, cfg.Timeout); err != nil {
		return res, fmt.Errorf("flush: %w", err)
	}
	res.Logged = dry.Count()
	log.Info(ctx, "emitted taxonomy",
		logger.Int("attempted", res.Attempted),
		logger.Int("logged", res.Logged),
		logger.Int("forwarded", res.Forwarded),
		logger.Bool("dry_run", cfg.DryRun))
	return res, nil
}

type call struct {
	name string
	fire func(ctx context.Context, t *analytics.Trackers) bool
}

// calls lists one invocation per tracking method. space_update_app is covered
// by TrackSpaceUpdate, which emits it as its second event.
func calls(cfg *Config) []call {
	return []call{
		{analytics.EventPinDB, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.Node.TrackPinDB(ctx, cfg.DID, false)
		}},
		{analytics.EventPinDBAddress, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.Node.TrackPinDBAddress(ctx, cfg.Address)
		}},
		{analytics.EventSyncDB, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.Node.TrackSyncDB(ctx, cfg.Address)
		}},
		{analytics.EventInfraMetrics, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.Node.TrackInfraMetrics(ctx)
		}},
		{analytics.EventSpaceUpdate, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.Node.TrackSpaceUpdate(ctx, cfg.Address, cfg.Space, cfg.DID)
		}},
		{analytics.EventPublicUpdate, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.Node.TrackPublicUpdate(ctx, cfg.Address, cfg.DID)
		}},
		{analytics.EventPrivateUpdate, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.Node.TrackPrivateUpdate(ctx, cfg.Address, cfg.DID)
		}},
		{analytics.EventRootUpdate, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.Node.TrackRootUpdate(ctx, cfg.DID)
		}},
		{analytics.EventThreadUpdate, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.Node.TrackThreadUpdate(ctx, cfg.Address, cfg.Space, "general")
		}},
		{analytics.EventAPIListSpaces, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.API.TrackListSpaces(ctx, cfg.Address, sampleStatus, cfg.Origin)
		}},
		{analytics.EventAPIGetConfig, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.API.TrackGetConfig(ctx, cfg.Address, sampleStatus, cfg.Origin)
		}},
		{analytics.EventAPIGetThread, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.API.TrackGetThread(ctx, cfg.Address, sampleStatus, cfg.Origin)
		}},
		{analytics.EventAPIGetSpace, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.API.TrackGetSpace(ctx, cfg.Address, cfg.Space, true, sampleStatus, cfg.Origin)
		}},
		{analytics.EventAPIGetProfile, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.API.TrackGetProfile(ctx, cfg.Address, true, sampleStatus, cfg.Origin)
		}},
		{analytics.EventAPIGetProfiles, func(ctx context.Context, t *analytics.Trackers) bool {
			return t.API.TrackGetProfiles(ctx, sampleStatus, cfg.Origin)
		}},
	}
}

// closeWithin closes trackers, giving up after timeout (0 waits forever).
func closeWithin(t *analytics.Trackers, timeout time.Duration) error {
	if timeout <= 0 {
		return t.Close()
	}
	done := make(chan error, 1)
	go func() { done <- t.Close() }()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("client did not flush within %s", timeout)
	}
}
