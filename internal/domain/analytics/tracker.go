package analytics

import (
	"context"
	"time"

	"github.com/okian/beacon/pkg/logger"
	"github.com/okian/beacon/pkg/metrics"
)

// emitter is the tracking core shared by the Node and API surfaces.
// Its fields are set once by New and never reassigned.
type emitter struct {
	sink Sink // nil when tracking is disabled
	log  logger.Logger
	now  func() time.Time
}

// emit stamps e and hands it to the sink. It reports whether the sink accepted
// the event; a disabled emitter drops it and returns false.
func (em *emitter) emit(ctx context.Context, e Event, anonymousID string) bool {
	if em.sink == nil {
		metrics.RecordEventDropped(e.Name, metrics.ReasonDisabled)
		return false
	}

	if anonymousID == "" {
		anonymousID = FallbackAnonymousID
	}
	if e.Properties == nil {
		e.Properties = Properties{}
	}
	ts := em.now()
	e.AnonymousID = anonymousID
	e.Timestamp = ts
	e.Properties[PropTime] = ts.UnixMilli()

	if err := em.sink.Track(ctx, e); err != nil {
		em.log.Warn(ctx, "analytics event rejected by client",
			logger.String("event", e.Name), logger.Error(err))
		metrics.RecordEventDropped(e.Name, metrics.ReasonClientError)
		return false
	}
	metrics.RecordEventEmitted(e.Name)
	return true
}

func (em *emitter) enabled() bool { return em.sink != nil }
