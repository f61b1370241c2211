package segment

import (
	"context"
	"fmt"

	segment "github.com/segmentio/analytics-go/v3"

	"github.com/okian/beacon/pkg/logger"
	"github.com/okian/beacon/pkg/metrics"
)

// clientLogger routes the Segment client's own logging through our logger.
type clientLogger struct {
	log logger.Logger
}

func (l clientLogger) Logf(format string, args ...any) {
	l.log.Debug(context.Background(), fmt.Sprintf(format, args...))
}

func (l clientLogger) Errorf(format string, args ...any) {
	l.log.Warn(context.Background(), fmt.Sprintf(format, args...))
}

// deliveryCallback counts the asynchronous outcome of every message.
type deliveryCallback struct {
	log logger.Logger
}

func (c deliveryCallback) Success(segment.Message) {
	metrics.RecordDelivery(metrics.DeliverySuccess)
}

func (c deliveryCallback) Failure(msg segment.Message, err error) {
	metrics.RecordDelivery(metrics.DeliveryFailure)
	fields := []logger.Field{logger.Error(err)}
	if t, ok := msg.(segment.Track); ok {
		fields = append(fields, logger.String("event", t.Event))
	}
	c.log.Warn(context.Background(), "segment delivery failed", fields...)
}
