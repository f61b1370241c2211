// Package procmem samples the memory footprint of the running process.
package procmem

import (
	"context"

	"github.com/prometheus/procfs"

	"github.com/okian/beacon/internal/domain/analytics"
	"github.com/okian/beacon/pkg/logger"
	"github.com/okian/beacon/pkg/metrics"
)

// Reader reports resident memory from /proc and heap figures from the Go
// runtime. Where /proc is unavailable the runtime approximation is kept.
type Reader struct {
	self func() (procfs.Proc, error)
	log  logger.Logger
}

// NewReader returns a Reader for the current process.
func NewReader(log logger.Logger) *Reader {
	if log == nil {
		log = logger.Nop()
	}
	return &Reader{self: procfs.Self, log: log}
}

// ReadMemory implements analytics.MemoryReader.
func (r *Reader) ReadMemory(ctx context.Context) (analytics.MemoryStats, error) {
	stats, err := analytics.RuntimeMemory{}.ReadMemory(ctx)
	if err != nil {
		return stats, err
	}

	if rss, ok := r.resident(ctx); ok {
		stats.Resident = rss
	}
	metrics.UpdateSystemMemoryUsage(stats.Resident)
	return stats, nil
}

func (r *Reader) resident(ctx context.Context) (uint64, bool) {
	p, err := r.self()
	if err != nil {
		r.log.Debug(ctx, "procfs unavailable, using runtime memory", logger.Error(err))
		return 0, false
	}
	st, err := p.Stat()
	if err != nil {
		r.log.Debug(ctx, "read process stat", logger.Error(err))
		return 0, false
	}
	rss := st.ResidentMemory()
	if rss <= 0 {
		return 0, false
	}
	return uint64(rss), true
}
