package analytics

import (
	"context"
	"runtime"
)

const bytesPerMegabyte = 1024 * 1024

// MemoryStats is a snapshot of the host process memory, in bytes.
type MemoryStats struct {
	Resident  uint64
	HeapTotal uint64
	HeapUsed  uint64
}

// MemoryReader samples process memory for infra_metrics.
type MemoryReader interface {
	ReadMemory(ctx context.Context) (MemoryStats, error)
}

// RuntimeMemory reads memory figures from the Go runtime only. Resident is
// approximated by the total bytes obtained from the OS.
type RuntimeMemory struct{}

// ReadMemory implements MemoryReader.
func (RuntimeMemory) ReadMemory(context.Context) (MemoryStats, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemoryStats{
		Resident:  m.Sys,
		HeapTotal: m.HeapSys,
		HeapUsed:  m.HeapAlloc,
	}, nil
}

func megabytes(b uint64) float64 {
	return float64(b) / bytesPerMegabyte
}
