package stats

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"phonedb/internal/device"
)

const DefaultInterval = 60 * time.Second

type Snapshot struct {
	Total  uint64
	Opens  uint64
	Writes uint64
	Reads  uint64
}

// Reporter counts device events and periodically logs how many arrived since
// the previous report.
type Reporter struct {
	interval time.Duration

	opens  atomic.Uint64
	writes atomic.Uint64
	reads  atomic.Uint64
	total  atomic.Uint64

	previous atomic.Uint64
}

func NewReporter(interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reporter{interval: interval}
}

func (r *Reporter) Observe(ev device.Event) {
	r.total.Add(1)
	switch ev {
	case device.EventOpen:
		r.opens.Add(1)
	case device.EventWrite:
		r.writes.Add(1)
	case device.EventRead:
		r.reads.Add(1)
	}
}

func (r *Reporter) Snapshot() Snapshot {
	return Snapshot{
		Total:  r.total.Load(),
		Opens:  r.opens.Load(),
		Writes: r.writes.Load(),
		Reads:  r.reads.Load(),
	}
}

// Tick logs and returns the number of events since the previous tick.
func (r *Reporter) Tick() uint64 {
	total := r.total.Load()
	delta := total - r.previous.Swap(total)
	slog.Info("device events since last report",
		"events", delta,
		"interval", r.interval,
		"total", total,
	)
	return delta
}

// Run ticks every interval until ctx is done.
func (r *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("stats reporter started", "interval", r.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("stats reporter stopped")
			return nil
		case <-ticker.C:
			r.Tick()
		}
	}
}
