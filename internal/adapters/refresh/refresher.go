package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/tbarantsev/email-insights/internal/core/ports"
)

// Refresher polls the snapshot provider on a fixed cadence so the dashboard
// always serves warm data. Each tick goes through the provider's cache, so
// a tick landing inside a fresh TTL window costs no network call.
type Refresher struct {
	provider ports.SnapshotProvider
	interval time.Duration
}

func New(provider ports.SnapshotProvider, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Refresher{provider: provider, interval: interval}
}

// Run blocks until ctx is canceled. The first pass runs immediately so data
// is available as soon as the API starts accepting requests.
func (r *Refresher) Run(ctx context.Context) {
	r.tick(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("snapshot_refresher_stopped")
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	snap := r.provider.Snapshot(ctx)
	if snap.Cause != "" {
		slog.Warn("snapshot_refresh_degraded",
			"cause", snap.Cause,
		)
		return
	}
	slog.Info("snapshot_refreshed",
		"records", len(snap.Records),
		"source", snap.Source,
		"warnings", len(snap.Warnings),
	)
}
