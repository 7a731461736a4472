package ports

import (
	"context"

	"github.com/tbarantsev/email-insights/internal/core/domain"
)

// SnapshotProvider is the inbound contract for cached snapshot access.
// Implementations never return errors: a failed fetch yields a degraded
// snapshot carrying its cause.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) domain.Snapshot
	Refresh(ctx context.Context) domain.Snapshot
	Invalidate()
}

// DashboardService is the inbound read model for the display layer.
type DashboardService interface {
	Overview(ctx context.Context) domain.Overview
	Records(ctx context.Context) domain.Snapshot
	Latest(ctx context.Context) (domain.Record, error)
	CategoryView(ctx context.Context, field string) (domain.AggregateView, error)
	DailyView(ctx context.Context) domain.AggregateView
	Refresh(ctx context.Context) domain.Overview
}
