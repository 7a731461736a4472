package usecase

import (
	"context"

	"github.com/tbarantsev/email-insights/internal/core/domain"
	"github.com/tbarantsev/email-insights/internal/core/ports"
)

// DashboardUseCase derives display-layer views from the current snapshot.
// Aggregates are recomputed on every call and never cached.
type DashboardUseCase struct {
	provider ports.SnapshotProvider
}

func NewDashboardUseCase(provider ports.SnapshotProvider) *DashboardUseCase {
	return &DashboardUseCase{provider: provider}
}

// Overview assembles the full dashboard payload. Degraded states are data,
// not errors: a failed fetch yields an overview with empty views and a
// cause.
func (uc *DashboardUseCase) Overview(ctx context.Context) domain.Overview {
	return uc.overviewFrom(uc.provider.Snapshot(ctx))
}

func (uc *DashboardUseCase) Records(ctx context.Context) domain.Snapshot {
	return uc.provider.Snapshot(ctx)
}

func (uc *DashboardUseCase) Latest(ctx context.Context) (domain.Record, error) {
	return Latest(uc.provider.Snapshot(ctx).Records)
}

func (uc *DashboardUseCase) CategoryView(ctx context.Context, field string) (domain.AggregateView, error) {
	return AggregateByCategory(uc.provider.Snapshot(ctx).Records, field)
}

func (uc *DashboardUseCase) DailyView(ctx context.Context) domain.AggregateView {
	return AggregateByDate(uc.provider.Snapshot(ctx).Records)
}

// Refresh forces a fetch and returns the resulting overview.
func (uc *DashboardUseCase) Refresh(ctx context.Context) domain.Overview {
	return uc.overviewFrom(uc.provider.Refresh(ctx))
}

func (uc *DashboardUseCase) overviewFrom(snap domain.Snapshot) domain.Overview {
	overview := domain.Overview{
		DataAvailable: snap.DataAvailable(),
		FetchedAt:     snap.FetchedAt,
		Source:        snap.Source,
		Cause:         snap.Cause,
		Warnings:      snap.Warnings,
		TotalRecords:  len(snap.Records),
		Aggregates:    make(map[string]domain.AggregateView, len(domain.CategoricalFields())),
		Daily:         AggregateByDate(snap.Records),
	}

	for _, field := range domain.CategoricalFields() {
		view, err := AggregateByCategory(snap.Records, field)
		if err != nil {
			continue
		}
		overview.Aggregates[field] = view
	}

	if latest, err := Latest(snap.Records); err == nil {
		overview.Latest = &latest
	}
	return overview
}
