package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tbarantsev/email-insights/internal/core/domain"
	"github.com/tbarantsev/email-insights/internal/core/ports"
)

// SnapshotUseCase owns the fetch-normalize-cache pass. It serializes the
// pass behind a mutex so concurrent consumers and the background refresher
// share one fetch, and it never returns an error: a failed fetch produces a
// degraded snapshot carrying its cause.
type SnapshotUseCase struct {
	mu sync.Mutex

	primary    ports.TableSource
	fallback   ports.TableSource
	cache      ports.SnapshotCache
	normalizer *Normalizer
	observer   ports.PipelineObserver
}

// NewSnapshotUseCase wires the pipeline. fallback may be nil when no
// alternate source is configured; at most one alternate is ever tried.
func NewSnapshotUseCase(
	primary ports.TableSource,
	fallback ports.TableSource,
	cache ports.SnapshotCache,
	normalizer *Normalizer,
	observer ports.PipelineObserver,
) *SnapshotUseCase {
	return &SnapshotUseCase{
		primary:    primary,
		fallback:   fallback,
		cache:      cache,
		normalizer: normalizer,
		observer:   observer,
	}
}

// Snapshot returns the cached snapshot while it is fresh and refetches
// otherwise.
func (uc *SnapshotUseCase) Snapshot(ctx context.Context) domain.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if snap, ok := uc.cache.Get(); ok {
		uc.observer.CacheEvent(ports.CacheHit)
		return snap
	}
	uc.observer.CacheEvent(ports.CacheMiss)
	return uc.fetchAndStore(ctx)
}

// Refresh bypasses the TTL: it invalidates the cache and fetches now.
func (uc *SnapshotUseCase) Refresh(ctx context.Context) domain.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.cache.Invalidate()
	uc.observer.CacheEvent(ports.CacheInvalidate)
	return uc.fetchAndStore(ctx)
}

// Invalidate drops the cached snapshot without fetching.
func (uc *SnapshotUseCase) Invalidate() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.cache.Invalidate()
	uc.observer.CacheEvent(ports.CacheInvalidate)
}

func (uc *SnapshotUseCase) fetchAndStore(ctx context.Context) domain.Snapshot {
	table, servedBy, fetchErr := uc.fetchTable(ctx)

	snap := domain.Snapshot{
		FetchedAt: time.Now().UTC(),
		Source:    servedBy,
	}
	if fetchErr != nil {
		snap.Cause = fetchErr.Error()
	} else {
		records, report := uc.normalizer.Normalize(table)
		uc.observer.TableNormalized(report)
		snap.Records = records
		snap.Warnings = schemaWarnings(report, table.Columns)
	}

	// Failed passes are cached too, so a dead upstream is probed at most
	// once per TTL window.
	uc.cache.Put(snap)
	uc.observer.SnapshotStored(len(snap.Records), snap.Cause != "")
	return snap
}

// fetchTable tries the primary source, then the alternate if one exists.
func (uc *SnapshotUseCase) fetchTable(ctx context.Context) (domain.RawTable, string, error) {
	start := time.Now()
	table, err := uc.primary.Fetch(ctx)
	uc.observer.FetchAttempted(uc.primary.Name(), err, time.Since(start))
	if err == nil {
		return table, uc.primary.Name(), nil
	}

	if uc.fallback == nil {
		return domain.RawTable{}, "", fmt.Errorf("%s: %w", uc.primary.Name(), err)
	}

	start = time.Now()
	table, fallbackErr := uc.fallback.Fetch(ctx)
	uc.observer.FetchAttempted(uc.fallback.Name(), fallbackErr, time.Since(start))
	if fallbackErr == nil {
		return table, uc.fallback.Name(), nil
	}

	return domain.RawTable{}, "", fmt.Errorf("%s: %w; %s: %v", uc.primary.Name(), err, uc.fallback.Name(), fallbackErr)
}

func schemaWarnings(report domain.NormalizeReport, columns []string) []string {
	if len(report.MissingColumns) == 0 {
		return nil
	}

	available := "none"
	if len(columns) > 0 {
		available = strings.Join(columns, ", ")
	}

	warnings := make([]string, 0, len(report.MissingColumns))
	for _, field := range report.MissingColumns {
		warnings = append(warnings, fmt.Sprintf("no source column for field %q; available columns: %s", field, available))
	}
	return warnings
}
