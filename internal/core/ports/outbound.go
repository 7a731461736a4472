package ports

import (
	"context"
	"time"

	"github.com/tbarantsev/email-insights/internal/core/domain"
)

// TableSource fetches one raw table from a remote tabular endpoint.
type TableSource interface {
	Name() string
	Fetch(ctx context.Context) (domain.RawTable, error)
}

// SnapshotCache memoizes the most recent snapshot for a short TTL.
type SnapshotCache interface {
	Get() (domain.Snapshot, bool)
	Put(s domain.Snapshot)
	Invalidate()
}

// Cache event names reported through PipelineObserver.
const (
	CacheHit        = "hit"
	CacheMiss       = "miss"
	CacheInvalidate = "invalidate"
)

// PipelineObserver receives pipeline telemetry. Implementations must be safe
// for concurrent use.
type PipelineObserver interface {
	FetchAttempted(source string, err error, elapsed time.Duration)
	CacheEvent(event string)
	TableNormalized(report domain.NormalizeReport)
	SnapshotStored(records int, degraded bool)
}
