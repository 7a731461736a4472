package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tbarantsev/email-insights/internal/core/domain"
	"github.com/tbarantsev/email-insights/internal/core/ports"
)

type sourceFake struct {
	name  string
	table domain.RawTable
	err   error
	calls int
}

func (f *sourceFake) Name() string { return f.name }

func (f *sourceFake) Fetch(context.Context) (domain.RawTable, error) {
	f.calls++
	if f.err != nil {
		return domain.RawTable{}, f.err
	}
	return f.table, nil
}

type cacheFake struct {
	snap  domain.Snapshot
	valid bool
	puts  int
}

func (c *cacheFake) Get() (domain.Snapshot, bool) {
	if !c.valid {
		return domain.Snapshot{}, false
	}
	return c.snap, true
}

func (c *cacheFake) Put(s domain.Snapshot) {
	c.snap = s
	c.valid = true
	c.puts++
}

func (c *cacheFake) Invalidate() {
	c.snap = domain.Snapshot{}
	c.valid = false
}

type observerFake struct {
	fetches  []string
	events   []string
	reports  []domain.NormalizeReport
	stored   []int
	degraded []bool
}

func (o *observerFake) FetchAttempted(source string, _ error, _ time.Duration) {
	o.fetches = append(o.fetches, source)
}

func (o *observerFake) CacheEvent(event string) {
	o.events = append(o.events, event)
}

func (o *observerFake) TableNormalized(report domain.NormalizeReport) {
	o.reports = append(o.reports, report)
}

func (o *observerFake) SnapshotStored(records int, degraded bool) {
	o.stored = append(o.stored, records)
	o.degraded = append(o.degraded, degraded)
}

func newPipelineTable() domain.RawTable {
	return tableFrom(
		[]string{"predicted_intent", "routing_department", "urgency_level", "date_of_issue", "confidence"},
		[]string{"billing", "Finance", "High", "2024-01-15", "0.91"},
		[]string{"support", "IT", "Low", "2024-01-16", "0.42"},
	)
}

func TestSnapshotFetchesOnceWhileCached(t *testing.T) {
	primary := &sourceFake{name: "sheets-export", table: newPipelineTable()}
	cache := &cacheFake{}
	observer := &observerFake{}
	uc := NewSnapshotUseCase(primary, nil, cache, newTestNormalizer(), observer)

	first := uc.Snapshot(context.Background())
	second := uc.Snapshot(context.Background())

	if primary.calls != 1 {
		t.Fatalf("expected one fetch while cached, got %d", primary.calls)
	}
	if !reflect.DeepEqual(first.Records, second.Records) {
		t.Fatal("cached snapshot must serve identical records")
	}
	if len(first.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(first.Records))
	}
	if first.Source != "sheets-export" || first.Cause != "" {
		t.Fatalf("unexpected snapshot metadata: source=%q cause=%q", first.Source, first.Cause)
	}
	if first.FetchedAt.IsZero() {
		t.Fatal("expected fetch timestamp")
	}
	if !reflect.DeepEqual(observer.events, []string{ports.CacheMiss, ports.CacheHit}) {
		t.Fatalf("unexpected cache events: %v", observer.events)
	}
	if !reflect.DeepEqual(observer.stored, []int{2}) || observer.degraded[0] {
		t.Fatalf("unexpected store telemetry: %v %v", observer.stored, observer.degraded)
	}
}

func TestSnapshotUsesFallbackWhenPrimaryFails(t *testing.T) {
	primary := &sourceFake{name: "sheets-export", err: errors.New("status 502")}
	fallback := &sourceFake{name: "csv-export", table: newPipelineTable()}
	observer := &observerFake{}
	uc := NewSnapshotUseCase(primary, fallback, &cacheFake{}, newTestNormalizer(), observer)

	snap := uc.Snapshot(context.Background())

	if snap.Source != "csv-export" {
		t.Fatalf("expected snapshot served by fallback, got %q", snap.Source)
	}
	if snap.Cause != "" {
		t.Fatalf("recovered pass must not carry a cause, got %q", snap.Cause)
	}
	if len(snap.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(snap.Records))
	}
	if !reflect.DeepEqual(observer.fetches, []string{"sheets-export", "csv-export"}) {
		t.Fatalf("unexpected fetch order: %v", observer.fetches)
	}
}

func TestSnapshotWithoutFallbackKeepsCause(t *testing.T) {
	primary := &sourceFake{name: "sheets-export", err: errors.New("connection refused")}
	uc := NewSnapshotUseCase(primary, nil, &cacheFake{}, newTestNormalizer(), &observerFake{})

	snap := uc.Snapshot(context.Background())

	if snap.DataAvailable() {
		t.Fatal("failed pass must not report data")
	}
	if !strings.Contains(snap.Cause, "sheets-export") || !strings.Contains(snap.Cause, "connection refused") {
		t.Fatalf("cause must name the source and the error, got %q", snap.Cause)
	}
}

func TestSnapshotCachesFailedPass(t *testing.T) {
	primary := &sourceFake{name: "sheets-export", err: errors.New("boom")}
	fallback := &sourceFake{name: "csv-export", err: errors.New("also down")}
	cache := &cacheFake{}
	observer := &observerFake{}
	uc := NewSnapshotUseCase(primary, fallback, cache, newTestNormalizer(), observer)

	first := uc.Snapshot(context.Background())
	second := uc.Snapshot(context.Background())

	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("failed pass must be cached: primary=%d fallback=%d", primary.calls, fallback.calls)
	}
	if !strings.Contains(first.Cause, "sheets-export") || !strings.Contains(first.Cause, "csv-export") {
		t.Fatalf("cause must mention both sources, got %q", first.Cause)
	}
	if second.Cause != first.Cause {
		t.Fatalf("cached cause drifted: %q vs %q", second.Cause, first.Cause)
	}
	if cache.puts != 1 {
		t.Fatalf("expected one cache write, got %d", cache.puts)
	}
	if len(observer.degraded) != 1 || !observer.degraded[0] {
		t.Fatalf("expected degraded store telemetry: %v", observer.degraded)
	}
}

func TestRefreshBypassesFreshCache(t *testing.T) {
	primary := &sourceFake{name: "sheets-export", table: newPipelineTable()}
	observer := &observerFake{}
	uc := NewSnapshotUseCase(primary, nil, &cacheFake{}, newTestNormalizer(), observer)

	uc.Snapshot(context.Background())
	snap := uc.Refresh(context.Background())

	if primary.calls != 2 {
		t.Fatalf("refresh must refetch, got %d calls", primary.calls)
	}
	if len(snap.Records) != 2 {
		t.Fatalf("expected 2 records after refresh, got %d", len(snap.Records))
	}
	if !reflect.DeepEqual(observer.events, []string{ports.CacheMiss, ports.CacheInvalidate}) {
		t.Fatalf("unexpected cache events: %v", observer.events)
	}
}

func TestInvalidateForcesNextFetch(t *testing.T) {
	primary := &sourceFake{name: "sheets-export", table: newPipelineTable()}
	observer := &observerFake{}
	uc := NewSnapshotUseCase(primary, nil, &cacheFake{}, newTestNormalizer(), observer)

	uc.Snapshot(context.Background())
	uc.Invalidate()
	uc.Snapshot(context.Background())

	if primary.calls != 2 {
		t.Fatalf("invalidate must force a refetch, got %d calls", primary.calls)
	}
	want := []string{ports.CacheMiss, ports.CacheInvalidate, ports.CacheMiss}
	if !reflect.DeepEqual(observer.events, want) {
		t.Fatalf("unexpected cache events: %v", observer.events)
	}
}

func TestSnapshotReportsMissingColumnWarnings(t *testing.T) {
	table := tableFrom(
		[]string{"predicted_intent", "email_subject"},
		[]string{"billing", "Invoice overdue"},
	)
	primary := &sourceFake{name: "sheets-export", table: table}
	uc := NewSnapshotUseCase(primary, nil, &cacheFake{}, newTestNormalizer(), &observerFake{})

	snap := uc.Snapshot(context.Background())

	if len(snap.Warnings) == 0 {
		t.Fatal("expected schema warnings for missing columns")
	}
	found := false
	for _, warning := range snap.Warnings {
		if strings.Contains(warning, domain.FieldUrgencyLevel) && strings.Contains(warning, "email_subject") {
			found = true
		}
	}
	if !found {
		t.Fatalf("warning must name the field and list available columns, got %v", snap.Warnings)
	}
}

func TestSnapshotHeaderOnlyTable(t *testing.T) {
	table := domain.RawTable{Columns: []string{"predicted_intent"}}
	primary := &sourceFake{name: "sheets-export", table: table}
	uc := NewSnapshotUseCase(primary, nil, &cacheFake{}, newTestNormalizer(), &observerFake{})

	snap := uc.Snapshot(context.Background())

	if snap.DataAvailable() {
		t.Fatal("header-only payload holds no data")
	}
	if snap.Cause != "" {
		t.Fatalf("header-only payload is not a failure, got cause %q", snap.Cause)
	}
	if len(snap.Records) != 0 {
		t.Fatalf("expected no records, got %d", len(snap.Records))
	}
}
