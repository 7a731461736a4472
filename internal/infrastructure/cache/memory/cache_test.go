package memory

import (
	"testing"
	"time"

	"github.com/tbarantsev/email-insights/internal/core/domain"
)

func TestGetReturnsFreshSnapshot(t *testing.T) {
	cache := New(1 * time.Minute)
	cache.Put(domain.Snapshot{Source: "sheets-export", Records: []domain.Record{{Department: "IT"}}})

	snap, ok := cache.Get()
	if !ok {
		t.Fatal("expected fresh snapshot to be returned")
	}
	if snap.Source != "sheets-export" || len(snap.Records) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestGetMissesOnEmptyCache(t *testing.T) {
	cache := New(1 * time.Minute)
	if _, ok := cache.Get(); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestGetMissesAfterTTL(t *testing.T) {
	cache := New(5 * time.Millisecond)
	cache.Put(domain.Snapshot{Source: "sheets-export"})

	time.Sleep(15 * time.Millisecond)
	if _, ok := cache.Get(); ok {
		t.Fatal("expected miss after ttl expiry")
	}
}

func TestInvalidateDropsSnapshot(t *testing.T) {
	cache := New(1 * time.Minute)
	cache.Put(domain.Snapshot{Source: "sheets-export"})

	cache.Invalidate()
	if _, ok := cache.Get(); ok {
		t.Fatal("expected miss after invalidation")
	}
}

func TestPutRestartsTTLWindow(t *testing.T) {
	cache := New(30 * time.Millisecond)
	cache.Put(domain.Snapshot{Source: "sheets-export"})

	time.Sleep(20 * time.Millisecond)
	cache.Put(domain.Snapshot{Source: "csv-export"})
	time.Sleep(20 * time.Millisecond)

	snap, ok := cache.Get()
	if !ok {
		t.Fatal("expected second put to restart the ttl window")
	}
	if snap.Source != "csv-export" {
		t.Fatalf("expected latest snapshot, got %q", snap.Source)
	}
}

func TestNonPositiveTTLDisablesCaching(t *testing.T) {
	cache := New(0)
	cache.Put(domain.Snapshot{Source: "sheets-export"})

	if _, ok := cache.Get(); ok {
		t.Fatal("expected zero ttl to disable caching")
	}
}
