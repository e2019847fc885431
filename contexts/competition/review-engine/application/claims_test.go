package application

import (
	"testing"
	"time"
)

func TestClaimRegistryConflictAndRenewal(t *testing.T) {
	registry := NewClaimRegistry(time.Minute)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	if !registry.TryClaim("sub-1", "alice", now) {
		t.Fatalf("first claim should succeed")
	}
	if registry.TryClaim("sub-1", "bob", now.Add(30*time.Second)) {
		t.Fatalf("competing claim inside the TTL should fail")
	}
	if !registry.TryClaim("sub-1", "alice", now.Add(30*time.Second)) {
		t.Fatalf("holder renewal should succeed")
	}

	// Renewal pushed the expiry forward from the renewal time.
	if registry.TryClaim("sub-1", "bob", now.Add(80*time.Second)) {
		t.Fatalf("claim should still be held after renewal")
	}
	if !registry.TryClaim("sub-1", "bob", now.Add(2*time.Minute)) {
		t.Fatalf("expired claim should be takeable")
	}
}

func TestClaimRegistryHolder(t *testing.T) {
	registry := NewClaimRegistry(time.Minute)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	if _, held := registry.Holder("sub-1", now); held {
		t.Fatalf("unclaimed submission has no holder")
	}
	registry.TryClaim("sub-1", "alice", now)
	holder, held := registry.Holder("sub-1", now.Add(time.Second))
	if !held || holder != "alice" {
		t.Fatalf("expected alice holding, got %q held=%v", holder, held)
	}
	if _, held := registry.Holder("sub-1", now.Add(time.Hour)); held {
		t.Fatalf("expired lock must not report a holder")
	}
}

func TestClaimRegistryRelease(t *testing.T) {
	registry := NewClaimRegistry(time.Minute)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	registry.TryClaim("sub-1", "alice", now)
	registry.Release("sub-1")
	if !registry.TryClaim("sub-1", "bob", now) {
		t.Fatalf("released claim should be takeable immediately")
	}
}

func TestClaimRegistryReleaseExpiredSweep(t *testing.T) {
	registry := NewClaimRegistry(time.Minute)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	registry.TryClaim("sub-1", "alice", now)
	registry.TryClaim("sub-2", "bob", now.Add(30*time.Second))

	if released := registry.ReleaseExpired(now.Add(90 * time.Second)); released != 1 {
		t.Fatalf("expected one expired lock swept, got %d", released)
	}
	if _, held := registry.Holder("sub-1", now.Add(90 * time.Second)); held {
		t.Fatalf("swept lock must be gone")
	}
	if holder, held := registry.Holder("sub-2", now.Add(80*time.Second)); !held || holder != "bob" {
		t.Fatalf("live lock must survive the sweep, got %q held=%v", holder, held)
	}
}

func TestClaimRegistryReleaseAll(t *testing.T) {
	registry := NewClaimRegistry(time.Minute)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	registry.TryClaim("sub-1", "alice", now)
	registry.TryClaim("sub-2", "bob", now)
	registry.ReleaseAll()

	if !registry.TryClaim("sub-1", "carol", now) || !registry.TryClaim("sub-2", "carol", now) {
		t.Fatalf("all locks should be gone after ReleaseAll")
	}
}

func TestClaimRegistryDefaultTTL(t *testing.T) {
	registry := NewClaimRegistry(0)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	registry.TryClaim("sub-1", "alice", now)
	if registry.TryClaim("sub-1", "bob", now.Add(4*time.Minute)) {
		t.Fatalf("default TTL should keep the lock for five minutes")
	}
	if !registry.TryClaim("sub-1", "bob", now.Add(6*time.Minute)) {
		t.Fatalf("lock should expire after the default TTL")
	}
}
