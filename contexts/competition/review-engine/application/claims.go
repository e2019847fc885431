package application

import (
	"sync"
	"time"
)

const DefaultClaimTTL = 5 * time.Minute

// ClaimRegistry tracks advisory reviewer locks on pending submissions.
// The lock is a liveness aid against duplicate review assignment, not a
// correctness guard: the terminal transition is still protected by the
// pending-status check at the store. Locks are engine-local on purpose;
// a restart drops them and the pending rows simply become claimable again.
type ClaimRegistry struct {
	mu     sync.Mutex
	ttl    time.Duration
	claims map[string]claimRecord
}

type claimRecord struct {
	reviewer  string
	expiresAt time.Time
}

func NewClaimRegistry(ttl time.Duration) *ClaimRegistry {
	if ttl <= 0 {
		ttl = DefaultClaimTTL
	}
	return &ClaimRegistry{
		ttl:    ttl,
		claims: make(map[string]claimRecord),
	}
}

// TryClaim takes or renews the lock on a submission. It fails only when a
// different reviewer holds an unexpired lock.
func (r *ClaimRegistry) TryClaim(submissionID, reviewer string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, held := r.claims[submissionID]
	if held && current.reviewer != reviewer && now.Before(current.expiresAt) {
		return false
	}
	r.claims[submissionID] = claimRecord{
		reviewer:  reviewer,
		expiresAt: now.Add(r.ttl),
	}
	return true
}

// Holder returns the reviewer holding an unexpired lock, if any.
func (r *ClaimRegistry) Holder(submissionID string, now time.Time) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, held := r.claims[submissionID]
	if !held || !now.Before(current.expiresAt) {
		return "", false
	}
	return current.reviewer, true
}

// Release drops the lock once approve/reject completes.
func (r *ClaimRegistry) Release(submissionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.claims, submissionID)
}

// ReleaseExpired sweeps locks whose TTL elapsed and returns how many were
// dropped. A disconnected reviewer session cannot starve the queue.
func (r *ClaimRegistry) ReleaseExpired(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	released := 0
	for id, record := range r.claims {
		if !now.Before(record.expiresAt) {
			delete(r.claims, id)
			released++
		}
	}
	return released
}

// ReleaseAll clears every lock; used by semester reset.
func (r *ClaimRegistry) ReleaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claims = make(map[string]claimRecord)
}
