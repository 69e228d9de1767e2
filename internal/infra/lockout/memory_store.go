// Package lockout provides the in-memory implementation of the per-IP
// login failure table.
package lockout

import (
	"sync"
	"time"

	"showreel/config"
	"showreel/internal/domain/entity"
	"showreel/internal/domain/repository"
)

// memoryStore keeps lockout entries in a mutex-guarded map. The mutex
// serializes the read-modify-write of RecordFailure, so concurrent failures
// from one IP cannot lose updates. Entries whose block has elapsed are
// cleared lazily on access and swept by Prune.
type memoryStore struct {
	mu            sync.Mutex
	entries       map[string]*entity.LockoutEntry
	maxAttempts   int
	blockDuration time.Duration

	// now is a seam for tests; production uses time.Now.
	now func() time.Time
}

// NewMemoryStore is the constructor for memoryStore, wired from configuration.
func NewMemoryStore(cfg *config.Config) repository.LockoutStore {
	return newMemoryStore(cfg.Auth.Lockout.MaxAttempts, cfg.Auth.Lockout.BlockDuration, time.Now)
}

// NewMemoryStoreWithClock constructs a store with an explicit policy and
// clock, for tests that need deterministic time.
func NewMemoryStoreWithClock(maxAttempts int, blockDuration time.Duration, now func() time.Time) repository.LockoutStore {
	return newMemoryStore(maxAttempts, blockDuration, now)
}

func newMemoryStore(maxAttempts int, blockDuration time.Duration, now func() time.Time) *memoryStore {
	return &memoryStore{
		entries:       make(map[string]*entity.LockoutEntry),
		maxAttempts:   maxAttempts,
		blockDuration: blockDuration,
		now:           now,
	}
}

// Status returns the entry for an IP. An expired block is dropped here, so
// a caller never observes a stale block.
func (s *memoryStore) Status(ip string) (entity.LockoutEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[ip]
	if !ok {
		return entity.LockoutEntry{}, false
	}
	if entry.Expired(s.now()) {
		delete(s.entries, ip)

		return entity.LockoutEntry{}, false
	}

	return *entry, true
}

// RecordFailure increments the counter for an IP and sets the block once the
// counter reaches the threshold. A previously expired block restarts the
// count from one.
func (s *memoryStore) RecordFailure(ip string) entity.LockoutEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[ip]
	if !ok || entry.Expired(now) {
		entry = &entity.LockoutEntry{}
		s.entries[ip] = entry
	}

	entry.Count++
	if entry.Count >= s.maxAttempts {
		entry.BlockedUntil = now.Add(s.blockDuration)
	}

	return *entry
}

// Reset clears the entry for an IP entirely.
func (s *memoryStore) Reset(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, ip)
}

// ListBlocked returns a snapshot of the IPs with an active block.
func (s *memoryStore) ListBlocked() map[string]entity.LockoutEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	blocked := make(map[string]entity.LockoutEntry)
	for ip, entry := range s.entries {
		if entry.BlockedAt(now) {
			blocked[ip] = *entry
		}
	}

	return blocked
}

// ClearAll drops every entry, blocked or counting.
func (s *memoryStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*entity.LockoutEntry)
}

// Prune drops entries whose block has elapsed. Counting entries are kept:
// the counter only resets via success, block expiry, or an administrator.
func (s *memoryStore) Prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for ip, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, ip)
		}
	}
}
