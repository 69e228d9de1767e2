package lockout

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMaxAttempts   = 5
	testBlockDuration = 15 * time.Minute
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newTestStore() (*memoryStore, *fakeClock) {
	clock := newFakeClock()

	return newMemoryStore(testMaxAttempts, testBlockDuration, clock.Now), clock
}

func TestMemoryStore_CountsFailures(t *testing.T) {
	store, _ := newTestStore()

	for i := 1; i < testMaxAttempts; i++ {
		entry := store.RecordFailure("203.0.113.7")
		assert.Equal(t, i, entry.Count)
		assert.True(t, entry.BlockedUntil.IsZero(), "should not block below threshold")
	}

	entry, ok := store.Status("203.0.113.7")
	require.True(t, ok)
	assert.Equal(t, testMaxAttempts-1, entry.Count)
	assert.False(t, entry.BlockedAt(store.now()))
}

func TestMemoryStore_BlocksAtThreshold(t *testing.T) {
	store, clock := newTestStore()

	var entry = store.RecordFailure("203.0.113.7")
	for i := 1; i < testMaxAttempts; i++ {
		entry = store.RecordFailure("203.0.113.7")
	}

	assert.Equal(t, testMaxAttempts, entry.Count)
	assert.True(t, entry.BlockedAt(clock.Now()))
	assert.Equal(t, clock.Now().Add(testBlockDuration), entry.BlockedUntil)
}

func TestMemoryStore_BlockExpiresLazily(t *testing.T) {
	store, clock := newTestStore()

	for i := 0; i < testMaxAttempts; i++ {
		store.RecordFailure("203.0.113.7")
	}

	_, ok := store.Status("203.0.113.7")
	require.True(t, ok, "blocked entry should be visible")

	clock.Advance(testBlockDuration + time.Second)

	_, ok = store.Status("203.0.113.7")
	assert.False(t, ok, "expired block should read as absent")

	// A failure after expiry starts a fresh count.
	entry := store.RecordFailure("203.0.113.7")
	assert.Equal(t, 1, entry.Count)
}

func TestMemoryStore_ResetClearsEntry(t *testing.T) {
	store, _ := newTestStore()

	store.RecordFailure("203.0.113.7")
	store.RecordFailure("203.0.113.7")
	store.Reset("203.0.113.7")

	_, ok := store.Status("203.0.113.7")
	assert.False(t, ok)

	entry := store.RecordFailure("203.0.113.7")
	assert.Equal(t, 1, entry.Count, "count restarts from one after reset")
}

func TestMemoryStore_IndependentIPs(t *testing.T) {
	store, clock := newTestStore()

	for i := 0; i < testMaxAttempts; i++ {
		store.RecordFailure("203.0.113.7")
	}
	store.RecordFailure("198.51.100.9")

	blockedEntry, ok := store.Status("203.0.113.7")
	require.True(t, ok)
	assert.True(t, blockedEntry.BlockedAt(clock.Now()))

	otherEntry, ok := store.Status("198.51.100.9")
	require.True(t, ok)
	assert.False(t, otherEntry.BlockedAt(clock.Now()))
	assert.Equal(t, 1, otherEntry.Count)
}

func TestMemoryStore_ListBlocked(t *testing.T) {
	store, _ := newTestStore()

	for i := 0; i < testMaxAttempts; i++ {
		store.RecordFailure("203.0.113.7")
	}
	store.RecordFailure("198.51.100.9") // counting, not blocked

	blocked := store.ListBlocked()
	assert.Len(t, blocked, 1)
	assert.Contains(t, blocked, "203.0.113.7")
}

func TestMemoryStore_ClearAll(t *testing.T) {
	store, _ := newTestStore()

	for i := 0; i < testMaxAttempts; i++ {
		store.RecordFailure("203.0.113.7")
	}
	store.ClearAll()

	_, ok := store.Status("203.0.113.7")
	assert.False(t, ok)
	assert.Empty(t, store.ListBlocked())
}

func TestMemoryStore_PruneDropsExpiredBlocks(t *testing.T) {
	store, clock := newTestStore()

	for i := 0; i < testMaxAttempts; i++ {
		store.RecordFailure("203.0.113.7")
	}
	store.RecordFailure("198.51.100.9")

	clock.Advance(testBlockDuration + time.Second)
	store.Prune()

	store.mu.Lock()
	_, expiredKept := store.entries["203.0.113.7"]
	_, countingKept := store.entries["198.51.100.9"]
	store.mu.Unlock()

	assert.False(t, expiredKept, "expired block should be pruned")
	assert.True(t, countingKept, "counting entry survives prune")
}

func TestMemoryStore_ConcurrentFailuresDoNotLoseUpdates(t *testing.T) {
	store, _ := newTestStore()

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			store.RecordFailure("203.0.113.7")
		}()
	}
	wg.Wait()

	entry, ok := store.Status("203.0.113.7")
	require.True(t, ok)
	assert.Equal(t, workers, entry.Count)
}
