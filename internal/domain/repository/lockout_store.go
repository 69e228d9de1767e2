package repository

import "showreel/internal/domain/entity"

// LockoutStore tracks failed login attempts per client IP. It replaces the
// process-global map the credential service would otherwise own directly:
// making it an injectable contract lets the administrative operations inspect
// and clear blocks without reaching into implementation internals, and leaves
// room for a shared cache in multi-process deployments.
//
// Implementations must serialize the read-modify-write of RecordFailure so
// that concurrent failures from one IP cannot lose updates.
type LockoutStore interface {
	// Status returns the entry for an IP and whether one exists. An entry
	// whose block has elapsed is cleared lazily and reported as absent.
	Status(ip string) (entity.LockoutEntry, bool)

	// RecordFailure increments the failure count for an IP, creating the
	// entry if absent, and sets the block once the count reaches the
	// configured threshold. It returns the entry after the update.
	RecordFailure(ip string) entity.LockoutEntry

	// Reset clears the entry for an IP entirely, restoring it to the
	// initial state. Called on successful login and by administrators.
	Reset(ip string)

	// ListBlocked returns a snapshot of the IPs with an active block.
	ListBlocked() map[string]entity.LockoutEntry

	// ClearAll drops every entry, blocked or counting.
	ClearAll()

	// Prune drops inert entries (expired blocks, stale counters) to bound
	// memory. Pruning is unobservable to callers of Status.
	Prune()
}
