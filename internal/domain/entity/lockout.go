// Package entity contains the core business objects of the project.
package entity

import "time"

// LockoutEntry tracks consecutive failed login attempts from a single client
// IP. An entry moves through three states: counting (Count > 0, zero
// BlockedUntil), blocked (BlockedUntil in the future), and clear (no entry at
// all). Entries are cleared on a successful login or lazily once the block
// elapses.
type LockoutEntry struct {
	Count        int       // Failed attempts accumulated in the current window.
	BlockedUntil time.Time // Zero while counting; set once Count reaches the threshold.
}

// BlockedAt reports whether the entry is an active block at the given instant.
func (e LockoutEntry) BlockedAt(now time.Time) bool {
	return !e.BlockedUntil.IsZero() && now.Before(e.BlockedUntil)
}

// Expired reports whether a previously set block has elapsed by the given
// instant. A counting entry (no block set) is not expired.
func (e LockoutEntry) Expired(now time.Time) bool {
	return !e.BlockedUntil.IsZero() && !now.Before(e.BlockedUntil)
}
