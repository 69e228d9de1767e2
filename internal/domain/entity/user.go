// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the public projection of an account: the subset of a credential
// record that is safe to hand to callers. It never carries the password hash.
type User struct {
	ID        uuid.UUID // The unique identifier for the account.
	Email     string    // The user's email, used as the login identifier.
	Name      string    // Optional display name.
	Role      Role      // The account role, either "admin" or "user".
	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this account.
}

// Credential is the full stored record for an account, including the one-way
// password hash. It stays inside the usecase and persistence layers; the
// embedded User is what crosses the boundary outward.
type Credential struct {
	User
	PasswordHash string // bcrypt hash of the user's password. Never the plaintext.
}

// Public returns the password-free projection of the credential record.
func (c *Credential) Public() *User {
	if c == nil {
		return nil
	}

	return &c.User
}
