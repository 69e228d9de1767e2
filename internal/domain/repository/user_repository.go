// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"showreel/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for credential persistence.
// The application layer depends on this interface, not the concrete implementation.
// Uniqueness on email is enforced by the store itself.
type UserRepository interface {
	// FindByEmail retrieves the full credential record (including the
	// password hash) for a login identifier. Returns ErrUserNotFound when
	// no account exists for the email.
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// FindByID retrieves the public projection of an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Create persists a new credential record. The store rejects duplicate
	// emails via its unique constraint.
	Create(ctx context.Context, cred *entity.Credential) error
}
