// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"showreel/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthenticateInput defines the data required for a login attempt. ClientIP
// identifies the caller for the brute-force lockout table.
type AuthenticateInput struct {
	Email    string
	Password string
	ClientIP string
}

// --- Output DTOs ---

// AuthOutput returns the signed session token and the public account
// projection after a successful registration or login.
type AuthOutput struct {
	Token string
	User  *entity.User
}

// BlockedIP describes one actively blocked address for the admin dashboard.
type BlockedIP struct {
	IP             string
	FailedAttempts int
	BlockedUntil   time.Time
}

// CredentialUsecase defines the interface for account and login operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type CredentialUsecase interface {
	// Register creates a new account and issues a session token. Every
	// rejection surfaces as ErrRegistrationRejected regardless of cause.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Authenticate verifies a login attempt against the stored credential
	// and the per-IP lockout table. Wrong password, unknown email, and
	// blocked IP all surface as ErrInvalidCredentials.
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthOutput, error)

	// GetUser returns the public projection of an account.
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// EnsureAdminUser creates the configured administrator account if it
	// does not exist yet. Safe to call on every startup.
	EnsureAdminUser(ctx context.Context) error

	// ListBlockedIPs returns the addresses with an active block, sorted by IP.
	ListBlockedIPs(ctx context.Context) []*BlockedIP

	// ClearBlockedIP removes the lockout entry for one address. It reports
	// whether an entry existed.
	ClearBlockedIP(ctx context.Context, ip string) bool

	// ClearAllBlocks empties the lockout table and returns how many
	// active blocks were removed.
	ClearAllBlocks(ctx context.Context) int
}
