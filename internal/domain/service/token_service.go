package service

import (
	"time"

	"showreel/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the payload of a session token.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating session tokens.
// Tokens are stateless: there is no revocation list, they expire solely by
// elapsed time.
type TokenService interface {
	// GenerateToken creates a signed, time-bounded token for the given
	// public projection. The projection never includes the password hash,
	// so neither does the token.
	GenerateToken(user *entity.User) (string, error)

	// VerifyToken validates signature and expiry and returns the decoded
	// claims. Any failure (bad signature, malformed payload, expired token)
	// wraps domainerrors.ErrInvalidToken.
	VerifyToken(tokenString string) (*Claims, error)

	// TokenTTL returns the configured token lifetime.
	TokenTTL() time.Duration
}
