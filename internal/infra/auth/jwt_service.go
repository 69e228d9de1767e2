// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"showreel/config"
	"showreel/internal/domain/entity"
	domainerrors "showreel/internal/domain/errors"
	"showreel/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte        // Secret key for signing session tokens.
	ttl    time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService. It refuses to construct
// without a signing secret, which makes the process fail at startup rather
// than silently sign tokens with an empty key.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.JWT == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	ttl := cfg.Auth.TokenTTL

	return &jwtService{
		secret: []byte(cfg.SecretKey.JWT),
		ttl:    ttl,
	}, nil
}

// GenerateToken creates a signed session token embedding the user's ID,
// email, and role along with issued-at and expiry timestamps.
func (s *jwtService) GenerateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// VerifyToken validates the signature and expiry of a session token and
// returns its claims. Every failure mode wraps ErrInvalidToken so the caller
// treats them uniformly as "unauthenticated".
func (s *jwtService) VerifyToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}
	if !token.Valid {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token failed validation")
	}

	return claims, nil
}

// TokenTTL returns the configured session token lifetime.
func (s *jwtService) TokenTTL() time.Duration {
	return s.ttl
}
