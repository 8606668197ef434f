package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/davral/tickerdesk/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is used when no access-token lifetime is configured.
const DefaultTokenTTL = 15 * time.Minute

// TokenService signs and verifies HMAC-SHA256 bearer tokens. Verification is
// stateless; the only claims carried are the subject and the expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. A zero ttl produces tokens that
// are already expired; callers wanting the default pass DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Sign issues a token for the given subject expiring after the configured TTL.
func (s *TokenService) Sign(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature and expiry and returns the token's subject.
// An expired token yields ErrTokenExpired; any other defect yields
// ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
