package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/davral/tickerdesk/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, token authentication, and account
// deletion. Each identity owns exactly one profile; registration creates the
// pair and deletion removes the pair.
type AuthService struct {
	identities domain.IdentityRepository
	profiles   domain.ProfileRepository
	tokens     *TokenService
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(identities domain.IdentityRepository, profiles domain.ProfileRepository, tokens *TokenService, bcryptCost int) *AuthService {
	return &AuthService{
		identities: identities,
		profiles:   profiles,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Token is the login response payload.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates an empty profile and an identity referencing it. The
// username probe is a fast path for a friendlier error; the unique index on
// username is the real arbiter, and losing the race surfaces the same
// ErrDuplicateIdentity.
func (s *AuthService) Register(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" || email == "" {
		return fmt.Errorf("%w: username, password, and email are required", domain.ErrInvalidInput)
	}

	if _, err := s.identities.GetByUsername(ctx, username); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateIdentity, username)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	profile := &domain.Profile{}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	identity := &domain.Identity{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		ProfileID:    profile.ID,
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		// Lost the uniqueness race after the profile was created; remove
		// the orphan best-effort.
		if delErr := s.profiles.Delete(ctx, profile.ID); delErr != nil {
			slog.Warn("orphaned profile left behind", "profile_id", profile.ID.Hex(), "error", delErr)
		}
		return err
	}

	return nil
}

// Login verifies credentials and issues a bearer token with the username as
// subject. Unknown username and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (Token, error) {
	identity, err := s.identities.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Token{}, domain.ErrInvalidCredentials
		}
		return Token{}, fmt.Errorf("get identity: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return Token{}, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Sign(identity.Username)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: accessToken, TokenType: "bearer"}, nil
}

// Authenticate verifies a bearer token, resolves its subject to an identity,
// and resolves the linked profile. A token whose subject no longer exists is
// invalid; the profile is always populated on success.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.Identity, *domain.Profile, error) {
	username, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, nil, err
	}

	identity, err := s.identities.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrTokenInvalid
		}
		return nil, nil, fmt.Errorf("resolve subject: %w", err)
	}

	profile, err := s.profiles.GetByID(ctx, identity.ProfileID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve profile: %w", err)
	}

	return identity, profile, nil
}

// Delete removes the identity and its linked profile as one logical
// operation: the profile goes first, and a profile deletion failure aborts
// the identity deletion. A profile that is already absent does not block the
// identity from being removed.
func (s *AuthService) Delete(ctx context.Context, identity *domain.Identity) error {
	if err := s.profiles.Delete(ctx, identity.ProfileID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.identities.Delete(ctx, identity.ID); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return nil
}
