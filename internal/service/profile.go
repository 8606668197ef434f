package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/davral/tickerdesk/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ProfileService manages the personal data linked to an identity.
type ProfileService struct {
	profiles domain.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles domain.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Update applies a partial update to a profile. The birthday must be
// strictly in the past (yesterday is the latest accepted date). Name
// normalization is applied here, before persisting: the first name is
// capitalized when provided, otherwise the last name is.
func (s *ProfileService) Update(ctx context.Context, id bson.ObjectID, patch domain.ProfilePatch) error {
	if patch.Birthday != nil {
		by, bm, bd := patch.Birthday.UTC().Date()
		ty, tm, td := time.Now().UTC().Date()
		birthday := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
		today := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
		if !birthday.Before(today) {
			return fmt.Errorf("%w: birthday must be in the past", domain.ErrInvalidInput)
		}
	}

	if patch.FirstName != nil {
		*patch.FirstName = capitalize(*patch.FirstName)
	} else if patch.LastName != nil {
		*patch.LastName = capitalize(*patch.LastName)
	}

	return s.profiles.Update(ctx, id, patch)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
