package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Profile holds the personal data linked one-to-one with an Identity.
// All fields are optional: registration creates an empty Profile that the
// user fills in later.
type Profile struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	FirstName *string       `bson:"first_name,omitempty"`
	LastName  *string       `bson:"last_name,omitempty"`
	Birthday  *time.Time    `bson:"birthday,omitempty"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// ProfileRepository defines persistence operations for profiles.
// Update applies only the non-nil fields of the patch and always refreshes
// updated_at, regardless of which fields changed.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id bson.ObjectID) (*Profile, error)
	Update(ctx context.Context, id bson.ObjectID, patch ProfilePatch) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

// ProfilePatch is a partial update: nil fields are left untouched.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Birthday  *time.Time
}
