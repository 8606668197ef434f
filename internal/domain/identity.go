package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Identity is a credential record. It is distinct from the personal data it
// guards: each Identity owns exactly one Profile, referenced by ID and
// resolved with an explicit fetch, never dereferenced implicitly.
type Identity struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	PasswordHash string        `bson:"password"`
	Email        string        `bson:"email"`
	ProfileID    bson.ObjectID `bson:"profile_id"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}

// IdentityRepository defines persistence operations for identities.
// Username uniqueness is enforced by a unique index; Create reports a
// violation as ErrDuplicateIdentity.
type IdentityRepository interface {
	Create(ctx context.Context, identity *Identity) error
	GetByUsername(ctx context.Context, username string) (*Identity, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}
