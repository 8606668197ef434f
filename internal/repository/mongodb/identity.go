package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davral/tickerdesk/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// IdentityRepository implements domain.IdentityRepository on the auth
// collection.
type IdentityRepository struct {
	coll *mongo.Collection
}

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	now := time.Now().UTC()
	identity.CreatedAt = now
	identity.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, identity)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateIdentity, identity.Username)
		}
		return fmt.Errorf("insert identity: %w", err)
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		identity.ID = id
	}
	return nil
}

func (r *IdentityRepository) GetByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	identity := &domain.Identity{}
	err := r.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(identity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query identity by username: %w", err)
	}
	return identity, nil
}

func (r *IdentityRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
