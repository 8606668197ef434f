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

// ProfileRepository implements domain.ProfileRepository on the users
// collection.
type ProfileRepository struct {
	coll *mongo.Collection
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, profile)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		profile.ID = id
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id bson.ObjectID) (*domain.Profile, error) {
	profile := &domain.Profile{}
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query profile by id: %w", err)
	}
	return profile, nil
}

// Update applies the non-nil fields of the patch. updated_at is refreshed on
// every call, even when the patch itself is empty.
func (r *ProfileRepository) Update(ctx context.Context, id bson.ObjectID, patch domain.ProfilePatch) error {
	set := bson.D{{Key: "updated_at", Value: time.Now().UTC()}}
	if patch.FirstName != nil {
		set = append(set, bson.E{Key: "first_name", Value: *patch.FirstName})
	}
	if patch.LastName != nil {
		set = append(set, bson.E{Key: "last_name", Value: *patch.LastName})
	}
	if patch.Birthday != nil {
		set = append(set, bson.E{Key: "birthday", Value: *patch.Birthday})
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
