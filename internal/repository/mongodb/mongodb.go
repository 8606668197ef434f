// Package mongodb implements the domain repositories on MongoDB.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	identityCollection = "auth"
	profileCollection  = "users"
	companyCollection  = "companies"
)

// DB owns the MongoDB client and hands out repository instances. It is
// constructed once at process start and injected where needed.
type DB struct {
	client *mongo.Client
	db     *mongo.Database

	identities *IdentityRepository
	profiles   *ProfileRepository
	companies  *CompanyRepository
}

// New connects to MongoDB at the given URI and verifies the connection.
func New(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	return &DB{
		client:     client,
		db:         db,
		identities: &IdentityRepository{coll: db.Collection(identityCollection)},
		profiles:   &ProfileRepository{coll: db.Collection(profileCollection)},
		companies:  &CompanyRepository{coll: db.Collection(companyCollection)},
	}, nil
}

// EnsureIndexes creates the unique indexes that are the final arbiters of
// username and ticker uniqueness. Creation is idempotent.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	unique := func(coll, field string) error {
		_, err := d.db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create unique index %s.%s: %w", coll, field, err)
		}
		return nil
	}

	if err := unique(identityCollection, "username"); err != nil {
		return err
	}
	return unique(companyCollection, "ticker")
}

// Close disconnects the client. Safe to call more than once.
func (d *DB) Close(ctx context.Context) error {
	if d.client == nil {
		return nil
	}
	err := d.client.Disconnect(ctx)
	d.client = nil
	return err
}

func (d *DB) Identities() *IdentityRepository { return d.identities }
func (d *DB) Profiles() *ProfileRepository   { return d.profiles }
func (d *DB) Companies() *CompanyRepository  { return d.companies }
