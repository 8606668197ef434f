package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davral/tickerdesk/internal/criteria"
	"github.com/davral/tickerdesk/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// CompanyRepository implements domain.CompanyRepository on the companies
// collection.
type CompanyRepository struct {
	coll *mongo.Collection
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, company)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTicker, company.Ticker)
		}
		return fmt.Errorf("insert company: %w", err)
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		company.ID = id
	}
	return nil
}

func (r *CompanyRepository) GetByTicker(ctx context.Context, ticker string) (*domain.Company, error) {
	company := &domain.Company{}
	err := r.coll.FindOne(ctx, bson.D{{Key: "ticker", Value: ticker}}).Decode(company)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query company by ticker: %w", err)
	}
	return company, nil
}

// Update applies the non-nil fields of the patch and refreshes updated_at.
func (r *CompanyRepository) Update(ctx context.Context, ticker string, patch domain.CompanyPatch) error {
	set := bson.D{{Key: "updated_at", Value: time.Now().UTC()}}
	if patch.Ticker != nil {
		set = append(set, bson.E{Key: "ticker", Value: *patch.Ticker})
	}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Country != nil {
		set = append(set, bson.E{Key: "country", Value: *patch.Country})
	}
	if patch.Address != nil {
		set = append(set, bson.E{Key: "address", Value: *patch.Address})
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "ticker", Value: ticker}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTicker, *patch.Ticker)
		}
		return fmt.Errorf("update company: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) Delete(ctx context.Context, ticker string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "ticker", Value: ticker}})
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Paginate is the hybrid cursor+date path: companies in ascending ticker
// order, bounded by the date range and the strictly-greater-than ticker
// cursor. Sort precedes limit here so the page is cut from the ordered set.
func (r *CompanyRepository) Paginate(ctx context.Context, page criteria.Pagination) (domain.Page[domain.Company], error) {
	page.CursorField = "ticker"

	pipeline := mongo.Pipeline{}
	if match, ok := page.MatchStage(); ok {
		pipeline = append(pipeline, match)
	}
	pipeline = append(pipeline,
		criteria.Sort{Field: "ticker", Direction: criteria.Asc}.Stage(),
		bson.D{{Key: "$limit", Value: page.PageSize()}},
	)

	return paginate[domain.Company](ctx, r.coll, pipeline, "ticker")
}

// Search runs a caller-assembled criteria pipeline.
func (r *CompanyRepository) Search(ctx context.Context, crit criteria.Criteria) (domain.Page[domain.Company], error) {
	return paginate[domain.Company](ctx, r.coll, crit.Pipeline(), crit.Pagination.CursorField)
}
