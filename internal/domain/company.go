package domain

import (
	"context"
	"time"

	"github.com/davral/tickerdesk/internal/criteria"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Company is a listed company, keyed by its unique ticker symbol.
type Company struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"-"`
	Ticker    string        `bson:"ticker" json:"ticker"`
	Name      string        `bson:"name" json:"name"`
	Country   string        `bson:"country" json:"country"`
	Address   string        `bson:"address" json:"address"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// CompanyPatch is a partial update: nil fields are left untouched.
type CompanyPatch struct {
	Ticker  *string
	Name    *string
	Country *string
	Address *string
}

// CompanyRepository defines persistence operations for companies.
// Ticker uniqueness is enforced by a unique index; Create reports a
// violation as ErrDuplicateTicker.
//
// Paginate is the hybrid cursor+date path keyed by ticker in ascending
// lexicographic order; Search runs an arbitrary criteria pipeline.
type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	GetByTicker(ctx context.Context, ticker string) (*Company, error)
	Update(ctx context.Context, ticker string, patch CompanyPatch) error
	Delete(ctx context.Context, ticker string) error
	Paginate(ctx context.Context, page criteria.Pagination) (Page[Company], error)
	Search(ctx context.Context, crit criteria.Criteria) (Page[Company], error)
}
