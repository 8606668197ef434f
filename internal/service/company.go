package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/davral/tickerdesk/internal/criteria"
	"github.com/davral/tickerdesk/internal/domain"
)

// Cache is the read-through cache consumed by CompanyService. The Redis
// handle in internal/cache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CompanyService manages companies: CRUD keyed by ticker, the hybrid
// cursor+date listing, and generic criteria search. Single-company reads go
// through the cache; writes invalidate it.
type CompanyService struct {
	companies domain.CompanyRepository
	cache     Cache
	cacheTTL  time.Duration
}

// NewCompanyService creates a new CompanyService. A nil cache disables
// caching.
func NewCompanyService(companies domain.CompanyRepository, cache Cache, cacheTTL time.Duration) *CompanyService {
	return &CompanyService{
		companies: companies,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

func cacheKey(ticker string) string {
	return "company:" + ticker
}

// Get returns the company with the given ticker, serving from the cache
// when possible. Cache failures degrade to a storage read.
func (s *CompanyService) Get(ctx context.Context, ticker string) (*domain.Company, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, cacheKey(ticker))
		if err != nil {
			slog.Warn("company cache read failed", "ticker", ticker, "error", err)
		} else if hit {
			company := &domain.Company{}
			if err := json.Unmarshal(cached, company); err == nil {
				return company, nil
			}
			slog.Warn("discarding undecodable cache entry", "ticker", ticker)
		}
	}

	company, err := s.companies.GetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(company); err == nil {
			if err := s.cache.Set(ctx, cacheKey(ticker), encoded, s.cacheTTL); err != nil {
				slog.Warn("company cache write failed", "ticker", ticker, "error", err)
			}
		}
	}
	return company, nil
}

// Create inserts a new company. The ticker probe gives the duplicate a
// friendly error up front; the unique index catches the race.
func (s *CompanyService) Create(ctx context.Context, company *domain.Company) error {
	if company.Ticker == "" {
		return fmt.Errorf("%w: ticker is required", domain.ErrInvalidInput)
	}

	if _, err := s.companies.GetByTicker(ctx, company.Ticker); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateTicker, company.Ticker)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check ticker: %w", err)
	}

	return s.companies.Create(ctx, company)
}

// Update applies a partial update to the company with the given ticker and
// invalidates its cache entry (both tickers, if the update renames it).
func (s *CompanyService) Update(ctx context.Context, ticker string, patch domain.CompanyPatch) error {
	if err := s.companies.Update(ctx, ticker, patch); err != nil {
		return err
	}

	s.invalidate(ctx, ticker)
	if patch.Ticker != nil && *patch.Ticker != ticker {
		s.invalidate(ctx, *patch.Ticker)
	}
	return nil
}

// Delete removes the company with the given ticker.
func (s *CompanyService) Delete(ctx context.Context, ticker string) error {
	if err := s.companies.Delete(ctx, ticker); err != nil {
		return err
	}
	s.invalidate(ctx, ticker)
	return nil
}

// Paginate lists companies in ascending ticker order with hybrid
// cursor+date pagination.
func (s *CompanyService) Paginate(ctx context.Context, page criteria.Pagination) (domain.Page[domain.Company], error) {
	return s.companies.Paginate(ctx, page)
}

// Search runs a generic criteria query against the companies collection.
func (s *CompanyService) Search(ctx context.Context, crit criteria.Criteria) (domain.Page[domain.Company], error) {
	return s.companies.Search(ctx, crit)
}

func (s *CompanyService) invalidate(ctx context.Context, ticker string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(ticker)); err != nil {
		slog.Warn("company cache invalidation failed", "ticker", ticker, "error", err)
	}
}
