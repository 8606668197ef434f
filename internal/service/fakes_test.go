package service_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/davral/tickerdesk/internal/criteria"
	"github.com/davral/tickerdesk/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeIdentityRepo is an in-memory domain.IdentityRepository.
type fakeIdentityRepo struct {
	identities map[string]*domain.Identity
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{identities: make(map[string]*domain.Identity)}
}

func (r *fakeIdentityRepo) Create(_ context.Context, identity *domain.Identity) error {
	if _, ok := r.identities[identity.Username]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateIdentity, identity.Username)
	}
	now := time.Now().UTC()
	identity.ID = bson.NewObjectID()
	identity.CreatedAt = now
	identity.UpdatedAt = now
	stored := *identity
	r.identities[identity.Username] = &stored
	return nil
}

func (r *fakeIdentityRepo) GetByUsername(_ context.Context, username string) (*domain.Identity, error) {
	identity, ok := r.identities[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *identity
	return &copied, nil
}

func (r *fakeIdentityRepo) Delete(_ context.Context, id bson.ObjectID) error {
	for username, identity := range r.identities {
		if identity.ID == id {
			delete(r.identities, username)
			return nil
		}
	}
	return domain.ErrNotFound
}

// blindIdentityRepo hides existing identities from the username probe so the
// insert path has to rely on the uniqueness rejection, like a lost race.
type blindIdentityRepo struct {
	*fakeIdentityRepo
}

func (r *blindIdentityRepo) GetByUsername(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrNotFound
}

// fakeProfileRepo is an in-memory domain.ProfileRepository.
type fakeProfileRepo struct {
	profiles   map[bson.ObjectID]*domain.Profile
	failDelete bool
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[bson.ObjectID]*domain.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	now := time.Now().UTC()
	profile.ID = bson.NewObjectID()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	stored := *profile
	r.profiles[profile.ID] = &stored
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id bson.ObjectID) (*domain.Profile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, id bson.ObjectID, patch domain.ProfilePatch) error {
	profile, ok := r.profiles[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.FirstName != nil {
		profile.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		profile.LastName = patch.LastName
	}
	if patch.Birthday != nil {
		profile.Birthday = patch.Birthday
	}
	profile.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, id bson.ObjectID) error {
	if r.failDelete {
		return fmt.Errorf("profile store unavailable")
	}
	if _, ok := r.profiles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.profiles, id)
	return nil
}

// fakeCompanyRepo is an in-memory domain.CompanyRepository implementing the
// hybrid pagination semantics over a slice.
type fakeCompanyRepo struct {
	companies map[string]*domain.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*domain.Company)}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *domain.Company) error {
	if _, ok := r.companies[company.Ticker]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateTicker, company.Ticker)
	}
	now := time.Now().UTC()
	company.ID = bson.NewObjectID()
	company.CreatedAt = now
	company.UpdatedAt = now
	stored := *company
	r.companies[company.Ticker] = &stored
	return nil
}

func (r *fakeCompanyRepo) GetByTicker(_ context.Context, ticker string) (*domain.Company, error) {
	company, ok := r.companies[ticker]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *company
	return &copied, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, ticker string, patch domain.CompanyPatch) error {
	company, ok := r.companies[ticker]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.Ticker != nil {
		delete(r.companies, ticker)
		company.Ticker = *patch.Ticker
		r.companies[company.Ticker] = company
	}
	if patch.Name != nil {
		company.Name = *patch.Name
	}
	if patch.Country != nil {
		company.Country = *patch.Country
	}
	if patch.Address != nil {
		company.Address = *patch.Address
	}
	company.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, ticker string) error {
	if _, ok := r.companies[ticker]; !ok {
		return domain.ErrNotFound
	}
	delete(r.companies, ticker)
	return nil
}

func (r *fakeCompanyRepo) Paginate(_ context.Context, page criteria.Pagination) (domain.Page[domain.Company], error) {
	var matched []domain.Company
	for _, company := range r.companies {
		if page.StartDate != nil && company.CreatedAt.Before(*page.StartDate) {
			continue
		}
		if page.EndDate != nil && company.CreatedAt.After(*page.EndDate) {
			continue
		}
		if page.Cursor != "" && strings.Compare(company.Ticker, page.Cursor) <= 0 {
			continue
		}
		matched = append(matched, *company)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Ticker < matched[j].Ticker })

	limit := int(page.PageSize())
	if len(matched) > limit {
		matched = matched[:limit]
	}

	result := domain.Page[domain.Company]{
		Result: matched,
		Total:  int64(len(r.companies)),
	}
	if len(matched) > 0 {
		next := matched[len(matched)-1].Ticker
		result.NextCursor = &next
	}
	return result, nil
}

func (r *fakeCompanyRepo) Search(ctx context.Context, crit criteria.Criteria) (domain.Page[domain.Company], error) {
	return r.Paginate(ctx, crit.Pagination)
}

// fakeCache is an in-memory service.Cache that counts operations.
type fakeCache struct {
	entries map[string][]byte
	hits    int
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return val, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.sets++
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.deletes++
	delete(c.entries, key)
	return nil
}
