package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/davral/tickerdesk/internal/criteria"
	"github.com/davral/tickerdesk/internal/domain"
	"github.com/davral/tickerdesk/internal/handler"
	"github.com/davral/tickerdesk/internal/service"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

// newTestServer wires the full route table over in-memory repositories.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tokens := service.NewTokenService(testJWTSecret, service.DefaultTokenTTL)
	profileRepo := newMemProfileRepo()
	auth := service.NewAuthService(newMemIdentityRepo(), profileRepo, tokens, 4)
	profiles := service.NewProfileService(profileRepo)
	companies := service.NewCompanyService(newMemCompanyRepo(), nil, 0)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, profiles, companies)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// doJSON issues a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

// decodeBody closes the response body after decoding it into dst.
func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

// registerAndLogin creates an account and returns a valid bearer token.
func registerAndLogin(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"username": username,
		"password": "password123",
		"email":    username + "@example.com",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeBody(t, resp, &token)
	if token.AccessToken == "" || token.TokenType != "bearer" {
		t.Fatalf("login: unexpected token payload %+v", token)
	}
	return token.AccessToken
}

// memIdentityRepo is an in-memory domain.IdentityRepository.
type memIdentityRepo struct {
	identities map[string]*domain.Identity
}

func newMemIdentityRepo() *memIdentityRepo {
	return &memIdentityRepo{identities: make(map[string]*domain.Identity)}
}

func (r *memIdentityRepo) Create(_ context.Context, identity *domain.Identity) error {
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

func (r *memIdentityRepo) GetByUsername(_ context.Context, username string) (*domain.Identity, error) {
	identity, ok := r.identities[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *identity
	return &copied, nil
}

func (r *memIdentityRepo) Delete(_ context.Context, id bson.ObjectID) error {
	for username, identity := range r.identities {
		if identity.ID == id {
			delete(r.identities, username)
			return nil
		}
	}
	return domain.ErrNotFound
}

// memProfileRepo is an in-memory domain.ProfileRepository.
type memProfileRepo struct {
	profiles map[bson.ObjectID]*domain.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[bson.ObjectID]*domain.Profile)}
}

func (r *memProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	now := time.Now().UTC()
	profile.ID = bson.NewObjectID()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	stored := *profile
	r.profiles[profile.ID] = &stored
	return nil
}

func (r *memProfileRepo) GetByID(_ context.Context, id bson.ObjectID) (*domain.Profile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *memProfileRepo) Update(_ context.Context, id bson.ObjectID, patch domain.ProfilePatch) error {
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

func (r *memProfileRepo) Delete(_ context.Context, id bson.ObjectID) error {
	if _, ok := r.profiles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.profiles, id)
	return nil
}

// memCompanyRepo is an in-memory domain.CompanyRepository with the ticker
// cursor semantics of the real listing.
type memCompanyRepo struct {
	companies map[string]*domain.Company
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{companies: make(map[string]*domain.Company)}
}

func (r *memCompanyRepo) Create(_ context.Context, company *domain.Company) error {
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

func (r *memCompanyRepo) GetByTicker(_ context.Context, ticker string) (*domain.Company, error) {
	company, ok := r.companies[ticker]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *company
	return &copied, nil
}

func (r *memCompanyRepo) Update(_ context.Context, ticker string, patch domain.CompanyPatch) error {
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

func (r *memCompanyRepo) Delete(_ context.Context, ticker string) error {
	if _, ok := r.companies[ticker]; !ok {
		return domain.ErrNotFound
	}
	delete(r.companies, ticker)
	return nil
}

func (r *memCompanyRepo) Paginate(_ context.Context, page criteria.Pagination) (domain.Page[domain.Company], error) {
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

func (r *memCompanyRepo) Search(ctx context.Context, crit criteria.Criteria) (domain.Page[domain.Company], error) {
	return r.Paginate(ctx, crit.Pagination)
}
