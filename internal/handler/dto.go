package handler

import (
	"fmt"
	"time"

	"github.com/davral/tickerdesk/internal/criteria"
	"github.com/davral/tickerdesk/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	timeLayout = time.RFC3339
	dateLayout = "2006-01-02"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type profileUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Birthday  *string `json:"birthday"` // YYYY-MM-DD
}

func (r profileUpdateRequest) toPatch() (domain.ProfilePatch, error) {
	patch := domain.ProfilePatch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
	if r.Birthday != nil {
		birthday, err := time.Parse(dateLayout, *r.Birthday)
		if err != nil {
			return patch, fmt.Errorf("%w: birthday must be formatted as %s", domain.ErrInvalidInput, dateLayout)
		}
		patch.Birthday = &birthday
	}
	return patch, nil
}

// ProfileDTO is the JSON representation of a profile.
type ProfileDTO struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Birthday  *string `json:"birthday"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func toProfileDTO(p *domain.Profile) ProfileDTO {
	dto := ProfileDTO{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		CreatedAt: p.CreatedAt.Format(timeLayout),
		UpdatedAt: p.UpdatedAt.Format(timeLayout),
	}
	if p.Birthday != nil {
		birthday := p.Birthday.Format(dateLayout)
		dto.Birthday = &birthday
	}
	return dto
}

type companyCreateRequest struct {
	Ticker  string `json:"ticker"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Address string `json:"address"`
}

type companyUpdateRequest struct {
	Ticker  *string `json:"ticker"`
	Name    *string `json:"name"`
	Country *string `json:"country"`
	Address *string `json:"address"`
}

func (r companyUpdateRequest) toPatch() domain.CompanyPatch {
	return domain.CompanyPatch{
		Ticker:  r.Ticker,
		Name:    r.Name,
		Country: r.Country,
		Address: r.Address,
	}
}

// searchRequest is the generic criteria query body.
type searchRequest struct {
	Filters    []filterDTO   `json:"filters"`
	Pagination paginationDTO `json:"pagination"`
	Sort       sortDTO       `json:"sort"`
}

type filterDTO struct {
	Query    []map[string]any `json:"query"`
	Operator string           `json:"operator"` // and, or, nor; default and
}

type paginationDTO struct {
	Limit       int64   `json:"limit"`
	Cursor      string  `json:"cursor"`
	CursorField string  `json:"cursor_field"`
	StartDate   *string `json:"start_date"` // RFC 3339
	EndDate     *string `json:"end_date"`
}

type sortDTO struct {
	Field string `json:"field"` // default created_at
	Order string `json:"order"` // asc or desc; default asc
}

var operators = map[string]criteria.Operator{
	"":    criteria.And,
	"and": criteria.And,
	"or":  criteria.Or,
	"nor": criteria.Nor,
}

func (r searchRequest) toCriteria() (criteria.Criteria, error) {
	crit := criteria.Criteria{}

	for _, f := range r.Filters {
		op, ok := operators[f.Operator]
		if !ok {
			return crit, fmt.Errorf("%w: unknown filter operator %q", domain.ErrInvalidInput, f.Operator)
		}
		conditions := make([]bson.M, len(f.Query))
		for i, q := range f.Query {
			conditions[i] = bson.M(q)
		}
		crit.Filters = append(crit.Filters, criteria.Filter{Conditions: conditions, Operator: op})
	}

	crit.Pagination = criteria.Pagination{
		Limit:       r.Pagination.Limit,
		Cursor:      r.Pagination.Cursor,
		CursorField: r.Pagination.CursorField,
	}
	var err error
	if crit.Pagination.StartDate, err = parseTime(r.Pagination.StartDate, "start_date"); err != nil {
		return crit, err
	}
	if crit.Pagination.EndDate, err = parseTime(r.Pagination.EndDate, "end_date"); err != nil {
		return crit, err
	}

	crit.Sort = criteria.Sort{Field: r.Sort.Field, Direction: criteria.Asc}
	if crit.Sort.Field == "" {
		crit.Sort.Field = "created_at"
	}
	switch r.Sort.Order {
	case "", "asc":
	case "desc":
		crit.Sort.Direction = criteria.Desc
	default:
		return crit, fmt.Errorf("%w: unknown sort order %q", domain.ErrInvalidInput, r.Sort.Order)
	}

	return crit, nil
}

func parseTime(value *string, name string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(timeLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be formatted as RFC 3339", domain.ErrInvalidInput, name)
	}
	return &parsed, nil
}
