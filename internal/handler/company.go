package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/davral/tickerdesk/internal/criteria"
	"github.com/davral/tickerdesk/internal/domain"
	"github.com/davral/tickerdesk/internal/service"
)

// CompanyHandler serves company CRUD and listings.
type CompanyHandler struct {
	companies *service.CompanyService
}

// HandleGet returns one company by ticker.
// GET /api/companies/{ticker}
func (h *CompanyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	company, err := h.companies.Get(r.Context(), r.PathValue("ticker"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeData(w, http.StatusOK, "company", company)
}

// HandleList returns a page of companies in ascending ticker order, bounded
// by an optional date range and cursor.
// GET /api/companies?limit=&cursor=&start_date=&end_date=
func (h *CompanyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := paginationFromQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result, err := h.companies.Paginate(r.Context(), page)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writePage(w, http.StatusOK, "companies", result, page)
}

// HandleSearch runs a generic criteria query.
// POST /api/companies/search
func (h *CompanyHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	crit, err := req.toCriteria()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result, err := h.companies.Search(r.Context(), crit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writePage(w, http.StatusOK, "companies", result, crit.Pagination)
}

// HandleCreate inserts a new company.
// POST /api/companies
func (h *CompanyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req companyCreateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	company := &domain.Company{
		Ticker:  req.Ticker,
		Name:    req.Name,
		Country: req.Country,
		Address: req.Address,
	}
	if err := h.companies.Create(r.Context(), company); err != nil {
		writeDomainError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "company created", company)
}

// HandleUpdate applies a partial update to a company.
// PATCH /api/companies/{ticker}
func (h *CompanyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req companyUpdateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.companies.Update(r.Context(), r.PathValue("ticker"), req.toPatch()); err != nil {
		writeDomainError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "company updated")
}

// HandleDelete removes a company.
// DELETE /api/companies/{ticker}
func (h *CompanyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.companies.Delete(r.Context(), r.PathValue("ticker")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// paginationFromQuery reads the hybrid pagination parameters from the query
// string. The ticker cursor field is fixed by the listing itself.
func paginationFromQuery(r *http.Request) (criteria.Pagination, error) {
	page := criteria.Pagination{Cursor: r.URL.Query().Get("cursor")}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			return page, domain.ErrInvalidInput
		}
		page.Limit = limit
	}

	var err error
	if page.StartDate, err = parseTimeQuery(r, "start_date"); err != nil {
		return page, err
	}
	if page.EndDate, err = parseTimeQuery(r, "end_date"); err != nil {
		return page, err
	}
	return page, nil
}

func parseTimeQuery(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	return parseTime(&raw, name)
}
