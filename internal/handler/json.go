package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/davral/tickerdesk/internal/criteria"
	"github.com/davral/tickerdesk/internal/domain"
)

// response is the API envelope. Data is omitted when empty; Pagination is
// present only on paginated listings.
type response[T any] struct {
	Message    string          `json:"message,omitempty"`
	Data       T               `json:"data,omitempty"`
	Pagination *paginationMeta `json:"pagination,omitempty"`
}

// paginationMeta mirrors the page the client asked for plus the derived
// cursor. NextCursor is null when there is no further page content.
type paginationMeta struct {
	Limit      int64   `json:"limit"`
	Total      int64   `json:"total"`
	NextCursor *string `json:"next_cursor"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
}

// writeJSON sends a JSON response with the given status code and body.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeMessage sends an envelope carrying only a message.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response[struct{}]{Message: message})
}

// writeData sends an envelope with a message and a payload.
func writeData[T any](w http.ResponseWriter, status int, message string, data T) {
	writeJSON(w, status, response[T]{Message: message, Data: data})
}

// writePage sends a paginated envelope.
func writePage[T any](w http.ResponseWriter, status int, message string, page domain.Page[T], p criteria.Pagination) {
	meta := &paginationMeta{
		Limit:      p.PageSize(),
		Total:      page.Total,
		NextCursor: page.NextCursor,
	}
	if p.StartDate != nil {
		s := p.StartDate.UTC().Format(timeLayout)
		meta.StartDate = &s
	}
	if p.EndDate != nil {
		s := p.EndDate.UTC().Format(timeLayout)
		meta.EndDate = &s
	}
	writeJSON(w, status, response[[]T]{Message: message, Data: page.Result, Pagination: meta})
}

// writeError sends a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}

// writeDomainError maps a domain error to its HTTP status. Messages are the
// sentinels' static text; only duplicate errors carry the offending value.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateIdentity),
		errors.Is(err, domain.ErrDuplicateTicker),
		errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusBadRequest, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenInvalid):
		// Expired and invalid tokens are deliberately indistinguishable here.
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, domain.ErrTokenInvalid.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, domain.ErrNotFound.Error())
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
