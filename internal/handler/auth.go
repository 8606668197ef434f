package handler

import (
	"net/http"

	"github.com/davral/tickerdesk/internal/service"
)

// AuthHandler serves registration, login, and account deletion.
type AuthHandler struct {
	auth *service.AuthService
}

// HandleRegister creates a new account.
// POST /api/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.auth.Register(r.Context(), req.Username, req.Password, req.Email); err != nil {
		writeDomainError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "user registered successfully")
}

// HandleLogin verifies credentials and returns a bearer token.
// POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}

// HandleDeleteAccount deletes the authenticated identity and its profile.
// DELETE /api/users
func (h *AuthHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	if err := h.auth.Delete(r.Context(), session.Identity); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
