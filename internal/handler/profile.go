package handler

import (
	"net/http"

	"github.com/davral/tickerdesk/internal/service"
)

// ProfileHandler serves the authenticated user's profile.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// HandleGet returns the caller's profile.
// GET /api/users
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	writeData(w, http.StatusOK, "user", toProfileDTO(session.Profile))
}

// HandleUpdate applies a partial update to the caller's profile.
// PATCH /api/users
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	session := SessionFromContext(r.Context())
	if err := h.profiles.Update(r.Context(), session.Identity.ProfileID, patch); err != nil {
		writeDomainError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "user updated successfully")
}
