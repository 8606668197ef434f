package handler

import (
	"net/http"

	"github.com/davral/tickerdesk/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, profiles *service.ProfileService, companies *service.CompanyService) {
	authHandler := &AuthHandler{auth: auth}
	profileHandler := &ProfileHandler{profiles: profiles}
	companyHandler := &CompanyHandler{companies: companies}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)

	mux.Handle("GET /api/users", RequireAuth(auth, http.HandlerFunc(profileHandler.HandleGet)))
	mux.Handle("PATCH /api/users", RequireAuth(auth, http.HandlerFunc(profileHandler.HandleUpdate)))
	mux.Handle("DELETE /api/users", RequireAuth(auth, http.HandlerFunc(authHandler.HandleDeleteAccount)))

	mux.HandleFunc("GET /api/companies", companyHandler.HandleList)
	mux.HandleFunc("GET /api/companies/{ticker}", companyHandler.HandleGet)
	mux.HandleFunc("POST /api/companies/search", companyHandler.HandleSearch)
	mux.Handle("POST /api/companies", RequireAuth(auth, http.HandlerFunc(companyHandler.HandleCreate)))
	mux.Handle("PATCH /api/companies/{ticker}", RequireAuth(auth, http.HandlerFunc(companyHandler.HandleUpdate)))
	mux.Handle("DELETE /api/companies/{ticker}", RequireAuth(auth, http.HandlerFunc(companyHandler.HandleDelete)))
}
