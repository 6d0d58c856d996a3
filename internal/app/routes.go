package app

import (
	"github.com/gorilla/mux"
	"github.com/prospectcrm/prospect/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Companies
	r.HandleFunc("/api/companies", deps.CompanyHandler.ListCompanies).Methods("GET")
	r.HandleFunc("/api/companies", deps.CompanyHandler.CreateCompany).Methods("POST")
	r.HandleFunc("/api/companies/{companyId}", deps.CompanyHandler.GetCompany).Methods("GET")
	r.HandleFunc("/api/companies/{companyId}", deps.CompanyHandler.UpdateCompany).Methods("PUT")
	r.HandleFunc("/api/companies/{companyId}", deps.CompanyHandler.DeleteCompany).Methods("DELETE")

	// Contacts
	r.HandleFunc("/api/companies/{companyId}/contact", deps.ContactHandler.ListContacts).Methods("GET")
	r.HandleFunc("/api/companies/{companyId}/contact", deps.ContactHandler.CreateContact).Methods("POST")
	r.HandleFunc("/api/contact/{contactId}", deps.ContactHandler.UpdateContact).Methods("PUT")
	r.HandleFunc("/api/contact/{contactId}", deps.ContactHandler.DeleteContact).Methods("DELETE")

	// Calendar events
	r.HandleFunc("/api/companies/{companyId}/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event", deps.EventHandler.GetEvents).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.UpdateEvent).Methods("PATCH")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Dashboard layout
	r.HandleFunc("/api/dashboard/layout", deps.LayoutHandler.GetLayout).Methods("GET")
	r.HandleFunc("/api/dashboard/layout", deps.LayoutHandler.SaveLayout).Methods("PUT")
	r.HandleFunc("/api/dashboard/layout", deps.LayoutHandler.RevertLayout).Methods("DELETE")
	r.HandleFunc("/api/dashboard/layout/swap", deps.LayoutHandler.SwapSlots).Methods("POST")
	r.HandleFunc("/api/dashboard/layout/mode", deps.LayoutHandler.SetMode).Methods("PUT")

	// Stats
	r.HandleFunc("/api/stats/dashboard", deps.StatsHandler.GetDashboardStats).Methods("GET")

	// Activity feed
	r.HandleFunc("/api/activity", deps.ActivityHandler.GetActivity).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user/{userUid}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
	r.HandleFunc("/api/integrations/google/export", deps.GoogleHandler.ExportEvents).Methods("POST")
}
