package handler

import (
	"net/http"

	"github.com/msomdec/employee-pass/internal/metrics"
	"github.com/msomdec/employee-pass/internal/service"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Gate           *service.AdminGate
	Store          *service.EmployeeStore
	Registration   *service.RegistrationService
	Renderer       *service.PassRenderer
	ExportLimiter  *service.TokenBucket
	MaxUploadBytes int64
	CookieSecure   bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, d Deps) {
	health := NewHealthHandler(d.Store)
	reg := NewRegistrationHandler(d.Registration, d.MaxUploadBytes)
	passes := NewPassHandler(d.Store, d.Renderer, d.ExportLimiter)
	admin := NewAdminHandler(d.Gate, d.Store, d.Registration, d.CookieSecure)
	api := NewAPIHandler(d.Store)

	requireAdmin := func(h http.HandlerFunc) http.Handler { return RequireAdmin(d.Gate, h) }

	mux.HandleFunc("GET /healthz", health.HandleHealthz)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /{$}", reg.HandleForm)
	mux.HandleFunc("POST /register", reg.HandleRegister)

	mux.HandleFunc("GET /passes/{id}", passes.HandlePass)
	mux.HandleFunc("GET /passes/{id}/image", passes.HandlePassImage)

	mux.HandleFunc("GET /admin", admin.HandleAdminNav)
	mux.HandleFunc("GET /admin/login", admin.HandleLoginPage)
	mux.HandleFunc("POST /admin/login", admin.HandleLogin)
	mux.HandleFunc("POST /admin/logout", admin.HandleLogout)
	mux.Handle("GET /admin/employees/{id}/edit", requireAdmin(admin.HandleEdit))
	mux.Handle("GET /admin/employees/edit/cancel", requireAdmin(admin.HandleCancelEdit))
	mux.Handle("POST /admin/employees/{id}", requireAdmin(admin.HandleSave))
	mux.Handle("POST /admin/employees/{id}/delete", requireAdmin(admin.HandleDelete))

	mux.Handle("GET /api/employees", RequireAdminAPI(d.Gate, http.HandlerFunc(api.HandleListEmployees)))
}

// NewHandler builds the full handler chain. RequestLogger wraps the mux
// directly so the matched route pattern is visible to it.
func NewHandler(d Deps) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, d)
	return SecurityHeaders(OptionalAdmin(d.Gate, RequestLogger(mux)))
}
