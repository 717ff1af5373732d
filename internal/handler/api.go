package handler

import (
	"net/http"

	"github.com/msomdec/employee-pass/internal/service"
)

// APIHandler serves the admin JSON API.
type APIHandler struct {
	store *service.EmployeeStore
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(store *service.EmployeeStore) *APIHandler {
	return &APIHandler{store: store}
}

// HandleListEmployees returns the collection in insertion order.
// GET /api/employees
// Response: {"employees": [...]}
func (h *APIHandler) HandleListEmployees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"employees": toEmployeeDTOs(h.store.List()),
	})
}
