package handler

import (
	"net/http"

	"github.com/msomdec/employee-pass/internal/service"
)

// HealthHandler reports liveness and the size of the collection.
type HealthHandler struct {
	store *service.EmployeeStore
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store *service.EmployeeStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// HandleHealthz responds with a 200 OK and a JSON body indicating the server is healthy.
func (h *HealthHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"employees": h.store.Len(),
	})
}
