package handler

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/metrics"
	"github.com/msomdec/employee-pass/internal/service"
	"github.com/msomdec/employee-pass/internal/view"
)

// PassHandler shows passes and serves the rendered card.
type PassHandler struct {
	store    *service.EmployeeStore
	renderer *service.PassRenderer
	limiter  *service.TokenBucket
}

// NewPassHandler creates a new PassHandler.
func NewPassHandler(store *service.EmployeeStore, renderer *service.PassRenderer, limiter *service.TokenBucket) *PassHandler {
	return &PassHandler{store: store, renderer: renderer, limiter: limiter}
}

// HandlePass renders the pass display page.
// GET /passes/{id}
func (h *PassHandler) HandlePass(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(w, r)
	if !ok {
		return
	}
	renderPage(w, r, http.StatusOK, view.PassPage(IsAdmin(r.Context()), *e, service.PassFilename(*e)))
}

// HandlePassImage renders the pass as a JPEG. With ?download=1 the browser
// saves it as <employeeId>-pass.jpg.
// GET /passes/{id}/image
func (h *PassHandler) HandlePassImage(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		metrics.PassExports.WithLabelValues(metrics.ResultThrottle).Inc()
		w.Header().Set("Retry-After", "60")
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	e, ok := h.lookup(w, r)
	if !ok {
		return
	}

	data, err := h.renderer.Export(*e)
	if err != nil {
		metrics.PassExports.WithLabelValues(metrics.ResultError).Inc()
		slog.Error("export pass", "id", e.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	metrics.PassExports.WithLabelValues(metrics.ResultOK).Inc()

	disposition := "inline"
	if r.URL.Query().Get("download") != "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{
		"filename": service.PassFilename(*e),
	}))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *PassHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.Employee, bool) {
	e, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return nil, false
		}
		slog.Error("get employee", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return e, true
}
