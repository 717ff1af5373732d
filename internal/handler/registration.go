package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/metrics"
	"github.com/msomdec/employee-pass/internal/service"
	"github.com/msomdec/employee-pass/internal/view"
)

// multipart framing and the text fields ride on top of the photo limit.
const formOverheadBytes = 1 << 20

// RegistrationHandler serves the registration form and creates records.
type RegistrationHandler struct {
	reg            *service.RegistrationService
	maxUploadBytes int64
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(reg *service.RegistrationService, maxUploadBytes int64) *RegistrationHandler {
	return &RegistrationHandler{reg: reg, maxUploadBytes: maxUploadBytes}
}

// HandleForm renders an empty registration form.
// GET /
func (h *RegistrationHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, view.RegistrationForm{})
}

// HandleRegister validates the submitted form and, on success, redirects to
// the new record's pass.
// POST /register (multipart: name, employeeId, photo)
func (h *RegistrationHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.reject(w, r, http.StatusRequestEntityTooLarge, view.RegistrationForm{Error: h.tooLargeMessage()})
			return
		}
		h.reject(w, r, http.StatusBadRequest, view.RegistrationForm{Error: "Invalid form submission."})
		return
	}

	form := view.RegistrationForm{
		Name:       r.FormValue("name"),
		EmployeeID: r.FormValue("employeeId"),
	}

	photo, err := h.readPhoto(r)
	if err != nil {
		form.Error = "Could not read the uploaded photo."
		h.reject(w, r, http.StatusBadRequest, form)
		return
	}
	if int64(len(photo)) > h.maxUploadBytes {
		form.Error = h.tooLargeMessage()
		h.reject(w, r, http.StatusRequestEntityTooLarge, form)
		return
	}

	e, err := h.reg.Register(r.Context(), service.RegistrationInput{
		Name:       form.Name,
		EmployeeID: form.EmployeeID,
		Photo:      photo,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			form.Error = domain.UserMessage(err, "All fields are required.")
			h.reject(w, r, http.StatusUnprocessableEntity, form)
			return
		}
		metrics.Registrations.WithLabelValues(metrics.ResultError).Inc()
		slog.Error("register employee", "error", err)
		form.Error = "Your pass could not be saved. Please try again."
		h.renderForm(w, r, http.StatusInternalServerError, form)
		return
	}

	metrics.Registrations.WithLabelValues(metrics.ResultOK).Inc()
	slog.Info("employee registered", "id", e.ID, "employee_id", e.EmployeeID)

	next := domain.NextView(domain.ViewRegistration, domain.EventRegistered, IsAdmin(r.Context()))
	redirectToView(w, r, next, e.ID)
}

func (h *RegistrationHandler) readPhoto(r *http.Request) ([]byte, error) {
	f, _, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
}

func (h *RegistrationHandler) reject(w http.ResponseWriter, r *http.Request, status int, form view.RegistrationForm) {
	metrics.Registrations.WithLabelValues(metrics.ResultInvalid).Inc()
	h.renderForm(w, r, status, form)
}

func (h *RegistrationHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, form view.RegistrationForm) {
	form.MaxUploadMB = h.maxUploadBytes >> 20
	renderPage(w, r, status, view.RegistrationPage(IsAdmin(r.Context()), form))
}

func (h *RegistrationHandler) tooLargeMessage() string {
	return "Photo must be " + formatMB(h.maxUploadBytes) + " or smaller."
}
