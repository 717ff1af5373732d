package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/metrics"
	"github.com/msomdec/employee-pass/internal/service"
	"github.com/msomdec/employee-pass/internal/view"
	datastar "github.com/starfederation/datastar-go/datastar"
)

const msgInvalidPassword = "Invalid password. Please try again."

// AdminHandler serves the login gate and the employee management dashboard.
type AdminHandler struct {
	gate         *service.AdminGate
	store        *service.EmployeeStore
	reg          *service.RegistrationService
	cookieSecure bool
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(gate *service.AdminGate, store *service.EmployeeStore, reg *service.RegistrationService, cookieSecure bool) *AdminHandler {
	return &AdminHandler{gate: gate, store: store, reg: reg, cookieSecure: cookieSecure}
}

// HandleAdminNav is the "Admin" nav target: the dashboard when the session is
// authenticated, otherwise the login gate.
// GET /admin
func (h *AdminHandler) HandleAdminNav(w http.ResponseWriter, r *http.Request) {
	next := domain.NextView(domain.InitialView, domain.EventAdminNav, IsAdmin(r.Context()))
	if next != domain.ViewAdminDashboard {
		redirectToView(w, r, next, "")
		return
	}
	renderPage(w, r, http.StatusOK, view.AdminDashboardPage(h.store.List(), nil))
}

// HandleLoginPage renders the login gate.
// GET /admin/login
func (h *AdminHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if IsAdmin(r.Context()) {
		redirectToView(w, r, domain.ViewAdminDashboard, "")
		return
	}
	renderPage(w, r, http.StatusOK, view.AdminLoginPage(""))
}

// HandleLogin checks the submitted password.
// POST /admin/login (form: password)
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, r, http.StatusBadRequest, view.AdminLoginPage("Invalid form submission."))
		return
	}

	token, err := h.gate.Login(r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.AdminLogins.WithLabelValues(metrics.ResultDenied).Inc()
			slog.Warn("admin login failed", "remote", clientIP(r))
			renderPage(w, r, http.StatusUnauthorized, view.AdminLoginPage(msgInvalidPassword))
			return
		}
		metrics.AdminLogins.WithLabelValues(metrics.ResultError).Inc()
		slog.Error("admin login", "error", err)
		renderPage(w, r, http.StatusInternalServerError, view.AdminLoginPage("An unexpected error occurred. Please try again."))
		return
	}

	metrics.AdminLogins.WithLabelValues(metrics.ResultOK).Inc()
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.gate.TTL().Seconds()),
	})

	redirectToView(w, r, domain.NextView(domain.ViewAdminLogin, domain.EventLoginSucceeded, true), "")
}

// HandleLogout clears the admin session.
// POST /admin/logout
func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	redirectToView(w, r, domain.NextView(domain.ViewAdminDashboard, domain.EventLogout, false), "")
}

// HandleEdit opens the edit modal with a draft of the record.
// GET /admin/employees/{id}/edit
func (h *AdminHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		h.notFoundOrError(w, err)
		return
	}

	draft := view.NewEditDraft(*e)
	if isDatastar(r) {
		sse := datastar.NewSSE(w, r)
		sse.PatchElementTempl(view.EditModal(draft))
		return
	}
	renderPage(w, r, http.StatusOK, view.AdminDashboardPage(h.store.List(), draft))
}

// HandleCancelEdit closes the modal. Nothing is changed.
// GET /admin/employees/edit/cancel
func (h *AdminHandler) HandleCancelEdit(w http.ResponseWriter, r *http.Request) {
	if isDatastar(r) {
		sse := datastar.NewSSE(w, r)
		sse.PatchElementTempl(view.ClosedModal())
		return
	}
	redirectToView(w, r, domain.ViewAdminDashboard, "")
}

// HandleSave applies the edit draft. Id, photo and registration date of the
// record are kept.
// POST /admin/employees/{id} (form: name, employeeId)
func (h *AdminHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	name, employeeID := r.FormValue("name"), r.FormValue("employeeId")

	_, err := h.reg.Edit(r.Context(), id, name, employeeID)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) {
			h.notFoundOrError(w, err)
			return
		}

		e, getErr := h.store.Get(id)
		if getErr != nil {
			h.notFoundOrError(w, getErr)
			return
		}
		draft := view.NewEditDraft(*e)
		draft.Name, draft.EmployeeID = name, employeeID
		draft.Error = domain.UserMessage(err, "Name and employee ID are required.")

		if isDatastar(r) {
			sse := datastar.NewSSE(w, r)
			sse.PatchElementTempl(view.EditModal(draft))
			return
		}
		renderPage(w, r, http.StatusUnprocessableEntity, view.AdminDashboardPage(h.store.List(), draft))
		return
	}

	slog.Info("employee updated", "id", id)
	if isDatastar(r) {
		sse := datastar.NewSSE(w, r)
		sse.Redirect("/admin")
		return
	}
	redirectToView(w, r, domain.ViewAdminDashboard, "")
}

// HandleDelete removes a record. Deleting an unknown id succeeds.
// POST /admin/employees/{id}/delete
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.Delete(r.Context(), id); err != nil {
		slog.Error("delete employee", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	slog.Info("employee deleted", "id", id)

	if !isDatastar(r) {
		redirectToView(w, r, domain.ViewAdminDashboard, "")
		return
	}

	sse := datastar.NewSSE(w, r)
	remaining := h.store.List()
	if len(remaining) == 0 {
		// Swap in the empty-state body.
		sse.PatchElementTempl(view.EmployeeRows(remaining))
		return
	}
	sse.RemoveElementByID(view.RowID(id))
}

func (h *AdminHandler) notFoundOrError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	slog.Error("admin employee action", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
