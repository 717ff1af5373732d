package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/view"
)

const loginPath = "/admin/login"

// renderPage writes a full HTML page with the given status.
func renderPage(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "path", r.URL.Path, "error", err)
	}
}

// redirectToView sends the browser to the page of v. id selects the record
// for the pass display.
func redirectToView(w http.ResponseWriter, r *http.Request, v domain.View, id string) {
	var target string
	switch v {
	case domain.ViewPassDisplay:
		target = view.PassURL(id)
	case domain.ViewAdminLogin:
		target = loginPath
	case domain.ViewAdminDashboard:
		target = "/admin"
	default:
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func formatMB(n int64) string {
	return strconv.FormatInt(n>>20, 10) + "MB"
}
