//go:generate templ generate

// Package view holds the templ components for the HTML pages and the
// datastar fragments. The *_templ.go files are generated with `templ generate`.
package view

import (
	"encoding/hex"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/msomdec/employee-pass/internal/domain"
)

// Nav sections.
const (
	SectionEmployee = "employee"
	SectionAdmin    = "admin"
)

// Layout is the data every full page needs for the header.
type Layout struct {
	Title   string
	Section string
	Admin   bool
}

// LayoutFor builds the layout of the page showing v.
func LayoutFor(v domain.View, admin bool) Layout {
	l := Layout{Admin: admin, Section: SectionEmployee}
	switch v {
	case domain.ViewRegistration:
		l.Title = "Register"
	case domain.ViewPassDisplay:
		l.Title = "Your Pass"
	case domain.ViewAdminLogin:
		l.Title, l.Section = "Admin Access", SectionAdmin
	case domain.ViewAdminDashboard:
		l.Title, l.Section = "Employee Management", SectionAdmin
	}
	return l
}

// RegistrationForm is the registration page state. Name and EmployeeID are
// echoed back after a rejected submit.
type RegistrationForm struct {
	Name        string
	EmployeeID  string
	Error       string
	MaxUploadMB int64
}

// EditDraft is the state of the admin edit modal.
type EditDraft struct {
	Employee   domain.Employee
	Name       string
	EmployeeID string
	Error      string
}

// NewEditDraft starts a draft from the stored record.
func NewEditDraft(e domain.Employee) *EditDraft {
	return &EditDraft{Employee: e, Name: e.Name, EmployeeID: e.EmployeeID}
}

// PhotoURL is the img src of a stored photo. Only the data URL forms
// produced at registration pass; anything else renders as "#".
func PhotoURL(photo string) string {
	if strings.HasPrefix(photo, "data:image/png;base64,") || strings.HasPrefix(photo, "data:image/jpeg;base64,") {
		return photo
	}
	return "#"
}

// RowID is the DOM id of an employee's dashboard row. Record ids may hold
// characters that are not valid in a selector, so they are hex encoded.
func RowID(id string) string {
	return "row-" + hex.EncodeToString([]byte(id))
}

func ImageURL(id string) string    { return "/passes/" + url.PathEscape(id) + "/image" }
func DownloadURL(id string) string { return ImageURL(id) + "?download=1" }
func PassURL(id string) string     { return "/passes/" + url.PathEscape(id) }
func EditURL(id string) string     { return "/admin/employees/" + url.PathEscape(id) + "/edit" }
func SaveURL(id string) string     { return "/admin/employees/" + url.PathEscape(id) }
func DeleteURL(id string) string   { return "/admin/employees/" + url.PathEscape(id) + "/delete" }

const cancelEditURL = "/admin/employees/edit/cancel"

func navCurrent(active bool) string {
	if active {
		return "page"
	}
	return "false"
}

// datastar actions. URLs are embedded as JSON strings so quotes in record
// ids cannot break out of the expression.
func onGet(u string) string        { return "@get(" + jsString(u) + ")" }
func onPost(u string) string       { return "@post(" + jsString(u) + ")" }
func onSubmitForm(u string) string { return "@post(" + jsString(u) + ", {contentType: 'form'})" }

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
