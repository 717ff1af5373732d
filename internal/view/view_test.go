package view_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/view"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

var jane = domain.Employee{
	ID:               "EMP 001-1709631000000",
	Name:             "Jane <Doe>",
	EmployeeID:       "EMP 001",
	Photo:            "data:image/png;base64,iVBORw0KGgo=",
	RegistrationDate: "3/5/2024",
}

func TestRegistrationPage_ShowsErrorAndEchoesInput(t *testing.T) {
	html := renderString(t, view.RegistrationPage(false, view.RegistrationForm{
		Name:        "Jane",
		Error:       "All fields are required.",
		MaxUploadMB: 10,
	}))

	for _, want := range []string{"All fields are required.", `value="Jane"`, "up to 10MB", `href="/admin"`} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in registration page", want)
		}
	}
}

func TestAdminDashboardPage_Empty(t *testing.T) {
	html := renderString(t, view.AdminDashboardPage(nil, nil))
	if !strings.Contains(html, "No employees registered yet.") {
		t.Fatal("expected empty state message")
	}
	if !strings.Contains(html, "Logout") {
		t.Fatal("expected logout control for admin pages")
	}
}

func TestAdminDashboardPage_RowsEscapeAndLinkPhoto(t *testing.T) {
	html := renderString(t, view.AdminDashboardPage([]domain.Employee{jane}, nil))

	if strings.Contains(html, "Jane <Doe>") {
		t.Fatal("expected name to be HTML escaped")
	}
	if !strings.Contains(html, `src="data:image/png;base64,iVBORw0KGgo="`) {
		t.Fatal("expected photo data URL in img src")
	}
	if !strings.Contains(html, `id="`+view.RowID(jane.ID)+`"`) {
		t.Fatal("expected row id")
	}
	if !strings.Contains(html, "/admin/employees/EMP%20001-1709631000000/delete") {
		t.Fatal("expected escaped delete URL")
	}
}

func TestEditModal(t *testing.T) {
	draft := view.NewEditDraft(jane)
	draft.Name = ""
	draft.Error = "Name and employee ID are required."

	html := renderString(t, view.EditModal(draft))
	if !strings.HasPrefix(strings.TrimSpace(html), `<div id="edit-modal">`) {
		t.Fatalf("expected modal root element, got %.60s", html)
	}
	if !strings.Contains(html, "Name and employee ID are required.") {
		t.Fatal("expected error in modal")
	}
	if !strings.Contains(html, `value="EMP 001"`) {
		t.Fatal("expected employee id draft")
	}
}

func TestPhotoURL_RejectsOtherSchemes(t *testing.T) {
	if got := view.PhotoURL("javascript:alert(1)"); got != "#" {
		t.Fatalf("expected #, got %s", got)
	}
	if got := view.PhotoURL("data:image/jpeg;base64,AA=="); got != "data:image/jpeg;base64,AA==" {
		t.Fatalf("expected jpeg data URL to pass, got %s", got)
	}
}

func TestRowID_IsSelectorSafe(t *testing.T) {
	id := view.RowID("a b#c")
	if strings.ContainsAny(id, " #") {
		t.Fatalf("row id %q contains selector characters", id)
	}
	if view.RowID("x") == view.RowID("y") {
		t.Fatal("expected distinct row ids")
	}
}

func TestLayoutFor(t *testing.T) {
	if l := view.LayoutFor(domain.ViewAdminLogin, false); l.Section != view.SectionAdmin {
		t.Fatalf("expected admin section, got %s", l.Section)
	}
	if l := view.LayoutFor(domain.ViewPassDisplay, true); l.Section != view.SectionEmployee || !l.Admin {
		t.Fatalf("unexpected layout %+v", l)
	}
}

func TestEmployeeRows_EmptyState(t *testing.T) {
	html := renderString(t, view.EmployeeRows([]domain.Employee{}))
	if !strings.Contains(html, `<tbody id="employee-rows">`) {
		t.Fatal("expected tbody root")
	}
	if !strings.Contains(html, "No employees registered yet.") {
		t.Fatal("expected empty state row")
	}
}

func TestEmployeeRows_DatastarActionsQuoteIDs(t *testing.T) {
	e := jane
	e.ID = `a'b"c`

	html := renderString(t, view.EmployeeRows([]domain.Employee{e}))

	want := `data-on:click__prevent="@get(&#34;/admin/employees/a&#39;b%22c/edit&#34;)"`
	if !strings.Contains(html, want) {
		t.Fatalf("expected %s in:\n%s", want, html)
	}
	if !strings.Contains(html, `@post(&#34;/admin/employees/a&#39;b%22c/delete&#34;)`) {
		t.Fatal("expected quoted delete action")
	}
}

func TestPages_MarkCurrentNavSection(t *testing.T) {
	html := renderString(t, view.AdminLoginPage(""))
	if !strings.Contains(html, `<a href="/admin" aria-current="page">`) {
		t.Fatal("expected admin nav marked current on the login page")
	}
	if !strings.Contains(html, `<a href="/" aria-current="false">`) {
		t.Fatal("expected employee nav not current on the login page")
	}

	html = renderString(t, view.PassPage(false, jane, "EMP 001-pass.jpg"))
	for _, want := range []string{
		`<a href="/" aria-current="page">`,
		`src="/passes/EMP%20001-1709631000000/image"`,
		`download="EMP 001-pass.jpg"`,
		"Employee pass for Jane &lt;Doe&gt;",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in pass page", want)
		}
	}
}
