package domain

// View is one of the screens the application can show.
type View string

const (
	ViewRegistration   View = "registration"
	ViewPassDisplay    View = "passDisplay"
	ViewAdminLogin     View = "adminLogin"
	ViewAdminDashboard View = "adminDashboard"
)

// InitialView is where every browser session starts.
const InitialView = ViewRegistration

// ViewEvent is a user action that can move the application between views.
type ViewEvent string

const (
	EventRegistered     ViewEvent = "registered"
	EventRegisterNew    ViewEvent = "registerNew"
	EventEmployeeNav    ViewEvent = "employeeNav"
	EventAdminNav       ViewEvent = "adminNav"
	EventLoginSucceeded ViewEvent = "loginSucceeded"
	EventLoginFailed    ViewEvent = "loginFailed"
	EventLogout         ViewEvent = "logout"
)

// NextView returns the view shown after ev happens in from. authenticated is
// the admin flag as it stands after the event (false after a logout).
// Events that do not apply to from leave the view unchanged.
func NextView(from View, ev ViewEvent, authenticated bool) View {
	next := from
	switch ev {
	case EventRegistered:
		if from == ViewRegistration {
			next = ViewPassDisplay
		}
	case EventRegisterNew:
		if from == ViewPassDisplay {
			next = ViewRegistration
		}
	case EventEmployeeNav:
		next = ViewRegistration
	case EventAdminNav:
		next = ViewAdminLogin
		if authenticated {
			next = ViewAdminDashboard
		}
	case EventLoginSucceeded:
		if from == ViewAdminLogin {
			next = ViewAdminDashboard
		}
	case EventLoginFailed:
		// stays on the gate
	case EventLogout:
		if from == ViewAdminDashboard {
			next = ViewRegistration
		}
	}
	return Resolve(next, authenticated)
}

// Resolve guards the dashboard: without the admin flag it falls back to the login gate.
func Resolve(v View, authenticated bool) View {
	if v == ViewAdminDashboard && !authenticated {
		return ViewAdminLogin
	}
	return v
}
